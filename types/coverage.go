package types

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// CoverageAnalyzer counts the distinct observations visited up to each epoch
type CoverageAnalyzer struct {
	graph           *VisitGraph
	numUniqueStates []int
}

var _ Analyzer = (*CoverageAnalyzer)(nil)

func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{
		graph:           NewVisitGraph(),
		numUniqueStates: make([]int, 0),
	}
}

func (ca *CoverageAnalyzer) Analyze(epoch int, _ []int, trace *Trace) {
	for j := 0; j < trace.Len(); j++ {
		obs, action, _, next, _ := trace.Get(j)
		ca.graph.Update(obs, action, next)
	}
	for len(ca.numUniqueStates) <= epoch {
		ca.numUniqueStates = append(ca.numUniqueStates, 0)
	}
	ca.numUniqueStates[epoch] = len(ca.graph.Nodes)
}

// Graph of the transitions seen so far
func (ca *CoverageAnalyzer) Graph() *VisitGraph {
	return ca.graph
}

func (ca *CoverageAnalyzer) DataSet() DataSet {
	out := make([]int, len(ca.numUniqueStates))
	copy(out, ca.numUniqueStates)
	return out
}

func (ca *CoverageAnalyzer) Reset() {
	ca.graph = NewVisitGraph()
	ca.numUniqueStates = make([]int, 0)
}

// CoverageComparator plots the coverage curves of all the runs and dumps the raw counts
func CoverageComparator(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(s []string, ds []DataSet) {
		p := plot.New()

		p.Title.Text = "Comparison"
		p.X.Label.Text = "Epoch"
		p.Y.Label.Text = "Observations covered"

		coverageData := make(map[string][]int)

		for i := 0; i < len(s); i++ {
			dataset := ds[i].([]int)
			coverageData[s[i]] = make([]int, len(dataset))
			copy(coverageData[s[i]], dataset)
			points := make(plotter.XYs, len(dataset))
			for j, v := range dataset {
				points[j] = plotter.XY{
					X: float64(j),
					Y: float64(v),
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(s[i], line)
		}

		if err := p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "coverage.png")); err != nil {
			fmt.Printf("could not save coverage plot: %s\n", err)
		}

		bs, err := json.Marshal(coverageData)
		if err != nil {
			fmt.Printf("could not encode coverage data: %s\n", err)
			return
		}
		if err := os.WriteFile(path.Join(plotPath, "coverage.json"), bs, 0644); err != nil {
			fmt.Printf("could not save coverage data: %s\n", err)
		}
	}
}
