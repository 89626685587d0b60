package types

import (
	"fmt"
	"os"
	"path"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Generic Dataset that contains information after processing the traces
type DataSet interface{}

// Analyzer compresses the information in the traces to a DataSet
type Analyzer interface {
	// epoch, permutation the episode was run on, trace
	Analyze(int, []int, *Trace)
	// Resulting dataset
	DataSet() DataSet
	// Reset the analyzer
	Reset()
}

// Comparator differentiates between different datasets with associated names
type Comparator func([]string, []DataSet)

func NoopComparator() Comparator {
	return func(s []string, ds []DataSet) {}
}

// RewardDataSet holds the mean total reward of the learning episodes of each epoch
type RewardDataSet struct {
	MeanRewards []float64
}

// RewardAnalyzer averages the total episode reward per epoch
type RewardAnalyzer struct {
	epochRewards [][]float64
}

var _ Analyzer = &RewardAnalyzer{}

func NewRewardAnalyzer() *RewardAnalyzer {
	return &RewardAnalyzer{
		epochRewards: make([][]float64, 0),
	}
}

func (r *RewardAnalyzer) Analyze(epoch int, _ []int, trace *Trace) {
	for len(r.epochRewards) <= epoch {
		r.epochRewards = append(r.epochRewards, make([]float64, 0))
	}
	r.epochRewards[epoch] = append(r.epochRewards[epoch], float64(trace.TotalReward()))
}

func (r *RewardAnalyzer) DataSet() DataSet {
	ds := &RewardDataSet{
		MeanRewards: make([]float64, len(r.epochRewards)),
	}
	for i, rewards := range r.epochRewards {
		if len(rewards) == 0 {
			continue
		}
		ds.MeanRewards[i] = stat.Mean(rewards, nil)
	}
	return ds
}

func (r *RewardAnalyzer) Reset() {
	r.epochRewards = make([][]float64, 0)
}

// RewardPlotComparator plots the mean reward curves of all the runs in one figure
func RewardPlotComparator(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(s []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Epoch"
		p.Y.Label.Text = "Mean episode reward"
		for i := 0; i < len(s); i++ {
			rewards := ds[i].(*RewardDataSet).MeanRewards
			if len(rewards) == 0 {
				continue
			}
			points := make(plotter.XYs, len(rewards))
			for j, v := range rewards {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(s[i], line)
			fmt.Printf("Final mean reward: %.2f for run: %s\n", rewards[len(rewards)-1], s[i])
		}
		if err := p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "rewards.png")); err != nil {
			fmt.Printf("could not save reward plot: %s\n", err)
		}
	}
}
