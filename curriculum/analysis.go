package curriculum

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotHistory plots the size of the working slice and the number of greedily
// solved permutations per epoch
func PlotHistory(history []EpochStats, plotPath string) error {
	p := plot.New()
	p.Title.Text = "Curriculum"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Permutations"

	working := make(plotter.XYs, len(history))
	solved := make(plotter.XYs, len(history))
	for i, s := range history {
		working[i] = plotter.XY{X: float64(s.Epoch), Y: float64(s.WorkingSet)}
		solved[i] = plotter.XY{X: float64(s.Epoch), Y: float64(s.WorkingSolved)}
	}
	if err := plotutil.AddLines(p, "Working set", working, "Solved", solved); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 8*vg.Inch, plotPath)
}

// EpochSummary is the spread of epochs-to-solve over several runs
type EpochSummary struct {
	Runs   int
	Solved int
	Mean   float64
	StdDev float64
}

// SummarizeEpochs computes the mean and standard deviation of the epochs
// needed by the solved runs
func SummarizeEpochs(results []*Result) EpochSummary {
	summary := EpochSummary{Runs: len(results)}
	epochs := make([]float64, 0, len(results))
	for _, r := range results {
		if r != nil && r.Solved {
			epochs = append(epochs, float64(r.Epochs))
		}
	}
	summary.Solved = len(epochs)
	if len(epochs) > 0 {
		summary.Mean = stat.Mean(epochs, nil)
	}
	if len(epochs) > 1 {
		summary.StdDev = stat.StdDev(epochs, nil)
	}
	return summary
}
