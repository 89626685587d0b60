package benchmarks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeu5/rl-sorting/curriculum"
	"github.com/zeu5/rl-sorting/types"
	"github.com/zeu5/rl-sorting/util"
)

var errNotSolved = errors.New("no run solved the training set")

// configFromFlags builds the training configuration out of the persistent flags
func configFromFlags() curriculum.Config {
	config := curriculum.DefaultConfig(length)
	config.Epochs = epochs
	config.Horizon = horizon
	config.EvalHorizon = horizon
	config.Epsilon = epsilon
	config.Gamma = gamma
	config.Passes = passes
	config.Seed = seed
	config.InitialSubset = subset
	return config
}

// interruptContext is cancelled on the first interrupt from the os
func interruptContext() (context.Context, context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
		cancel()
	}()
	return ctx, cancel
}

type trainOptions struct {
	runs        int
	saveFile    string
	baseline    bool
	plotHistory bool
	quiet       bool
}

// Train runs the curriculum trainer once per seed, in parallel, and records the
// history of each run along with a comparison of the mean episode rewards
func Train(ctx context.Context, config curriculum.Config, opts trainOptions) ([]*curriculum.Result, error) {
	n := max(opts.runs, 1)
	trainers := make([]*curriculum.Trainer, n)
	rewards := make([]*types.RewardAnalyzer, n)
	coverage := make([]*types.CoverageAnalyzer, n)
	for run := 0; run < n; run++ {
		runConfig := config
		runConfig.Seed = config.Seed + uint64(run)
		trainer, err := curriculum.NewTrainer(runConfig, types.SortingFactory())
		if err != nil {
			return nil, err
		}
		rewards[run] = types.NewRewardAnalyzer()
		coverage[run] = types.NewCoverageAnalyzer()
		trainer.AddAnalyzer(rewards[run])
		trainer.AddAnalyzer(coverage[run])
		trainers[run] = trainer
	}

	lines := make([]*types.StatusLine, n)
	for i := range lines {
		lines[i] = types.NewStatusLine()
	}
	var printer *types.TerminalPrinter
	if !opts.quiet {
		printer = types.NewTerminalPrinter(ctx, lines, 500*time.Millisecond)
		printer.Start()
	}

	results := make([]*curriculum.Result, n)
	errs := make([]error, n)
	wg := new(sync.WaitGroup)
	for run, trainer := range trainers {
		line := lines[run]
		name := fmt.Sprintf("run %d (seed %d)", run, trainer.Config().Seed)
		trainer.OnEpoch = func(s curriculum.EpochStats) {
			line.TrySet(fmt.Sprintf("%s: epoch %d/%d, working set %d, solved %d", name, s.Epoch, config.Epochs, s.WorkingSet, s.WorkingSolved))
		}

		wg.Add(1)
		go func(run int, trainer *curriculum.Trainer) {
			defer wg.Done()
			result, err := trainer.Run(ctx)
			results[run] = result
			errs[run] = err
			status := "not solved"
			if result.Solved {
				status = "solved"
			}
			line.Set(fmt.Sprintf("%s: %s after %d epochs", name, status, result.Epochs))
		}(run, trainer)
	}
	wg.Wait()
	if printer != nil {
		printer.Stop()
	}
	if err := errors.Join(errs...); err != nil {
		return results, err
	}

	names := make([]string, 0, n+1)
	datasets := make([]types.DataSet, 0, n+1)
	coverageData := make([]types.DataSet, 0, n+1)
	maxEpochs := 1
	for run, result := range results {
		names = append(names, fmt.Sprintf("curriculum-%d", run))
		datasets = append(datasets, rewards[run].DataSet())
		coverageData = append(coverageData, coverage[run].DataSet())
		maxEpochs = max(maxEpochs, result.Epochs)

		runPath := path.Join(opts.saveFile, fmt.Sprintf("run_%d", run))
		if err := util.WriteJSON(path.Join(runPath, "history.json"), result.History); err != nil {
			return results, err
		}
		if err := coverage[run].Graph().Record(path.Join(runPath, "visit_graph.json")); err != nil {
			return results, err
		}
		if opts.plotHistory && len(result.History) > 0 {
			if err := curriculum.PlotHistory(result.History, path.Join(runPath, "history.png")); err != nil {
				return results, err
			}
		}
	}

	if opts.baseline {
		baselineConfig := config
		baselineConfig.Epochs = maxEpochs
		random := types.NewRewardAnalyzer()
		randomCoverage := types.NewCoverageAnalyzer()
		policy := types.NewRandomPolicy(config.Seed)
		if err := curriculum.Baseline(ctx, baselineConfig, types.SortingFactory(), policy, random, randomCoverage); err != nil {
			return results, err
		}
		names = append(names, "random")
		datasets = append(datasets, random.DataSet())
		coverageData = append(coverageData, randomCoverage.DataSet())
	}
	if opts.plotHistory {
		types.RewardPlotComparator(opts.saveFile)(names, datasets)
		types.CoverageComparator(opts.saveFile)(names, coverageData)
	}

	summary := curriculum.SummarizeEpochs(results)
	if err := util.WriteJSON(path.Join(opts.saveFile, "config.json"), config); err != nil {
		return results, err
	}
	if err := util.WriteJSON(path.Join(opts.saveFile, "summary.json"), summary); err != nil {
		return results, err
	}
	fmt.Printf("Solved %d out of %d runs, epochs to solve: mean %.2f, std dev %.2f\n", summary.Solved, summary.Runs, summary.Mean, summary.StdDev)
	return results, nil
}

// firstSolved picks the policy of the first run that solved the training set
func firstSolved(results []*curriculum.Result) (*curriculum.Result, error) {
	for _, r := range results {
		if r != nil && r.Solved {
			return r, nil
		}
	}
	return nil, errNotSolved
}

func TrainCommand() *cobra.Command {
	var baseline bool
	var plotHistory bool

	cmd := &cobra.Command{
		Use:          "train",
		Short:        "Train the sorting policy on every permutation of the given length",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := interruptContext()
			defer cancel()

			stop := startProfiling()
			defer stop()

			_, err := Train(ctx, configFromFlags(), trainOptions{
				runs:        runs,
				saveFile:    saveFile,
				baseline:    baseline,
				plotHistory: plotHistory,
			})
			return err
		},
	}
	cmd.Flags().BoolVar(&baseline, "baseline", false, "Compare against a random policy with the same epoch budget")
	cmd.Flags().BoolVar(&plotHistory, "plot", true, "Plot the reward curves and the working set of each run")
	return cmd
}
