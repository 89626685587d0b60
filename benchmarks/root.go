package benchmarks

import "github.com/spf13/cobra"

var (
	epochs     int
	horizon    int
	saveFile   string
	runs       int
	seed       uint64
	cpuprofile string
	memprofile string

	length  int
	epsilon float64
	gamma   float64
	passes  int
	subset  int
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "rl-sorting",
		Short: "Learn to sort lists through a cursor based environment",
	}
	rootCommand.PersistentFlags().IntVarP(&epochs, "epochs", "e", 10000, "Epoch budget of each training run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 100, "Horizon of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of training runs, each with its own seed")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed of the first run")
	rootCommand.PersistentFlags().StringVar(&cpuprofile, "cpuprofile", "", "Write a CPU profile to this file in the save folder")
	rootCommand.PersistentFlags().StringVar(&memprofile, "memprofile", "", "Write a heap profile to this file in the save folder")

	rootCommand.PersistentFlags().IntVarP(&length, "length", "n", 3, "Length of the lists to sort")
	rootCommand.PersistentFlags().Float64Var(&epsilon, "epsilon", 0.1, "Exploration probability")
	rootCommand.PersistentFlags().Float64Var(&gamma, "gamma", 0.9, "Discount factor")
	rootCommand.PersistentFlags().IntVar(&passes, "passes", 1, "Learning passes over the working set per epoch")
	rootCommand.PersistentFlags().IntVar(&subset, "subset", 0, "Permutations the working set starts with, 0 for all")

	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(SortCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}
