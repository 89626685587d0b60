package benchmarks

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zeu5/rl-sorting/policies"
	"github.com/zeu5/rl-sorting/sorting"
	"github.com/zeu5/rl-sorting/types"
)

// Replay steps a fresh environment through the actions of trace, rendering it
// after every step
func Replay(w io.Writer, list []int, trace *types.Trace) error {
	env, err := sorting.NewEnvironment(list)
	if err != nil {
		return err
	}
	env.Render(w)
	for i := 0; i < trace.Len(); i++ {
		_, action, _, _, _ := trace.Get(i)
		_, reward, _, err := env.Step(action)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\nstep %d: %s, reward %d\n", i+1, action, reward)
		env.Render(w)
	}
	fmt.Fprintf(w, "\nfinal list %v, total reward %d\n", env.List(), trace.TotalReward())
	return nil
}

func SortCommand() *cobra.Command {
	var list []int

	cmd := &cobra.Command{
		Use:          "sort",
		Short:        "Train, then sort the given list greedily and print every step",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(list) != length {
				return fmt.Errorf("list %v does not have length %d", list, length)
			}
			ctx, cancel := interruptContext()
			defer cancel()

			results, err := Train(ctx, configFromFlags(), trainOptions{
				runs:     runs,
				saveFile: saveFile,
			})
			if err != nil {
				return err
			}
			result, err := firstSolved(results)
			if err != nil {
				return err
			}
			env, err := sorting.NewEnvironment(list)
			if err != nil {
				return err
			}
			trace, err := policies.Execute(env, result.Policy, horizon)
			if err != nil {
				return err
			}
			return Replay(os.Stdout, list, trace)
		},
	}
	cmd.Flags().IntSliceVar(&list, "list", []int{2, 1, 0}, "List to sort")
	return cmd
}
