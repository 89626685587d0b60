package benchmarks

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeu5/rl-sorting/server"
	"github.com/zeu5/rl-sorting/types"
)

func ServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Train, then serve the greedy policy over HTTP",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			s := server.NewServer(server.Config{
				Addr:   addr,
				Length: length,
				Bound:  horizon,
			}, result.Policy, types.SortingFactory())
			fmt.Printf("Serving the policy of lists of length %d on %s\n", length, addr)
			return s.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Address to listen on")
	return cmd
}
