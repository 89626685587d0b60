package curriculum

import (
	"context"

	"github.com/zeu5/rl-sorting/types"
)

// Baseline runs policy on the whole training set once per epoch, without a
// working slice, and feeds every trace to the analyzers. It gives the reward
// curve a non curriculum policy reaches with the same budget.
func Baseline(ctx context.Context, config Config, factory types.EnvironmentFactory, policy types.Policy, analyzers ...types.Analyzer) error {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return err
	}
	perms := TrainingSet(config.Length)
	episode := 0
	for epoch := 0; epoch < config.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		for _, perm := range perms {
			env, err := factory(perm)
			if err != nil {
				return err
			}
			agent := types.NewAgent(&types.AgentConfig{
				Horizon:     config.Horizon,
				Policy:      policy,
				Environment: env,
			})
			trace, err := agent.RunEpisode(episode)
			episode++
			if err != nil {
				return err
			}
			for _, a := range analyzers {
				a.Analyze(epoch, perm, trace)
			}
		}
	}
	return nil
}
