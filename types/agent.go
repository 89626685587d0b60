package types

type AgentConfig struct {
	Horizon     int
	Policy      Policy
	Environment Environment
}

// RL Agent configured with the corresponding
// policy and environment
type Agent struct {
	config      *AgentConfig
	policy      Policy
	environment Environment
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		policy:      config.Policy,
		environment: config.Environment,
	}
}

// RunEpisode resets the environment and steps it until the episode terminates,
// the policy gives up or the horizon is reached.
// On an environment error the partial trace is returned along with the error.
func (a *Agent) RunEpisode(episode int) (*Trace, error) {
	obs := a.environment.Reset()
	trace := NewTrace()

	for i := 0; i < a.config.Horizon; i++ {
		action, ok := a.policy.NextAction(i, obs)
		if !ok {
			break
		}
		nextObs, reward, done, err := a.environment.Step(action)
		if err != nil {
			return trace, err
		}
		a.policy.Update(i, obs, action, reward, nextObs)

		trace.Append(obs, action, reward, nextObs)
		obs = nextObs
		if done {
			break
		}
	}
	a.policy.UpdateIteration(episode, trace)

	return trace, nil
}
