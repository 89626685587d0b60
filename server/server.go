package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeu5/rl-sorting/policies"
	"github.com/zeu5/rl-sorting/sorting"
	"github.com/zeu5/rl-sorting/types"
)

type Config struct {
	Addr string
	// Length of the lists the policy was trained on
	Length int
	// Bound on the number of greedy steps per request
	Bound int
}

type SortRequest struct {
	List []int `json:"list"`
}

type SortResponse struct {
	List    []int    `json:"list"`
	Sorted  bool     `json:"sorted"`
	Solved  bool     `json:"solved"`
	Actions []string `json:"actions"`
	Reward  int      `json:"reward"`
	Steps   int      `json:"steps"`
}

type StateResponse struct {
	Observation int                    `json:"observation"`
	LastAction  string                 `json:"last_action"`
	Flags       sorting.Flags          `json:"flags"`
	Values      []policies.ActionValue `json:"values"`
}

// Server exposes a trained greedy policy over HTTP
type Server struct {
	config  Config
	factory types.EnvironmentFactory
	router  *gin.Engine
	server  *http.Server

	// the greedy fallback draws from a shared source
	lock   *sync.Mutex
	policy *policies.GreedyPolicy
}

func NewServer(config Config, policy *policies.GreedyPolicy, factory types.EnvironmentFactory) *Server {
	s := &Server{
		config:  config,
		factory: factory,
		lock:    new(sync.Mutex),
		policy:  policy,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/health", healthHandler)
	r.GET("/policy", s.handlePolicy)
	r.GET("/policy/:observation", s.handleState)
	r.POST("/sort", s.handleSort)
	s.router = r
	s.server = &http.Server{
		Addr:    config.Addr,
		Handler: r,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) handlePolicy(c *gin.Context) {
	q := s.policy.QTable()
	s.lock.Lock()
	states := len(q.States())
	entries := q.Len()
	s.lock.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"length":  s.config.Length,
		"states":  states,
		"entries": entries,
	})
}

func (s *Server) handleState(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("observation"))
	if err != nil || code < 0 || code > int(sorting.MaxObservation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid observation"})
		return
	}
	obs := sorting.Observation(code)
	s.lock.Lock()
	values := s.policy.QTable().Values(obs)
	s.lock.Unlock()
	if len(values) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "observation never visited"})
		return
	}
	flags, last := sorting.Decode(obs)
	c.JSON(http.StatusOK, StateResponse{
		Observation: code,
		LastAction:  last.String(),
		Flags:       flags,
		Values:      values,
	})
}

func (s *Server) handleSort(c *gin.Context) {
	req := SortRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}
	if len(req.List) != s.config.Length {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("policy was trained on lists of length %d", s.config.Length),
		})
		return
	}
	env, err := s.factory(req.List)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.lock.Lock()
	trace, err := policies.Execute(env, s.policy, s.config.Bound)
	s.lock.Unlock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	actions := make([]string, 0, trace.Len())
	for _, a := range trace.Actions() {
		actions = append(actions, a.String())
	}
	list := env.List()
	c.JSON(http.StatusOK, SortResponse{
		List:    list,
		Sorted:  slices.IsSorted(list),
		Solved:  trace.Solved(),
		Actions: actions,
		Reward:  trace.TotalReward(),
		Steps:   trace.Len(),
	})
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
