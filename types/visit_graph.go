package types

import (
	"github.com/zeu5/rl-sorting/sorting"
	"github.com/zeu5/rl-sorting/util"
)

// VisitGraph is the observation transition graph seen across episodes
type VisitGraph struct {
	Nodes map[sorting.Observation]*Node `json:"nodes"`
}

func NewVisitGraph() *VisitGraph {
	return &VisitGraph{
		Nodes: make(map[sorting.Observation]*Node),
	}
}

// Update records the transition and returns true if from was never visited before
func (v *VisitGraph) Update(from sorting.Observation, action sorting.Action, to sorting.Observation) bool {
	new := false
	if _, ok := v.Nodes[from]; !ok {
		v.Nodes[from] = NewNode(from)
		new = true
	}
	if _, ok := v.Nodes[to]; !ok {
		v.Nodes[to] = NewNode(to)
	}
	v.Nodes[from].Visits += 1
	v.Nodes[from].AddNext(action, to)
	v.Nodes[to].AddPrev(action, from)
	return new
}

func (v *VisitGraph) GetVisits() map[sorting.Observation]int {
	results := make(map[sorting.Observation]int)
	for k, n := range v.Nodes {
		results[k] = n.Visits
	}
	return results
}

func (v *VisitGraph) Record(filePath string) error {
	return util.WriteJSON(filePath, v)
}

type Node struct {
	Observation sorting.Observation                     `json:"observation"`
	Visits      int                                     `json:"visits"`
	// Next, Prev: keyed by action name, an action can lead to many observations
	Next        map[string]map[sorting.Observation]bool `json:"next"`
	Prev        map[string]map[sorting.Observation]bool `json:"prev"`
}

func NewNode(o sorting.Observation) *Node {
	return &Node{
		Observation: o,
		Visits:      0,
		Next:        make(map[string]map[sorting.Observation]bool),
		Prev:        make(map[string]map[sorting.Observation]bool),
	}
}

func (n *Node) AddPrev(a sorting.Action, prev sorting.Observation) {
	if _, ok := n.Prev[a.String()]; !ok {
		n.Prev[a.String()] = make(map[sorting.Observation]bool)
	}
	n.Prev[a.String()][prev] = true
}

func (n *Node) AddNext(a sorting.Action, next sorting.Observation) {
	if _, ok := n.Next[a.String()]; !ok {
		n.Next[a.String()] = make(map[sorting.Observation]bool)
	}
	n.Next[a.String()][next] = true
}
