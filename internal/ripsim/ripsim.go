// Package ripsim simulates RIP-style distance-vector routing over a
// weighted topology, one synchronous exchange round at a time.
package ripsim

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

var (
	// ErrUnknownRouter indicates a router name absent from the topology
	ErrUnknownRouter = errors.New("router not found in the network")

	// ErrDuplicateLink indicates a link added twice
	ErrDuplicateLink = errors.New("link already exists")
)

// Topology is a weighted undirected router network
type Topology struct {
	g     *simple.WeightedUndirectedGraph
	names []string
	ids   map[string]int64
}

// NewTopology returns an empty network
func NewTopology() *Topology {
	return &Topology{
		g:   simple.NewWeightedUndirectedGraph(0, math.Inf(1)),
		ids: make(map[string]int64),
	}
}

// DefaultTopology builds the classroom five-router network
func DefaultTopology() *Topology {
	t := NewTopology()
	links := []struct {
		a, b string
		cost float64
	}{
		{"A", "B", 4}, {"A", "C", 2}, {"B", "C", 1}, {"B", "D", 5},
		{"C", "D", 8}, {"C", "E", 10}, {"D", "E", 2},
	}
	for _, l := range links {
		_ = t.AddLink(l.a, l.b, l.cost)
	}
	return t
}

func (t *Topology) node(name string) int64 {
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := int64(len(t.names))
	t.ids[name] = id
	t.names = append(t.names, name)
	t.g.AddNode(simple.Node(id))
	return id
}

// AddLink connects two routers with the given cost, creating them as
// needed
func (t *Topology) AddLink(a, b string, cost float64) error {
	ua, ub := t.node(a), t.node(b)
	if t.g.HasEdgeBetween(ua, ub) {
		return fmt.Errorf("%s-%s: %w", a, b, ErrDuplicateLink)
	}
	t.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(ua), T: simple.Node(ub), W: cost})
	return nil
}

// Routers lists router names in sorted order
func (t *Topology) Routers() []string {
	out := append([]string(nil), t.names...)
	sort.Strings(out)
	return out
}

// HasRouter reports whether name exists in the topology
func (t *Topology) HasRouter(name string) bool {
	_, ok := t.ids[name]
	return ok
}

// Neighbors lists the direct neighbors of a router in sorted order
func (t *Topology) Neighbors(name string) []string {
	id, ok := t.ids[name]
	if !ok {
		return nil
	}
	var out []string
	it := t.g.From(id)
	for it.Next() {
		out = append(out, t.names[it.Node().ID()])
	}
	sort.Strings(out)
	return out
}

// Cost returns the direct link cost between two routers, +Inf when no
// link exists
func (t *Topology) Cost(a, b string) float64 {
	ua, ok1 := t.ids[a]
	ub, ok2 := t.ids[b]
	if !ok1 || !ok2 {
		return math.Inf(1)
	}
	w, ok := t.g.Weight(ua, ub)
	if !ok {
		return math.Inf(1)
	}
	return w
}

// Route is one routing-table entry
type Route struct {
	Cost    float64
	NextHop string // empty when the destination is unreachable
}

// Table maps destination router to its route
type Table map[string]Route

// Tables holds every router's table
type Tables map[string]Table

func (ts Tables) clone() Tables {
	out := make(Tables, len(ts))
	for router, table := range ts {
		t := make(Table, len(table))
		for dest, route := range table {
			t[dest] = route
		}
		out[router] = t
	}
	return out
}

// InitialTables seeds every router with cost 0 to itself, the link cost to
// each direct neighbor and infinity elsewhere
func InitialTables(t *Topology) Tables {
	tables := make(Tables)
	for _, router := range t.Routers() {
		table := make(Table)
		for _, dest := range t.Routers() {
			switch {
			case dest == router:
				table[dest] = Route{Cost: 0, NextHop: router}
			case !math.IsInf(t.Cost(router, dest), 1):
				table[dest] = Route{Cost: t.Cost(router, dest), NextHop: dest}
			default:
				table[dest] = Route{Cost: math.Inf(1)}
			}
		}
		tables[router] = table
	}
	return tables
}

// Step performs one synchronous distance-vector exchange: every router
// offers its table to every neighbor, and each route improves to
// linkCost+neighborCost when that beats the current entry. Returns the new
// tables, whether anything changed and human-readable change descriptions.
func Step(t *Topology, tables Tables) (Tables, bool, []string) {
	next := tables.clone()
	updated := false
	var changes []string

	for _, router := range t.Routers() {
		for _, neighbor := range t.Neighbors(router) {
			for _, dest := range t.Routers() {
				if dest == router {
					continue
				}
				current := tables[router][dest].Cost
				candidate := t.Cost(router, neighbor) + tables[neighbor][dest].Cost
				if candidate < current && candidate < next[router][dest].Cost {
					next[router][dest] = Route{Cost: candidate, NextHop: neighbor}
					updated = true
					changes = append(changes, fmt.Sprintf(
						"Router %s: route to %s cost %s -> %g, next hop %s",
						router, dest, formatCost(current), candidate, neighbor))
				}
			}
		}
	}
	return next, updated, changes
}

// Round records one displayed iteration
type Round struct {
	Number  int
	Tables  Tables
	Changes []string
}

// RunResult is the outcome of a full simulation
type RunResult struct {
	Initial   Tables
	Rounds    []Round
	Final     Tables
	Converged bool
}

// Run iterates Step until convergence or maxIterations rounds
func Run(t *Topology, maxIterations int) RunResult {
	tables := InitialTables(t)
	result := RunResult{Initial: tables.clone()}

	for i := 1; i <= maxIterations; i++ {
		next, updated, changes := Step(t, tables)
		tables = next
		if !updated {
			result.Converged = true
			break
		}
		result.Rounds = append(result.Rounds, Round{Number: i, Tables: next.clone(), Changes: changes})
	}
	result.Final = tables
	return result
}

// Path follows next hops from source to destination. A nil path means the
// destination is unreachable.
func Path(tables Tables, source, destination string) ([]string, float64) {
	if _, ok := tables[source]; !ok {
		return nil, math.Inf(1)
	}

	var path []string
	current := source
	for current != destination {
		path = append(path, current)
		route, ok := tables[current][destination]
		if !ok || route.NextHop == "" || len(path) > len(tables) {
			return nil, math.Inf(1)
		}
		current = route.NextHop
	}
	path = append(path, destination)
	return path, tables[source][destination].Cost
}

func formatCost(c float64) string {
	if math.IsInf(c, 1) {
		return "inf"
	}
	return fmt.Sprintf("%g", c)
}

// FormatTable renders one router's table as an aligned text block
func FormatTable(router string, table Table, dests []string) string {
	out := fmt.Sprintf("Router %s's Routing Table:\n", router)
	out += "Destination | Cost | Next Hop\n"
	out += "------------|------|---------\n"
	for _, dest := range dests {
		route := table[dest]
		hop := route.NextHop
		if hop == "" {
			hop = "-"
		}
		out += fmt.Sprintf("%-11s | %4s | %s\n", dest, formatCost(route.Cost), hop)
	}
	return out
}
