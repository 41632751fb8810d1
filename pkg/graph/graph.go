// Package graph evaluates a directed acyclic graph of pure compute nodes on
// demand. Outputs are memoized by a key built from the node's own version and
// the keys of its inputs, so changing a source or calling Invalidate is all
// it takes to make downstream nodes recompute on their next Pull.
package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jpfielding/mpegc.go/pkg/util"
)

var (
	ErrUnknownNode = errors.New("graph: unknown node")
	ErrCycle       = errors.New("graph: connection would create a cycle")
	ErrNotSource   = errors.New("graph: node is not a source")
	ErrBadPort     = errors.New("graph: input port out of range")
)

// ComputeFunc produces a node's output from its input values, in port order.
// It must not call back into the graph.
type ComputeFunc func(ctx context.Context, inputs []any) (any, error)

type node struct {
	id      string
	name    string
	inputs  []string
	compute ComputeFunc // nil for sources
	version uint64

	key   string
	value any
	err   error
}

// Graph holds nodes keyed by id
type Graph struct {
	mu    sync.Mutex
	nodes map[string]*node
}

// New creates an empty graph
func New() *Graph {
	return &Graph{nodes: map[string]*node{}}
}

// AddSource adds a node whose value is set from outside
func (g *Graph) AddSource(name string, value any) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := &node{id: util.NewID(), name: name, value: value, version: 1}
	g.nodes[n.id] = n
	return n.id
}

// AddFunc adds a compute node fed by inputs, which must already exist
func (g *Graph) AddFunc(name string, fn ComputeFunc, inputs ...string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, in := range inputs {
		if _, ok := g.nodes[in]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownNode, in)
		}
	}
	n := &node{
		id:      util.NewID(),
		name:    name,
		inputs:  append([]string(nil), inputs...),
		compute: fn,
		version: 1,
	}
	g.nodes[n.id] = n
	return n.id, nil
}

// Connect rewires input port of node to to read from node from
func (g *Graph) Connect(from, to string, port int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	src, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, from)
	}
	dst, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, to)
	}
	if port < 0 || port >= len(dst.inputs) {
		return fmt.Errorf("%w: %s has %d inputs, got port %d", ErrBadPort, dst.name, len(dst.inputs), port)
	}
	if g.reaches(src.id, dst.id) {
		return fmt.Errorf("%w: %s -> %s", ErrCycle, src.name, dst.name)
	}
	dst.inputs[port] = src.id
	dst.version++
	return nil
}

// Disconnect clears input port of node to. The compute func sees nil there
// until the port is connected again.
func (g *Graph) Disconnect(to string, port int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	dst, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, to)
	}
	if port < 0 || port >= len(dst.inputs) {
		return fmt.Errorf("%w: %s has %d inputs, got port %d", ErrBadPort, dst.name, len(dst.inputs), port)
	}
	if dst.inputs[port] == "" {
		return nil
	}
	dst.inputs[port] = ""
	dst.version++
	return nil
}

// reaches reports whether target is from itself or one of its upstream nodes
func (g *Graph) reaches(from, target string) bool {
	seen := map[string]bool{}
	stack := []string{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == target {
			return true
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, in := range g.nodes[id].inputs {
			if in != "" {
				stack = append(stack, in)
			}
		}
	}
	return false
}

// Set replaces a source value
func (g *Graph) Set(id string, value any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	if n.compute != nil {
		return fmt.Errorf("%w: %s", ErrNotSource, n.name)
	}
	n.value = value
	n.version++
	return nil
}

// Invalidate forces a node to recompute on its next pull
func (g *Graph) Invalidate(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	n.version++
	return nil
}

// Name returns the display name of a node
func (g *Graph) Name(id string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[id]; ok {
		return n.name
	}
	return ""
}

// Pull returns the output of node id, computing it and any stale upstream
// nodes first.
func (g *Graph) Pull(ctx context.Context, id string) (any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	if _, err := g.eval(ctx, n); err != nil {
		return nil, err
	}
	return n.value, nil
}

// eval brings n up to date and returns its key
func (g *Graph) eval(ctx context.Context, n *node) (string, error) {
	if n.compute == nil {
		return util.HashUUID([]any{n.id, n.version}), nil
	}

	keys := make([]any, 0, len(n.inputs)+2)
	keys = append(keys, n.id, n.version)
	values := make([]any, len(n.inputs))
	for i, in := range n.inputs {
		if in == "" {
			keys = append(keys, "")
			continue
		}
		up := g.nodes[in]
		k, err := g.eval(ctx, up)
		if err != nil {
			return "", err
		}
		keys = append(keys, k)
		values[i] = up.value
	}
	key := util.HashUUID(keys)
	if key == n.key {
		return key, n.err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	slog.DebugContext(ctx, "computing node", slog.String("node", n.name))
	n.value, n.err = n.compute(ctx, values)
	n.key = key
	if n.err != nil {
		n.err = fmt.Errorf("%s: %w", n.name, n.err)
	}
	return key, n.err
}
