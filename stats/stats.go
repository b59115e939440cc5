// Package stats implements the hierarchical timing tree used to profile
// each occlusion-testing run: a tree of named nodes, each holding an
// accumulated nanosecond counter and a set of lazily created named
// children, safe for concurrent use from multiple goroutines.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Node is one node of the stats tree: an accumulated duration plus
// lazily created named children. The zero value is a usable empty root.
type Node struct {
	mu       sync.Mutex
	name     string
	timingNs int64
	children map[string]*Node
}

// NewRoot returns a fresh root node named "root".
func NewRoot() *Node {
	return &Node{name: "root"}
}

// Child returns the named child, creating it if it does not yet exist.
func (n *Node) Child(name string) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	c, ok := n.children[name]
	if !ok {
		c = &Node{name: name}
		n.children[name] = c
	}
	return c
}

// Add records elapsed nanoseconds against this node directly.
func (n *Node) Add(d time.Duration) {
	n.mu.Lock()
	n.timingNs += int64(d)
	n.mu.Unlock()
}

// Timer is a scoped timing handle started by Node.Start. Stop must be
// called exactly once, typically via defer, to commit the elapsed time
// to the node it was started from. This is Go's analogue of the
// Rust source's Drop-based scope guard.
type Timer struct {
	node  *Node
	start time.Time
}

// Start begins a scoped timing measurement against this node.
func (n *Node) Start() *Timer {
	return &Timer{node: n, start: time.Now()}
}

// Stop commits the elapsed time since Start to the node.
func (t *Timer) Stop() {
	t.node.Add(time.Since(t.start))
}

// String renders the tree as an indented report, with nanosecond
// counters formatted as locale-grouped milliseconds.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	n.mu.Lock()
	name := n.name
	timingNs := n.timingNs
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	children := make([]*Node, len(names))
	for i, cn := range names {
		children[i] = n.children[cn]
	}
	n.mu.Unlock()

	p := message.NewPrinter(language.English)
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s: %s ms\n", indent, name, p.Sprintf("%d", timingNs/int64(time.Millisecond)))
	for _, c := range children {
		c.write(b, depth+1)
	}
}
