package report

import (
	"fmt"
	"go/token"
	"sync"

	"github.com/sirkon/carefulnow/internal/rules"
)

// Diagnostic represents a single finding at a call site.
type Diagnostic struct {
	Rule    rules.Identity
	Message string

	// Trigger is what matched: an annotation signature or a callee name.
	Trigger string

	// Index is the index of the matched annotation, see [rules.Hit].
	Index int

	// Pos and End delimit the call site, not the declaration it resolves to.
	Pos      token.Pos
	End      token.Pos
	Position token.Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s[%s] %s", d.Position, d.Rule.Severity, d.Rule.ID, d.Message)
}

// Sink accepts diagnostics. It may refuse one by returning an error.
type Sink interface {
	Report(d Diagnostic) error
}

// Collector is a sink keeping diagnostics in the order they came.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

var _ Sink = (*Collector)(nil)

// Report adds a new record to the collector.
func (c *Collector) Report(d Diagnostic) error {
	c.mu.Lock()
	c.diags = append(c.diags, d)
	c.mu.Unlock()

	return nil
}

// Diagnostics returns a snapshot of all collected records.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// Len returns the number of collected records.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diags)
}
