package lsx

import "sync/atomic"

// Diagnostics receives the attributes the builder excludes or carries as Raw.
// Implementations must be safe for the caller's concurrency.
type Diagnostics interface {
	// Dropped reports an attribute excluded from node. err carries an errors.ErrorCode.
	Dropped(node, attribute string, err error)
	// Unresolved reports a numeric type code with no table entry.
	Unresolved(node, attribute, typ string)
}

// DiagnosticCounter counts reports.
type DiagnosticCounter struct {
	dropped    atomic.Int64
	unresolved atomic.Int64
}

// Dropped implements Diagnostics.
func (c *DiagnosticCounter) Dropped(string, string, error) { c.dropped.Add(1) }

// Unresolved implements Diagnostics.
func (c *DiagnosticCounter) Unresolved(string, string, string) { c.unresolved.Add(1) }

// DroppedCount returns the number of dropped attributes seen.
func (c *DiagnosticCounter) DroppedCount() int64 { return c.dropped.Load() }

// UnresolvedCount returns the number of unresolved type codes seen.
func (c *DiagnosticCounter) UnresolvedCount() int64 { return c.unresolved.Load() }

// MultiDiagnostics fans reports out to every non-nil member.
type MultiDiagnostics []Diagnostics

// Dropped implements Diagnostics.
func (m MultiDiagnostics) Dropped(node, attribute string, err error) {
	for _, d := range m {
		if d != nil {
			d.Dropped(node, attribute, err)
		}
	}
}

// Unresolved implements Diagnostics.
func (m MultiDiagnostics) Unresolved(node, attribute, typ string) {
	for _, d := range m {
		if d != nil {
			d.Unresolved(node, attribute, typ)
		}
	}
}
