// Package session owns the "current result" slot for interactive callers.
// The engine itself is stateless; when requests run asynchronously, the
// newest submission supersedes anything still in flight and only the most
// recently submitted result is ever observable (last-write-wins).
package session

import (
	"sync"

	"github.com/sarscope/sarscope/pkg/core"
)

// Context holds the result of the most recent calculation.
type Context struct {
	mu      sync.RWMutex
	result  *core.Result
	nextSeq uint64
	curSeq  uint64
}

// NewContext creates an empty session context.
func NewContext() *Context {
	return &Context{}
}

// Begin reserves a sequence number for a new submission. Results installed
// with an older sequence than the latest installed one are discarded.
func (c *Context) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq++
	return c.nextSeq
}

// Complete installs a result if no newer submission has completed. It
// reports whether the result was installed.
func (c *Context) Complete(seq uint64, res *core.Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.curSeq {
		return false
	}
	c.curSeq = seq
	c.result = res
	return true
}

// Current returns the latest installed result, or nil if none has completed.
func (c *Context) Current() *core.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result
}

// Clear drops the current result.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
}
