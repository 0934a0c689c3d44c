package abi

import (
	"time"

	executionInterfaces "github.com/wasmabi/serializer/internal/core/execution/interfaces"
	"github.com/wasmabi/serializer/pkg/abi"
	log "github.com/wasmabi/serializer/pkg/interfaces/infrastructure/log"
)

var (
	_ executionInterfaces.DeadlineChecker = (*Context)(nil)
	_ executionInterfaces.Clock           = (*Context)(nil)
)

// recursionDepthCeiling is the hard recursion cap the transcoder enforces in addition to
// the field-graph DAG check done at validation time; see binaryToValue/valueToBinary in
// serializer.go.
const recursionDepthCeiling = 32

// closeToExpiryFraction is the remaining-budget threshold below which CheckDeadline logs
// a Warn once per Context, before the deadline is actually exceeded.
const closeToExpiryFraction = 0.1

// Context is the per-call traversal state threaded through every recursive transcoding
// or validation step: a deadline clock and a recursion-depth counter. A Context is
// created fresh for each binary_to_value/value_to_binary/set_abi call and must not be
// shared across concurrent calls.
type Context struct {
	deadline       time.Time
	recursionDepth int
	maxTimeUs      int64
	logger         log.Logger
	warnedClose    bool
}

// NewContext starts a deadline maxTime from now and a zeroed recursion depth.
func NewContext(maxTime time.Duration) *Context {
	return &Context{
		deadline:  time.Now().Add(maxTime),
		maxTimeUs: maxTime.Microseconds(),
	}
}

// SetLogger attaches l to c and returns c, for chaining onto NewContext without changing
// its signature. A nil l is tolerated: every logging call site below guards on it.
func (c *Context) SetLogger(l log.Logger) *Context {
	c.logger = l
	return c
}

// CheckDeadline fails with KindDeadlineExceeded once the wall clock passes the
// context's deadline. Called at every entry point that recurses or loops:
// binary_to_value, value_to_binary, is_type, the struct-in-recursion check, and each
// validator loop. Before that, it logs a one-time Warn once the remaining budget drops
// below closeToExpiryFraction of maxTimeUs.
func (c *Context) CheckDeadline() error {
	now := time.Now()
	if now.After(c.deadline) {
		return abi.NewError(abi.KindDeadlineExceeded, "", "serialization deadline exceeded (budget %dus)", c.maxTimeUs)
	}
	if c.logger != nil && !c.warnedClose && c.maxTimeUs > 0 {
		remaining := c.deadline.Sub(now)
		if float64(remaining.Microseconds()) <= float64(c.maxTimeUs)*closeToExpiryFraction {
			c.warnedClose = true
			c.logger.Warnf("abi: deadline close to expiry, %s remaining of %dus budget", remaining, c.maxTimeUs)
		}
	}
	return nil
}

// Now satisfies execution/interfaces.Clock, letting a Context's own traversal deadline be
// compared against the wall clock through that seam as well as CheckDeadline directly.
func (c *Context) Now() time.Time { return time.Now() }

// Enter increments the recursion depth and returns the depth reached, for callers that
// want to enforce recursionDepthCeiling themselves.
func (c *Context) Enter() int {
	c.recursionDepth++
	return c.recursionDepth
}

// Exit decrements the recursion depth on the way back out of a recursive call.
func (c *Context) Exit() {
	c.recursionDepth--
}

// Depth returns the current recursion depth.
func (c *Context) Depth() int { return c.recursionDepth }
