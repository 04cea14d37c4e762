// Package mmlog centralizes construction of the hclog.Logger instances
// threaded through the toolbox's Options structs. Every package that
// exposes an Options type embeds a Logger field defaulting to
// hclog.NewNullLogger, the way hashicorp libraries do.
package mmlog

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// New returns a logger named for the given component, writing to stderr at
// the given level. Intended for use from cmd/mmtool; library code should
// accept a logger from its caller instead of constructing one.
func New(name string, level hclog.Level) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name: name,
		Level: level,
		Output: os.Stderr,
	})
}

// Null returns a logger that discards everything, used as the zero-value
// default for Options structs that embed a Logger field.
func Null() hclog.Logger {
	return hclog.NewNullLogger()
}

// OrNull returns l if non-nil, else a null logger. Options constructors use
// this so a zero-value Options is always safe to use.
func OrNull(l hclog.Logger) hclog.Logger {
	if l == nil {
		return Null()
	}
	return l
}
