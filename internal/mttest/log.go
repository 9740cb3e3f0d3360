package mttest

import (
	"log/slog"
	"testing"

	"github.com/neilotoole/slogt"
)

// NewLogger returns a logger whose output is written through t.Log.
func NewLogger(t testing.TB) *slog.Logger {
	return slogt.New(t)
}
