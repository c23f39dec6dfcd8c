// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// Levels re-exported from go-ethereum so callers need a single import.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
)

var root atomic.Pointer[slog.Logger]

func init() {
	root.Store(slog.New(ethlog.NewTerminalHandlerWithLevel(os.Stderr, LevelInfo, false)))
}

// Logger writes leveled key/value records to the root handler.
type Logger interface {
	With(ctx ...any) Logger
	Enabled(lvl slog.Level) bool
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
}

// SetDefault replaces the root handler. Loggers created earlier by WithContext
// pick up the new handler on their next record.
func SetDefault(h slog.Handler) {
	root.Store(slog.New(h))
}

// Root returns the root logger.
func Root() Logger {
	return &logger{}
}

// WithContext returns a logger that prefixes every record with ctx.
//
//	var logger = log.WithContext("pkg", "contract")
func WithContext(ctx ...any) Logger {
	return &logger{ctx: ctx}
}

// NewHandler builds a handler writing to w at the given legacy verbosity
// (0=crit ... 5=trace). Colour is enabled when w is a terminal.
func NewHandler(w io.Writer, verbosity int, json bool) slog.Handler {
	var level slog.LevelVar
	level.Set(ethlog.FromLegacyLevel(verbosity))
	if json {
		return ethlog.JSONHandlerWithLevel(w, level.Level())
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return ethlog.NewTerminalHandlerWithLevel(w, level.Level(), useColor)
}

type logger struct {
	ctx []any
}

func (l *logger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &logger{ctx: append(merged, ctx...)}
}

func (l *logger) Enabled(lvl slog.Level) bool {
	return root.Load().Enabled(context.Background(), lvl)
}

func (l *logger) write(lvl slog.Level, msg string, ctx []any) {
	r := root.Load()
	if !r.Enabled(context.Background(), lvl) {
		return
	}
	attrs := make([]any, 0, len(l.ctx)+len(ctx))
	attrs = append(attrs, l.ctx...)
	r.Log(context.Background(), lvl, msg, append(attrs, ctx...)...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...any) { l.write(LevelDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(LevelInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(LevelWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...any) { l.write(LevelError, msg, ctx) }
