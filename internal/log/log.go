// Package log provides logging utilities.
package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/gouri/internal/constraints"
	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/util"
)

// Output formats accepted by [New].
const (
	FormatConsole = "console"
	FormatDev     = "dev"
	FormatNone    = "none"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByKey("userinfo", func(v slog.Value) slog.Value {
		return slog.StringValue(util.Redact(v.String()))
	}),
)

// NewConsole returns a human-readable logger writing to w.
func NewConsole(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  true,
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// NewDev returns a developer logger writing to w.
func NewDev(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(newHandler(
		devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// New returns a logger of the given format, see FormatXXX constants.
func New(w io.Writer, format string, level slog.Leveler) (*slog.Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatConsole:
		return NewConsole(w, level), nil
	case FormatDev:
		return NewDev(w, level), nil
	case FormatNone:
		return Noop, nil
	default:
		return nil, errorutil.NewInvalidArgumentError("unknown log format %q", format) //errtrace:skip
	}
}

// ParseLevel parses a level name like "debug", "info", "warn" or "error".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, err //errtrace:skip
	}
	return lvl, nil
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

type stringValue[T constraints.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T constraints.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }
