package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"slices"

	"github.com/fatih/color"
	"golang.org/x/exp/slog"
)

// prettyHandler печатает запись одной цветной строкой, а атрибуты JSON-блоком.
type prettyHandler struct {
	slog.Handler
	out   *stdlog.Logger
	attrs []slog.Attr
}

func newPrettyHandler(w io.Writer, level slog.Level) *prettyHandler {
	return &prettyHandler{
		Handler: slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
		out:     stdlog.New(w, "", 0),
	}
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	switch {
	case r.Level <= slog.LevelDebug:
		level = color.MagentaString(level)
	case r.Level <= slog.LevelInfo:
		level = color.BlueString(level)
	case r.Level <= slog.LevelWarn:
		level = color.YellowString(level)
	default:
		level = color.RedString(level)
	}

	fields := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		fields[a.Key] = attrValue(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = attrValue(a)
		return true
	})

	var extra string
	if len(fields) > 0 {
		b, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal log attrs: %w", err)
		}
		extra = color.WhiteString(string(b))
	}

	h.out.Println(r.Time.Format("[15:04:05.000]"), level, color.CyanString(r.Message), extra)
	return nil
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyHandler{
		Handler: h.Handler.WithAttrs(attrs),
		out:     h.out,
		attrs:   append(slices.Clone(h.attrs), attrs...),
	}
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	return &prettyHandler{
		Handler: h.Handler.WithGroup(name),
		out:     h.out,
		attrs:   h.attrs,
	}
}

func attrValue(a slog.Attr) any {
	v := a.Value.Resolve().Any()
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}
