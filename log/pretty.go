package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// styles colorizes pretty output. Styles are bound to a renderer for the
// handler's writer, so colors are dropped when it is not a terminal.
type styles struct {
	key      lipgloss.Style
	str      lipgloss.Style
	num      lipgloss.Style
	yes      lipgloss.Style
	no       lipgloss.Style
	duration lipgloss.Style
	time     lipgloss.Style
	null     lipgloss.Style
	error    lipgloss.Style
	warn     lipgloss.Style
	info     lipgloss.Style
	debug    lipgloss.Style
}

func newStyles(w io.Writer) *styles {
	r := lipgloss.NewRenderer(w)
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &styles{
		key:      color("8"),
		str:      color("6"),
		num:      color("3"),
		yes:      color("2"),
		no:       color("1"),
		duration: color("5"),
		time:     color("4"),
		null:     color("8"),
		error:    color("1").Bold(true),
		warn:     color("3").Bold(true),
		info:     color("2"),
		debug:    color("4"),
	}
}

// level returns the style for a level name produced by ReplaceAttr.
func (s *styles) level(name string) lipgloss.Style {
	switch {
	case strings.HasPrefix(name, "ERROR"):
		return s.error

	case strings.HasPrefix(name, "WARN"):
		return s.warn

	case strings.HasPrefix(name, "INFO"):
		return s.info

	default:
		return s.debug
	}
}

// value renders a resolved scalar value.
func (s *styles) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return s.str.Render(v.String())

	case slog.KindInt64:
		return s.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return s.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return s.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return s.yes.Render("true")
		}

		return s.no.Render("false")

	case slog.KindDuration:
		return s.duration.Render(v.Duration().String())

	case slog.KindTime:
		return s.time.Render(v.Time().String())

	case slog.KindAny:
		if v.Any() == nil {
			return s.null.Render("null")
		}

		if err, ok := v.Any().(error); ok {
			return s.no.Render(err.Error())
		}

		return s.str.Render(fmt.Sprint(v.Any()))

	default:
		return s.str.Render(v.String())
	}
}

// flatten resolves a and appends it to dst with its key qualified by
// prefix. Groups are expanded into dotted keys.
func flatten(dst []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return dst
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			dst = flatten(dst, key, g)
		}

		return dst
	}

	return append(dst, slog.Attr{Key: key, Value: a.Value})
}

// record returns the built-in fields of r followed by its attributes, all
// flattened and passed through the handler's ReplaceAttr.
func record(
	opts *slog.HandlerOptions,
	preset []slog.Attr,
	groups []string,
	r slog.Record,
) []slog.Attr {
	replace := func(a slog.Attr) slog.Attr {
		if opts.ReplaceAttr == nil {
			return a
		}

		return opts.ReplaceAttr(nil, a)
	}

	attrs := make([]slog.Attr, 0, 4+len(preset)+r.NumAttrs())

	if !r.Time.IsZero() {
		if a := replace(slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			attrs = append(attrs, a)
		}
	}

	attrs = append(attrs, replace(slog.Any(slog.LevelKey, r.Level)))

	if opts.AddSource {
		if src := r.Source(); src != nil {
			attrs = append(attrs,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	attrs = append(attrs, slog.String(slog.MessageKey, r.Message))
	attrs = append(attrs, preset...)

	prefix := strings.Join(groups, ".")

	r.Attrs(func(a slog.Attr) bool {
		attrs = flatten(attrs, prefix, a)

		return true
	})

	return attrs
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct {
	opts   slog.HandlerOptions
	style  *styles
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:  *opts,
		style: newStyles(w),
		mu:    &sync.Mutex{},
		w:     w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range record(&h.opts, h.attrs, h.groups, r) {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteByte('=')

		if a.Key == slog.LevelKey {
			buf.WriteString(h.style.level(a.Value.String()).Render(a.Value.String()))
		} else {
			buf.WriteString(h.style.value(a.Value))
		}
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clip(h.attrs)

	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		c.attrs = flatten(c.attrs, prefix, a)
	}

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// prettyJSONHandler implements a pretty-printed JSON handler for log messages.
type prettyJSONHandler struct {
	opts   slog.HandlerOptions
	style  *styles
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts:  *opts,
		style: newStyles(w),
		mu:    &sync.Mutex{},
		w:     w,
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	for i, a := range record(&h.opts, h.attrs, h.groups, r) {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteString(": ")

		if a.Key == slog.LevelKey {
			buf.WriteString(h.style.level(a.Value.String()).Render(a.Value.String()))
		} else {
			buf.WriteString(h.style.value(a.Value))
		}
	}

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clip(h.attrs)

	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		c.attrs = flatten(c.attrs, prefix, a)
	}

	return &c
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}
