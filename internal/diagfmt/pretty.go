package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"wagner/internal/diag"
	"wagner/internal/signal"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>: <SEV> <CODE> node <n>: <Message>
//
// затем Notes с отступом. Колонка кода выравнивается по самому длинному ID.
// Цвет включается опцией.
func Pretty(w io.Writer, path string, bag *diag.Bag, opts PrettyOpts) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	shown := displayPath(path, opts.PathMode)
	sevWidth, codeWidth := 0, 0
	for _, d := range bag.Items() {
		sevWidth = max(sevWidth, runewidth.StringWidth(d.Severity.String()))
		codeWidth = max(codeWidth, runewidth.StringWidth(d.Code.ID()))
	}

	var b strings.Builder
	for _, d := range bag.Items() {
		b.Reset()
		if shown != "" {
			b.WriteString(shown)
			b.WriteString(": ")
		}
		b.WriteString(paint(opts.Color, d.Severity, pad(d.Severity.String(), sevWidth)))
		b.WriteByte(' ')
		b.WriteString(pad(d.Code.ID(), codeWidth))
		b.WriteByte(' ')
		b.WriteString(location(d.Node))
		b.WriteString(d.Message)
		line := b.String()
		if opts.Width > 0 {
			line = truncate(line, int(opts.Width))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			note := "    note: " + location(n.Node) + n.Msg
			if opts.Width > 0 {
				note = truncate(note, int(opts.Width))
			}
			if _, err := fmt.Fprintln(w, note); err != nil {
				return err
			}
		}
	}
	return nil
}

func location(node signal.NodeID) string {
	if !node.IsValid() {
		return ""
	}
	return "node " + node.String() + ": "
}

func paint(enabled bool, sev diag.Severity, s string) string {
	if !enabled {
		return s
	}
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	c.EnableColor()
	return c.Sprint(s)
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
