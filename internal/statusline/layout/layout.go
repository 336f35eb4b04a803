// Package layout packs rendered segments into a primary row and an overflow
// row within a terminal width.
//
// Packing is a single greedy pass in declaration order. Once one segment does
// not fit, it and every later segment go to the overflow row, even if a later
// one would fit: preset order is priority order.
package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// Overhead is the padding around a row: one leading and one trailing space.
	Overhead = 2
	// MinWidth is the narrowest terminal that gets a status line at all.
	MinWidth = 10
)

// MeasureFunc returns the display width of styled text.
type MeasureFunc func(s string) int

// Width measures display cells, ignoring ANSI sequences.
func Width(s string) int {
	return lipgloss.Width(s)
}

// Result is the outcome of one packing pass.
type Result struct {
	Primary   []string
	Secondary []string
}

// Engine packs segments. The zero value measures with Width.
type Engine struct {
	Measure MeasureFunc
}

func (e Engine) measure(s string) int {
	if e.Measure != nil {
		return e.Measure(s)
	}
	return Width(s)
}

// Pack splits visible segments into primary and secondary rows. sep is the
// styled separator placed between segments.
func (e Engine) Pack(segments []string, sep string, width int) Result {
	var res Result
	sepWidth := e.measure(sep)
	used := Overhead
	overflowed := false

	for _, seg := range segments {
		if seg == "" {
			continue
		}
		add := e.measure(seg)
		if len(res.Primary) > 0 {
			add += sepWidth
		}
		if !overflowed && used+add <= width {
			res.Primary = append(res.Primary, seg)
			used += add
			continue
		}
		overflowed = true
		res.Secondary = append(res.Secondary, seg)
	}
	return res
}

// Join builds a row: " " + seg1 + sep + seg2 ... + " ". No segments gives "".
func Join(segments []string, sep string) string {
	if len(segments) == 0 {
		return ""
	}
	return " " + strings.Join(segments, sep) + " "
}

// Lines packs and joins. It returns the primary line and the secondary line,
// which is "" when empty or wider than the terminal. Widths below MinWidth
// yield two empty lines.
func (e Engine) Lines(segments []string, sep string, width int) (primary, secondary string) {
	if width < MinWidth {
		return "", ""
	}
	res := e.Pack(segments, sep, width)
	primary = Join(res.Primary, sep)
	secondary = Join(res.Secondary, sep)
	if e.measure(secondary) > width {
		secondary = ""
	}
	return primary, secondary
}
