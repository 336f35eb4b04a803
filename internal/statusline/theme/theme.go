// Package theme resolves the colours used by segments. Colours are bound to a
// closed set of semantic slots; each slot resolves user override first, then
// the preset scheme, then the built-in default.
package theme

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrInvalidColor is returned for values that are neither a palette name nor
// a #rrggbb literal.
var ErrInvalidColor = errors.New("invalid color")

// ErrUnknownSlot is returned for override keys outside the slot set.
var ErrUnknownSlot = errors.New("unknown color name")

// Palette is a named host colour.
type Palette int

const (
	PaletteText Palette = iota
	PaletteAccent
	PaletteMuted
	PaletteDim
	PaletteSuccess
	PaletteWarning
	PaletteError
	PaletteInfo
	PaletteBorder
	PaletteMagenta
	PaletteCyan

	numPalette
)

var paletteNames = [numPalette]string{
	PaletteText:    "text",
	PaletteAccent:  "accent",
	PaletteMuted:   "muted",
	PaletteDim:     "dim",
	PaletteSuccess: "success",
	PaletteWarning: "warning",
	PaletteError:   "error",
	PaletteInfo:    "info",
	PaletteBorder:  "border",
	PaletteMagenta: "magenta",
	PaletteCyan:    "cyan",
}

// ANSI 256 codes, close to the terminal defaults most themes ship.
var paletteCodes = [numPalette]string{
	PaletteText:    "252",
	PaletteAccent:  "39",
	PaletteMuted:   "245",
	PaletteDim:     "240",
	PaletteSuccess: "114",
	PaletteWarning: "221",
	PaletteError:   "203",
	PaletteInfo:    "75",
	PaletteBorder:  "238",
	PaletteMagenta: "176",
	PaletteCyan:    "80",
}

func (p Palette) String() string {
	if p < 0 || p >= numPalette {
		return "unknown"
	}
	return paletteNames[p]
}

// Slot is a semantic colour name.
type Slot int

const (
	SlotModel Slot = iota
	SlotThinking
	SlotPath
	SlotGitBranch
	SlotGitDirty
	SlotGitClean
	SlotTokens
	SlotCache
	SlotCost
	SlotContextNormal
	SlotContextWarning
	SlotContextCritical
	SlotQuota
	SlotSession
	SlotTime
	SlotHost
	SlotVibe
	SlotUpdate
	SlotSeparator

	numSlots
)

var slotNames = [numSlots]string{
	SlotModel:           "model",
	SlotThinking:        "thinking",
	SlotPath:            "path",
	SlotGitBranch:       "gitBranch",
	SlotGitDirty:        "gitDirty",
	SlotGitClean:        "gitClean",
	SlotTokens:          "tokens",
	SlotCache:           "cache",
	SlotCost:            "cost",
	SlotContextNormal:   "context",
	SlotContextWarning:  "contextWarn",
	SlotContextCritical: "contextError",
	SlotQuota:           "quota",
	SlotSession:         "session",
	SlotTime:            "time",
	SlotHost:            "hostname",
	SlotVibe:            "vibe",
	SlotUpdate:          "update",
	SlotSeparator:       "separator",
}

func (s Slot) String() string {
	if s < 0 || s >= numSlots {
		return "unknown"
	}
	return slotNames[s]
}

// ParseSlot maps a configuration key to a slot.
func ParseSlot(name string) (Slot, bool) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), true
		}
	}
	return 0, false
}

// SlotNames lists every configurable colour name, sorted.
func SlotNames() []string {
	names := make([]string, 0, numSlots)
	for _, n := range slotNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Color is either a palette reference or a hex literal.
type Color struct {
	palette Palette
	hex     string
	set     bool
}

// Named returns a palette colour.
func Named(p Palette) Color {
	return Color{palette: p, set: true}
}

// Hex returns a literal colour. The value is not validated; use ParseColor
// for user input.
func Hex(h string) Color {
	return Color{hex: strings.ToLower(h), set: true}
}

// IsZero reports whether the colour is unset.
func (c Color) IsZero() bool { return !c.set }

// String returns the configuration form of the colour.
func (c Color) String() string {
	if c.hex != "" {
		return c.hex
	}
	return c.palette.String()
}

func (c Color) lipgloss() lipgloss.Color {
	if c.hex != "" {
		return lipgloss.Color(c.hex)
	}
	return lipgloss.Color(paletteCodes[c.palette])
}

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseColor accepts a palette name or a #rrggbb literal.
func ParseColor(v string) (Color, error) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "#") {
		if !hexPattern.MatchString(v) {
			return Color{}, fmt.Errorf("%q: %w", v, ErrInvalidColor)
		}
		return Hex(v), nil
	}
	for i, n := range paletteNames {
		if strings.EqualFold(n, v) {
			return Named(Palette(i)), nil
		}
	}
	return Color{}, fmt.Errorf("%q: %w", v, ErrInvalidColor)
}

// Scheme binds slots to colours. Slots it leaves unset fall through.
type Scheme map[Slot]Color

// ParseOverrides converts configuration colours into a scheme. Invalid entries
// are skipped and reported; valid entries are kept.
func ParseOverrides(raw map[string]string) (Scheme, []error) {
	if len(raw) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Scheme, len(raw))
	var errs []error
	for _, k := range keys {
		slot, ok := ParseSlot(k)
		if !ok {
			errs = append(errs, fmt.Errorf("%q: %w", k, ErrUnknownSlot))
			continue
		}
		c, err := ParseColor(raw[k])
		if err != nil {
			errs = append(errs, fmt.Errorf("color %s: %w", k, err))
			continue
		}
		out[slot] = c
	}
	return out, errs
}

var defaults = [numSlots]Color{
	SlotModel:           Named(PaletteAccent),
	SlotThinking:        Named(PaletteMagenta),
	SlotPath:            Named(PaletteCyan),
	SlotGitBranch:       Named(PaletteSuccess),
	SlotGitDirty:        Named(PaletteWarning),
	SlotGitClean:        Named(PaletteSuccess),
	SlotTokens:          Named(PaletteText),
	SlotCache:           Named(PaletteMuted),
	SlotCost:            Named(PaletteSuccess),
	SlotContextNormal:   Named(PaletteSuccess),
	SlotContextWarning:  Named(PaletteWarning),
	SlotContextCritical: Named(PaletteError),
	SlotQuota:           Named(PaletteInfo),
	SlotSession:         Named(PaletteDim),
	SlotTime:            Named(PaletteMuted),
	SlotHost:            Named(PaletteMuted),
	SlotVibe:            Named(PaletteMagenta),
	SlotUpdate:          Named(PaletteWarning),
	SlotSeparator:       Named(PaletteBorder),
}

// Theme is a fully resolved slot table.
type Theme struct {
	Icons Icons

	colors [numSlots]Color
	styles [numSlots]lipgloss.Style
}

// Resolve builds a theme: user override, then preset scheme, then default.
func Resolve(user, preset Scheme) *Theme {
	t := &Theme{Icons: UnicodeIcons}
	for s := Slot(0); s < numSlots; s++ {
		c := defaults[s]
		if pc, ok := preset[s]; ok && !pc.IsZero() {
			c = pc
		}
		if uc, ok := user[s]; ok && !uc.IsZero() {
			c = uc
		}
		t.colors[s] = c
		t.styles[s] = lipgloss.NewStyle().Foreground(c.lipgloss())
	}
	return t
}

// Default is the theme with no overrides.
func Default() *Theme {
	return Resolve(nil, nil)
}

// Color returns the resolved colour of a slot.
func (t *Theme) Color(s Slot) Color {
	if s < 0 || s >= numSlots {
		return Color{}
	}
	return t.colors[s]
}

// Paint renders text in the slot colour.
func (t *Theme) Paint(s Slot, text string) string {
	if s < 0 || s >= numSlots || text == "" {
		return text
	}
	return t.styles[s].Render(text)
}
