// Package preset defines the named segment arrangements users pick from.
package preset

import (
	"sort"

	"github.com/young1lin/powerline-footer/internal/statusline/segment"
	"github.com/young1lin/powerline-footer/internal/statusline/theme"
)

// DefaultName is used on first activation and for unknown names.
const DefaultName = "default"

// SeparatorStyle selects the glyph placed between segments.
type SeparatorStyle int

const (
	SeparatorPowerline SeparatorStyle = iota
	SeparatorPipe
	SeparatorDot
	SeparatorSpace
	SeparatorASCII
)

// Glyph returns the separator text, including its surrounding spaces.
func (s SeparatorStyle) Glyph() string {
	switch s {
	case SeparatorPowerline:
		return "  "
	case SeparatorPipe:
		return " │ "
	case SeparatorDot:
		return " · "
	case SeparatorSpace:
		return "  "
	default:
		return " | "
	}
}

// Definition is an immutable preset.
type Definition struct {
	Name      string
	Primary   []segment.ID
	Secondary []segment.ID
	Separator SeparatorStyle
	Icons     theme.Icons
	Colors    theme.Scheme
}

// IDs returns primary ids followed by secondary ids.
func (d Definition) IDs() []segment.ID {
	out := make([]segment.ID, 0, len(d.Primary)+len(d.Secondary))
	out = append(out, d.Primary...)
	return append(out, d.Secondary...)
}

var definitions = map[string]Definition{
	"default": {
		Name:      "default",
		Primary:   []segment.ID{segment.Model, segment.Thinking, segment.Path, segment.Git, segment.ContextPct, segment.Cost},
		Secondary: []segment.ID{segment.TokenIn, segment.TokenOut, segment.CacheRead, segment.Quota, segment.Update},
		Separator: SeparatorPipe,
		Icons:     theme.UnicodeIcons,
	},
	"minimal": {
		Name:      "minimal",
		Primary:   []segment.ID{segment.Path, segment.Git, segment.ContextPct},
		Separator: SeparatorSpace,
		Icons:     theme.UnicodeIcons,
		Colors: theme.Scheme{
			theme.SlotPath:      theme.Named(theme.PaletteMuted),
			theme.SlotGitBranch: theme.Named(theme.PaletteMuted),
		},
	},
	"compact": {
		Name:      "compact",
		Primary:   []segment.ID{segment.Model, segment.Git, segment.TokenTotal, segment.ContextPct, segment.Cost},
		Secondary: []segment.ID{segment.Quota, segment.Vibe},
		Separator: SeparatorDot,
		Icons:     theme.UnicodeIcons,
	},
	"full": {
		Name: "full",
		Primary: []segment.ID{
			segment.Model, segment.Thinking, segment.Path, segment.Git,
			segment.ContextPct, segment.ContextTotal, segment.Cost,
		},
		Secondary: []segment.ID{
			segment.TokenIn, segment.TokenOut, segment.CacheRead, segment.CacheWrite,
			segment.Quota, segment.Session, segment.TimeSpent, segment.Clock,
			segment.Hostname, segment.Vibe, segment.Update,
		},
		Separator: SeparatorPipe,
		Icons:     theme.UnicodeIcons,
	},
	"nerd": {
		Name: "nerd",
		Primary: []segment.ID{
			segment.Model, segment.Thinking, segment.Path, segment.Git,
			segment.ContextPct, segment.Cost,
		},
		Secondary: []segment.ID{segment.TokenIn, segment.TokenOut, segment.Quota, segment.TimeSpent, segment.Update},
		Separator: SeparatorPowerline,
		Icons:     theme.NerdIcons,
		Colors: theme.Scheme{
			theme.SlotModel:     theme.Named(theme.PaletteMagenta),
			theme.SlotSeparator: theme.Named(theme.PaletteDim),
		},
	},
	"ascii": {
		Name:      "ascii",
		Primary:   []segment.ID{segment.Model, segment.Path, segment.Git, segment.ContextPct, segment.Cost},
		Secondary: []segment.ID{segment.TokenIn, segment.TokenOut, segment.Quota},
		Separator: SeparatorASCII,
		Icons:     theme.ASCIIIcons,
	},
}

// Lookup returns the named preset.
func Lookup(name string) (Definition, bool) {
	d, ok := definitions[name]
	return d, ok
}

// Resolve returns the named preset, or the default for unknown names.
func Resolve(name string) Definition {
	if d, ok := definitions[name]; ok {
		return d
	}
	return definitions[DefaultName]
}

// Names lists the preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for n := range definitions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Customize applies show/hide lists: hidden ids are removed, shown ids that
// are not already present are appended to the secondary row. Unknown ids are
// dropped.
func Customize(d Definition, show, hide []string) Definition {
	if len(show) == 0 && len(hide) == 0 {
		return d
	}
	hidden := make(map[segment.ID]bool, len(hide))
	for _, h := range hide {
		hidden[segment.ID(h)] = true
	}
	filter := func(ids []segment.ID) []segment.ID {
		out := make([]segment.ID, 0, len(ids))
		for _, id := range ids {
			if !hidden[id] {
				out = append(out, id)
			}
		}
		return out
	}

	out := d
	out.Primary = filter(d.Primary)
	out.Secondary = filter(d.Secondary)

	present := make(map[segment.ID]bool)
	for _, id := range out.IDs() {
		present[id] = true
	}
	for _, s := range show {
		id := segment.ID(s)
		if !segment.Known(id) || hidden[id] || present[id] {
			continue
		}
		out.Secondary = append(out.Secondary, id)
		present[id] = true
	}
	return out
}
