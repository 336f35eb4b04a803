package theme

// Icons are the glyphs segments prefix their text with.
type Icons struct {
	Model    string
	Thinking string
	Folder   string
	Branch   string
	Input    string
	Output   string
	Total    string
	Read     string
	Write    string
	Context  string
	Quota    string
	Session  string
	Clock    string
	Timer    string
	Host     string
	Update   string
}

// Icon sets selectable by presets.
var (
	NerdIcons = Icons{
		Model:    " ",
		Thinking: " ",
		Folder:   " ",
		Branch:   " ",
		Input:    "",
		Output:   "",
		Total:    " ",
		Read:     " ",
		Write:    " ",
		Context:  " ",
		Quota:    " ",
		Session:  "",
		Clock:    " ",
		Timer:    " ",
		Host:     " ",
		Update:   " ",
	}

	UnicodeIcons = Icons{
		Branch:  "⎇ ",
		Input:   "↑",
		Output:  "↓",
		Total:   "Σ",
		Read:    "R",
		Write:   "W",
		Context: "◔ ",
		Quota:   "⚡",
		Session: "#",
		Timer:   "⏱ ",
		Update:  "⬆ ",
	}

	ASCIIIcons = Icons{
		Thinking: "think:",
		Input:    "in:",
		Output:   "out:",
		Total:    "tok:",
		Read:     "cr:",
		Write:    "cw:",
		Context:  "ctx:",
		Quota:    "q:",
		Session:  "#",
		Timer:    "t:",
		Update:   "update:",
	}
)

// WithIcons returns a copy of t using icons.
func (t *Theme) WithIcons(icons Icons) *Theme {
	cp := *t
	cp.Icons = icons
	return &cp
}
