package tui

import (
	"sort"
	"sync"

	"github.com/young1lin/powerline-footer/internal/host"
)

// Surfaces is the preview's implementation of host.UI. Render functions are
// installed from any goroutine; the bubbletea loop reads them when drawing.
type Surfaces struct {
	mu      sync.Mutex
	editor  host.RenderFunc
	footer  host.RenderFunc
	widgets map[string]host.RenderFunc
	notices []host.Notice

	// renders is a one-slot wake-up channel; repeated requests coalesce.
	renders chan struct{}
}

// NewSurfaces returns empty surfaces.
func NewSurfaces() *Surfaces {
	return &Surfaces{
		widgets: make(map[string]host.RenderFunc),
		renders: make(chan struct{}, 1),
	}
}

func (s *Surfaces) SetEditor(fn host.RenderFunc) {
	s.mu.Lock()
	s.editor = fn
	s.mu.Unlock()
}

func (s *Surfaces) SetFooter(fn host.RenderFunc) {
	s.mu.Lock()
	s.footer = fn
	s.mu.Unlock()
}

func (s *Surfaces) SetWidget(name string, fn host.RenderFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		delete(s.widgets, name)
		return
	}
	s.widgets[name] = fn
}

func (s *Surfaces) Notify(n host.Notice) {
	s.mu.Lock()
	s.notices = append(s.notices, n)
	s.mu.Unlock()
	s.RequestRender()
}

func (s *Surfaces) RequestRender() {
	select {
	case s.renders <- struct{}{}:
	default:
	}
}

// Editor renders the editor surface; ok is false when the host default
// editor is in place.
func (s *Surfaces) Editor(width int) (lines []string, ok bool) {
	s.mu.Lock()
	fn := s.editor
	s.mu.Unlock()
	if fn == nil {
		return nil, false
	}
	return fn(width), true
}

// Footer renders the footer surface.
func (s *Surfaces) Footer(width int) []string {
	s.mu.Lock()
	fn := s.footer
	s.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(width)
}

// Widgets renders every widget in name order.
func (s *Surfaces) Widgets(width int) []string {
	s.mu.Lock()
	names := make([]string, 0, len(s.widgets))
	for name := range s.widgets {
		names = append(names, name)
	}
	fns := make([]host.RenderFunc, 0, len(names))
	sort.Strings(names)
	for _, name := range names {
		fns = append(fns, s.widgets[name])
	}
	s.mu.Unlock()

	var lines []string
	for _, fn := range fns {
		lines = append(lines, fn(width)...)
	}
	return lines
}

// LastNotice returns the newest notice.
func (s *Surfaces) LastNotice() (host.Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notices) == 0 {
		return host.Notice{}, false
	}
	return s.notices[len(s.notices)-1], true
}
