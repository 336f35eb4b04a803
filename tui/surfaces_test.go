package tui

import (
	"testing"

	"github.com/young1lin/powerline-footer/internal/host"
)

func TestSurfacesInstallAndClear(t *testing.T) {
	s := NewSurfaces()

	if _, ok := s.Editor(80); ok {
		t.Error("fresh surfaces should use the default editor")
	}

	s.SetEditor(func(w int) []string { return []string{"row"} })
	s.SetWidget("b", func(int) []string { return []string{"second"} })
	s.SetWidget("a", func(int) []string { return []string{"first"} })
	s.SetFooter(func(int) []string { return []string{"foot"} })

	if lines, ok := s.Editor(80); !ok || len(lines) != 1 || lines[0] != "row" {
		t.Errorf("Editor() = %v, %v", lines, ok)
	}
	if got := s.Widgets(80); len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("Widgets() = %v, want name order", got)
	}

	s.SetEditor(nil)
	s.SetWidget("a", nil)
	s.SetWidget("b", nil)
	s.SetFooter(nil)
	if _, ok := s.Editor(80); ok {
		t.Error("editor not cleared")
	}
	if got := s.Widgets(80); len(got) != 0 {
		t.Errorf("widgets not cleared: %v", got)
	}
	if got := s.Footer(80); got != nil {
		t.Errorf("footer not cleared: %v", got)
	}
}

func TestRequestRenderCoalesces(t *testing.T) {
	s := NewSurfaces()
	for i := 0; i < 5; i++ {
		s.RequestRender()
	}
	if n := len(s.renders); n != 1 {
		t.Errorf("pending renders = %d, want 1", n)
	}
	<-s.renders
	if n := len(s.renders); n != 0 {
		t.Errorf("pending renders after drain = %d", n)
	}
}

func TestNotifyKeepsLatestAndRequestsRender(t *testing.T) {
	s := NewSurfaces()
	if _, ok := s.LastNotice(); ok {
		t.Error("unexpected notice")
	}
	s.Notify(host.Notice{Severity: host.SeverityInfo, Message: "one"})
	s.Notify(host.Notice{Severity: host.SeverityWarning, Message: "two"})

	n, ok := s.LastNotice()
	if !ok || n.Message != "two" || n.Severity != host.SeverityWarning {
		t.Errorf("LastNotice() = %+v, %v", n, ok)
	}
	if len(s.renders) != 1 {
		t.Error("Notify did not request a render")
	}
}
