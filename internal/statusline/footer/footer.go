// Package footer is the powerline component the host loads. It owns the
// enable/preset state, the render surfaces and the layout cache, and turns
// host events into cache invalidations.
package footer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/young1lin/powerline-footer/internal/host"
	"github.com/young1lin/powerline-footer/internal/logging"
	"github.com/young1lin/powerline-footer/internal/statusline/config"
	"github.com/young1lin/powerline-footer/internal/statusline/layout"
	"github.com/young1lin/powerline-footer/internal/statusline/preset"
	"github.com/young1lin/powerline-footer/internal/statusline/renderctx"
	"github.com/young1lin/powerline-footer/internal/statusline/segment"
	"github.com/young1lin/powerline-footer/internal/statusline/theme"
	"github.com/young1lin/powerline-footer/internal/vibes"
)

var footerLog = logging.ForComponent(logging.CompFooter)

// Surface names.
const (
	CommandName    = "powerline"
	OverflowWidget = "powerline-overflow"
)

// Options wires a Footer.
type Options struct {
	UI      host.UI
	Config  *config.Config
	Builder *renderctx.Builder
	// Session returns the current host session snapshot.
	Session func() host.Session
	Vibes   *vibes.Ticker
	// Now drives the layout cache clock.
	Now func() time.Time
}

// Footer renders the status line.
//
// States: disabled, or enabled with a preset. Disabling clears every surface
// before returning.
type Footer struct {
	ui      host.UI
	cfg     *config.Config
	builder *renderctx.Builder
	session func() host.Session
	vibes   *vibes.Ticker
	engine  layout.Engine
	cache   *layout.Cache

	mu      sync.Mutex
	enabled bool
	def     preset.Definition
	th      *theme.Theme
	noticed map[string]bool
}

// New creates a disabled footer.
func New(opts Options) *Footer {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	b := opts.Builder
	if b == nil {
		b = renderctx.NewBuilder(nil, nil)
	}
	session := opts.Session
	if session == nil {
		session = func() host.Session { return host.Session{} }
	}

	f := &Footer{
		ui:      opts.UI,
		cfg:     cfg,
		builder: b,
		session: session,
		vibes:   opts.Vibes,
		cache:   layout.NewCache(layout.CacheWindow, opts.Now),
		noticed: make(map[string]bool),
	}
	if f.ui != nil {
		b.Sources().SetOnCommit(f.ui.RequestRender)
	}
	return f
}

// Register subscribes the footer to host events.
func (f *Footer) Register(d *host.Dispatcher) {
	d.On(host.SessionStart, f.onSessionStart)
	d.On(host.ToolCall, f.onToolCall)
	d.On(host.UserBash, f.onUserBash)
	d.On(host.AgentStart, f.onAgentStart)
	d.On(host.AgentEnd, f.onAgentEnd)
}

// Enabled reports the current state.
func (f *Footer) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

// Preset returns the active preset name, or "" when disabled.
func (f *Footer) Preset() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.enabled {
		return ""
	}
	return f.def.Name
}

// Enable activates the configured preset. Problems in the configuration are
// reported once and the default preset is used in their place.
func (f *Footer) Enable() {
	for _, err := range f.cfg.Validate() {
		f.noticeOnce(host.SeverityWarning, fmt.Sprintf("powerline: %v", err))
	}
	f.activate(f.cfg.Preset)
}

// Disable clears every owned surface and drops cached layouts.
func (f *Footer) Disable() {
	f.mu.Lock()
	wasEnabled := f.enabled
	f.enabled = false
	f.mu.Unlock()

	f.cache.Clear()
	if f.vibes != nil {
		f.vibes.Stop()
	}
	if f.ui != nil {
		f.ui.SetEditor(nil)
		f.ui.SetFooter(nil)
		f.ui.SetWidget(OverflowWidget, nil)
	}
	if wasEnabled {
		footerLog.Info("disabled")
	}
}

// Command handles "/powerline [preset]". Without an argument it toggles;
// with a known preset it switches; an unknown name keeps the current state
// and raises a warning.
func (f *Footer) Command(args string) {
	name := strings.TrimSpace(args)
	if name == "" {
		if f.Enabled() {
			f.Disable()
			f.notify(host.SeverityInfo, "powerline disabled")
		} else {
			f.Enable()
			f.notify(host.SeverityInfo, "powerline enabled: "+f.Preset())
		}
		return
	}

	if _, ok := preset.Lookup(name); !ok {
		f.notify(host.SeverityWarning, fmt.Sprintf("powerline: unknown preset %q (available: %s)",
			name, strings.Join(preset.Names(), ", ")))
		return
	}
	f.activate(name)
	f.notify(host.SeverityInfo, "powerline preset: "+name)
}

func (f *Footer) activate(name string) {
	def := f.cfg.Definition(name)
	th := f.cfg.Theme(def)

	f.mu.Lock()
	f.enabled = true
	f.def = def
	f.th = th
	f.mu.Unlock()

	f.builder.SetTheme(th)
	f.cache.Clear()

	if f.ui != nil {
		f.ui.SetEditor(f.renderEditor)
		f.ui.SetFooter(f.renderFooter)
		f.ui.SetWidget(OverflowWidget, f.renderOverflow)
		f.ui.RequestRender()
	}
	footerLog.Info("enabled", "preset", def.Name)
}

// Frame returns the layout for width. Disabled footers and terminals
// narrower than layout.MinWidth give an empty frame.
func (f *Footer) Frame(width int) layout.Frame {
	f.mu.Lock()
	enabled, def, th := f.enabled, f.def, f.th
	f.mu.Unlock()

	if !enabled || width < layout.MinWidth {
		return layout.Frame{}
	}
	return f.cache.GetOrCompute(width, func() layout.Frame {
		return f.compute(def, th, width)
	})
}

func (f *Footer) compute(def preset.Definition, th *theme.Theme, width int) (frame layout.Frame) {
	defer func() {
		if p := recover(); p != nil {
			footerLog.Error("render panicked", "panic", p)
			frame = layout.Frame{}
		}
	}()

	ctx := f.builder.Build(f.session())
	segs := segment.RenderAll(def.IDs(), ctx)
	sep := th.Paint(theme.SlotSeparator, def.Separator.Glyph())
	primary, secondary := f.engine.Lines(segs, sep, width)
	return layout.Frame{Primary: primary, Secondary: secondary}
}

func (f *Footer) renderEditor(width int) []string {
	return lines(f.Frame(width).Primary)
}

func (f *Footer) renderOverflow(width int) []string {
	return lines(f.Frame(width).Secondary)
}

// renderFooter shows the loading message while the agent runs.
func (f *Footer) renderFooter(width int) []string {
	if !f.Enabled() || f.vibes == nil || width < layout.MinWidth {
		return nil
	}
	msg := f.vibes.Current()
	if msg == "" {
		return nil
	}
	f.mu.Lock()
	th := f.th
	f.mu.Unlock()
	return []string{" " + th.Paint(theme.SlotVibe, msg)}
}

func lines(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func (f *Footer) notify(sev host.Severity, msg string) {
	if f.ui != nil {
		f.ui.Notify(host.Notice{Severity: sev, Message: msg})
	}
}

func (f *Footer) noticeOnce(sev host.Severity, msg string) {
	f.mu.Lock()
	seen := f.noticed[msg]
	f.noticed[msg] = true
	f.mu.Unlock()
	if !seen {
		f.notify(sev, msg)
	}
}
