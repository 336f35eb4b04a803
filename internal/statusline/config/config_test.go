package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/young1lin/powerline-footer/internal/statusline/segment"
	"github.com/young1lin/powerline-footer/internal/statusline/theme"
)

func writeSettings(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

// isolateHome points the user home at an empty temp dir.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv(PresetEnv, "")
	return home
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Preset != "default" {
		t.Errorf("Preset = %q, want default", cfg.Preset)
	}
	if !cfg.QuotaEnabled() || !cfg.UpdateCheckEnabled() {
		t.Error("quota and update check should default to enabled")
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v", errs)
	}
}

func TestParseJSONSettings(t *testing.T) {
	body := `{
  "theme": "dark",
  "powerline": {
    "preset": "nerd",
    "colors": {"model": "#ff00ff", "path": "accent"},
    "hide": ["cost"],
    "quota": false
  }
}`
	cfg, err := Parse([]byte(body), "settings.json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Preset != "nerd" {
		t.Errorf("Preset = %q", cfg.Preset)
	}
	if cfg.Colors["model"] != "#ff00ff" || cfg.Colors["path"] != "accent" {
		t.Errorf("Colors = %v", cfg.Colors)
	}
	if cfg.QuotaEnabled() {
		t.Error("quota should be disabled")
	}
	if cfg.Source != "settings.json" {
		t.Errorf("Source = %q", cfg.Source)
	}
}

func TestParseWithoutPowerlineKey(t *testing.T) {
	cfg, err := Parse([]byte(`{"theme": "dark"}`), "x")
	if err != nil || cfg != nil {
		t.Errorf("Parse = (%v, %v), want (nil, nil)", cfg, err)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte(`{"powerline": [`), "bad.json"); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadPriority(t *testing.T) {
	home := isolateHome(t)
	project := t.TempDir()

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(project)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Preset != "default" || cfg.Source != "" {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	writeSettings(t, filepath.Join(home, ".pi", "agent", "settings.json"), `{"powerline":{"preset":"minimal"}}`)

	t.Run("global", func(t *testing.T) {
		cfg, err := Load(project)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Preset != "minimal" {
			t.Errorf("Preset = %q, want minimal", cfg.Preset)
		}
	})

	t.Run("project without powerline key falls through", func(t *testing.T) {
		writeSettings(t, filepath.Join(project, ".pi", "settings.json"), `{"other": 1}`)
		cfg, err := Load(project)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Preset != "minimal" {
			t.Errorf("Preset = %q, want global minimal", cfg.Preset)
		}
	})

	t.Run("project wins", func(t *testing.T) {
		writeSettings(t, filepath.Join(project, ".pi", "settings.json"), `{"powerline":{"preset":"full"}}`)
		cfg, err := Load(project)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Preset != "full" {
			t.Errorf("Preset = %q, want full", cfg.Preset)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv(PresetEnv, "ascii")
		cfg, err := Load(project)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Preset != "ascii" {
			t.Errorf("Preset = %q, want ascii", cfg.Preset)
		}
	})
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Preset: "sparkly",
		Colors: map[string]string{"model": "#zzzzzz", "path": "accent"},
	}
	errs := cfg.Validate()
	if len(errs) != 2 {
		t.Fatalf("Validate() = %v, want 2 errors", errs)
	}
	if !errors.Is(errs[0], ErrUnknownPreset) {
		t.Errorf("errs[0] = %v, want ErrUnknownPreset", errs[0])
	}
	if !errors.Is(errs[1], theme.ErrInvalidColor) {
		t.Errorf("errs[1] = %v, want ErrInvalidColor", errs[1])
	}

	// The valid override survives.
	if got := cfg.Overrides()[theme.SlotPath].String(); got != "accent" {
		t.Errorf("path override = %q", got)
	}
}

func TestDefinitionAppliesShowHide(t *testing.T) {
	cfg := &Config{Preset: "default", Hide: []string{"cost"}, Show: []string{"hostname"}}
	d := cfg.Definition("default")

	for _, id := range d.IDs() {
		if id == segment.Cost {
			t.Error("hidden segment still present")
		}
	}
	last := d.Secondary[len(d.Secondary)-1]
	if last != segment.Hostname {
		t.Errorf("last secondary = %q, want hostname", last)
	}
}

func TestThemeLayersPresetAndUser(t *testing.T) {
	cfg := &Config{Colors: map[string]string{"separator": "#010203"}}
	d := cfg.Definition("nerd")
	th := cfg.Theme(d)

	if got := th.Color(theme.SlotSeparator).String(); got != "#010203" {
		t.Errorf("separator = %q, want user override", got)
	}
	if got := th.Color(theme.SlotModel).String(); got != "magenta" {
		t.Errorf("model = %q, want nerd preset colour", got)
	}
	if th.Icons.Branch != theme.NerdIcons.Branch {
		t.Error("nerd preset icons not applied")
	}
}
