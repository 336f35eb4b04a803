package theme

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"accent", "accent", false},
		{"Warning", "warning", false},
		{"#FF8800", "#ff8800", false},
		{" #00ff00 ", "#00ff00", false},
		{"#fff", "", true},
		{"#gggggg", "", true},
		{"chartreuse", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("ParseColor(%q) err = %v, want ErrInvalidColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) unexpected error: %v", tt.in, err)
			}
			if c.String() != tt.want {
				t.Errorf("ParseColor(%q) = %q, want %q", tt.in, c.String(), tt.want)
			}
		})
	}
}

func TestResolvePriority(t *testing.T) {
	preset := Scheme{
		SlotModel: Named(PaletteWarning),
		SlotPath:  Named(PaletteError),
	}
	user := Scheme{
		SlotModel: Hex("#123456"),
	}

	th := Resolve(user, preset)

	if got := th.Color(SlotModel).String(); got != "#123456" {
		t.Errorf("model = %s, want user override", got)
	}
	if got := th.Color(SlotPath).String(); got != "error" {
		t.Errorf("path = %s, want preset value", got)
	}
	if got := th.Color(SlotSeparator).String(); got != "border" {
		t.Errorf("separator = %s, want default", got)
	}
}

func TestParseOverrides(t *testing.T) {
	scheme, errs := ParseOverrides(map[string]string{
		"model":     "#abcdef",
		"gitBranch": "success",
		"path":      "nope",
		"bogusSlot": "accent",
	})

	if len(scheme) != 2 {
		t.Errorf("len(scheme) = %d, want 2", len(scheme))
	}
	if scheme[SlotModel].String() != "#abcdef" {
		t.Errorf("model = %s", scheme[SlotModel])
	}
	if len(errs) != 2 {
		t.Fatalf("errs = %v, want 2 errors", errs)
	}

	var sawColor, sawSlot bool
	for _, err := range errs {
		if errors.Is(err, ErrInvalidColor) {
			sawColor = true
		}
		if errors.Is(err, ErrUnknownSlot) {
			sawSlot = true
		}
	}
	if !sawColor || !sawSlot {
		t.Errorf("errs = %v, want one invalid color and one unknown slot", errs)
	}
}

func TestParseSlotRoundTrip(t *testing.T) {
	for _, name := range SlotNames() {
		s, ok := ParseSlot(name)
		if !ok || s.String() != name {
			t.Errorf("ParseSlot(%q) = (%v, %v)", name, s, ok)
		}
	}
}

func TestPaintKeepsText(t *testing.T) {
	th := Default()
	if got := th.Paint(SlotModel, ""); got != "" {
		t.Errorf("Paint of empty text = %q", got)
	}
	if got := th.Paint(Slot(-1), "x"); got != "x" {
		t.Errorf("Paint with bad slot = %q, want unchanged text", got)
	}
}
