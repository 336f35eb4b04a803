package config

import (
	"math"
	"testing"
)

func TestLookupModel(t *testing.T) {
	tests := []struct {
		name        string
		modelID     string
		wantName    string
		wantContext int
		wantOK      bool
	}{
		{"sonnet 4.5 dated", "claude-sonnet-4-5-20250929", "Sonnet 4.5", 200_000, true},
		{"sonnet 4 dated", "claude-sonnet-4-20250514", "Sonnet 4", 200_000, true},
		{"opus 4.5 before opus 4", "claude-opus-4-5-20251101", "Opus 4.5", 200_000, true},
		{"opus 4.1", "claude-opus-4-1", "Opus 4", 200_000, true},
		{"provider prefix", "anthropic/claude-haiku-4-5", "Haiku 4.5", 200_000, true},
		{"upper case", "CLAUDE-SONNET-4-5", "Sonnet 4.5", 200_000, true},
		{"gemini", "gemini-2.5-pro", "Gemini 2.5 Pro", 1_000_000, true},
		{"unknown", "llama-3", "", 0, false},
		{"empty", "", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := LookupModel(tt.modelID)
			if ok != tt.wantOK {
				t.Fatalf("LookupModel(%q) ok = %v, want %v", tt.modelID, ok, tt.wantOK)
			}
			if info.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", info.Name, tt.wantName)
			}
			if info.ContextWindow != tt.wantContext {
				t.Errorf("ContextWindow = %d, want %d", info.ContextWindow, tt.wantContext)
			}
		})
	}
}

func TestModelNameFallsBackToID(t *testing.T) {
	if got := ModelName("llama-3"); got != "llama-3" {
		t.Errorf("ModelName = %q", got)
	}
	if got := ModelName("claude-sonnet-4-5"); got != "Sonnet 4.5" {
		t.Errorf("ModelName = %q", got)
	}
}

func TestCost(t *testing.T) {
	tests := []struct {
		name                                 string
		model                                string
		input, output, cacheRead, cacheWrite int
		want                                 float64
	}{
		{"sonnet input and output", "claude-sonnet-4-5", 1_000_000, 1_000_000, 0, 0, 18},
		{"sonnet cache", "claude-sonnet-4-5", 0, 0, 1_000_000, 1_000_000, 4.05},
		{"zero usage", "claude-sonnet-4-5", 0, 0, 0, 0, 0},
		{"unknown model", "mystery", 1_000_000, 1_000_000, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cost(tt.model, tt.input, tt.output, tt.cacheRead, tt.cacheWrite)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextWindowUnknownIsZero(t *testing.T) {
	if got := ContextWindow("mystery"); got != 0 {
		t.Errorf("ContextWindow = %d", got)
	}
}
