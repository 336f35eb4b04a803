package parser

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleLog = `{"type":"session","id":"s-1","cwd":"/work/app","timestamp":"2025-03-01T10:00:00Z"}
{"type":"user","timestamp":"2025-03-01T10:00:01Z","message":{"role":"user","content":"add a flag"}}
{"type":"assistant","timestamp":"2025-03-01T10:00:05Z","message":{"role":"assistant","model":"claude-sonnet-4-5-20250929","thinking_level":"medium","content":[{"type":"text","text":"ok"}],"usage":{"input_tokens":1000,"output_tokens":200,"cache_read_input_tokens":3000,"cache_creation_input_tokens":500}}}
not json at all
{"type":"assistant","timestamp":"2025-03-01T10:01:00Z","message":{"role":"assistant","model":"claude-sonnet-4-5-20250929","usage":{"input_tokens":100,"output_tokens":50,"cache_read_input_tokens":4500,"cost_usd":0.5}}}
`

func TestReadSession(t *testing.T) {
	s, n, err := ReadSession(strings.NewReader(sampleLog))
	if err != nil {
		t.Fatalf("ReadSession() error = %v", err)
	}
	if n != 3 {
		t.Errorf("messages = %d, want 3", n)
	}
	if s.ID != "s-1" || s.Cwd != "/work/app" {
		t.Errorf("header not applied: %+v", s)
	}
	if !s.StartedAt.Equal(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("StartedAt = %v", s.StartedAt)
	}
	if s.ModelName != "Sonnet 4.5" || s.ContextWindow != 200_000 || s.Thinking != "medium" {
		t.Errorf("model fields = %q %d %q", s.ModelName, s.ContextWindow, s.Thinking)
	}

	u := s.Usage
	if u.InputTokens != 1100 || u.OutputTokens != 250 || u.CacheReadTokens != 7500 || u.CacheWriteTokens != 500 {
		t.Errorf("usage = %+v", u)
	}
	if u.ContextTokens != 4600 {
		t.Errorf("ContextTokens = %d, want latest turn 4600", u.ContextTokens)
	}
	// First turn priced from the table, second taken from the log.
	first := (1000*3.0 + 200*15.0 + 3000*0.3 + 500*3.75) / 1_000_000
	if want := first + 0.5; math.Abs(u.CostUSD-want) > 1e-9 {
		t.Errorf("CostUSD = %v, want %v", u.CostUSD, want)
	}
}

func TestScanStopsOnError(t *testing.T) {
	stop := os.ErrClosed
	count := 0
	err := Scan(strings.NewReader(sampleLog), func(*Entry) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	if err != stop {
		t.Errorf("Scan() error = %v, want %v", err, stop)
	}
	if count != 2 {
		t.Errorf("callback ran %d times", count)
	}
}

func TestReadSessionFileCachesByModTime(t *testing.T) {
	clearSummaryCache()
	path := filepath.Join(t.TempDir(), "s.jsonl")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := ReadSessionFile(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ReadSessionFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("unchanged file was parsed twice")
	}

	extra := `{"type":"user","message":{"role":"user","content":"more"}}` + "\n"
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(extra); err != nil {
		t.Fatal(err)
	}
	f.Close()

	third, err := ReadSessionFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if third.Messages != first.Messages+1 {
		t.Errorf("Messages = %d after append, want %d", third.Messages, first.Messages+1)
	}
}

func TestReadSessionFileMissing(t *testing.T) {
	if _, err := ReadSessionFile(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}
