package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate keeps user settings and caches out of a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("PI_CODING_AGENT_DIR", filepath.Join(home, "agent"))
	t.Setenv("STATUSLINE_PRESET", "")
	return home
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantNil bool
		wantErr bool
		wantDir string
	}{
		{name: "empty", in: "", wantNil: true},
		{name: "whitespace", in: " \n\t", wantNil: true},
		{name: "null bytes", in: "\x00{\"cwd\":\"/work\"}\x00", wantDir: "/work"},
		{name: "workspace wins", in: `{"cwd":"/a","workspace":{"current_dir":"/b"}}`, wantDir: "/b"},
		{name: "invalid", in: "{not json", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePayload([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePayload() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (p == nil) != tt.wantNil {
				t.Fatalf("parsePayload() = %+v, wantNil %v", p, tt.wantNil)
			}
			if p != nil && p.dir() != tt.wantDir {
				t.Errorf("dir() = %q, want %q", p.dir(), tt.wantDir)
			}
		})
	}
}

func TestPayloadSessionMergesTranscript(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "s.jsonl")
	log := `{"type":"session","id":"from-log","cwd":"/logged","timestamp":"2025-03-01T10:00:00Z"}
{"type":"assistant","timestamp":"2025-03-01T10:00:05Z","message":{"role":"assistant","model":"claude-sonnet-4-5","usage":{"input_tokens":10,"output_tokens":5,"cost_usd":0.25}}}
`
	if err := os.WriteFile(transcript, []byte(log), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := parsePayload([]byte(`{"cwd":"/live","transcript_path":"` + transcript + `","model":{"display_name":"Custom"}}`))
	if err != nil {
		t.Fatal(err)
	}
	s := p.session()
	if s.ID != "from-log" {
		t.Errorf("ID = %q, want from-log", s.ID)
	}
	if s.Cwd != "/live" || s.ModelName != "Custom" {
		t.Errorf("payload did not override: cwd=%q model=%q", s.Cwd, s.ModelName)
	}
	if s.Usage.OutputTokens != 5 || s.Usage.CostUSD != 0.25 {
		t.Errorf("usage = %+v", s.Usage)
	}
}

func TestRunRender(t *testing.T) {
	isolate(t)
	if err := setColorProfile("never"); err != nil {
		t.Fatal(err)
	}
	in := `{"cwd":"` + t.TempDir() + `","model":{"id":"claude-sonnet-4-5","display_name":"Sonnet 4.5"},"cost":{"total_cost_usd":1.25}}`

	var out, errOut bytes.Buffer
	err := runRender(strings.NewReader(in), &out, &errOut, renderOptions{width: 120, noGit: true, offline: true})
	if err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"Sonnet 4.5", "$1.25"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("colour codes with --color never: %q", got)
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected stderr: %q", errOut.String())
	}
}

func TestRunRenderEmptyInput(t *testing.T) {
	var out bytes.Buffer
	if err := runRender(strings.NewReader(""), &out, &out, renderOptions{}); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want nothing", out.String())
	}
}

func TestRunRenderNarrowWidth(t *testing.T) {
	isolate(t)
	var out bytes.Buffer
	in := `{"cwd":"/tmp","model":{"display_name":"Sonnet"}}`
	if err := runRender(strings.NewReader(in), &out, &out, renderOptions{width: 5, noGit: true, offline: true}); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want nothing below the minimum width", out.String())
	}
}

func TestSetColorProfile(t *testing.T) {
	for _, mode := range []string{"", "auto", "always", "truecolor", "never"} {
		if err := setColorProfile(mode); err != nil {
			t.Errorf("setColorProfile(%q) error = %v", mode, err)
		}
	}
	if err := setColorProfile("rainbow"); err == nil {
		t.Error("setColorProfile(rainbow) should fail")
	}
}

func TestListPresets(t *testing.T) {
	isolate(t)
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"presets", "--sample", "--color", "never", "--width", "200"})
	if err := root.Execute(); err != nil {
		t.Fatalf("presets error = %v", err)
	}
	got := buf.String()
	for _, want := range []string{"* default", "minimal", "compact", "Sonnet 4.5"} {
		if !strings.Contains(got, want) {
			t.Errorf("presets output missing %q:\n%s", want, got)
		}
	}
}

func TestRunSearch(t *testing.T) {
	dir := t.TempDir()
	log := `{"type":"session","id":"abcdef123456","cwd":"/work","timestamp":"2025-03-01T10:00:00Z"}
{"type":"user","timestamp":"2025-03-01T10:00:01Z","message":{"role":"user","content":"add a verbose flag to the CLI"}}
{"type":"assistant","timestamp":"2025-03-01T10:00:05Z","message":{"role":"assistant","content":[{"type":"text","text":"Added the flag."}]}}
`
	if err := os.WriteFile(filepath.Join(dir, "abcdef123456.jsonl"), []byte(log), 0o644); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 3, 1, 11, 0, 30, 0, time.UTC)

	var buf bytes.Buffer
	err := runSearch(context.Background(), &buf, "verbose", searchOptions{limit: 10, dir: dir}, now)
	if err != nil {
		t.Fatalf("runSearch() error = %v", err)
	}
	got := buf.String()
	for _, want := range []string{"1 hour ago", "user", "abcdef12", "verbose flag"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}

	buf.Reset()
	if err := runSearch(context.Background(), &buf, "flag", searchOptions{limit: 10, role: "assistant", dir: dir}, now); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); strings.Contains(got, "verbose") || !strings.Contains(got, "Added the flag") {
		t.Errorf("role filter output = %q", got)
	}

	buf.Reset()
	if err := runSearch(context.Background(), &buf, "zebra", searchOptions{dir: dir}, now); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No matches") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestStashCommands(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "stash.db")
	run := func(args ...string) string {
		t.Helper()
		var buf bytes.Buffer
		root := newRootCmd()
		root.SetOut(&buf)
		root.SetIn(strings.NewReader("second prompt\nwith body"))
		root.SetArgs(append([]string{"stash", "--db", db}, args...))
		if err := root.Execute(); err != nil {
			t.Fatalf("stash %v error = %v", args, err)
		}
		return buf.String()
	}

	if got := run("save", "first", "prompt"); !strings.Contains(got, "Saved #1: first prompt") {
		t.Errorf("save = %q", got)
	}
	if got := run("save"); !strings.Contains(got, "Saved #2: second prompt") {
		t.Errorf("save from stdin = %q", got)
	}
	list := run("list")
	if !strings.Contains(list, "#1") || !strings.Contains(list, "#2") {
		t.Errorf("list = %q", list)
	}
	if strings.Index(list, "#2") > strings.Index(list, "#1") {
		t.Errorf("list not newest first: %q", list)
	}
	if got := run("pop"); got != "second prompt\nwith body\n" {
		t.Errorf("pop = %q", got)
	}
	if got := run("drop", "#1"); !strings.Contains(got, "Dropped #1") {
		t.Errorf("drop = %q", got)
	}
	if got := run("clear"); !strings.Contains(got, "Removed 0 prompts") {
		t.Errorf("clear = %q", got)
	}
}
