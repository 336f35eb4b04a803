package gitx

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
)

func TestParsePorcelain(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want DirtyCounts
	}{
		{
			name: "empty output is clean",
			out:  "",
			want: DirtyCounts{},
		},
		{
			name: "untracked and trimmed unstaged first line",
			out:  "M main.go\n?? notes.txt",
			want: DirtyCounts{Staged: 0, Unstaged: 1, Untracked: 1},
		},
		{
			name: "untracked first then unstaged",
			out:  "?? notes.txt\n M main.go",
			want: DirtyCounts{Unstaged: 1, Untracked: 1},
		},
		{
			name: "staged modification keeps column two space",
			out:  "M  main.go",
			want: DirtyCounts{Staged: 1},
		},
		{
			name: "staged and unstaged on same file",
			out:  "MM main.go",
			want: DirtyCounts{Staged: 1, Unstaged: 1},
		},
		{
			name: "added deleted renamed",
			out:  "A  new.go\nD  old.go\nR  a.go -> b.go\n D gone.go",
			want: DirtyCounts{Staged: 3, Unstaged: 1},
		},
		{
			name: "ignored entries are skipped",
			out:  "!! build/\n?? x",
			want: DirtyCounts{Untracked: 1},
		},
		{
			name: "windows line endings",
			out:  "?? a\r\n?? b\r\n",
			want: DirtyCounts{Untracked: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePorcelain(tt.out)
			if got != tt.want {
				t.Errorf("ParsePorcelain(%q) = %+v, want %+v", tt.out, got, tt.want)
			}
		})
	}
}

func TestDirtyCountsString(t *testing.T) {
	tests := []struct {
		in   DirtyCounts
		want string
	}{
		{DirtyCounts{}, ""},
		{DirtyCounts{Staged: 2}, "+2"},
		{DirtyCounts{Staged: 1, Unstaged: 3, Untracked: 4}, "+1 *3 ?4"},
		{DirtyCounts{Untracked: 1}, "?1"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.in, got, tt.want)
		}
	}
	if !(DirtyCounts{}).IsClean() {
		t.Error("zero counts should be clean")
	}
}

func TestClientBranch(t *testing.T) {
	ctx := context.Background()

	t.Run("not a repository skips sha lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := NewMockRunner(ctrl)
		runner.EXPECT().Run(gomock.Any(), "/work", "git", []string{"branch", "--show-current"}).Return("", false).Times(1)

		if got := NewClient(runner, "/work").Branch(ctx); got != "" {
			t.Errorf("Branch() = %q, want empty", got)
		}
	})

	t.Run("named branch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := NewMockRunner(ctrl)
		runner.EXPECT().Run(gomock.Any(), "/work", "git", []string{"branch", "--show-current"}).Return("main", true)

		if got := NewClient(runner, "/work").Branch(ctx); got != "main" {
			t.Errorf("Branch() = %q, want main", got)
		}
	})

	t.Run("detached head falls back to short sha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := NewMockRunner(ctrl)
		gomock.InOrder(
			runner.EXPECT().Run(gomock.Any(), "/work", "git", []string{"branch", "--show-current"}).Return("", true),
			runner.EXPECT().Run(gomock.Any(), "/work", "git", []string{"rev-parse", "--short", "HEAD"}).Return("a1b2c3d", true),
		)

		if got := NewClient(runner, "/work").Branch(ctx); got != "a1b2c3d (detached)" {
			t.Errorf("Branch() = %q, want %q", got, "a1b2c3d (detached)")
		}
	})

	t.Run("detached head with failing sha lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := NewMockRunner(ctrl)
		runner.EXPECT().Run(gomock.Any(), "/work", "git", []string{"branch", "--show-current"}).Return("", true)
		runner.EXPECT().Run(gomock.Any(), "/work", "git", []string{"rev-parse", "--short", "HEAD"}).Return("", false)

		if got := NewClient(runner, "/work").Branch(ctx); got != "" {
			t.Errorf("Branch() = %q, want empty", got)
		}
	})

	t.Run("empty dir never spawns", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := NewMockRunner(ctrl)

		if got := NewClient(runner, "").Branch(ctx); got != "" {
			t.Errorf("Branch() = %q, want empty", got)
		}
	})
}

func TestClientDirty(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := NewMockRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), "/work", "git", []string{"status", "--porcelain"}).Return("M main.go\n?? notes.txt", true)

	got := NewClient(runner, "/work").Dirty(context.Background())
	want := DirtyCounts{Unstaged: 1, Untracked: 1}
	if got != want {
		t.Errorf("Dirty() = %+v, want %+v", got, want)
	}
}

func TestClientDirtyFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := NewMockRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), "/work", "git", gomock.Any()).Return("", false)

	if got := NewClient(runner, "/work").Dirty(context.Background()); !got.IsClean() {
		t.Errorf("Dirty() = %+v, want clean", got)
	}
}

// initTestGitRepo creates a repository with one commit.
func initTestGitRepo(t *testing.T, dir string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init", "-q", "-b", "main")
	run("config", "user.email", "test@test.com")
	run("config", "user.name", "Test User")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# test\n"), 0644); err != nil {
		t.Fatal(err)
	}
	run("add", "README.md")
	run("commit", "-q", "-m", "init")
}

func TestExecRunnerAgainstRealRepo(t *testing.T) {
	dir := t.TempDir()
	initTestGitRepo(t, dir)

	client := NewClient(NewExecRunner(5*time.Second), dir)
	ctx := context.Background()

	if got := client.Branch(ctx); got != "main" {
		t.Errorf("Branch() = %q, want main", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("changed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	got := client.Dirty(ctx)
	want := DirtyCounts{Unstaged: 1, Untracked: 1}
	if got != want {
		t.Errorf("Dirty() = %+v, want %+v", got, want)
	}
}

func TestExecRunnerOutsideRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	out, ok := NewExecRunner(5*time.Second).Run(context.Background(), dir, "git", []string{"branch", "--show-current"})
	if ok {
		t.Errorf("Run() ok = true (out %q), want failure outside a repository", out)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	out, ok := NewExecRunner(time.Second).Run(context.Background(), t.TempDir(), "definitely-not-a-real-binary-xyz", nil)
	if ok || out != "" {
		t.Errorf("Run() = (%q, %v), want (\"\", false)", out, ok)
	}
}

func TestExecRunnerTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	start := time.Now()
	_, ok := NewExecRunner(50*time.Millisecond).Run(context.Background(), t.TempDir(), "sleep", []string{"5"})
	if ok {
		t.Error("Run() ok = true, want false on timeout")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v, process was not killed", elapsed)
	}
}
