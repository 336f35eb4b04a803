package renderctx

import (
	"context"
	"time"

	"github.com/young1lin/powerline-footer/internal/freshness"
	"github.com/young1lin/powerline-footer/internal/gitx"
	"github.com/young1lin/powerline-footer/internal/quota"
)

// Cache lifetimes per resource.
const (
	BranchTTL = 500 * time.Millisecond
	DirtyTTL  = time.Second
	QuotaTTL  = 5 * time.Minute
	UpdateTTL = time.Hour
)

// Kind names a cached resource.
type Kind int

const (
	KindBranch Kind = iota
	KindDirty
	KindQuota
	KindUpdate
)

func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindDirty:
		return "dirty"
	case KindQuota:
		return "quota"
	case KindUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// QuotaFetcher returns the current usage snapshot or nil.
type QuotaFetcher interface {
	Fetch(ctx context.Context) *quota.Snapshot
}

// UpdateChecker returns a newer version string or "".
type UpdateChecker interface {
	Latest(ctx context.Context) string
}

// SourcesConfig wires the slow data providers.
type SourcesConfig struct {
	Git    *gitx.Client // nil disables git
	Quota  QuotaFetcher // nil disables quota
	Update UpdateChecker

	Now      func() time.Time
	OnCommit func()
	Context  context.Context
}

// Sources owns one freshness resource per kind. It is the only holder of
// git, quota and update state.
type Sources struct {
	git    *gitx.Client
	branch *freshness.Resource[string]
	dirty  *freshness.Resource[gitx.DirtyCounts]
	quota  *freshness.Resource[*quota.Snapshot]
	update *freshness.Resource[string]
}

// NewSources creates empty resources. Nothing is fetched until first read.
func NewSources(cfg SourcesConfig) *Sources {
	s := &Sources{git: cfg.Git}
	opts := func(ttl time.Duration) freshness.Options {
		return freshness.Options{TTL: ttl, Now: cfg.Now, OnCommit: cfg.OnCommit, Context: cfg.Context}
	}

	if cfg.Git != nil {
		s.branch = freshness.New("branch", cfg.Git.Branch, opts(BranchTTL))
		s.dirty = freshness.New("dirty", cfg.Git.Dirty, opts(DirtyTTL))
	}
	if cfg.Quota != nil {
		s.quota = freshness.New("quota", cfg.Quota.Fetch, opts(QuotaTTL))
	}
	if cfg.Update != nil {
		s.update = freshness.New("update", cfg.Update.Latest, opts(UpdateTTL))
	}
	return s
}

// Dir returns the git working directory, or "" without git.
func (s *Sources) Dir() string {
	if s.git == nil {
		return ""
	}
	return s.git.Dir()
}

// Branch returns the cached branch ("" when unknown or not a repository).
func (s *Sources) Branch() string {
	if s.branch == nil {
		return ""
	}
	return s.branch.Read("")
}

// Dirty returns the cached working tree counts.
func (s *Sources) Dirty() gitx.DirtyCounts {
	if s.dirty == nil {
		return gitx.DirtyCounts{}
	}
	return s.dirty.Read(gitx.DirtyCounts{})
}

// Quota returns the cached quota snapshot or nil.
func (s *Sources) Quota() *quota.Snapshot {
	if s.quota == nil {
		return nil
	}
	return s.quota.Read(nil)
}

// Update returns the cached newer version or "".
func (s *Sources) Update() string {
	if s.update == nil {
		return ""
	}
	return s.update.Read("")
}

// Invalidate drops the named resources.
func (s *Sources) Invalidate(kinds ...Kind) {
	for _, k := range kinds {
		switch k {
		case KindBranch:
			if s.branch != nil {
				s.branch.Invalidate()
			}
		case KindDirty:
			if s.dirty != nil {
				s.dirty.Invalidate()
			}
		case KindQuota:
			if s.quota != nil {
				s.quota.Invalidate()
			}
		case KindUpdate:
			if s.update != nil {
				s.update.Invalidate()
			}
		}
	}
}

// SetOnCommit replaces the repaint hook on every resource.
func (s *Sources) SetOnCommit(fn func()) {
	for _, r := range s.waiters() {
		r.SetOnCommit(fn)
	}
}

// WaitTimeout blocks until every running fetch finished or d elapsed. One-shot
// renderers use it to warm the cache; the interactive path never calls it.
func (s *Sources) WaitTimeout(d time.Duration) bool {
	deadline := time.Now().Add(d)
	for _, r := range s.waiters() {
		left := time.Until(deadline)
		if left <= 0 || !r.WaitTimeout(left) {
			return false
		}
	}
	return true
}

type waiter interface {
	WaitTimeout(time.Duration) bool
	SetOnCommit(func())
}

func (s *Sources) waiters() []waiter {
	var out []waiter
	if s.branch != nil {
		out = append(out, s.branch)
	}
	if s.dirty != nil {
		out = append(out, s.dirty)
	}
	if s.quota != nil {
		out = append(out, s.quota)
	}
	if s.update != nil {
		out = append(out, s.update)
	}
	return out
}
