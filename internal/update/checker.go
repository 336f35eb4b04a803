// Package update checks whether a newer release of the footer exists. The
// result feeds the update segment through the freshness cache.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/young1lin/powerline-footer/internal/logging"
)

var updateLog = logging.ForComponent(logging.CompUpdate)

const (
	// DefaultReleasesURL is the GitHub API endpoint for the latest release.
	DefaultReleasesURL = "https://api.github.com/repos/young1lin/powerline-footer/releases/latest"
	// checkInterval is how often the network is consulted.
	checkInterval = 24 * time.Hour
)

// State tracks the last update check on disk.
type State struct {
	LastCheck     time.Time `json:"last_check"`
	LatestVersion string    `json:"latest_version"`
	OptOut        bool      `json:"opt_out"`
}

// Checker checks for updates.
type Checker struct {
	currentVersion string
	releasesURL    string
	stateFile      string
	httpClient     *http.Client
	now            func() time.Time
}

// Option customises a Checker.
type Option func(*Checker)

// WithReleasesURL overrides the release endpoint.
func WithReleasesURL(url string) Option {
	return func(c *Checker) { c.releasesURL = url }
}

// WithStateFile overrides where check state is kept.
func WithStateFile(path string) Option {
	return func(c *Checker) { c.stateFile = path }
}

// WithClock overrides the clock.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

// NewChecker creates an update checker for the running version.
func NewChecker(version string, opts ...Option) *Checker {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	c := &Checker{
		currentVersion: version,
		releasesURL:    DefaultReleasesURL,
		stateFile:      filepath.Join(cacheDir, "powerline-footer", "update-state.json"),
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Latest returns the newer version string ("1.4.0"), or "" when up to date,
// opted out, or the check failed. A recent check is answered from disk.
func (c *Checker) Latest(ctx context.Context) string {
	state, err := c.loadState()
	if err != nil {
		state = &State{}
	}
	if state.OptOut {
		return ""
	}

	latest := state.LatestVersion
	if c.now().Sub(state.LastCheck) >= checkInterval {
		release, err := c.fetchLatest(ctx)
		if err != nil {
			updateLog.Debug("release check failed", "error", err)
			return ""
		}
		latest = parseVersion(release.TagName)
		state.LastCheck = c.now()
		state.LatestVersion = latest
		if err := c.saveState(state); err != nil {
			updateLog.Debug("save update state failed", "error", err)
		}
	}

	if c.needsUpdate(latest) {
		return latest
	}
	return ""
}

func (c *Checker) fetchLatest(ctx context.Context) (*ReleaseInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.releasesURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "powerline-footer")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	return &release, nil
}

// needsUpdate reports whether latest is newer than the running version.
// Development builds never ask for an update.
func (c *Checker) needsUpdate(latest string) bool {
	if c.currentVersion == "dev" || latest == "" {
		return false
	}

	currentV, err := semver.NewVersion(c.currentVersion)
	if err != nil {
		return false
	}
	latestV, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	return latestV.GreaterThan(currentV)
}

// parseVersion strips the tag prefix ("v1.2.3" -> "1.2.3").
func parseVersion(tag string) string {
	return strings.TrimPrefix(tag, "v")
}

func (c *Checker) loadState() (*State, error) {
	data, err := os.ReadFile(c.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return &State{}, nil
	}
	return &state, nil
}

func (c *Checker) saveState(state *State) error {
	if err := os.MkdirAll(filepath.Dir(c.stateFile), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.stateFile, data, 0644)
}

// SetOptOut records the opt-out preference.
func (c *Checker) SetOptOut(optOut bool) error {
	state, err := c.loadState()
	if err != nil {
		state = &State{}
	}
	state.OptOut = optOut
	return c.saveState(state)
}
