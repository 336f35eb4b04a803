// Package quota fetches subscription usage (five-hour and weekly windows)
// from the OAuth usage endpoint. Any failure yields a nil snapshot, which the
// quota segment renders as hidden.
package quota

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/young1lin/powerline-footer/internal/logging"
)

var quotaLog = logging.ForComponent(logging.CompQuota)

const (
	// DefaultEndpoint is the OAuth usage API.
	DefaultEndpoint = "https://api.anthropic.com/api/oauth/usage"

	defaultTimeout = 5 * time.Second
	minInterval    = 30 * time.Second
)

// Window is one usage window.
type Window struct {
	Utilization float64 // percent, 0-100
	ResetsAt    time.Time
}

// Snapshot is the usage reported by the API.
type Snapshot struct {
	FiveHour *Window
	SevenDay *Window
}

// Primary returns the window worth showing: the five-hour window when it has
// usage, otherwise the weekly one.
func (s *Snapshot) Primary() (label string, w Window, ok bool) {
	if s == nil {
		return "", Window{}, false
	}
	if s.FiveHour != nil && s.FiveHour.Utilization > 0 {
		return "5h", *s.FiveHour, true
	}
	if s.SevenDay != nil && s.SevenDay.Utilization > 0 {
		return "7d", *s.SevenDay, true
	}
	if s.FiveHour != nil {
		return "5h", *s.FiveHour, true
	}
	return "", Window{}, false
}

// credentialsFile mirrors ~/.claude/.credentials.json.
type credentialsFile struct {
	ClaudeAiOauth *struct {
		AccessToken      string `json:"accessToken"`
		SubscriptionType string `json:"subscriptionType"`
		ExpiresAt        int64  `json:"expiresAt"`
	} `json:"claudeAiOauth"`
}

type usageResponse struct {
	FiveHour *windowJSON `json:"five_hour"`
	SevenDay *windowJSON `json:"seven_day"`
}

type windowJSON struct {
	Utilization float64 `json:"utilization"`
	ResetsAt    string  `json:"resets_at"`
}

// Fetcher calls the usage API.
type Fetcher struct {
	endpoint  string
	credPath  string
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	now       func() time.Time
}

// Option customises a Fetcher.
type Option func(*Fetcher)

// WithEndpoint overrides the API URL.
func WithEndpoint(url string) Option {
	return func(f *Fetcher) { f.endpoint = url }
}

// WithCredentialsPath overrides the credentials file location.
func WithCredentialsPath(path string) Option {
	return func(f *Fetcher) { f.credPath = path }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithLimiter overrides the request limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(f *Fetcher) { f.limiter = l }
}

// NewFetcher creates a fetcher with defaults: credentials in ~/.claude, a
// five second timeout and at most one request every 30 seconds.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		endpoint:  DefaultEndpoint,
		client:    &http.Client{Timeout: defaultTimeout},
		limiter:   rate.NewLimiter(rate.Every(minInterval), 1),
		userAgent: "powerline-footer/1.0",
		now:       time.Now,
	}
	if home, err := os.UserHomeDir(); err == nil {
		f.credPath = filepath.Join(home, ".claude", ".credentials.json")
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the current snapshot, or nil when credentials are missing,
// expired, belong to an API-key plan, the limiter refuses, or the request
// fails.
func (f *Fetcher) Fetch(ctx context.Context) *Snapshot {
	token, err := f.accessToken()
	if err != nil {
		quotaLog.Debug("no usable credentials", "error", err)
		return nil
	}
	if !f.limiter.Allow() {
		quotaLog.Debug("rate limited, skipping usage request")
		return nil
	}

	snap, err := f.request(ctx, token)
	if err != nil {
		quotaLog.Warn("usage request failed", "error", err)
		return nil
	}
	return snap
}

func (f *Fetcher) accessToken() (string, error) {
	if f.credPath == "" {
		return "", fmt.Errorf("no credentials path")
	}
	data, err := os.ReadFile(f.credPath)
	if err != nil {
		return "", fmt.Errorf("read credentials: %w", err)
	}

	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("parse credentials: %w", err)
	}
	oauth := creds.ClaudeAiOauth
	if oauth == nil || oauth.AccessToken == "" {
		return "", fmt.Errorf("no oauth token")
	}
	if oauth.ExpiresAt > 0 && oauth.ExpiresAt < f.now().UnixMilli() {
		return "", fmt.Errorf("oauth token expired")
	}
	sub := strings.ToLower(oauth.SubscriptionType)
	if sub == "" || strings.Contains(sub, "api") {
		return "", fmt.Errorf("subscription %q has no quota", oauth.SubscriptionType)
	}
	return oauth.AccessToken, nil
}

func (f *Fetcher) request(ctx context.Context, token string) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("anthropic-beta", "oauth-2025-04-20")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usage API returned status %d", resp.StatusCode)
	}

	var body usageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode usage response: %w", err)
	}

	return &Snapshot{
		FiveHour: body.FiveHour.toWindow(),
		SevenDay: body.SevenDay.toWindow(),
	}, nil
}

func (w *windowJSON) toWindow() *Window {
	if w == nil {
		return nil
	}
	out := &Window{Utilization: w.Utilization}
	if w.ResetsAt != "" {
		out.ResetsAt, _ = time.Parse(time.RFC3339, w.ResetsAt)
	}
	return out
}
