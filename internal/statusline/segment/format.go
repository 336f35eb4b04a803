package segment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/young1lin/powerline-footer/internal/statusline/theme"
)

// Tier is the severity band of a percentage.
type Tier int

const (
	TierNormal Tier = iota
	TierWarning
	TierCritical
)

// Tier thresholds, as percent of budget.
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

// AutoCompactRatio is the share of the context window usable before the host
// compacts the conversation. Context tiers are measured against it.
const AutoCompactRatio = 0.95

func (t Tier) String() string {
	switch t {
	case TierWarning:
		return "warning"
	case TierCritical:
		return "critical"
	default:
		return "normal"
	}
}

// TierFor maps a percentage of budget to a tier.
func TierFor(pct float64) Tier {
	switch {
	case pct >= CriticalThreshold:
		return TierCritical
	case pct >= WarningThreshold:
		return TierWarning
	default:
		return TierNormal
	}
}

// ContextTier returns the tier of used tokens against the compaction budget.
func ContextTier(used, window int64) Tier {
	if window <= 0 {
		return TierNormal
	}
	budget := float64(window) * AutoCompactRatio
	return TierFor(float64(used) / budget * 100)
}

func (t Tier) slot() theme.Slot {
	switch t {
	case TierWarning:
		return theme.SlotContextWarning
	case TierCritical:
		return theme.SlotContextCritical
	default:
		return theme.SlotContextNormal
	}
}

// Compact formats a count: 999, 1.2k, 12k, 3M, 1.5M.
func Compact(n int64) string {
	if n < 0 {
		return "-" + Compact(-n)
	}
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	if n < 10_000 {
		return trimZero(float64(n)/1000) + "k"
	}
	if k := math.Round(float64(n) / 1000); k < 1000 {
		return strconv.FormatFloat(k, 'f', 0, 64) + "k"
	}
	return trimZero(float64(n)/1_000_000) + "M"
}

// trimZero formats with one decimal and drops a trailing ".0".
func trimZero(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// Percent formats a percentage with at most one decimal.
func Percent(v float64) string {
	return trimZero(v) + "%"
}

// Duration formats elapsed time compactly: 45s, 12m, 1h5m, 2d3h.
func Duration(d time.Duration) string {
	d = d.Truncate(time.Second)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	default:
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		if h == 0 {
			return fmt.Sprintf("%dd", days)
		}
		return fmt.Sprintf("%dd%dh", days, h)
	}
}
