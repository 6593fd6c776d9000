package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"ChartFeed/internal/model"
)

// FormatWarmReport formats a warm-up run for Telegram (HTML parse mode).
func FormatWarmReport(r *model.WarmReport) string {
	var b strings.Builder

	status := "✅"
	if !r.OK() {
		status = "❌"
	}
	b.WriteString(fmt.Sprintf("%s <b>ChartFeed cache warm-up</b> | %s\n\n", status, r.StartedAt.UTC().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Refreshed: %d\n", len(r.Refreshed)))
	b.WriteString(fmt.Sprintf("Failed: %d\n", len(r.Failed)))
	b.WriteString(fmt.Sprintf("Purged: %d\n", r.Purged))
	b.WriteString(fmt.Sprintf("Elapsed: %s\n", r.Elapsed.Round(1e6)))

	if len(r.Failed) > 0 {
		b.WriteString("\n<b>Failures:</b>\n")
		for _, sym := range sortedKeys(r.Failed) {
			b.WriteString(fmt.Sprintf("  %s: %s\n", sym, html.EscapeString(r.Failed[sym])))
		}
	}
	if r.PurgeErr != "" {
		b.WriteString(fmt.Sprintf("\nPurge error: %s\n", html.EscapeString(r.PurgeErr)))
	}
	return b.String()
}

// FormatStatus formats the cache status reply.
func FormatStatus(cacheKey string, symbols int, last *model.WarmReport) string {
	var b strings.Builder
	b.WriteString("📦 <b>ChartFeed status</b>\n\n")
	b.WriteString(fmt.Sprintf("Cache key: %s\n", html.EscapeString(cacheKey)))
	b.WriteString(fmt.Sprintf("Catalog symbols: %d\n", symbols))
	if last == nil {
		b.WriteString("Last warm-up: never\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Last warm-up: %s (%d ok, %d failed)\n",
		last.StartedAt.UTC().Format("2006-01-02 15:04"), len(last.Refreshed), len(last.Failed)))
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
