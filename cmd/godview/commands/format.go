package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/perfhelf/FXview/internal/engine"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	singleLine = "───────────────────────────────────────────────────────────"
	doubleLine = "═══════════════════════════════════════════════════════════"
)

// JobMetadata holds job execution metadata
type JobMetadata struct {
	JobType    string
	Tag        string
	Timestamp  string
	ConfigHash string
	Symbols    string // Optional
}

// PrintJobHeader prints a formatted job header
func PrintJobHeader(w io.Writer, meta JobMetadata) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, doubleLine)
	fmt.Fprintf(w, "  %s\n", meta.JobType)
	fmt.Fprintln(w, singleLine)
	fmt.Fprintf(w, "  Config    : %s\n", meta.ConfigHash)

	if meta.Symbols != "" {
		fmt.Fprintf(w, "  Symbols   : %s\n", meta.Symbols)
	}

	fmt.Fprintln(w, singleLine)
	fmt.Fprintf(w, "[%s] Triggered at %s\n", meta.Tag, meta.Timestamp)
}

// PrintRunSummary prints the snapshot count and every skipped symbol with its reason
func PrintRunSummary(w io.Writer, res *engine.RunResult, fetchFailures map[string]error) {
	fmt.Fprintln(w, singleLine)
	fmt.Fprintf(w, "  Snapshots : %d\n", len(res.Snapshots))
	fmt.Fprintf(w, "  Skipped   : %d\n", len(res.Skipped))

	for _, symbol := range sortedKeys(res.Skipped) {
		fmt.Fprintf(w, "   • %-8s %s\n", symbol, res.Skipped[symbol])
	}

	if len(fetchFailures) > 0 {
		fmt.Fprintf(w, "  Fetch errors: %d\n", len(fetchFailures))
		for _, ticker := range sortedKeys(fetchFailures) {
			fmt.Fprintf(w, "   • %-12s %v\n", ticker, fetchFailures[ticker])
		}
	}
}

// PrintJobCompletion prints job completion message
func PrintJobCompletion(w io.Writer, jobType string, duration float64) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "✅ %s completed in %.2fs\n", jobType, duration)
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	PrintTableRow(w, columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		fmt.Fprintf(w, "%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

// formatTime renders an optional timestamp, "-" when absent
func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

// parseSymbols splits a comma list, upper-casing and dropping blanks
func parseSymbols(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truncate shortens s to n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
