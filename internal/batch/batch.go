// Package batch classifies account lists from JSONL files and summarizes
// the damage.
package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"ratiocop/internal/classify"
	"ratiocop/internal/logging"
	"ratiocop/internal/model"
)

// Account is one input line of a batch file.
type Account struct {
	Username  string  `json:"username"`
	Following float64 `json:"following"`
	Followers float64 `json:"followers"`
}

// Result pairs an input account with its analysis. The analysis fields
// marshal flat so each output line reads like a report row.
type Result struct {
	Username string `json:"username"`
	model.RatioAnalysis
}

// ReadAccounts reads JSONL accounts from r, skipping blank lines, comment
// lines, and lines that do not parse. The skipped count covers only the
// unparseable ones.
func ReadAccounts(r io.Reader) ([]Account, int, error) {
	scanner := bufio.NewScanner(r)

	// Increase buffer size for large lines.
	const maxCapacity = 1024 * 1024 // 1MB
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	var accounts []Account
	skipped := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var a Account
		if err := json.Unmarshal([]byte(line), &a); err != nil {
			logging.Error("batch_parse_line", map[string]any{"error": err.Error()})
			skipped++
			continue
		}
		accounts = append(accounts, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return accounts, skipped, nil
}

// Run classifies every account with c, preserving input order.
func Run(c *classify.Classifier, accounts []Account) []Result {
	out := make([]Result, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, Result{
			Username:      a.Username,
			RatioAnalysis: c.AnalyzeRatio(a.Following, a.Followers),
		})
	}
	return out
}

// Writer handles JSONL output of batch results.
type Writer struct {
	file   *os.File
	writer io.Writer
}

// NewWriter creates a result writer. An empty path or "-" writes to stdout.
func NewWriter(path string) (*Writer, error) {
	if path == "" || path == "-" {
		return &Writer{file: nil, writer: os.Stdout}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return &Writer{file: file, writer: file}, nil
}

// WriteResult writes a single result as a JSON line.
func (w *Writer) WriteResult(r Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "%s\n", data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// WriteResults writes multiple results as JSON lines.
func (w *Writer) WriteResults(results []Result) error {
	for _, r := range results {
		if err := w.WriteResult(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the output file if one was opened.
func (w *Writer) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// ReadResults reads previously written JSONL results from r, skipping
// blank and unparseable lines.
func ReadResults(r io.Reader) ([]Result, error) {
	scanner := bufio.NewScanner(r)

	const maxCapacity = 1024 * 1024 // 1MB
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	var results []Result
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var res Result
		if err := json.Unmarshal([]byte(line), &res); err != nil {
			logging.Error("batch_parse_result", map[string]any{"error": err.Error()})
			continue
		}
		results = append(results, res)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary represents batch run statistics.
type Summary struct {
	RunID        string                `json:"run_id,omitempty"`
	Total        int                   `json:"total"`
	Skipped      int                   `json:"skipped,omitempty"`
	ByVerdict    map[model.Verdict]int `json:"by_verdict"`
	ShameCount   int                   `json:"shame_count"`
	AverageRatio float64               `json:"average_ratio"`
	TopOffenders []Result              `json:"top_offenders,omitempty"`
}

// Summarize generates a summary from classified results. The average skips
// non-finite ratios so one NaN cannot poison the whole run.
func Summarize(runID string, results []Result, skipped, topN int) Summary {
	summary := Summary{
		RunID:     runID,
		Total:     len(results),
		Skipped:   skipped,
		ByVerdict: make(map[model.Verdict]int),
	}

	ratioSum := 0.0
	ratioCount := 0
	for _, r := range results {
		summary.ByVerdict[r.Verdict]++
		if r.Shame {
			summary.ShameCount++
		}
		if v, err := strconv.ParseFloat(r.Ratio, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			ratioSum += v
			ratioCount++
		}
	}
	if ratioCount > 0 {
		summary.AverageRatio = ratioSum / float64(ratioCount)
	}

	if topN > 0 {
		summary.TopOffenders = topByFollowing(results, topN)
	}
	return summary
}

// topByFollowing returns the n results with the largest following counts.
func topByFollowing(results []Result, n int) []Result {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		// NaN sorts last.
		if math.IsNaN(sorted[j].Following) {
			return !math.IsNaN(sorted[i].Following)
		}
		if math.IsNaN(sorted[i].Following) {
			return false
		}
		return sorted[i].Following > sorted[j].Following
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// PrintSummary prints a summary to the given writer.
func PrintSummary(w io.Writer, summary Summary) {
	if summary.RunID != "" {
		fmt.Fprintf(w, "=== Batch Summary (run %s) ===\n\n", summary.RunID)
	} else {
		fmt.Fprintf(w, "=== Batch Summary ===\n\n")
	}
	fmt.Fprintf(w, "Accounts analyzed: %d\n", summary.Total)
	if summary.Skipped > 0 {
		fmt.Fprintf(w, "Lines skipped: %d\n", summary.Skipped)
	}
	fmt.Fprintf(w, "Average ratio: %.2f\n\n", summary.AverageRatio)

	fmt.Fprintf(w, "Verdict Distribution:\n")
	for _, v := range model.VerdictOrder {
		count := summary.ByVerdict[v]
		if count == 0 {
			continue
		}
		pct := 100.0 * float64(count) / float64(summary.Total)
		fmt.Fprintf(w, "  %-24s %d (%.1f%%)\n", string(v)+":", count, pct)
	}
	fmt.Fprintf(w, "\n")

	if summary.Total > 0 {
		pct := 100.0 * float64(summary.ShameCount) / float64(summary.Total)
		fmt.Fprintf(w, "Shame rate: %d of %d (%.1f%%)\n\n", summary.ShameCount, summary.Total, pct)
	}

	if len(summary.TopOffenders) > 0 {
		fmt.Fprintf(w, "Top Offenders:\n")
		for i, r := range summary.TopOffenders {
			fmt.Fprintf(w, "  %d. %s following %s (%s)\n", i+1, r.Username, humanize.Commaf(r.Following), r.Verdict)
		}
		fmt.Fprintf(w, "\n")
	}
}
