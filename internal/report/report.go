package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/min-coins/internal/coins"
	"github.com/eugenenazirov/min-coins/internal/harness"
)

// Output formats accepted by NewWriter.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned by NewWriter for unsupported formats.
var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatTable, FormatJSON, FormatYAML}
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	warnStyle    = cellStyle.Foreground(lipgloss.Color("3"))
	failStyle    = cellStyle.Foreground(lipgloss.Color("9"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	captionStyle = lipgloss.NewStyle().Bold(true)
	noteStyle    = lipgloss.NewStyle().Faint(true)
)

// CheckFormat reports whether format is supported.
func CheckFormat(format string) error {
	for _, f := range Formats() {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// Writer streams comparisons to out in one format.
type Writer struct {
	out    io.Writer
	format string
	json   *json.Encoder
	yaml   *yaml.Encoder
}

// NewWriter returns a Writer for format.
func NewWriter(out io.Writer, format string) (*Writer, error) {
	if err := CheckFormat(format); err != nil {
		return nil, err
	}
	w := &Writer{out: out, format: format}
	switch format {
	case FormatJSON:
		w.json = json.NewEncoder(out)
		w.json.SetIndent("", "  ")
	case FormatYAML:
		w.yaml = yaml.NewEncoder(out)
		w.yaml.SetIndent(2)
	}
	return w, nil
}

// Write renders one comparison.
func (w *Writer) Write(cmp harness.Comparison) error {
	switch w.format {
	case FormatJSON:
		return w.json.Encode(newComparisonView(cmp))
	case FormatYAML:
		return w.yaml.Encode(newComparisonView(cmp))
	default:
		_, err := io.WriteString(w.out, Table(cmp)+"\n")
		return err
	}
}

// Close flushes any buffered output.
func (w *Writer) Close() error {
	if w.yaml != nil {
		return w.yaml.Close()
	}
	return nil
}

// Table renders cmp as a human-readable table followed by diagnostics.
func Table(cmp harness.Comparison) string {
	rows := make([][]string, 0, len(cmp.Rows))
	for _, row := range cmp.Rows {
		rows = append(rows, []string{
			row.Strategy,
			resultCell(row),
			row.Elapsed.String(),
			yesNo(row.Optimal),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Algorithm", "Result", "Elapsed", "Optimal").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 && row >= 0 && row < len(cmp.Rows) {
				switch r := cmp.Rows[row]; {
				case r.TimedOut:
					return warnStyle
				case r.Err != nil:
					return failStyle
				}
			}
			return cellStyle
		})

	var b strings.Builder
	b.WriteString(captionStyle.Render(fmt.Sprintf("amount %d, denominations %v", cmp.Amount, cmp.Denominations)))
	b.WriteString("\n")
	b.WriteString(t.String())
	for _, note := range notes(cmp) {
		b.WriteString("\n")
		b.WriteString(noteStyle.Render(note))
	}
	return b.String()
}

func resultCell(row harness.Row) string {
	switch {
	case row.TimedOut:
		return "timed out"
	case row.Err != nil:
		return "error: " + row.Err.Error()
	default:
		return row.Result.String()
	}
}

func notes(cmp harness.Comparison) []string {
	var out []string
	optimum, haveOptimum := cmp.Optimum()
	for _, row := range cmp.Rows {
		switch {
		case row.Err != nil:
			continue
		case row.Strategy == coins.NameMemoized:
			out = append(out, fmt.Sprintf("%s: %d distinct sub-amounts cached", row.Strategy, row.CacheEntries))
		case !row.Optimal && haveOptimum && row.Result != optimum:
			out = append(out, fmt.Sprintf("%s: %s differs from optimal %s", row.Strategy, row.Result, optimum))
		}
	}
	return out
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

type comparisonView struct {
	RunID         string    `json:"runId" yaml:"run_id"`
	Amount        int       `json:"amount" yaml:"amount"`
	Denominations []int     `json:"denominations" yaml:"denominations"`
	Optimal       string    `json:"optimal,omitempty" yaml:"optimal,omitempty"`
	Rows          []rowView `json:"results" yaml:"results"`
}

type rowView struct {
	Strategy     string      `json:"strategy" yaml:"strategy"`
	Optimal      bool        `json:"optimal" yaml:"optimal"`
	Result       string      `json:"result" yaml:"result"`
	Breakdown    map[int]int `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
	ElapsedMs    float64     `json:"elapsedMs" yaml:"elapsed_ms"`
	Calls        int64       `json:"calls,omitempty" yaml:"calls,omitempty"`
	CacheEntries int         `json:"cacheEntries,omitempty" yaml:"cache_entries,omitempty"`
	TableSize    int         `json:"tableSize,omitempty" yaml:"table_size,omitempty"`
	TimedOut     bool        `json:"timedOut,omitempty" yaml:"timed_out,omitempty"`
	Error        string      `json:"error,omitempty" yaml:"error,omitempty"`
}

func newComparisonView(cmp harness.Comparison) comparisonView {
	view := comparisonView{
		RunID:         cmp.RunID,
		Amount:        cmp.Amount,
		Denominations: cmp.Denominations,
		Rows:          make([]rowView, 0, len(cmp.Rows)),
	}
	if optimum, ok := cmp.Optimum(); ok {
		view.Optimal = optimum.String()
	}
	for _, row := range cmp.Rows {
		rv := rowView{
			Strategy:     row.Strategy,
			Optimal:      row.Optimal,
			Result:       resultCell(row),
			Breakdown:    row.Breakdown,
			ElapsedMs:    roundMillis(row.Elapsed.Seconds() * 1000),
			Calls:        row.Calls,
			CacheEntries: row.CacheEntries,
			TableSize:    row.TableSize,
			TimedOut:     row.TimedOut,
		}
		if row.Err != nil {
			rv.Error = row.Err.Error()
		}
		view.Rows = append(view.Rows, rv)
	}
	return view
}

func roundMillis(ms float64) float64 {
	return math.Round(ms*1000) / 1000
}
