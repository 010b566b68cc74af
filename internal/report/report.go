// Package report renders performance records and comparisons for humans.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/okian/wordlebench/internal/domain/perf"
	"github.com/okian/wordlebench/internal/domain/stats"
)

type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	bar     lipgloss.Style
	fail    lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	header  lipgloss.Style
	border  lipgloss.Border
	barRune string
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain, muted: plain, bar: plain, fail: plain,
			good: plain, bad: plain, header: plain,
			border:  lipgloss.ASCIIBorder(),
			barRune: "#",
		}
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2CD7C7")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		bar:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		good:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		bad:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		header:  lipgloss.NewStyle().Bold(true),
		border:  lipgloss.RoundedBorder(),
		barRune: "█",
	}
}

func (s styles) table(headers ...string) *table.Table {
	return table.New().
		Border(s.border).
		BorderStyle(s.muted).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

// WriteRecord renders the summary and turn histogram of one record.
func WriteRecord(w io.Writer, rec *perf.Record, opts ...Option) error {
	o := newOptions(w, opts)
	st := newStyles(*o.color)
	sum := rec.Summary()

	var b strings.Builder
	b.WriteString(st.title.Render(rec.Strategy))
	b.WriteString("\n")
	mode := "normal"
	if rec.HardMode {
		mode = "hard"
	}
	b.WriteString(st.muted.Render(fmt.Sprintf("corpus %s (%d words, %s), %d turns, %s mode",
		rec.Corpus.Name, rec.Corpus.Size, shortFingerprint(rec.Corpus.Fingerprint), rec.MaxTurns, mode)))
	b.WriteString("\n")

	t := st.table("games", "solved", "failed", "errors", "solve rate", "mean", "median", "guesses").
		Row(
			strconv.Itoa(sum.Total),
			strconv.Itoa(sum.Solved),
			strconv.Itoa(sum.Failed),
			strconv.Itoa(sum.StrategyErrors),
			percent(sum.SolveRate),
			fixed(sum.MeanTurns),
			fixed(sum.MedianTurns),
			strconv.Itoa(sum.CumulativeGuesses),
		)
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(histogram(sum, o.barWidth, st))

	_, err := io.WriteString(w, b.String())
	return err
}

// histogram draws one bar per turn count plus one for failed games.
func histogram(sum perf.Summary, width int, st styles) string {
	peak := sum.Failed
	for _, n := range sum.Histogram {
		peak = max(peak, n)
	}
	label := len(strconv.Itoa(len(sum.Histogram)))

	var b strings.Builder
	line := func(name string, n int, style lipgloss.Style) {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat(st.barRune, n*width/peak)
			if n > 0 && bar == "" {
				bar = st.barRune
			}
		}
		fmt.Fprintf(&b, "%*s | %s %d\n", label, name, style.Render(bar), n)
	}
	for i, n := range sum.Histogram {
		line(strconv.Itoa(i+1), n, st.bar)
	}
	line("X", sum.Failed, st.fail)
	return b.String()
}

// WriteRun renders one row per record, in the given order.
func WriteRun(w io.Writer, records []*perf.Record, opts ...Option) error {
	o := newOptions(w, opts)
	st := newStyles(*o.color)

	t := st.table("strategy", "games", "solve rate", "mean", "median", "errors")
	for _, rec := range records {
		sum := rec.Summary()
		t.Row(
			rec.Strategy,
			strconv.Itoa(sum.Total),
			percent(sum.SolveRate),
			fixed(sum.MeanTurns),
			fixed(sum.MedianTurns),
			strconv.Itoa(sum.StrategyErrors),
		)
	}
	_, err := io.WriteString(w, t.String()+"\n")
	return err
}

// WriteComparison renders both summaries, each test and the verdict.
func WriteComparison(w io.Writer, c *stats.Comparison, opts ...Option) error {
	o := newOptions(w, opts)
	st := newStyles(*o.color)

	var b strings.Builder
	b.WriteString(st.title.Render(fmt.Sprintf("%s vs %s", c.CurrentLabel, c.BaselineLabel)))
	b.WriteString("\n")

	summaries := st.table("", "current", "baseline").
		Row("games", strconv.Itoa(c.Current.Total), strconv.Itoa(c.Baseline.Total)).
		Row("solve rate", percent(c.Current.SolveRate), percent(c.Baseline.SolveRate)).
		Row("mean turns", fixed(c.Current.MeanTurns), fixed(c.Baseline.MeanTurns)).
		Row("median turns", fixed(c.Current.MedianTurns), fixed(c.Baseline.MedianTurns)).
		Row("failed", strconv.Itoa(c.Current.Failed), strconv.Itoa(c.Baseline.Failed))
	b.WriteString(summaries.String())
	b.WriteString("\n")

	tests := st.table("test", "statistic", "p-value", "significant")
	for _, r := range []*stats.TestResult{&c.Turns, c.SolvedTurns, &c.SolveRate} {
		if r == nil {
			continue
		}
		tests.Row(r.Name, fixed(r.Statistic), strconv.FormatFloat(r.PValue, 'g', 4, 64), yesNo(r.Significant))
	}
	b.WriteString(tests.String())
	b.WriteString("\n")

	verdict := st.muted
	switch c.Verdict {
	case stats.VerdictImproved:
		verdict = st.good
	case stats.VerdictRegressed:
		verdict = st.bad
	}
	fmt.Fprintf(&b, "effect size %s, alpha %s: %s\n",
		fixed(c.EffectSize), strconv.FormatFloat(c.Alpha, 'g', -1, 64), verdict.Render(strings.ReplaceAll(string(c.Verdict), "_", " ")))

	_, err := io.WriteString(w, b.String())
	return err
}

func percent(f float64) string { return strconv.FormatFloat(f*100, 'f', 1, 64) + "%" }
func fixed(f float64) string   { return strconv.FormatFloat(f, 'f', 3, 64) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
