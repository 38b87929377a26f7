package report

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/nao1215/trendwatch/internal/model"
)

// FileNameFor derives the report file name for the given date using the
// local calendar date of the time value (not UTC-normalized).
func FileNameFor(date time.Time) string {
	return "trending-" + date.Format("2006-01-02") + ".md"
}

// displayDate renders the long-form report date: weekday, month, day, year.
func displayDate(date time.Time) string {
	return date.Format("Monday, January 2, 2006")
}

// Builder renders trending reports as Markdown documents.
type Builder struct {
	// now is the rendering clock, injectable for tests so the generated
	// timestamp lines are deterministic.
	now func() time.Time
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderClock replaces the rendering clock.
func WithBuilderClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// NewBuilder creates a Builder with the wall clock.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildDocument renders the report for the given records and date.
// The document is the concatenation of a title, a summary, one itemized
// block per record in input order, and a fixed footer.
func (b *Builder) BuildDocument(projects []model.Project, date time.Time) string {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1("GitHub Trending Report - " + displayDate(date))
	md.PlainText("")

	b.writeSummary(md, projects)
	b.writeProjectList(md, projects)
	b.writeFooter(md, date)

	// Building into a bytes.Buffer cannot fail.
	_ = md.Build()
	return buf.String()
}

// writeSummary writes the aggregate section: record count, summed counts,
// and the language tally.
func (b *Builder) writeSummary(md *markdown.Markdown, projects []model.Project) {
	var totalStars, totalForks int
	for _, p := range projects {
		totalStars += p.Stars
		totalForks += p.Forks
	}

	md.H2("Summary")
	md.PlainText("")
	md.BulletList(
		"**Total projects**: "+strconv.Itoa(len(projects)),
		"**Total stars**: "+FormatCount(totalStars),
		"**Total forks**: "+FormatCount(totalForks),
		"**Top languages**: "+languageTally(projects),
	)
	md.PlainText("")
	md.PlainTextf("> Report generated at: %s", b.now().Format("2006-01-02 15:04:05"))
	md.PlainText("")
}

// languageTally renders the top-5 languages by descending frequency as
// "lang(count)" comma-joined. Ties keep first-seen order. Returns "none"
// when no record carries a language.
func languageTally(projects []model.Project) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range projects {
		if p.Language == "" {
			continue
		}
		if _, seen := counts[p.Language]; !seen {
			order = append(order, p.Language)
		}
		counts[p.Language]++
	}
	if len(order) == 0 {
		return "none"
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 5 {
		order = order[:5]
	}

	tally := ""
	for i, lang := range order {
		if i > 0 {
			tally += ", "
		}
		tally += fmt.Sprintf("%s(%d)", lang, counts[lang])
	}
	return tally
}

// writeProjectList writes one block per record in input order. The block
// index is the 1-based position in the input sequence, independent of the
// record's Rank field. Empty optional fields omit their lines.
func (b *Builder) writeProjectList(md *markdown.Markdown, projects []model.Project) {
	md.H2("Trending Projects")
	md.PlainText("")

	for i, p := range projects {
		md.PlainTextf("### %d. %s", i+1, p.Name)
		md.PlainText("")

		if p.Description != "" {
			md.PlainTextf("**Description**: %s", p.Description)
			md.PlainText("")
		}

		md.PlainTextf("**Link**: [%s](%s)", p.Name, p.URL)
		md.PlainText("")

		md.PlainText("**Stats**:")
		stats := []string{
			"Stars: " + FormatCount(p.Stars),
			"Forks: " + FormatCount(p.Forks),
		}
		if p.Language != "" {
			stats = append(stats, "Language: "+p.Language)
		}
		if p.UpdatedAt != "" {
			stats = append(stats, "Updated: "+p.UpdatedAt)
		}
		md.BulletList(stats...)
		md.PlainText("")
		md.HorizontalRule()
		md.PlainText("")
	}
}

// writeFooter writes the fixed informational boilerplate with the
// rendering timestamp and the display-form report date.
func (b *Builder) writeFooter(md *markdown.Markdown, date time.Time) {
	md.H2("About")
	md.PlainText("")
	md.PlainText("This report was generated automatically by the GitHub trending monitor.")
	md.PlainText("")
	md.BulletList(
		"**Data source**: [GitHub Trending](https://github.com/trending)",
		"**Generated at**: "+b.now().Format("2006-01-02 15:04:05"),
		"**Report date**: "+displayDate(date),
	)
	md.PlainText("")
	md.PlainText("> Tip: projects are listed in trending order as scraped from the source page.")
	md.PlainText("")
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Powered by trendwatch*")
}
