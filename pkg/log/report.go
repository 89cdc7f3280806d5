package log

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

func init() {
	// Unchanged files print through the Debug printer
	pterm.EnableDebugMessages()
}

// 📢 Reporter provides user-friendly feedback for dry runs and rule listings
type Reporter struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewReporter creates a new reporter writing to out
func NewReporter(ctx context.Context, out io.Writer) *Reporter {
	return &Reporter{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// 🎨 CheckOutcome represents what a patch run would do to one file
type CheckOutcome int

const (
	CheckWouldPatch CheckOutcome = iota
	CheckUnchanged
	CheckFailed
)

// 🖼️ CheckResult represents the dry-run outcome for one file
type CheckResult struct {
	Path         string
	Outcome      CheckOutcome
	Replacements int
	Diff         string // rendered diff, empty unless requested
	Error        error
}

// 📝 LogCheckResult logs a dry-run outcome with appropriate emoji and formatting
func (r *Reporter) LogCheckResult(res CheckResult) {
	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch res.Outcome {
	case CheckWouldPatch:
		prefix = "🔄"
		action = "Would patch"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case CheckFailed:
		prefix = "❌"
		action = "Failed"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	default:
		prefix = "⏭️"
		action = "Unchanged"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	}

	printer = printer.WithWriter(r.out)

	msg := fmt.Sprintf("%s %s", action, res.Path)
	if res.Replacements > 0 {
		msg += fmt.Sprintf(" (%d replacements)", res.Replacements)
	}

	if res.Error != nil {
		printer.Println(msg)
		pterm.Error.WithWriter(r.out).Println(res.Error)
		r.log.Error().Err(res.Error).Msg(msg) // Also log to zerolog for debugging
		return
	}

	printer.Println(msg)
	if res.Diff != "" {
		pterm.DefaultBasicText.WithWriter(r.out).Println(res.Diff)
	}
	r.log.Info().Msg(msg)
}

// 📊 LogCheckSummary logs the overall dry-run verdict
func (r *Reporter) LogCheckSummary(wouldPatch, unchanged, failed int) {
	description := fmt.Sprintf("%d would patch, %d unchanged, %d failed", wouldPatch, unchanged, failed)
	switch {
	case failed > 0:
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(r.out).Println(description)
		r.log.Error().Msg(description)
	case wouldPatch > 0:
		pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).WithWriter(r.out).Println(description)
		r.log.Info().Msg(description)
	default:
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(r.out).Println(description)
		r.log.Info().Msg(description)
	}
}

// 📋 RuleRow is one line of the rules table
type RuleRow struct {
	Scope string // "shared" or the target path the rule is local to
	Old   string
	New   string
	Glob  string // file filter, empty when the rule applies everywhere
}

// 📋 LogRulesTable renders the active ruleset as a table
func (r *Reporter) LogRulesTable(rows []RuleRow) error {
	data := pterm.TableData{{"Scope", "Old", "New", "File filter"}}
	for _, row := range rows {
		glob := row.Glob
		if glob == "" {
			glob = "-"
		}
		data = append(data, []string{row.Scope, row.Old, row.New, glob})
	}

	r.log.Debug().Int("rules", len(rows)).Msg("rendering rules table")
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(r.out).Render()
}
