package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(ro *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the active replacement rules",
		Long: `Rules shows the ruleset patch would apply, shared rules first,
then target-local ones, in the order they run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rows := make([]log.RuleRow, 0, len(ro.Config.Replacements))
			for _, r := range ro.Config.Replacements {
				row := log.RuleRow{Scope: "shared", Old: r.Old, New: r.New}
				if r.File != nil {
					row.Glob = *r.File
				}
				rows = append(rows, row)
			}
			for _, t := range ro.Config.Targets {
				for _, r := range t.Replacements {
					row := log.RuleRow{Scope: t.Path, Old: r.Old, New: r.New}
					if r.File != nil {
						row.Glob = *r.File
					}
					rows = append(rows, row)
				}
			}

			ro.Console.Info(ro.Config.String())

			reporter := log.NewReporter(ctx, ro.Out)
			if err := reporter.LogRulesTable(rows); err != nil {
				return errors.Errorf("rendering rules table: %w", err)
			}

			return nil
		},
	}
}
