package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(ro *opts.RootOpts) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report what patch would change without writing anything",
		Long: `Check dry-runs the active ruleset.
It will:
1. Load the active ruleset
2. Read every target file
3. Apply the rules in memory only
4. Report which files would change`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

			op, err := operation.New(operation.Options{
				Config:    ro.Config,
				StatusMgr: ro.StatusMgr,
				Console:   ro.Console,
				Verbose:   ro.Verbose,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			results, err := op.Check(ctx, operation.CheckOptions{Diff: showDiff})
			if err != nil {
				return errors.Errorf("checking files: %w", err)
			}

			// Failed targets show up in the report instead of aborting
			// the run, so one bad path never hides the rest
			reporter := log.NewReporter(ctx, ro.Out)
			var wouldPatch, unchanged, failed int
			for _, res := range results {
				reporter.LogCheckResult(res)
				switch res.Outcome {
				case log.CheckWouldPatch:
					wouldPatch++
				case log.CheckFailed:
					failed++
				default:
					unchanged++
				}
			}
			reporter.LogCheckSummary(wouldPatch, unchanged, failed)

			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "show a diff for files that would change")

	return cmd
}
