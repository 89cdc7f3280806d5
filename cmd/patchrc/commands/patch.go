package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewPatchCmd creates a new patch command
func NewPatchCmd(ro *opts.RootOpts) *cobra.Command {
	var strict, atomic, backup, async bool

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Apply the configured replacements to their target files",
		Long: `Patch rewrites each target file in place.
It will:
1. Load the active ruleset
2. Read every target file
3. Apply the replacement rules in order
4. Write back only the files that changed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "patch").Logger().WithContext(ctx)

			// Flags override the config, but only when actually set
			flags := ro.Config.FlagsOrDefault()
			if cmd.Flags().Changed("strict") {
				flags.Strict = strict
			}
			if cmd.Flags().Changed("atomic") {
				flags.Atomic = atomic
			}
			if cmd.Flags().Changed("backup") {
				flags.Backup = backup
			}
			if cmd.Flags().Changed("async") {
				flags.Async = async
			}
			ro.Config.Flags = &flags

			return RunPatch(ctx, ro)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when a rule matches nothing anywhere")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "write through a temp file and rename")
	cmd.Flags().BoolVar(&backup, "backup", false, "keep a .bak copy of each patched file")
	cmd.Flags().BoolVar(&async, "async", false, "patch targets concurrently")

	return cmd
}

// RunPatch applies the active ruleset and prints the confirmation line.
// The root command delegates here too, so a bare "patchrc" patches.
func RunPatch(ctx context.Context, ro *opts.RootOpts) error {
	op, err := operation.New(operation.Options{
		Config:    ro.Config,
		StatusMgr: ro.StatusMgr,
		Console:   ro.Console,
		Verbose:   ro.Verbose,
	})
	if err != nil {
		return errors.Errorf("creating operator: %w", err)
	}

	if ro.Verbose {
		ro.Console.StartRunOperation(ctx, log.RunOperation{
			Source:  ro.Config.Location(),
			Targets: len(ro.Config.Targets),
			Rules:   len(ro.Config.Replacements),
		})
	}

	if err := op.Patch(ctx); err != nil {
		return errors.Errorf("patching files: %w", err)
	}

	if ro.Verbose {
		ro.Console.EndRunOperation(ctx)
		ro.Console.LogNewline()
	}

	// The confirmation line only prints when every target went through
	ro.Console.Success(ro.Config.Message)

	return nil
}
