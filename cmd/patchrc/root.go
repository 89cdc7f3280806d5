package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/commands"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
)

var (
	// Flags
	configFile string
	debugFlag  bool
	verbose    bool
)

// NewRootCommand wires up the root command. ro is filled in by the
// persistent pre-run, after cobra has parsed the flags.
func NewRootCommand(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patchrc",
		Short: "A tool for patching source files with configured replacements",
		Long: `patchrc rewrites hardcoded calls in source files using an ordered
ruleset, so local builds run against mocked auth instead of the real
service. Without a config file it applies its builtin ruleset.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			return ro.Init(cmd.Context(), configFile, verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// A bare "patchrc" patches
			return commands.RunPatch(cmd.Context(), ro)
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(
		commands.NewPatchCmd(ro),
		commands.NewCheckCmd(ro),
		commands.NewRulesCmd(ro),
		NewVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: probe for .patchrc files)")
	cmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "print a line per target file")
}

// setupLogging configures zerolog based on flags. The default stays
// quiet so a clean run prints nothing but the confirmation line.
func setupLogging() {
	if debugFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// TODO(dr.methodical): 📝 Add an Example block to the root command
