package opts

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared dependencies used by all commands
type RootOpts struct {
	Config    *config.Config
	StatusMgr *status.Manager
	Console   *log.Logger
	Verbose   bool

	// Out receives user-facing output. Defaults to os.Stdout.
	Out io.Writer
}

// Init loads the config and wires the shared dependencies. It must run
// after flag parsing so configFile reflects what the user passed.
func (o *RootOpts) Init(ctx context.Context, configFile string, verbose bool) error {
	if o.Out == nil {
		o.Out = os.Stdout
	}

	cfg, err := config.LoadOrDefault(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("resolving working directory: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	o.Config = cfg
	o.StatusMgr = status.New(wd, logger)
	// The console mirror only surfaces warnings, the real log stream is
	// the context logger
	o.Console = log.New(o.Out, zerolog.WarnLevel)
	o.Verbose = verbose

	return nil
}
