package main

import (
	"flag"
	"strconv"

	"github.com/born-ml/tensorcheck/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var (
	cfgFile   string
	activeCfg config.Config
	loaded    bool

	klogFlags = flag.NewFlagSet("klog", flag.ContinueOnError)
)

func init() {
	klog.InitFlags(klogFlags)
}

// NewRootCmd builds the tensorcmp command tree. Configuration is loaded and
// logging set up in PersistentPreRunE, before any subcommand runs.
func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "tensorcmp",
		Short:         "Compare tensor checkpoints within a numeric tolerance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = cfg
			loaded = true
			return setupLogger(cfg.Log.Verbosity)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newDiffCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setupLogger points klog at stderr with the configured verbosity.
func setupLogger(verbosity int) error {
	if err := klogFlags.Set("logtostderr", "true"); err != nil {
		return errors.Wrap(err, "configure klog")
	}
	if err := klogFlags.Set("v", strconv.Itoa(verbosity)); err != nil {
		return errors.Wrap(err, "configure klog verbosity")
	}
	return nil
}

func requireConfig() (config.Config, error) {
	if !loaded {
		return config.Config{}, errors.New("configuration not loaded")
	}
	return activeCfg, nil
}
