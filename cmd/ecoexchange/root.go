package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vbonduro/ecoexchange/internal/config"
	"github.com/vbonduro/ecoexchange/internal/logging"
)

// cli carries state shared by every subcommand once flags are parsed.
type cli struct {
	v       *viper.Viper
	cfg     *config.Config
	logger  *slog.Logger
	cleanup func()
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.NewViper(), cleanup: func() {}}

	root := &cobra.Command{
		Use:   "ecoexchange",
		Short: "Marketplace for reusable waste materials",
		Long:  `ecoexchange lists, browses and verifies reusable waste materials and records completed transactions.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("log-level", "l", "info", fmt.Sprintf("set log level (%s)", logging.ValidLevels))
	flags.String("log-file", "", "also write logs to this file")
	flags.String("data", "materials.json", "materials and vendors document")
	flags.String("transactions", "demo_data.json", "transactions document")
	flags.String("photo-backend", "local", "photo storage backend (local|s3)")
	flags.String("photo-path", "photos", "directory for the local photo backend")
	c.bind(root, map[string]string{
		"log-level":     config.KeyLogLevel,
		"log-file":      config.KeyLogFile,
		"data":          config.KeyDataPath,
		"transactions":  config.KeyTransactionsPath,
		"photo-backend": config.KeyPhotoBackend,
		"photo-path":    config.KeyPhotoPath,
	}, true)

	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(
		newServeCmd(c),
		newBrowseCmd(c),
		newSellCmd(c),
		newImpactCmd(c),
		newClassifyCmd(c),
		newTransactCmd(c),
		newExportCmd(c),
		newVersionCmd(),
	)
	for _, sub := range root.Commands() {
		c.releaseAfter(sub)
	}
	return root
}

// releaseAfter makes cmd close the log file when it returns, including when
// it fails. PersistentPostRun is skipped on error.
func (c *cli) releaseAfter(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			defer c.release()
			return run(cmd, args)
		}
	}
	if run := cmd.Run; run != nil {
		cmd.Run = func(cmd *cobra.Command, args []string) {
			defer c.release()
			run(cmd, args)
		}
	}
}

func (c *cli) release() {
	c.cleanup()
	c.cleanup = func() {}
}

// bind ties flag names to config keys on c's viper instance.
func (c *cli) bind(cmd *cobra.Command, keys map[string]string, persistent bool) {
	flags := cmd.Flags()
	if persistent {
		flags = cmd.PersistentFlags()
	}
	for name, key := range keys {
		if err := config.BindFlag(c.v, key, flags.Lookup(name)); err != nil {
			slog.Error("Failed to bind flag", "flag", name, "error", err)
		}
	}
}

func (c *cli) setup(cmd *cobra.Command) error {
	file, err := config.ReadFile(c.v)
	if err != nil {
		return err
	}
	c.cfg = config.FromViper(c.v)

	logger, cleanup, err := logging.NewWithWriter(cmd.ErrOrStderr(), c.cfg.LogLevel, c.cfg.LogFile)
	if err != nil {
		return err
	}
	c.logger = logger
	c.cleanup = cleanup

	if file != "" {
		logger.Debug("using config file", "file", file)
	}
	logger.Debug("application started", "version", Version, "command", cmd.Name())
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("An error occurred", "error", err)
		os.Exit(1)
	}
}
