package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/tiappxml/internal/config"
	"github.com/quantmind-br/tiappxml/internal/domain"
	"github.com/quantmind-br/tiappxml/internal/history"
	"github.com/quantmind-br/tiappxml/internal/output"
	"github.com/quantmind-br/tiappxml/internal/utils"
	"github.com/quantmind-br/tiappxml/pkg/version"
)

// annotationSkipConfig marks commands that must run even with a broken config
const annotationSkipConfig = "skip-config"

// Dependencies for testing
var (
	openHistoryStore = func(cfg config.HistoryConfig) (domain.HistoryStore, error) {
		return history.NewBadgerStore(history.Options{
			Directory: cfg.Directory,
			TTL:       cfg.TTL,
		})
	}
	getwd = os.Getwd
)

// cli holds state shared by the command tree of a single invocation
type cli struct {
	v         *viper.Viper
	cfgFile   string
	verbose   bool
	noHistory bool

	cfg *config.Config
	log *utils.Logger
}

func main() {
	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "tiapp",
		Short: "Locate and inspect Titanium tiapp.xml manifests",
		Long: `tiapp finds the tiapp.xml manifest that governs a directory by searching
upward toward the filesystem root, loads it, and prints its contents or a
summary of the application metadata it declares.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ~/.tiapp/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("format", "f", config.DefaultOutputFormat, "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().Bool("no-history", false, "Do not record loaded manifests")
	rootCmd.PersistentFlags().String("start-dir", "", "Directory to start the manifest search from")

	// Bind flags to viper
	_ = c.v.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
	_ = c.v.BindPFlag("manifest.start_dir", rootCmd.PersistentFlags().Lookup("start-dir"))

	// Add subcommands
	rootCmd.AddCommand(
		c.newFindCmd(),
		c.newShowCmd(),
		c.newInfoCmd(),
		c.newRecentCmd(),
		c.newDoctorCmd(),
		c.newConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// setup loads configuration and builds the logger before any subcommand runs
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	}
	c.noHistory, _ = cmd.Flags().GetBool("no-history")

	if cmd.Annotations[annotationSkipConfig] == "true" {
		c.log = c.newLogger(cmd, config.Default().Logging)
		return nil
	}

	cfg, err := config.LoadFrom(c.v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.cfg = cfg
	c.log = c.newLogger(cmd, cfg.Logging)
	return nil
}

func (c *cli) newLogger(cmd *cobra.Command, lc config.LoggingConfig) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:   lc.Level,
		Format:  lc.Format,
		Output:  cmd.ErrOrStderr(),
		Verbose: c.verbose,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// config is skipped here, so read the flag directly
			format, _ := cmd.Flags().GetString("format")
			if format == "" || format == config.FormatText {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Full())
				return err
			}
			return output.NewPrinter(cmd.OutOrStdout(), format).Structured(version.Get())
		},
	}
}
