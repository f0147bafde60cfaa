package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/tiappxml/internal/config"
	"github.com/quantmind-br/tiappxml/internal/domain"
	"github.com/quantmind-br/tiappxml/internal/manifest"
	"github.com/quantmind-br/tiappxml/internal/output"
	"github.com/quantmind-br/tiappxml/internal/utils"
	"github.com/quantmind-br/tiappxml/internal/xmldoc"
)

func (c *cli) newFindCmd() *cobra.Command {
	var candidates bool

	cmd := &cobra.Command{
		Use:   "find [dir]",
		Short: "Print the path of the nearest tiapp.xml",
		Long: `Searches dir (default: the working directory) and each of its ancestors
for a tiapp.xml and prints the first one found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.startDir(args)
			if err != nil {
				return err
			}

			locator := manifest.NewLocator(nil, c.log)
			if candidates {
				return c.printer(cmd).Lines("candidates", locator.Candidates(dir))
			}

			path, ok := locator.FindFrom(dir)
			if !ok {
				return fmt.Errorf("%w: searched upward from %s", manifest.ErrNotFound, dir)
			}
			return c.printer(cmd).Path(path)
		},
	}

	cmd.Flags().BoolVar(&candidates, "candidates", false, "List every path the search would check, nearest first")
	return cmd
}

func (c *cli) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print a manifest as parsed",
		Long: `Loads file, or the nearest tiapp.xml when no file is given, and prints the
document serialized back to XML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tiapp, err := c.openManifest(args)
			if err != nil {
				return err
			}

			s, err := tiapp.Summary()
			if err != nil {
				return err
			}
			c.record(cmd.Context(), s)

			out := xmldoc.Serialize(tiapp.Doc())
			if !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func (c *cli) newInfoCmd() *cobra.Command {
	var requireSDK string

	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Summarize the application metadata of a manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tiapp, err := c.openManifest(args)
			if err != nil {
				return err
			}

			s, err := tiapp.Summary()
			if err != nil {
				return err
			}
			c.record(cmd.Context(), s)

			if err := c.printer(cmd).Summary(s); err != nil {
				return err
			}

			if requireSDK != "" {
				ok, err := s.SDKSatisfies(requireSDK)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("sdk-version %q does not satisfy %q", s.SDKVersion, requireSDK)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&requireSDK, "require-sdk", "", "Fail unless sdk-version satisfies this constraint (e.g. \">= 12.0.0\")")
	return cmd
}

func (c *cli) newRecentCmd() *cobra.Command {
	var (
		clearAll bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently loaded manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.historyEnabled() {
				return domain.ErrHistoryDisabled
			}

			store, err := openHistoryStore(c.cfg.History)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer store.Close()

			if clearAll {
				if err := store.Clear(); err != nil {
					return err
				}
				c.log.Info().Msg("History cleared")
				return nil
			}

			if limit < 1 {
				limit = c.cfg.History.Limit
			}
			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return c.printer(cmd).Entries(entries)
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "Remove all history entries")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Max entries to list (default from history.limit)")
	return cmd
}

func (c *cli) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "doctor",
		Short:       "Check configuration, discovery and history",
		Long:        "Verifies that the configuration loads, that a manifest can be found and parsed from the working directory, and that the history store opens.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Checking tiapp setup...")
			allPassed := true

			// Check 1: Config file
			fmt.Fprint(out, "  Config file: ")
			cfg, err := config.LoadFrom(c.v)
			switch {
			case err != nil:
				fmt.Fprintf(out, "FAILED (%v)\n", err)
				allPassed = false
				cfg = config.Default()
			case c.v.ConfigFileUsed() != "":
				fmt.Fprintf(out, "OK (%s)\n", c.v.ConfigFileUsed())
			default:
				fmt.Fprintln(out, "OK (defaults)")
			}
			c.cfg = cfg

			// Check 2: the manifest show and info would load
			fmt.Fprint(out, "  Manifest: ")
			tiapp, err := c.openManifest(nil)
			switch {
			case err == nil:
				fmt.Fprintf(out, "OK (%s)\n", tiapp.File())
			case errors.Is(err, manifest.ErrNotFound) && !c.manifestConfigured():
				fmt.Fprintf(out, "NOT FOUND (%v)\n", err)
			default:
				fmt.Fprintf(out, "FAILED (%v)\n", err)
				allPassed = false
			}

			// Check 3: History store
			fmt.Fprint(out, "  History: ")
			if !c.historyEnabled() {
				fmt.Fprintln(out, "DISABLED")
			} else if n, err := countHistory(cmd.Context(), cfg.History); err != nil {
				fmt.Fprintf(out, "FAILED (%v)\n", err)
				allPassed = false
			} else {
				fmt.Fprintf(out, "OK (%d entries in %s)\n", n, cfg.History.Directory)
			}

			fmt.Fprintln(out)
			if allPassed {
				fmt.Fprintln(out, "All critical checks passed!")
			} else {
				fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
			}
			return nil
		},
	}
}

func (c *cli) printer(cmd *cobra.Command) *output.Printer {
	format := config.DefaultOutputFormat
	if c.cfg != nil {
		format = c.cfg.Output.Format
	}
	return output.NewPrinter(cmd.OutOrStdout(), format)
}

// startDir resolves the directory a search begins from
func (c *cli) startDir(args []string) (string, error) {
	switch {
	case len(args) > 0:
		dir := utils.AbsPath(args[0])
		if !utils.IsDir(utils.OSFileSystem{}, dir) {
			return "", fmt.Errorf("%w: not a directory: %s", manifest.ErrInvalidArgument, dir)
		}
		return dir, nil
	case c.cfg != nil && c.cfg.Manifest.StartDir != "":
		return utils.AbsPath(c.cfg.Manifest.StartDir), nil
	default:
		return getwd()
	}
}

// openManifest loads the manifest named by args, the configured manifest.file,
// or the nearest one to the start directory, in that order.
func (c *cli) openManifest(args []string) (*manifest.Tiapp, error) {
	opts := []manifest.Option{manifest.WithLogger(c.log)}

	var dir string
	switch {
	case len(args) > 0:
		opts = append(opts, manifest.WithFile(utils.AbsPath(args[0])))
	case c.manifestConfigured():
		value := c.cfg.Manifest.File
		if s, ok := value.(string); ok {
			value = utils.AbsPath(s)
		}
		opts = append(opts, manifest.WithFileValue(value))
	default:
		var err error
		if dir, err = c.startDir(nil); err != nil {
			return nil, err
		}
		opts = append(opts, manifest.WithStartDir(dir))
	}

	tiapp, err := manifest.New(opts...)
	if err != nil {
		return nil, err
	}
	if !tiapp.Loaded() {
		return nil, fmt.Errorf("%w: searched upward from %s", manifest.ErrNotFound, dir)
	}

	c.log.WithPath(tiapp.File()).Debug().Msg("Manifest loaded")
	return tiapp, nil
}

func (c *cli) manifestConfigured() bool {
	return c.cfg != nil && c.cfg.Manifest.File != nil && c.cfg.Manifest.File != ""
}

func (c *cli) historyEnabled() bool {
	return !c.noHistory && c.cfg != nil && c.cfg.History.Enabled
}

// record adds a loaded manifest to the history store.
// Failures are logged and never fail the command.
func (c *cli) record(ctx context.Context, s manifest.Summary) {
	if !c.historyEnabled() {
		return
	}

	store, err := openHistoryStore(c.cfg.History)
	if err != nil {
		c.log.Warn().Err(err).Msg("History unavailable")
		return
	}
	defer store.Close()

	err = store.Record(ctx, domain.HistoryEntry{
		Path:    utils.AbsPath(s.File),
		AppID:   s.ID,
		Name:    s.Name,
		Version: s.Version,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		c.log.Warn().Err(err).Msg("Failed to record history")
	}
}

func countHistory(ctx context.Context, hc config.HistoryConfig) (int, error) {
	store, err := openHistoryStore(hc)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	entries, err := store.List(ctx, 0)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
