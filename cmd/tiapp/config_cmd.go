package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/tiappxml/internal/config"
	"github.com/quantmind-br/tiappxml/internal/tui"
)

// runEditor is replaced in tests
var runEditor = tui.Run

func (c *cli) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := config.Marshal(c.cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:         "path",
			Short:       "Print the configuration file location",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{annotationSkipConfig: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.printer(cmd).Path(c.configPath())
			},
		},
		c.newConfigInitCmd(),
		&cobra.Command{
			Use:   "edit",
			Short: "Edit the configuration interactively",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path := c.configPath()
				return runEditor(tui.Options{
					Config: c.cfg,
					Path:   path,
					SaveFunc: func(cfg *config.Config) error {
						return config.Save(cfg, path)
					},
				})
			},
		},
	)

	return cmd
}

func (c *cli) newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a configuration file with default values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath()
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return err
				}
			}

			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			c.log.Info().Str("path", path).Msg("Configuration written")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

// configPath returns the file named by --config, or the default location
func (c *cli) configPath() string {
	if c.cfgFile != "" {
		return c.cfgFile
	}
	return config.ConfigFilePath()
}
