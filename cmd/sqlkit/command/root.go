// Package command implements the sqlkit command line.
package command

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zoobzio/sqlkit"
)

// SqlkitCommand holds the state shared by sqlkit commands.
type SqlkitCommand struct {
	v      *viper.Viper
	cfg    Config
	logger *slog.Logger
}

// GetRootCommand creates and returns the root command for sqlkit with all subcommands
func GetRootCommand() *cobra.Command {
	sc := &SqlkitCommand{}

	root := &cobra.Command{
		Use:   "sqlkit",
		Short: "Render dialect-specific DDL and convert result documents",
		Long: `sqlkit renders CREATE SEQUENCE statements for many SQL dialects and
converts serialized query results between JSON and XML.

Configuration:
  Settings are read from ./sqlkit.yaml (or the file given by --config),
  then SQLKIT_* environment variables, then flags. For example:

    dialect: firebird
    capabilities: capabilities.yaml
    log:
      level: debug
      format: json`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Silence usage for application errors, but allow it for flag errors
			cmd.SilenceUsage = true

			v, err := newViper(cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(v, path)
			if err != nil {
				return err
			}
			logger, err := NewLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			sc.v, sc.cfg, sc.logger = v, cfg, logger
			logger.Debug("configuration loaded", "config", v.ConfigFileUsed(), "dialect", cfg.Dialect)
			return nil
		},
	}
	registerFlags(root.PersistentFlags())

	AddRenderCommand(root, sc)
	AddReadCommand(root, sc)
	AddDialectsCommand(root, sc)

	return root
}

// dialect returns the configured target dialect.
func (sc *SqlkitCommand) dialect() (sqlkit.Dialect, error) {
	d, err := sqlkit.ParseDialect(sc.cfg.Dialect)
	if err != nil {
		return "", fmt.Errorf("invalid dialect: %w", err)
	}
	return d, nil
}

// renderer creates a renderer for the configured dialect and capabilities.
func (sc *SqlkitCommand) renderer() (sqlkit.Renderer, error) {
	d, err := sc.dialect()
	if err != nil {
		return nil, err
	}
	table, err := sc.cfg.capabilities()
	if err != nil {
		return nil, err
	}
	return sqlkit.NewRenderer(d, sqlkit.WithCapabilities(table))
}
