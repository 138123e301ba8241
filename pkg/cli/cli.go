// Package cli implements the storyq command tree: serving the search API,
// explaining search strings and running searches against a local cache.
package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/storyq/storyq/pkg/config"
	"github.com/storyq/storyq/pkg/query"
)

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "storyq",
		Short:         "Search code-review stories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().String("log-level", "", "log level, overriding the config file")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table or json")
	cmd.PersistentFlags().StringP("user", "u", "", "user that self refers to (default: config username)")

	cmd.AddCommand(
		newServeCmd(),
		newExplainCmd(),
		newSearchCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig reads the config named by --config and applies the logging
// flags to the standard logrus logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logrus.SetLevel(level)
	logrus.SetOutput(cmd.ErrOrStderr())

	return cfg, nil
}

func identity(cmd *cobra.Command, cfg *config.Config) query.Context {
	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		user = cfg.Username
	}

	return query.Context{Username: user}
}

// searchString joins the positional arguments, so unquoted shell words form
// one search string.
func searchString(args []string) string {
	return strings.Join(args, " ")
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("output")

	return format
}
