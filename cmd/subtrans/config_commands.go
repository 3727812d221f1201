package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subtrans/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveInitTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Adjust the [ollama] section for your local models, then run `subtrans check`.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func resolveInitTarget(targetPath string) (string, error) {
	target := strings.TrimSpace(targetPath)
	if target == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return defaultPath, nil
	}
	expanded, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return expanded, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate the configuration and show the effective settings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			cfg, resolved, exists, err := config.Load(path)
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Config", statusError, err.Error(), colorize))
				return err
			}

			source := resolved
			if !exists {
				source += " (not found, defaults used)"
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusOK, source, colorize))
			fmt.Fprintln(out, renderStatusLine("Model", statusInfo, cfg.Ollama.Model, colorize))
			fmt.Fprintln(out, renderStatusLine("Ollama", statusInfo, cfg.Ollama.BaseURL, colorize))
			fmt.Fprintln(out, renderStatusLine("Batch size", statusInfo, strconv.Itoa(cfg.Ollama.BatchSize), colorize))

			cacheState := "disabled"
			if cfg.Cache.Enabled {
				cacheState = cfg.Cache.Dir
			}
			fmt.Fprintln(out, renderStatusLine("Cache", statusInfo, cacheState, colorize))

			logState := cfg.Logging.Format + "/" + cfg.Logging.Level
			if cfg.Logging.File != "" {
				logState += " to " + cfg.Logging.File
			}
			fmt.Fprintln(out, renderStatusLine("Logging", statusInfo, logState, colorize))
			return nil
		},
	}
}
