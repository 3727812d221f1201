package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"subtrans/internal/services/ollama"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check Ollama connectivity and model availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			client := ollama.NewClient(ollama.Config{
				BaseURL:   cfg.Ollama.BaseURL,
				Model:     cfg.Ollama.Model,
				KeepAlive: cfg.Ollama.KeepAlive,
			})

			out := cmd.OutOrStdout()
			colorize := shouldColorize(cmd.OutOrStdout())

			tagsCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			models, err := client.Tags(tagsCtx)
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Ollama", statusError, cfg.Ollama.BaseURL+" unreachable", colorize))
				return err
			}
			fmt.Fprintln(out, renderStatusLine("Ollama", statusOK, cfg.Ollama.BaseURL, colorize))

			found := false
			for _, name := range models {
				if name == cfg.Ollama.Model {
					found = true
					break
				}
			}
			if found {
				fmt.Fprintln(out, renderStatusLine("Model", statusOK, cfg.Ollama.Model, colorize))
				return nil
			}
			fmt.Fprintln(out, renderStatusLine("Model", statusWarn,
				fmt.Sprintf("%s not installed (try `ollama pull %s`)", cfg.Ollama.Model, cfg.Ollama.Model), colorize))
			if len(models) > 0 {
				fmt.Fprintln(out, renderStatusLine("Available", statusInfo, fmt.Sprintf("%d models", len(models)), colorize))
				for _, name := range models {
					fmt.Fprintf(out, "    - %s\n", name)
				}
			}
			return nil
		},
	}
}
