package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"subtrans/internal/cache"
	"subtrans/internal/config"
	"subtrans/internal/language"
	"subtrans/internal/services/ollama"
	"subtrans/internal/subtitle"
	"subtrans/internal/translator"
)

const pingTimeout = 5 * time.Second

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var (
		sourceFlag string
		targetFlag string
		bilingual  bool
		batchSize  int
		modelFlag  string
		outputFlag string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "translate <file.srt>",
		Short: "Translate an SRT subtitle file",
		Long: `Translate an SRT subtitle file in batches against a local Ollama model.

Batches that fail are split in half and retried so a single bad segment
never sinks the rest of the file. Segments that still fail after
isolation keep their original text and are listed at the end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			jobID := strings.Split(uuid.NewString(), "-")[0]
			log := logger.With("job", jobID)

			inputPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			source := resolveLanguage(sourceFlag)
			target := resolveLanguage(targetFlag)
			if source.Code == target.Code {
				return fmt.Errorf("source and target language are both %s", source.Name)
			}

			raw, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read subtitle file: %w", err)
			}
			set, stats, err := subtitle.Parse(raw)
			if err != nil {
				return fmt.Errorf("parse %s: %w", filepath.Base(inputPath), err)
			}
			if len(set) == 0 {
				return fmt.Errorf("%s contains no subtitle segments", filepath.Base(inputPath))
			}
			if stats.DroppedEmpty > 0 {
				log.Info("dropped empty subtitle blocks", "count", stats.DroppedEmpty)
			}

			model := cfg.Ollama.Model
			if strings.TrimSpace(modelFlag) != "" {
				model = strings.TrimSpace(modelFlag)
			}
			client := ollama.NewClient(ollama.Config{
				BaseURL:        cfg.Ollama.BaseURL,
				Model:          model,
				KeepAlive:      cfg.Ollama.KeepAlive,
				TimeoutSeconds: cfg.Ollama.TimeoutSeconds,
			})

			pingCtx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
			err = client.Ping(pingCtx)
			cancel()
			if err != nil {
				return fmt.Errorf("ollama at %s is not reachable: %w", cfg.Ollama.BaseURL, err)
			}

			var backend translator.Backend = client
			if cfg.Cache.Enabled && !noCache {
				store, err := cache.Open(cfg.Cache.Dir)
				if err != nil {
					log.Warn("translation cache unavailable", "error", err)
				} else {
					defer store.Close()
					backend = cache.NewBackend(client, store, model, log)
				}
			}

			size := cfg.Ollama.BatchSize
			if batchSize > 0 {
				size = batchSize
			}
			opts := []translator.Option{
				translator.WithBatchSize(size),
				translator.WithLogger(log),
			}
			bar := newProgressBar(len(set))
			if bar != nil {
				opts = append(opts, translator.WithProgress(bar.update))
			}

			log.Info("translation started",
				"file", filepath.Base(inputPath),
				"segments", len(set),
				"model", model,
				"source", source.Name,
				"target", target.Name,
				"batch_size", size)

			start := time.Now()
			translated, summary, err := translator.New(backend, opts...).Translate(cmd.Context(), set, source, target)
			if bar != nil {
				bar.stop()
			}
			if err != nil {
				return err
			}

			result := translated
			if bilingual {
				merged, err := subtitle.MergeBilingual(set, translated)
				if err != nil {
					return fmt.Errorf("merge bilingual: %w", err)
				}
				result = merged
			}

			outPath, err := resolveOutputPath(inputPath, outputFlag, cfg.Output.Directory, target, bilingual)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, subtitle.Serialize(result), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			log.Info("translation finished",
				"output", outPath,
				"segments", summary.Total,
				"failed", len(summary.Failed),
				"elapsed", time.Since(start).Round(time.Millisecond).String())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s (%d segments, %d failed)\n", outPath, summary.Total, len(summary.Failed))
			if len(summary.Failed) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Segments kept in the original language:")
				fmt.Fprintln(out, renderFailureTable(set, summary.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "English", "Source language (name or ISO 639-1 code)")
	cmd.Flags().StringVarP(&targetFlag, "target", "t", "Chinese", "Target language (name or ISO 639-1 code)")
	cmd.Flags().BoolVar(&bilingual, "bilingual", false, "Write original and translation together in each segment")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Segments per request (overrides config)")
	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Ollama model (overrides config)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory, or an exact .srt file path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the translation cache")
	return cmd
}

func resolveLanguage(input string) language.Language {
	if lang, ok := language.Parse(input); ok {
		return lang
	}
	return language.Fallback(input)
}

// resolveOutputPath decides where the translated file lands. The --output
// flag wins, then the configured output directory, then the input file's
// own directory. A flag value ending in .srt names the file exactly;
// anything else is treated as a directory.
func resolveOutputPath(inputPath, flagPath, cfgDir string, target language.Language, bilingual bool) (string, error) {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := base + "." + target.Name + ".srt"
	if bilingual {
		name = base + ".bilingual.srt"
	}

	if flag := strings.TrimSpace(flagPath); flag != "" {
		expanded, err := config.ExpandPath(flag)
		if err != nil {
			return "", err
		}
		if strings.EqualFold(filepath.Ext(expanded), ".srt") {
			return expanded, nil
		}
		if err := os.MkdirAll(expanded, 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
		return filepath.Join(expanded, name), nil
	}

	dir := filepath.Dir(inputPath)
	if cfgDir != "" {
		if err := os.MkdirAll(cfgDir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
		dir = cfgDir
	}
	return filepath.Join(dir, name), nil
}

const failureTextLimit = 60

// renderFailureTable lists the segments that kept their original text:
// index, start time, and a trimmed text excerpt.
func renderFailureTable(set subtitle.Set, failed []int) string {
	byIndex := make(map[int]subtitle.Segment, len(set))
	for _, segment := range set {
		byIndex[segment.Index] = segment
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "Text"})
	for _, index := range failed {
		segment, ok := byIndex[index]
		if !ok {
			continue
		}
		tw.AppendRow(table.Row{
			index,
			subtitle.FormatTimestamp(segment.Start),
			truncateText(segment.Text, failureTextLimit),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func truncateText(text string, limit int) string {
	flat := strings.ReplaceAll(text, "\n", " / ")
	runes := []rune(flat)
	if len(runes) <= limit {
		return flat
	}
	return string(runes[:limit-1]) + "…"
}
