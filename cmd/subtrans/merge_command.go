package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/subtitle"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "merge <original.srt> <translated.srt>",
		Short: "Merge two SRT files into one bilingual file",
		Long: `Merge an original and a translated SRT file segment by segment.

Both files must cover the same segment indexes; timing is taken from the
original. Each merged segment shows the original text on the first line
and the translation on the second.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := readSubtitleFile(args[0])
			if err != nil {
				return err
			}
			translated, err := readSubtitleFile(args[1])
			if err != nil {
				return err
			}

			merged, err := subtitle.MergeBilingual(original, translated)
			if err != nil {
				return err
			}

			outPath := strings.TrimSpace(outputFlag)
			if outPath == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				outPath = filepath.Join(filepath.Dir(args[0]), base+".bilingual.srt")
			}
			expanded, err := config.ExpandPath(outPath)
			if err != nil {
				return err
			}
			if err := os.WriteFile(expanded, subtitle.Serialize(merged), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d segments)\n", expanded, len(merged))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path")
	return cmd
}

func readSubtitleFile(path string) (subtitle.Set, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}
	set, _, err := subtitle.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(expanded), err)
	}
	return set, nil
}
