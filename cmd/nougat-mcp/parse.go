package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <pdf>",
	Short: "Transcribe a single PDF and print the result",
	Long: `Parse runs one PDF through the Nougat engine and writes the transcription
to stdout, using the same pipeline as the parse_research_paper MCP tool.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		ctx := cmd.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		res, err := newHandler().Handle(ctx, args[0], format)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), res.Text)
		return nil
	},
}

func init() {
	parseCmd.Flags().String("format", "default", "output format: default, mmd, or md")
	parseCmd.Flags().Duration("timeout", 0, "abort the OCR run after this duration (0 = no timeout)")

	rootCmd.AddCommand(parseCmd)
}
