package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tierank/internal/domain/textnorm"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <text>...",
		Short: "Show the canonical form and tokens of text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type row struct {
				Text       string   `json:"text"`
				Normalized string   `json:"normalized"`
				Tokens     []string `json:"tokens"`
			}
			rows := make([]row, len(args))
			for i, a := range args {
				norm := textnorm.Normalize(a)
				rows[i] = row{Text: a, Normalized: norm, Tokens: textnorm.Tokens(norm)}
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, rows)
			}

			cells := make([][]string, len(rows))
			for i, r := range rows {
				cells[i] = []string{r.Text, r.Normalized, strings.Join(r.Tokens, " ")}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Text", "Normalized", "Tokens"}, cells, nil))
			return nil
		},
	}
}
