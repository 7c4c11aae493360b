package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/source"
)

func newExactCommand(ctx *commandContext) *cobra.Command {
	var (
		kind  string
		query string
		doc   string
		file  string
	)

	cmd := &cobra.Command{
		Use:   "exact",
		Short: "Check whether a document is an exact match worth promoting",
		Long: `Check one document against a query with the exact-match detector.

Examples:
  tierankctl exact --kind author --query "le guin" --doc '{"name": "Ursula K. Le Guin"}'
  tierankctl exact --kind book --query dune --file dune.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := exactDocument(doc, file, cmd)
			if err != nil {
				return err
			}
			svc, err := ctx.searchService(cmd.Context())
			if err != nil {
				return err
			}

			exact, err := svc.ExactMatch(cmd.Context(), query, source.Kind(kind), fields)
			if err != nil {
				return fmt.Errorf("exact match: %w", err)
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{"kind": kind, "title": displayTitle(fields), "exact": exact})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q: exact match %s\n", kind, displayTitle(fields), yesNo(exact))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Document kind: movie, tv, podcast, person, book, author")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Query text")
	cmd.Flags().StringVar(&doc, "doc", "", "Inline JSON document")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with one document (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("doc", "file")
	cmd.MarkFlagsOneRequired("doc", "file")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func exactDocument(inline, file string, cmd *cobra.Command) (document.Fields, error) {
	if inline != "" {
		dec := json.NewDecoder(strings.NewReader(inline))
		dec.UseNumber()
		var f document.Fields
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode --doc: %w", err)
		}
		return f, nil
	}
	docs, err := readDocuments(file, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("expected exactly one document, got %d", len(docs))
	}
	return docs[0], nil
}
