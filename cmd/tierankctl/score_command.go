package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	domrank "github.com/kailas-cloud/tierank/internal/domain/rank"
	"github.com/kailas-cloud/tierank/internal/domain/source"
	searchuc "github.com/kailas-cloud/tierank/internal/usecase/search"
)

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var (
		kind  string
		query string
		file  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rank a JSON file of candidates for a query",
		Long: `Rank candidate documents of one kind against a query and print the
resulting order with the tier, sort keys and matched rule of every hit.

Examples:
  tierankctl score --kind movie --query "dark knight" --file movies.json
  cat books.json | tierankctl score --kind book --query dune --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := readDocuments(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			svc, err := ctx.searchService(cmd.Context())
			if err != nil {
				return err
			}

			k := source.Kind(kind)
			res, err := svc.RankDomain(cmd.Context(), query, k, docs, limit)
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}

			exact := false
			if len(res.Hits) > 0 {
				exact, err = svc.ExactMatch(cmd.Context(), query, k, res.Hits[0].Document)
				if err != nil {
					return fmt.Errorf("exact match: %w", err)
				}
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, scoreJSON(&res, exact))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderHits(res.Hits))
			fmt.Fprintf(out, "%d of %d candidates shown\n", len(res.Hits), res.Total)
			fmt.Fprintf(out, "Top hit exact match: %s\n", yesNo(exact))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Candidate kind: movie, tv, podcast, person, book, author")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Query text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with candidates (- for stdin)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum hits to print (default from config)")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("query")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func renderHits(hits []searchuc.Hit) string {
	headers := []string{"#", "Tier", "Secondary", "Tertiary", "Rule", "Title"}
	aligns := []columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft}
	rows := make([][]string, 0, len(hits))
	for i, h := range hits {
		secondary, tertiary := keyColumns(h.Key)
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(int(h.Tier())),
			secondary,
			tertiary,
			h.Rule,
			displayTitle(h.Document),
		})
	}
	return renderTable(headers, rows, aligns)
}

// keyColumns formats the tie-break components of a key.
func keyColumns(k domrank.Key) (string, string) {
	switch k := k.(type) {
	case domrank.MediaKey:
		return "year " + strconv.FormatInt(k.Year, 10), "pop " + formatFloat(k.Popularity)
	case domrank.PodcastKey:
		return "pop " + formatFloat(k.Popularity), "eps " + strconv.FormatInt(k.EpisodeCount, 10)
	case domrank.PersonKey:
		return "len " + strconv.Itoa(k.NameLength), "pop " + formatFloat(k.Popularity)
	case domrank.BookKey:
		return "pop " + formatFloat(k.Popularity), "work " + strconv.FormatInt(k.WorkID, 10)
	default:
		return "", ""
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

type scoreHitJSON struct {
	Position int         `json:"position"`
	Tier     int         `json:"tier"`
	Rule     string      `json:"rule"`
	Key      domrank.Key `json:"key"`
	Title    string      `json:"title"`
}

type scoreOutputJSON struct {
	Kind  string         `json:"kind"`
	Total int            `json:"total"`
	Exact bool           `json:"top_exact"`
	Hits  []scoreHitJSON `json:"hits"`
}

func scoreJSON(res *searchuc.DomainResult, exact bool) scoreOutputJSON {
	hits := make([]scoreHitJSON, len(res.Hits))
	for i, h := range res.Hits {
		hits[i] = scoreHitJSON{
			Position: i + 1,
			Tier:     int(h.Tier()),
			Rule:     h.Rule,
			Key:      h.Key,
			Title:    displayTitle(h.Document),
		}
	}
	return scoreOutputJSON{Kind: string(res.Kind), Total: res.Total, Exact: exact, Hits: hits}
}
