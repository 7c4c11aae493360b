package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	aliasrepo "github.com/kailas-cloud/tierank/internal/repository/alias"
	"github.com/kailas-cloud/tierank/internal/repository/seedstamp"
)

func newAliasesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "Inspect and seed the alias store",
	}

	var force bool
	load := &cobra.Command{
		Use:   "load <seed.yaml>",
		Short: "Write every alias of a seed file to the store",
		Long: "Write every alias of a seed file to the store. A seed whose checksum " +
			"matches the last one loaded is skipped unless --force is set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := aliasrepo.LoadSeedFile(args[0])
			if err != nil {
				return err
			}
			repo, err := ctx.aliasRepo(cmd.Context())
			if err != nil {
				return err
			}
			loader := seedstamp.New(repo, ctx.store, ctx.config.Aliases.KeyPrefix, nil, ctx.logger)
			if !force && loader.Applied(cmd.Context(), seed) {
				fmt.Fprintln(cmd.OutOrStdout(), "Seed unchanged since last load; use --force to reload")
				return nil
			}
			n, err := loader.Force(cmd.Context(), seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d aliases for %d tokens\n", n, len(seed.Aliases))
			return nil
		},
	}
	load.Flags().BoolVar(&force, "force", false, "Reload even when the seed is unchanged")
	cmd.AddCommand(load)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <token>",
		Short: "Print the aliases of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := ctx.aliasRepo(cmd.Context())
			if err != nil {
				return err
			}
			aliases, err := repo.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{"token": args[0], "aliases": aliases})
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(aliases, "\n"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tokens that have aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := ctx.aliasRepo(cmd.Context())
			if err != nil {
				return err
			}
			tokens, err := repo.Tokens(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, tokens)
			}
			rows := make([][]string, len(tokens))
			for i, t := range tokens {
				rows[i] = []string{t}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Token"}, rows, nil))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <token>",
		Short: "Remove every alias of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := ctx.aliasRepo(cmd.Context())
			if err != nil {
				return err
			}
			if err := repo.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted aliases of %q\n", args[0])
			return nil
		},
	})

	return cmd
}
