package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dealflow-labs/sponsorship-board/internal"
	"github.com/dealflow-labs/sponsorship-board/internal/board"
	"github.com/dealflow-labs/sponsorship-board/internal/fixtures"
	"github.com/dealflow-labs/sponsorship-board/internal/persistence"
	"github.com/dealflow-labs/sponsorship-board/internal/secrets"
	"github.com/dealflow-labs/sponsorship-board/internal/store"
)

func boardCmd() *cobra.Command {
	var (
		search       string
		statuses     []string
		priorities   []string
		fixturesPath string
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the board projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria := board.Criteria{Search: search}

			var err error
			if criteria.Statuses, err = board.ParseStatuses(statuses); err != nil {
				return err
			}
			if criteria.Priorities, err = board.ParsePriorities(priorities); err != nil {
				return err
			}

			st, err := loadStore(cmd.Context(), fixturesPath)
			if err != nil {
				return err
			}

			renderBoard(os.Stdout, board.Project(st.Agreements(), criteria))

			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case insensitive text over title, sponsor name and company")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "status filter (repeatable)")
	cmd.Flags().StringSliceVar(&priorities, "priority", nil, "priority filter (repeatable)")
	cmd.Flags().StringVar(&fixturesPath, "fixtures", "", "read agreements from a fixtures bundle instead of the database")

	return cmd
}

func loadStore(ctx context.Context, fixturesPath string) (*store.Store, error) {
	if fixturesPath != "" {
		bundle, err := fixtures.Load(fixturesPath)
		if err != nil {
			return nil, err
		}

		st := store.New()
		bundle.Apply(st, false)

		return st, nil
	}

	repo, err := openRepo()
	if err != nil {
		return nil, err
	}

	return internal.OpenStore(ctx, repo, "")
}

func openRepo() (*persistence.Repo, error) {
	dsn, err := secrets.ResolveDSN(cfg.DB, cfg.Vault, secrets.VaultReader)
	if err != nil {
		return nil, err
	}

	dbCfg := cfg.DB
	dbCfg.DSN = dsn

	db, err := persistence.Open(dbCfg)
	if err != nil {
		return nil, err
	}

	if err = persistence.Migrate(db); err != nil {
		return nil, err
	}

	return persistence.NewRepo(db), nil
}

func renderBoard(out io.Writer, b board.Board) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetTitle(fmt.Sprintf("%d agreements", b.Total()))
	tw.AppendHeader(table.Row{"Column", "Count", "ID", "Title", "Sponsor", "Amount", "Priority"})

	for _, c := range b.Columns {
		if c.Count == 0 {
			tw.AppendRow(table.Row{c.Title, 0, "", "", "", "", ""})
			continue
		}

		for i, a := range c.Agreements {
			column, count := "", ""
			if i == 0 {
				column, count = c.Title, fmt.Sprint(c.Count)
			}

			tw.AppendRow(table.Row{
				column,
				count,
				a.ID,
				a.Title,
				a.Sponsor.Company,
				strings.TrimSpace(a.Amount.StringFixed(2) + " " + a.Currency),
				a.Priority,
			})
		}
		tw.AppendSeparator()
	}

	tw.Render()
}
