package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/amirasaad/ledgerbook/infra"
	infraeventbus "github.com/amirasaad/ledgerbook/infra/eventbus"
	"github.com/amirasaad/ledgerbook/internal/fixtures/seed"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headerColor   = color.New(color.FgCyan, color.Bold)
	positiveColor = color.New(color.FgGreen)
	negativeColor = color.New(color.FgRed)
	mutedColor    = color.New(color.Faint)
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: opts.cfg.Log.Prefix}))
			if err := infra.RunMigrations(opts.cfg.DB, logger); err != nil {
				return err
			}
			positiveColor.Fprintln(cmd.OutOrStdout(), "Schema up to date") //nolint:errcheck
			return nil
		},
	}
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var count int
	var chartPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty ledger with demo accounts and transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return errors.New("--count must not be negative")
			}
			chart, err := seed.LoadAccountsCSV(chartPath)
			if err != nil {
				return fmt.Errorf("loading chart of accounts: %w", err)
			}

			a, err := openApp(cmd, opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			seeder := seed.New(a.AccountService, a.TransactionService, a.Deps.Logger)
			res, err := seeder.Seed(cmd.Context(), chart, count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Skipped {
				mutedColor.Fprintln(out, "Data already exists; skipping seed") //nolint:errcheck
				return nil
			}
			positiveColor.Fprintf(out, "Seeded %d accounts and %d transactions\n", res.Accounts, res.Transactions) //nolint:errcheck
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", seed.DefaultCount, "number of random transactions")
	cmd.Flags().StringVar(&chartPath, "chart", "", "CSV chart of accounts (name,type); defaults to the built-in chart")
	return cmd
}

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the total balance and row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			summary, err := a.ReportService.Summary(cmd.Context())
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func printSummary(w io.Writer, s dto.Summary) {
	headerColor.Fprintln(w, "Ledger summary") //nolint:errcheck
	balance := positiveColor
	if s.TotalBalance.IsNegative() {
		balance = negativeColor
	}
	fmt.Fprintf(w, "  Total balance: %s\n", balance.Sprint(s.TotalBalance.StringFixed(2))) //nolint:errcheck
	fmt.Fprintf(w, "  Accounts:      %d\n", s.AccountsCount)                              //nolint:errcheck
	fmt.Fprintf(w, "  Transactions:  %d\n", s.TransactionsCount)                          //nolint:errcheck
}

func newAccountsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			accts, err := a.AccountService.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(accts) == 0 {
				mutedColor.Fprintln(out, "No accounts") //nolint:errcheck
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCREATED") //nolint:errcheck
			for _, acct := range accts {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", //nolint:errcheck
					acct.ID, acct.Name, acct.Type, acct.CreatedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}
}

func newTailCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tail",
		Short: "Follow ledger events published to the configured broker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			mutedColor.Fprintf(out, "Following %s events on %q (Ctrl+C to stop)\n", //nolint:errcheck
				opts.cfg.EventBus.Driver, opts.cfg.EventBus.Topic)
			return infraeventbus.Tail(cmd.Context(), opts.cfg.EventBus, func(env infraeventbus.Envelope) error {
				return printEnvelope(out, env)
			})
		},
	}
}

func printEnvelope(w io.Writer, env infraeventbus.Envelope) error {
	_, err := fmt.Fprintf(w, "%s  %s  %s\n",
		mutedColor.Sprint(env.SentAt.Format(time.RFC3339)),
		headerColor.Sprint(env.Type),
		env.Payload)
	return err
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
