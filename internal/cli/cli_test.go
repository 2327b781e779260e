package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/ledgerbook/infra/eventbus"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATABASE_URL", "sqlite:///"+filepath.Join(dir, "ledger.db"))
	t.Setenv("DATABASE_MIGRATE", "true")
	t.Setenv("EVENT_BUS_DRIVER", "memory")
	t.Setenv("METRICS_ENABLED", "false")
	return filepath.Join(dir, "missing.env")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLedgerctl_SeedSummaryAccounts(t *testing.T) {
	envFile := setupEnv(t)

	out, err := execute(t, "--env-file", envFile, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema up to date")

	out, err = execute(t, "--env-file", envFile, "accounts")
	require.NoError(t, err)
	assert.Contains(t, out, "No accounts")

	out, err = execute(t, "--env-file", envFile, "seed", "--count", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 4 accounts and 5 transactions")

	out, err = execute(t, "--env-file", envFile, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "skipping seed")

	out, err = execute(t, "--env-file", envFile, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Accounts:      4")
	assert.Contains(t, out, "Transactions:  5")

	out, err = execute(t, "--env-file", envFile, "accounts")
	require.NoError(t, err)
	for _, name := range []string{"Bank", "Cash", "Expenses", "Revenue"} {
		assert.Contains(t, out, name)
	}
}

func TestLedgerctl_SeedRejectsNegativeCount(t *testing.T) {
	envFile := setupEnv(t)
	_, err := execute(t, "--env-file", envFile, "seed", "--count", "-1")
	assert.Error(t, err)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, dto.Summary{
		TotalBalance:      decimal.RequireFromString("70"),
		AccountsCount:     1,
		TransactionsCount: 2,
	})
	assert.Contains(t, buf.String(), "Total balance: 70.00")
	assert.Contains(t, buf.String(), "Accounts:      1")
}

func TestLedgerctl_TailNeedsBroker(t *testing.T) {
	envFile := setupEnv(t)
	_, err := execute(t, "--env-file", envFile, "tail")
	assert.ErrorIs(t, err, infraeventbus.ErrNothingToTail)
}

func TestPrintEnvelope(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printEnvelope(&buf, infraeventbus.Envelope{
		Type:    "Account.Created",
		SentAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Payload: []byte(`{"account_id":1}`),
	}))
	out := buf.String()
	assert.Contains(t, out, "2024-06-01T12:00:00Z")
	assert.Contains(t, out, "Account.Created")
	assert.Contains(t, out, `{"account_id":1}`)
}
