package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/ledgerbook/internal/testutils"
	"github.com/amirasaad/ledgerbook/pkg/domain/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEventBusDispatchesByType(t *testing.T) {
	t.Parallel()
	bus := NewWithMemory(testutils.NewDiscardLogger())
	ctx := context.Background()

	var created, deleted int
	bus.Register(events.EventTypeAccountCreated, func(_ context.Context, e events.Event) error {
		created++
		assert.IsType(t, events.AccountCreated{}, e)
		return nil
	})
	bus.Register(events.EventTypeAccountDeleted, func(context.Context, events.Event) error {
		deleted++
		return nil
	})

	require.NoError(t, bus.Emit(ctx, events.AccountCreated{AccountID: 1, Name: "Cash"}))
	require.NoError(t, bus.Emit(ctx, events.AccountCreated{AccountID: 2, Name: "Bank"}))
	require.NoError(t, bus.Emit(ctx, events.TransactionDeleted{TransactionID: 3}))

	assert.Equal(t, 2, created)
	assert.Zero(t, deleted)
	assert.Len(t, bus.Published(), 3)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}

func TestMemoryEventBusIsolatesFailingHandlers(t *testing.T) {
	t.Parallel()
	bus := NewWithMemory(testutils.NewDiscardLogger())
	var reached bool

	bus.Register(events.EventTypeTransactionCreated, func(context.Context, events.Event) error {
		return errors.New("boom")
	})
	bus.Register(events.EventTypeTransactionCreated, func(context.Context, events.Event) error {
		panic("handler bug")
	})
	bus.Register(events.EventTypeTransactionCreated, func(context.Context, events.Event) error {
		reached = true
		return nil
	})

	err := bus.Emit(context.Background(), events.TransactionCreated{TransactionID: 1})
	require.NoError(t, err)
	assert.True(t, reached)
}

func TestEncodeEnvelope(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	data, err := encodeEnvelope(events.TransactionCreated{
		Meta:          events.NewMeta(at),
		TransactionID: 5,
		AccountID:     1,
		Amount:        decimal.RequireFromString("-30.00"),
		Date:          at,
	})
	require.NoError(t, err)

	var env struct {
		Type    string          `json:"type"`
		Source  string          `json:"source"`
		Payload json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, "Transaction.Created", env.Type)
	assert.Equal(t, "ledgerbook", env.Source)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.EqualValues(t, 5, payload["transaction_id"])
	assert.Equal(t, "-30", payload["amount"])
}

func TestParseBrokers(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a:9092", "b:9092"}, parseBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, parseBrokers(""))

	_, err := NewWithKafka("", "topic", testutils.NewDiscardLogger())
	assert.Error(t, err)
}
