package redisstream_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"parcelflow/internal/adapters/out/redisstream"
	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransport(t *testing.T) (*redisstream.Transport, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	tr, err := redisstream.NewTransport(rdb, redisstream.Config{Block: 50 * time.Millisecond},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return tr, rdb
}

func confirmation(t *testing.T, id order.ID) messages.Envelope {
	t.Helper()
	env, err := messages.NewEnvelope(messages.CustomerAddress, messages.DispatcherAddress,
		messages.DeliveryConfirmed{OrderID: id})
	require.NoError(t, err)
	return env
}

func receive(t *testing.T, inbox <-chan messages.Envelope) messages.Envelope {
	t.Helper()
	select {
	case env, ok := <-inbox:
		require.True(t, ok, "inbox closed")
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("no envelope received")
		return messages.Envelope{}
	}
}

func TestNewTransport_RequiresClient(t *testing.T) {
	_, err := redisstream.NewTransport(nil, redisstream.Config{}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestTransport_DeliversInOrder(t *testing.T) {
	// Given envelopes written before the reader starts
	ctx := t.Context()
	tr, rdb := newTransport(t)
	first, second := confirmation(t, "ORD001"), confirmation(t, "ORD002")
	require.NoError(t, tr.Send(ctx, first))
	require.NoError(t, tr.Send(ctx, second))

	// When
	inbox, err := tr.Inbox(ctx, messages.DispatcherAddress)
	require.NoError(t, err)

	// Then
	got := receive(t, inbox)
	assert.True(t, first.ID.IsEqual(got.ID))
	assert.Equal(t, messages.CustomerAddress, got.From)
	assert.Equal(t, messages.Inform, got.Performative)
	body, err := got.Decode()
	require.NoError(t, err)
	assert.Equal(t, messages.DeliveryConfirmed{OrderID: "ORD001"}, body)

	assert.True(t, second.ID.IsEqual(receive(t, inbox).ID))

	require.Eventually(t, func() bool {
		n, err := rdb.XLen(ctx, tr.Key(messages.DispatcherAddress)).Result()
		return err == nil && n == 0
	}, 2*time.Second, 10*time.Millisecond, "delivered entries are removed")
}

func TestTransport_SkipsCorruptEntries(t *testing.T) {
	ctx := t.Context()
	tr, rdb := newTransport(t)
	require.NoError(t, rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: tr.Key(messages.DispatcherAddress),
		Values: map[string]any{"id": "garbage", "body": "{}"},
	}).Err())
	valid := confirmation(t, "ORD001")
	require.NoError(t, tr.Send(ctx, valid))

	inbox, err := tr.Inbox(ctx, messages.DispatcherAddress)
	require.NoError(t, err)

	assert.True(t, valid.ID.IsEqual(receive(t, inbox).ID))
}

func TestTransport_SendRejectsInvalidEnvelope(t *testing.T) {
	tr, _ := newTransport(t)

	err := tr.Send(t.Context(), messages.Envelope{})

	require.Error(t, err)
}

func TestTransport_InboxClosesOnCancel(t *testing.T) {
	tr, _ := newTransport(t)
	ctx, cancel := context.WithCancel(t.Context())

	inbox, err := tr.Inbox(ctx, messages.DispatcherAddress)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-inbox:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("inbox not closed")
	}
}
