package inmemory_test

import (
	"context"
	"testing"
	"time"

	"parcelflow/internal/adapters/out/inmemory"
	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmation(t *testing.T, from, to messages.Address, id order.ID) messages.Envelope {
	t.Helper()
	env, err := messages.NewEnvelope(from, to, messages.DeliveryConfirmed{OrderID: id})
	require.NoError(t, err)
	return env
}

func TestBus_SendPreservesOrderPerRecipient(t *testing.T) {
	// Given
	ctx := t.Context()
	bus := inmemory.NewBus(8, messages.DispatcherAddress)
	inbox, err := bus.Inbox(ctx, messages.DispatcherAddress)
	require.NoError(t, err)

	// When
	ids := []order.ID{"ORD001", "ORD002", "ORD003"}
	for _, id := range ids {
		require.NoError(t, bus.Send(ctx, confirmation(t, messages.CustomerAddress, messages.DispatcherAddress, id)))
	}

	// Then
	assert.Equal(t, 3, bus.Pending(messages.DispatcherAddress))
	for _, want := range ids {
		env := <-inbox
		body, err := env.Decode()
		require.NoError(t, err)
		assert.Equal(t, messages.DeliveryConfirmed{OrderID: want}, body)
	}
}

func TestBus_SendToUnknownAddress(t *testing.T) {
	bus := inmemory.NewBus(1)

	err := bus.Send(t.Context(), confirmation(t, messages.CustomerAddress, "nobody", "ORD001"))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestBus_SendRejectsInvalidEnvelope(t *testing.T) {
	bus := inmemory.NewBus(1, messages.DispatcherAddress)

	err := bus.Send(t.Context(), messages.Envelope{To: messages.DispatcherAddress})

	require.Error(t, err)
	assert.Equal(t, 0, bus.Pending(messages.DispatcherAddress))
}

func TestBus_SendBlocksUntilContextDone(t *testing.T) {
	// Given a full mailbox
	bus := inmemory.NewBus(1, messages.DispatcherAddress)
	env := confirmation(t, messages.CustomerAddress, messages.DispatcherAddress, "ORD001")
	require.NoError(t, bus.Send(t.Context(), env))

	// When
	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	err := bus.Send(ctx, env)

	// Then
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBus_InboxCreatesMailbox(t *testing.T) {
	bus := inmemory.NewBus(0)

	_, err := bus.Inbox(t.Context(), messages.CustomerAddress)
	require.NoError(t, err)
	require.NoError(t, bus.Send(t.Context(), confirmation(t, messages.DispatcherAddress, messages.CustomerAddress, "ORD001")))

	_, err = bus.Inbox(t.Context(), "  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
