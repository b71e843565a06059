package support

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userTicketInput() NewTicketInput {
	return NewTicketInput{
		PanelType: PanelUser,
		Name:      "Rahul",
		Email:     "Rahul@Example.com",
		Phone:     "9876543210",
		Subject:   "Order not delivered",
		Message:   "My order has not arrived yet.",
	}
}

func TestNewTicket(t *testing.T) {
	t.Run("opens user ticket", func(t *testing.T) {
		ticket, err := NewTicket(userTicketInput())

		require.NoError(t, err)
		assert.Equal(t, TicketStatusOpen, ticket.Status)
		assert.Equal(t, PanelUser, ticket.PanelType)
		assert.Equal(t, "rahul@example.com", ticket.Email)
		assert.Nil(t, ticket.VendorID)
		require.Len(t, ticket.DomainEvents(), 1)
		assert.Equal(t, EventTypeTicketCreated, ticket.DomainEvents()[0].EventType())
	})

	t.Run("user ticket drops vendor reference", func(t *testing.T) {
		in := userTicketInput()
		id := uuid.New()
		in.VendorID = &id
		ticket, err := NewTicket(in)
		require.NoError(t, err)
		assert.Nil(t, ticket.VendorID)
	})

	t.Run("vendor ticket requires vendor id", func(t *testing.T) {
		in := userTicketInput()
		in.PanelType = PanelVendor
		_, err := NewTicket(in)
		assert.Error(t, err)

		id := uuid.New()
		in.VendorID = &id
		ticket, err := NewTicket(in)
		require.NoError(t, err)
		assert.Equal(t, id, *ticket.VendorID)
	})

	t.Run("rejects unknown panel", func(t *testing.T) {
		in := userTicketInput()
		in.PanelType = "admin"
		_, err := NewTicket(in)
		assert.Error(t, err)
	})

	t.Run("validates contact fields", func(t *testing.T) {
		in := userTicketInput()
		in.Email = "nope"
		_, err := NewTicket(in)
		assert.Error(t, err)

		in = userTicketInput()
		in.Phone = "123"
		_, err = NewTicket(in)
		assert.Error(t, err)

		in = userTicketInput()
		in.Message = "   "
		_, err = NewTicket(in)
		assert.Error(t, err)
	})
}

func TestTicket_ChangeStatus(t *testing.T) {
	ticket, err := NewTicket(userTicketInput())
	require.NoError(t, err)

	require.NoError(t, ticket.ChangeStatus(TicketStatusInProgress))
	require.NoError(t, ticket.ChangeStatus(TicketStatusResolved))
	assert.Error(t, ticket.ChangeStatus(TicketStatusInProgress))
	require.NoError(t, ticket.ChangeStatus(TicketStatusClosed))

	assert.Error(t, ticket.ChangeStatus(TicketStatusResolved))
	require.NoError(t, ticket.ChangeStatus(TicketStatusOpen))
	assert.Equal(t, TicketStatusOpen, ticket.Status)

	assert.NoError(t, ticket.ChangeStatus(TicketStatusOpen), "same status is a no-op")
	assert.Error(t, ticket.ChangeStatus("archived"))
}
