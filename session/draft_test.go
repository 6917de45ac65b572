package session

import (
	"testing"
	"time"

	"taxinvoice-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steelBars() models.InventoryItem {
	return models.InventoryItem{
		ID:      uuid.New(),
		Name:    "Steel Bars (10mm)",
		HSN:     "7214",
		Rate:    5500,
		Stock:   150,
		Unit:    "MT",
		GSTRate: 18,
	}
}

func TestAddItemCreatesSingleLine(t *testing.T) {
	store := NewStore()
	userID := uuid.New()
	item := steelBars()

	line, err := store.AddItem(userID, item)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, item.ID, line.ItemID)
	assert.Equal(t, "7214", line.HSN)

	draft := store.Get(userID)
	require.Len(t, draft.Lines, 1)
}

func TestAddItemTwiceIncrementsQuantity(t *testing.T) {
	store := NewStore()
	userID := uuid.New()
	item := steelBars()

	_, err := store.AddItem(userID, item)
	require.NoError(t, err)
	line, err := store.AddItem(userID, item)
	require.NoError(t, err)

	assert.Equal(t, 2, line.Quantity)
	draft := store.Get(userID)
	require.Len(t, draft.Lines, 1, "re-adding must not create a second line")
}

func TestAddItemStockCeiling(t *testing.T) {
	store := NewStore()
	userID := uuid.New()
	item := steelBars()
	item.Stock = 2

	_, err := store.AddItem(userID, item)
	require.NoError(t, err)
	_, err = store.AddItem(userID, item)
	require.NoError(t, err)

	line, err := store.AddItem(userID, item)
	assert.ErrorIs(t, err, ErrStockLimit)
	assert.Equal(t, 2, line.Quantity, "quantity must be unchanged after the block")
}

func TestUpdateQuantity(t *testing.T) {
	store := NewStore()
	userID := uuid.New()
	line, err := store.AddItem(userID, steelBars())
	require.NoError(t, err)

	require.NoError(t, store.UpdateQuantity(userID, line.ID, 25))
	assert.Equal(t, 25, store.Get(userID).Lines[0].Quantity)

	assert.ErrorIs(t, store.UpdateQuantity(userID, line.ID, 151), ErrStockLimit)
	assert.Equal(t, 25, store.Get(userID).Lines[0].Quantity, "blocked update must leave quantity unchanged")

	assert.ErrorIs(t, store.UpdateQuantity(userID, line.ID, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, store.UpdateQuantity(userID, uuid.New(), 1), ErrLineNotFound)
}

func TestUpdateDiscount(t *testing.T) {
	store := NewStore()
	userID := uuid.New()
	line, err := store.AddItem(userID, steelBars())
	require.NoError(t, err)

	require.NoError(t, store.UpdateDiscount(userID, line.ID, 12.5))
	assert.Equal(t, 12.5, store.Get(userID).Lines[0].Discount)

	assert.ErrorIs(t, store.UpdateDiscount(userID, line.ID, -1), ErrInvalidDiscount)
	assert.ErrorIs(t, store.UpdateDiscount(userID, line.ID, 100.5), ErrInvalidDiscount)
}

func TestUpdateLineRejectsWithoutPartialWrite(t *testing.T) {
	store := NewStore()
	userID := uuid.New()
	line, err := store.AddItem(userID, steelBars())
	require.NoError(t, err)

	qty := 5
	badDiscount := 150.0
	assert.ErrorIs(t, store.UpdateLine(userID, line.ID, &qty, &badDiscount), ErrInvalidDiscount)

	got := store.Get(userID).Lines[0]
	assert.Equal(t, 1, got.Quantity, "rejected update must not apply the quantity")
	assert.Equal(t, 0.0, got.Discount)

	badQty := 0
	discount := 10.0
	assert.ErrorIs(t, store.UpdateLine(userID, line.ID, &badQty, &discount), ErrInvalidQuantity)

	got = store.Get(userID).Lines[0]
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, 0.0, got.Discount, "rejected update must not apply the discount")

	overStock := 200
	assert.ErrorIs(t, store.UpdateLine(userID, line.ID, &overStock, &discount), ErrStockLimit)
	assert.Equal(t, 0.0, store.Get(userID).Lines[0].Discount)

	require.NoError(t, store.UpdateLine(userID, line.ID, &qty, &discount))
	got = store.Get(userID).Lines[0]
	assert.Equal(t, 5, got.Quantity)
	assert.Equal(t, 10.0, got.Discount)
}

func TestRemoveLine(t *testing.T) {
	store := NewStore()
	userID := uuid.New()
	line, err := store.AddItem(userID, steelBars())
	require.NoError(t, err)

	require.NoError(t, store.RemoveLine(userID, line.ID))
	assert.Empty(t, store.Get(userID).Lines)
	assert.ErrorIs(t, store.RemoveLine(userID, line.ID), ErrLineNotFound)
}

func TestClearResetsDraft(t *testing.T) {
	store := NewStore()
	userID := uuid.New()
	_, err := store.AddItem(userID, steelBars())
	require.NoError(t, err)
	store.SelectCompany(userID, uuid.New())
	store.SetOptions(userID, Options{PaymentTerms: "immediate", TransportMode: "rail"})

	store.Clear(userID)

	draft := store.Get(userID)
	assert.Empty(t, draft.Lines)
	assert.Nil(t, draft.CompanyID)
	assert.Equal(t, "30days", draft.Options.PaymentTerms)
	assert.Equal(t, "road", draft.Options.TransportMode)
	assert.Empty(t, draft.BillingLines())
}

func TestDraftsAreIsolatedPerUser(t *testing.T) {
	store := NewStore()
	alice, bob := uuid.New(), uuid.New()

	_, err := store.AddItem(alice, steelBars())
	require.NoError(t, err)

	assert.Empty(t, store.Get(bob).Lines)
	assert.Len(t, store.Get(alice).Lines, 1)
}

func TestBillingLinesSnapshot(t *testing.T) {
	store := NewStore()
	userID := uuid.New()
	line, err := store.AddItem(userID, steelBars())
	require.NoError(t, err)
	require.NoError(t, store.UpdateQuantity(userID, line.ID, 3))
	require.NoError(t, store.UpdateDiscount(userID, line.ID, 10))

	lines := store.Get(userID).BillingLines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "7214", lines[0].HSN)
	assert.Equal(t, "5500", lines[0].Rate.String())
	assert.Equal(t, "10", lines[0].Discount.String())
	require.NotNil(t, lines[0].GSTRate)
	assert.Equal(t, "18", lines[0].GSTRate.String())
}

func TestExpireIdle(t *testing.T) {
	store := NewStore()
	stale, fresh := uuid.New(), uuid.New()

	_, err := store.AddItem(stale, steelBars())
	require.NoError(t, err)
	store.drafts[stale].UpdatedAt = time.Now().Add(-48 * time.Hour)

	_, err = store.AddItem(fresh, steelBars())
	require.NoError(t, err)

	evicted := store.ExpireIdle(24 * time.Hour)
	assert.Equal(t, 1, evicted)
	assert.Empty(t, store.Get(stale).Lines)
	assert.Len(t, store.Get(fresh).Lines, 1)
}
