package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
)

func TestLastOrderNumberComparesNumerically(t *testing.T) {
	f := newFixture(t)
	repo := NewRepository(f.conn)

	last, err := repo.LastOrderNumber(context.Background(), DefaultNumberPrefix)
	require.NoError(t, err)
	assert.Equal(t, "", last)

	f.insertOrderNumber(t, "999999")
	f.insertOrderNumber(t, "2280009")
	f.insertOrderNumber(t, "2280010")

	last, err = repo.LastOrderNumber(context.Background(), DefaultNumberPrefix)
	require.NoError(t, err)
	assert.Equal(t, "2280010", last)
}

func TestLastOrderNumberIgnoresOtherPrefixes(t *testing.T) {
	f := newFixture(t)
	repo := NewRepository(f.conn)
	f.insertOrderNumber(t, "99900001")

	last, err := repo.LastOrderNumber(context.Background(), DefaultNumberPrefix)
	require.NoError(t, err)
	assert.Equal(t, "", last)

	f.insertOrderNumber(t, "2280005")
	last, err = repo.LastOrderNumber(context.Background(), DefaultNumberPrefix)
	require.NoError(t, err)
	assert.Equal(t, "2280005", last)

	svc := f.service(t, nil)
	result, err := svc.Submit(context.Background(), ChannelStorefront, samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "2280006", result.OrderNumber)
}

func TestFindByNumberPreloads(t *testing.T) {
	f := newFixture(t)
	f.insertOrderNumber(t, "2280001")

	order, err := NewRepository(f.conn).FindByNumber(context.Background(), "2280001")
	require.NoError(t, err)
	assert.Equal(t, "Seed", order.Customer.Name)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "seed_2280001", order.Items[0].ItemKey)
}

func TestSaveFieldsWritesOnlySelectedColumns(t *testing.T) {
	f := newFixture(t)
	order := f.insertOrderNumber(t, "2280001")
	repo := NewRepository(f.conn)

	order.OrderStatus = enums.OrderStatusShipped
	order.PaymentStatus = enums.PaymentStatusPaid
	require.NoError(t, repo.SaveFields(context.Background(), order, []string{"order_status", "updated_at"}))

	var stored models.Order
	require.NoError(t, f.conn.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, enums.OrderStatusShipped, stored.OrderStatus)
	assert.Equal(t, enums.PaymentStatusUnpaid, stored.PaymentStatus)
}

func TestReplaceItemsRewritesPositions(t *testing.T) {
	f := newFixture(t)
	order := f.insertOrderNumber(t, "2280001")
	repo := NewRepository(f.conn)

	items := buildItems([]ItemInput{
		{Key: "b", ProductID: "p2", Title: "Second", Quantity: 1},
		{ProductID: "p1", VariantKey: "red", Title: "First", Quantity: 2},
	}, fixedNow, true)
	require.NoError(t, repo.ReplaceItems(context.Background(), order.ID, items))

	stored, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "b", stored.Items[0].ItemKey)
	assert.Equal(t, ItemKey("p1", "red", fixedNow, 1), stored.Items[1].ItemKey)
}
