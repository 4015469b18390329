package deliveries

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
)

func setupDeliveriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	table := `
CREATE TABLE IF NOT EXISTS account_deliveries (
  id TEXT PRIMARY KEY,
  sale_id TEXT NOT NULL UNIQUE,
  folio TEXT NOT NULL,
  client_name TEXT NOT NULL,
  client_contact TEXT NOT NULL,
  product_details TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  price TEXT NOT NULL DEFAULT '0',
  payment_method TEXT,
  purchased_at DATETIME,
  delivery_username TEXT,
  delivery_password TEXT,
  delivery_email TEXT,
  instructions TEXT,
  delivered_at DATETIME,
  delivered_by_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(table).Error)
	return db
}

func createDelivery(t *testing.T, db *gorm.DB, created time.Time, deliveredAt *time.Time) *models.AccountDelivery {
	t.Helper()

	delivery := &models.AccountDelivery{
		ID:             uuid.New(),
		SaleID:         uuid.New(),
		Folio:          fmt.Sprintf("VTA-%d-TEST", created.UnixMilli()),
		ClientName:     "Cliente",
		ClientContact:  "cliente@example.com",
		ProductDetails: "Cuenta Premium - 1 unidad(es)",
		Quantity:       1,
		Price:          decimal.RequireFromString("199.99"),
		PurchasedAt:    created,
		DeliveredAt:    deliveredAt,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
	require.NoError(t, db.Create(delivery).Error)
	return delivery
}

func TestDeliveriesRepoMarkDelivered(t *testing.T) {
	db := setupDeliveriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	delivery := createDelivery(t, db, time.Now().UTC(), nil)
	actor := uuid.New()
	at := time.Now().UTC()

	transitioned, err := repo.MarkDelivered(ctx, delivery.ID, actor, at)
	require.NoError(t, err)
	assert.True(t, transitioned)

	found, err := repo.FindByID(ctx, delivery.ID)
	require.NoError(t, err)
	require.NotNil(t, found.DeliveredAt)
	require.NotNil(t, found.DeliveredByID)
	assert.Equal(t, actor, *found.DeliveredByID)

	// Second transition must not fire.
	transitioned, err = repo.MarkDelivered(ctx, delivery.ID, uuid.New(), time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, transitioned)

	found, err = repo.FindByID(ctx, delivery.ID)
	require.NoError(t, err)
	assert.Equal(t, actor, *found.DeliveredByID, "first actor must stick")
}

func TestDeliveriesRepoPendingFilter(t *testing.T) {
	db := setupDeliveriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	deliveredAt := base.Add(time.Hour)
	createDelivery(t, db, base, nil)
	createDelivery(t, db, base.Add(time.Minute), &deliveredAt)

	pending := true
	items, err := repo.List(ctx, DeliveryFilters{Pending: &pending})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].DeliveredAt)

	done := false
	items, err = repo.List(ctx, DeliveryFilters{Pending: &done})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotNil(t, items[0].DeliveredAt)
}

func TestDeliveriesRepoListFullSetDescending(t *testing.T) {
	db := setupDeliveriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		createDelivery(t, db, base.Add(time.Duration(i)*time.Minute), nil)
	}

	items, err := repo.List(ctx, DeliveryFilters{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.True(t, items[0].CreatedAt.After(items[1].CreatedAt))
	assert.True(t, items[1].CreatedAt.After(items[2].CreatedAt))
}

func TestDeliveriesRepoFindBySaleID(t *testing.T) {
	db := setupDeliveriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	delivery := createDelivery(t, db, time.Now().UTC(), nil)

	found, err := repo.FindBySaleID(ctx, delivery.SaleID)
	require.NoError(t, err)
	assert.Equal(t, delivery.ID, found.ID)

	_, err = repo.FindBySaleID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
