package deliveries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
)

type stubDeliveriesRepo struct {
	created  *models.AccountDelivery
	delivery *models.AccountDelivery
	updates  map[string]any
	marked   bool
	deleted  bool
}

func (s *stubDeliveriesRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubDeliveriesRepo) Create(ctx context.Context, delivery *models.AccountDelivery) (*models.AccountDelivery, error) {
	s.created = delivery
	return delivery, nil
}

func (s *stubDeliveriesRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.AccountDelivery, error) {
	if s.delivery == nil || s.delivery.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.delivery, nil
}

func (s *stubDeliveriesRepo) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*models.AccountDelivery, error) {
	if s.delivery == nil || s.delivery.SaleID != saleID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.delivery, nil
}

func (s *stubDeliveriesRepo) List(ctx context.Context, filters DeliveryFilters) ([]models.AccountDelivery, error) {
	if s.delivery == nil {
		return nil, nil
	}
	return []models.AccountDelivery{*s.delivery}, nil
}

func (s *stubDeliveriesRepo) UpdatePayload(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

func (s *stubDeliveriesRepo) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredBy uuid.UUID, at time.Time) (bool, error) {
	if s.delivery == nil || s.delivery.ID != id {
		return false, nil
	}
	if s.delivery.DeliveredAt != nil {
		return false, nil
	}
	s.delivery.DeliveredAt = &at
	s.delivery.DeliveredByID = &deliveredBy
	s.marked = true
	return true, nil
}

func (s *stubDeliveriesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.delivery != nil && s.delivery.ID == id {
		s.delivery = nil
	}
	s.deleted = true
	return nil
}

func strPtr(v string) *string {
	return &v
}

func TestCreateFromSaleContactFallbacks(t *testing.T) {
	cases := []struct {
		name    string
		email   *string
		phone   *string
		contact string
	}{
		{"email wins", strPtr("ana@example.com"), strPtr("555-0100"), "ana@example.com"},
		{"phone fallback", nil, strPtr("555-0100"), "555-0100"},
		{"blank email falls through", strPtr("  "), strPtr("555-0100"), "555-0100"},
		{"placeholder", nil, nil, "sin especificar"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubDeliveriesRepo{}
			svc, _ := NewService(repo)

			sale := &models.Sale{
				ID:          uuid.New(),
				Folio:       "VTA-1700000000000-XY99",
				ClientName:  "Ana",
				ClientEmail: tc.email,
				ClientPhone: tc.phone,
				Product:     "Cuenta Premium",
				Quantity:    2,
			}
			if err := svc.CreateFromSale(context.Background(), sale); err != nil {
				t.Fatalf("expected success got %v", err)
			}
			if repo.created.ClientContact != tc.contact {
				t.Fatalf("expected contact %q got %q", tc.contact, repo.created.ClientContact)
			}
		})
	}
}

func TestCreateFromSaleProductDetails(t *testing.T) {
	repo := &stubDeliveriesRepo{}
	svc, _ := NewService(repo)

	sale := &models.Sale{
		ID:       uuid.New(),
		Folio:    "VTA-1700000000000-XY99",
		Product:  "Cuenta Premium",
		Quantity: 3,
	}
	if err := svc.CreateFromSale(context.Background(), sale); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if repo.created.ProductDetails != "Cuenta Premium - 3 unidad(es)" {
		t.Fatalf("unexpected details %q", repo.created.ProductDetails)
	}

	sale.Description = strPtr("Perfil 1, PIN 1234")
	if err := svc.CreateFromSale(context.Background(), sale); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if repo.created.ProductDetails != "Perfil 1, PIN 1234" {
		t.Fatalf("description should win, got %q", repo.created.ProductDetails)
	}
}

// The delivery card shows the commercial terms without a join back to the
// sale, so the spawn copies price, payment method and purchase date.
func TestCreateFromSaleSnapshotsCommercialTerms(t *testing.T) {
	repo := &stubDeliveriesRepo{}
	svc, _ := NewService(repo)

	soldAt := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	sale := &models.Sale{
		ID:            uuid.New(),
		Folio:         "VTA-1700000000000-XY99",
		ClientName:    "Ana",
		Product:       "Cuenta Premium",
		Quantity:      1,
		SalePrice:     decimal.RequireFromString("350.00"),
		PaymentMethod: "transferencia",
		SoldAt:        soldAt,
	}
	if err := svc.CreateFromSale(context.Background(), sale); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !repo.created.Price.Equal(sale.SalePrice) {
		t.Fatalf("expected price %s got %s", sale.SalePrice, repo.created.Price)
	}
	if repo.created.PaymentMethod == nil || *repo.created.PaymentMethod != "transferencia" {
		t.Fatalf("expected payment method snapshot, got %v", repo.created.PaymentMethod)
	}
	if !repo.created.PurchasedAt.Equal(soldAt) {
		t.Fatalf("expected purchased_at %s got %s", soldAt, repo.created.PurchasedAt)
	}

	sale.PaymentMethod = "  "
	if err := svc.CreateFromSale(context.Background(), sale); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if repo.created.PaymentMethod != nil {
		t.Fatalf("blank payment method must stay null, got %q", *repo.created.PaymentMethod)
	}
}

func TestMarkDelivered(t *testing.T) {
	deliveryID := uuid.New()
	repo := &stubDeliveriesRepo{
		delivery: &models.AccountDelivery{ID: deliveryID, SaleID: uuid.New()},
	}
	svc, _ := NewService(repo)

	resp, err := svc.MarkDelivered(context.Background(), deliveryID, uuid.New())
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if resp.DeliveredAt == nil {
		t.Fatalf("expected delivered_at to be set")
	}
	if !repo.marked {
		t.Fatalf("expected conditional update to run")
	}
}

func TestMarkDeliveredTwice(t *testing.T) {
	deliveryID := uuid.New()
	deliveredAt := time.Now().UTC()
	repo := &stubDeliveriesRepo{
		delivery: &models.AccountDelivery{ID: deliveryID, SaleID: uuid.New(), DeliveredAt: &deliveredAt},
	}
	svc, _ := NewService(repo)

	_, err := svc.MarkDelivered(context.Background(), deliveryID, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}
}

func TestMarkDeliveredMissing(t *testing.T) {
	svc, _ := NewService(&stubDeliveriesRepo{})
	_, err := svc.MarkDelivered(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestUpdatePayloadBlockedAfterDelivery(t *testing.T) {
	deliveryID := uuid.New()
	deliveredAt := time.Now().UTC()
	repo := &stubDeliveriesRepo{
		delivery: &models.AccountDelivery{ID: deliveryID, SaleID: uuid.New(), DeliveredAt: &deliveredAt},
	}
	svc, _ := NewService(repo)

	_, err := svc.UpdatePayload(context.Background(), deliveryID, UpdateDeliveryInput{
		DeliveryUsername: strPtr("user01"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}
	if repo.updates != nil {
		t.Fatalf("payload must not change after delivery")
	}
}

func TestUpdatePayload(t *testing.T) {
	deliveryID := uuid.New()
	repo := &stubDeliveriesRepo{
		delivery: &models.AccountDelivery{ID: deliveryID, SaleID: uuid.New()},
	}
	svc, _ := NewService(repo)

	_, err := svc.UpdatePayload(context.Background(), deliveryID, UpdateDeliveryInput{
		DeliveryUsername: strPtr("user01"),
		DeliveryPassword: strPtr("secret"),
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if repo.updates["delivery_username"] != "user01" || repo.updates["delivery_password"] != "secret" {
		t.Fatalf("unexpected updates %+v", repo.updates)
	}
}

func TestDeleteDelivery(t *testing.T) {
	deliveryID := uuid.New()
	repo := &stubDeliveriesRepo{
		delivery: &models.AccountDelivery{ID: deliveryID, SaleID: uuid.New()},
	}
	svc, _ := NewService(repo)

	if err := svc.Delete(context.Background(), deliveryID); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !repo.deleted {
		t.Fatalf("expected repository delete")
	}
}

func TestDeleteMissingDelivery(t *testing.T) {
	repo := &stubDeliveriesRepo{}
	svc, _ := NewService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
	if repo.deleted {
		t.Fatalf("delete must not run for missing delivery")
	}
}
