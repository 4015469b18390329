package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

type stubOrdersRepo struct {
	order         *models.Order
	updatedStatus enums.OrderStatus
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubOrdersRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	s.order = order
	return order, nil
}

func (s *stubOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrdersRepo) List(ctx context.Context, params pagination.Params, filters OrderFilters) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrdersRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	s.updatedStatus = status
	s.order.Status = status
	return nil
}

func TestCreateOrder(t *testing.T) {
	repo := &stubOrdersRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	actorID := uuid.New()
	resp, err := svc.Create(context.Background(), CreateOrderInput{
		ClientName: "Carlos",
		Product:    "Cuenta Deportes",
		Total:      "199.00",
	}, actorID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if resp.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending got %s", resp.Status)
	}
	if resp.CreatedByID == nil || *resp.CreatedByID != actorID {
		t.Fatalf("expected created_by %s got %v", actorID, resp.CreatedByID)
	}
}

func TestCreateOrderRejectsNegativeTotal(t *testing.T) {
	svc, _ := NewService(&stubOrdersRepo{})
	_, err := svc.Create(context.Background(), CreateOrderInput{
		ClientName: "Carlos",
		Product:    "Cuenta Deportes",
		Total:      "-10",
	}, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	orderID := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{ID: orderID, Status: enums.OrderStatusPending},
	}
	svc, _ := NewService(repo)

	resp, err := svc.UpdateStatus(context.Background(), orderID, UpdateOrderStatusInput{Status: "PROCESSING"})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if resp.Status != enums.OrderStatusProcessing {
		t.Fatalf("expected processing got %s", resp.Status)
	}
}

func TestUpdateOrderStatusTerminal(t *testing.T) {
	for _, terminal := range []enums.OrderStatus{enums.OrderStatusCompleted, enums.OrderStatusCancelled} {
		orderID := uuid.New()
		repo := &stubOrdersRepo{
			order: &models.Order{ID: orderID, Status: terminal},
		}
		svc, _ := NewService(repo)

		_, err := svc.UpdateStatus(context.Background(), orderID, UpdateOrderStatusInput{Status: "PROCESSING"})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("expected state conflict from %s got %v", terminal, err)
		}
	}
}

func TestUpdateOrderStatusUnknown(t *testing.T) {
	svc, _ := NewService(&stubOrdersRepo{})
	_, err := svc.UpdateStatus(context.Background(), uuid.New(), UpdateOrderStatusInput{Status: "SHIPPED"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}
