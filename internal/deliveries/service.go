package deliveries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
)

const missingContactPlaceholder = "sin especificar"

// Service defines delivery-level operations.
type Service interface {
	CreateFromSale(ctx context.Context, sale *models.Sale) error
	Get(ctx context.Context, id uuid.UUID) (*DeliveryResponse, error)
	List(ctx context.Context, filters DeliveryFilters) (*DeliveryList, error)
	UpdatePayload(ctx context.Context, id uuid.UUID, input UpdateDeliveryInput) (*DeliveryResponse, error)
	MarkDelivered(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*DeliveryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a deliveries service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("deliveries repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// CreateFromSale snapshots the sale into a pending delivery record: client,
// product, price, payment method and purchase date are copied as of creation
// time, so later sale edits never change what was handed over. Contact
// resolution prefers email, then phone, then a fixed placeholder; product
// details fall back to "<product> - <n> unidad(es)" when no description exists.
func (s *service) CreateFromSale(ctx context.Context, sale *models.Sale) error {
	if sale == nil {
		return fmt.Errorf("sale is required")
	}

	delivery := &models.AccountDelivery{
		ID:             uuid.New(),
		SaleID:         sale.ID,
		Folio:          sale.Folio,
		ClientName:     sale.ClientName,
		ClientContact:  resolveContact(sale),
		ProductDetails: resolveProductDetails(sale),
		Quantity:       sale.Quantity,
		Price:          sale.SalePrice,
		PaymentMethod:  resolvePaymentMethod(sale),
		PurchasedAt:    sale.SoldAt,
	}

	_, err := s.repo.Create(ctx, delivery)
	return err
}

func resolvePaymentMethod(sale *models.Sale) *string {
	if pm := strings.TrimSpace(sale.PaymentMethod); pm != "" {
		return &pm
	}
	return nil
}

func resolveContact(sale *models.Sale) string {
	if sale.ClientEmail != nil && strings.TrimSpace(*sale.ClientEmail) != "" {
		return strings.TrimSpace(*sale.ClientEmail)
	}
	if sale.ClientPhone != nil && strings.TrimSpace(*sale.ClientPhone) != "" {
		return strings.TrimSpace(*sale.ClientPhone)
	}
	return missingContactPlaceholder
}

func resolveProductDetails(sale *models.Sale) string {
	if sale.Description != nil && strings.TrimSpace(*sale.Description) != "" {
		return strings.TrimSpace(*sale.Description)
	}
	return fmt.Sprintf("%s - %d unidad(es)", sale.Product, sale.Quantity)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*DeliveryResponse, error) {
	delivery, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "delivery not found")
	}
	resp := NewDeliveryResponse(delivery)
	return &resp, nil
}

// List returns the full delivery set, newest first. Deliveries are an
// operational review queue, not a feed, so no pagination is applied.
func (s *service) List(ctx context.Context, filters DeliveryFilters) (*DeliveryList, error) {
	items, err := s.repo.List(ctx, filters)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list deliveries")
	}

	list := &DeliveryList{Items: make([]DeliveryResponse, 0, len(items))}
	for i := range items {
		list.Items = append(list.Items, NewDeliveryResponse(&items[i]))
	}
	return list, nil
}

func (s *service) UpdatePayload(ctx context.Context, id uuid.UUID, input UpdateDeliveryInput) (*DeliveryResponse, error) {
	delivery, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "delivery not found")
	}
	if delivery.Delivered() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "delivery already marked as delivered")
	}

	updates := map[string]any{}
	if input.DeliveryUsername != nil {
		updates["delivery_username"] = *input.DeliveryUsername
	}
	if input.DeliveryPassword != nil {
		updates["delivery_password"] = *input.DeliveryPassword
	}
	if input.DeliveryEmail != nil {
		updates["delivery_email"] = *input.DeliveryEmail
	}
	if input.Instructions != nil {
		updates["instructions"] = *input.Instructions
	}

	if err := s.repo.UpdatePayload(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery")
	}

	return s.Get(ctx, id)
}

// MarkDelivered performs the single pending->delivered transition. A second
// call surfaces a state conflict rather than silently succeeding.
func (s *service) MarkDelivered(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*DeliveryResponse, error) {
	transitioned, err := s.repo.MarkDelivered(ctx, id, actorID, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark delivered")
	}
	if !transitioned {
		if _, findErr := s.repo.FindByID(ctx, id); findErr != nil {
			return nil, notFoundOrDependency(findErr, "delivery not found")
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "delivery already marked as delivered")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOrDependency(err, "delivery not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete delivery")
	}
	return nil
}

func notFoundOrDependency(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msg)
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
