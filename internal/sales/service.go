package sales

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/logger"
	"github.com/omega-store/omega-backend/pkg/metrics"
)

const folioSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DeliverySpawner creates the delivery record that tracks handoff of the sold
// account. Spawning is best-effort: a failure here never rolls back the sale.
type DeliverySpawner interface {
	CreateFromSale(ctx context.Context, sale *models.Sale) error
}

// Service defines sale-level operations.
type Service interface {
	Create(ctx context.Context, input CreateSaleInput, actorID uuid.UUID) (*SaleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*SaleResponse, error)
	GetByFolio(ctx context.Context, folio string) (*SaleResponse, error)
	List(ctx context.Context, filters SaleFilters) (*SaleList, error)
}

type service struct {
	repo       Repository
	deliveries DeliverySpawner
	metrics    *metrics.DeliveryMetrics
	logg       *logger.Logger
	now        func() time.Time
}

// NewService builds a sales service with the required dependencies.
func NewService(repo Repository, deliveries DeliverySpawner, deliveryMetrics *metrics.DeliveryMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	return &service{
		repo:       repo,
		deliveries: deliveries,
		metrics:    deliveryMetrics,
		logg:       logg,
		now:        time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateSaleInput, actorID uuid.UUID) (*SaleResponse, error) {
	money, err := parseMoneyFields(input)
	if err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	soldAt := s.now().UTC()
	if input.SoldAt != nil {
		parsed, parseErr := time.Parse(time.RFC3339, *input.SoldAt)
		if parseErr != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sold_at must be RFC3339").
				WithDetails(map[string]any{"field": "sold_at"})
		}
		soldAt = parsed.UTC()
	}

	sale := &models.Sale{
		ID:                uuid.New(),
		ClientName:        strings.TrimSpace(input.ClientName),
		ClientEmail:       input.ClientEmail,
		ClientPhone:       input.ClientPhone,
		Product:           strings.TrimSpace(input.Product),
		Description:       input.Description,
		Quantity:          quantity,
		SalePrice:         money.salePrice,
		Cost:              money.cost,
		Discount:          money.discount,
		Taxes:             money.taxes,
		PaymentCommission: money.paymentCommission,
		EmployeePayout:    money.employeePayout,
		NetProfit:         computeNetProfit(money),
		PaymentMethod:     strings.TrimSpace(input.PaymentMethod),
		Status:            enums.SaleStatusPending,
		AttendedByID:      &actorID,
		SoldAt:            soldAt,
	}

	created, err := s.createWithFolioRetry(ctx, sale)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist sale")
	}

	s.spawnDelivery(ctx, created)

	resp := NewSaleResponse(created)
	return &resp, nil
}

// createWithFolioRetry regenerates the folio once if another request won the
// same millisecond+suffix pair.
func (s *service) createWithFolioRetry(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	for attempt := 0; attempt < 2; attempt++ {
		folio, err := s.generateFolio()
		if err != nil {
			return nil, err
		}
		sale.Folio = folio

		created, createErr := s.repo.Create(ctx, sale)
		if createErr == nil {
			return created, nil
		}
		if pkgerrors.IsUniqueViolation(createErr, "idx_sales_folio") && attempt == 0 {
			continue
		}
		return nil, createErr
	}
	return nil, fmt.Errorf("folio collision after retry")
}

func (s *service) generateFolio() (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("read random suffix: %w", err)
	}
	for i := range suffix {
		suffix[i] = folioSuffixAlphabet[int(suffix[i])%len(folioSuffixAlphabet)]
	}
	return fmt.Sprintf("VTA-%d-%s", s.now().UnixMilli(), string(suffix)), nil
}

func (s *service) spawnDelivery(ctx context.Context, sale *models.Sale) {
	if s.deliveries == nil {
		return
	}
	if err := s.deliveries.CreateFromSale(ctx, sale); err != nil {
		s.metrics.IncAutoCreateFailure()
		if s.logg != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{
				"sale_id": sale.ID.String(),
				"folio":   sale.Folio,
			})
			s.logg.Error(logCtx, "delivery.autocreate.failed", err)
		}
		return
	}
	s.metrics.IncAutoCreated()
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "sale not found")
	}
	resp := NewSaleResponse(sale)
	return &resp, nil
}

func (s *service) GetByFolio(ctx context.Context, folio string) (*SaleResponse, error) {
	sale, err := s.repo.FindByFolio(ctx, strings.TrimSpace(folio))
	if err != nil {
		return nil, notFoundOrDependency(err, "sale not found")
	}
	resp := NewSaleResponse(sale)
	return &resp, nil
}

// List returns the full sale set ordered by transaction date descending; the
// ledger is reviewed whole, so no pagination is applied.
func (s *service) List(ctx context.Context, filters SaleFilters) (*SaleList, error) {
	items, err := s.repo.List(ctx, filters)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}

	list := &SaleList{Items: make([]SaleResponse, 0, len(items))}
	for i := range items {
		list.Items = append(list.Items, NewSaleResponse(&items[i]))
	}
	return list, nil
}

type moneyFields struct {
	salePrice         decimal.Decimal
	cost              decimal.Decimal
	discount          decimal.Decimal
	taxes             decimal.Decimal
	paymentCommission decimal.Decimal
	employeePayout    decimal.Decimal
}

func parseMoneyFields(input CreateSaleInput) (moneyFields, error) {
	var out moneyFields
	fields := []struct {
		name     string
		raw      string
		dest     *decimal.Decimal
		required bool
		positive bool
	}{
		{"sale_price", input.SalePrice, &out.salePrice, true, true},
		{"cost", input.Cost, &out.cost, false, false},
		{"discount", input.Discount, &out.discount, false, false},
		{"taxes", input.Taxes, &out.taxes, false, false},
		{"payment_commission", input.PaymentCommission, &out.paymentCommission, false, false},
		{"employee_payout", input.EmployeePayout, &out.employeePayout, false, false},
	}

	for _, f := range fields {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			if f.required {
				return out, pkgerrors.New(pkgerrors.CodeValidation, "amount is required").
					WithDetails(map[string]any{"field": f.name})
			}
			*f.dest = decimal.Zero
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return out, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a decimal string").
				WithDetails(map[string]any{"field": f.name})
		}
		if f.positive && !value.IsPositive() {
			return out, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero").
				WithDetails(map[string]any{"field": f.name})
		}
		if value.IsNegative() {
			return out, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative").
				WithDetails(map[string]any{"field": f.name})
		}
		*f.dest = value
	}
	return out, nil
}

func computeNetProfit(m moneyFields) decimal.Decimal {
	return m.salePrice.
		Sub(m.cost).
		Sub(m.discount).
		Sub(m.taxes).
		Sub(m.paymentCommission).
		Sub(m.employeePayout)
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
