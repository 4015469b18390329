package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/internal/orders"
	"github.com/omega-store/omega-backend/internal/sales"
	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/logger"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines payment confirmation operations.
type Service interface {
	Create(ctx context.Context, input CreatePaymentInput) (*PaymentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*PaymentResponse, error)
	List(ctx context.Context, params pagination.Params, filters PaymentFilters) (*PaymentList, error)
	Review(ctx context.Context, id uuid.UUID, input ReviewPaymentInput, reviewerID uuid.UUID) (*PaymentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo      Repository
	salesRepo sales.Repository
	orderRepo orders.Repository
	tx        txRunner
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds a payments service with the required dependencies.
func NewService(repo Repository, salesRepo sales.Repository, orderRepo orders.Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if salesRepo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      repo,
		salesRepo: salesRepo,
		orderRepo: orderRepo,
		tx:        tx,
		logg:      logg,
		now:       time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreatePaymentInput) (*PaymentResponse, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input.Amount))
	if err != nil || amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a non-negative decimal string").
			WithDetails(map[string]any{"field": "amount"})
	}

	// An explicit "0" is a deliberate statement about the cut; absence is not.
	raw := strings.TrimSpace(input.ManagerPercent)
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "manager_percent is required").
			WithDetails(map[string]any{"field": "manager_percent"})
	}
	managerPercent, parseErr := decimal.NewFromString(raw)
	if parseErr != nil || managerPercent.IsNegative() || managerPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "manager_percent must be between 0 and 100").
			WithDetails(map[string]any{"field": "manager_percent"})
	}

	if input.SaleID != nil {
		if _, findErr := s.salesRepo.FindByID(ctx, *input.SaleID); findErr != nil {
			return nil, notFoundOrDependency(findErr, "linked sale not found")
		}
	}
	if input.OrderID != nil {
		if _, findErr := s.orderRepo.FindByID(ctx, *input.OrderID); findErr != nil {
			return nil, notFoundOrDependency(findErr, "linked order not found")
		}
	}

	payment := &models.PaymentConfirmation{
		ID:             uuid.New(),
		SaleID:         input.SaleID,
		OrderID:        input.OrderID,
		ProofImageURL:  strings.TrimSpace(input.ProofImageURL),
		Amount:         amount,
		PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
		ClientName:     strings.TrimSpace(input.ClientName),
		Product:        strings.TrimSpace(input.Product),
		Channel:        input.Channel,
		ManagerPercent: managerPercent,
		Notes:          input.Notes,
		Status:         enums.PaymentConfirmationStatusPending,
	}

	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist payment confirmation")
	}
	resp := NewPaymentResponse(created)
	return &resp, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "payment confirmation not found")
	}
	resp := NewPaymentResponse(payment)
	return &resp, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters PaymentFilters) (*PaymentList, error) {
	items, err := s.repo.List(ctx, params, filters)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payment confirmations")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &PaymentList{Items: make([]PaymentResponse, 0, len(items))}
	for i, payment := range items {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: items[i-1].CreatedAt,
				ID:        items[i-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, NewPaymentResponse(&payment))
	}
	return list, nil
}

// Review resolves a pending confirmation. The status write and any linked
// sale/order promotion commit in one transaction. A rejection touches nothing
// downstream, even when an earlier confirmation already promoted the links.
func (s *service) Review(ctx context.Context, id uuid.UUID, input ReviewPaymentInput, reviewerID uuid.UUID) (*PaymentResponse, error) {
	decision, err := enums.ParsePaymentConfirmationStatus(input.Decision)
	if err != nil || !decision.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be CONFIRMED or REJECTED").
			WithDetails(map[string]any{"field": "decision"})
	}

	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "payment confirmation not found")
	}
	if payment.Status != enums.PaymentConfirmationStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment confirmation already reviewed").
			WithDetails(map[string]any{"current": payment.Status})
	}

	reviewedAt := s.now().UTC()
	updates := map[string]any{
		"status":         decision,
		"reviewed_by_id": reviewerID,
		"reviewed_at":    reviewedAt,
	}
	if input.ReviewNotes != nil {
		updates["review_notes"] = *input.ReviewNotes
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if txErr := s.repo.WithTx(tx).UpdateReview(ctx, id, updates); txErr != nil {
			return txErr
		}
		if decision != enums.PaymentConfirmationStatusConfirmed {
			return nil
		}
		if payment.SaleID != nil {
			if txErr := s.salesRepo.WithTx(tx).UpdateStatus(ctx, *payment.SaleID, enums.SaleStatusProcessing, &reviewerID); txErr != nil {
				return txErr
			}
		}
		if payment.OrderID != nil {
			if txErr := s.orderRepo.WithTx(tx).UpdateStatus(ctx, *payment.OrderID, enums.OrderStatusProcessing); txErr != nil {
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "review payment confirmation")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"payment_id": id.String(),
			"decision":   string(decision),
		})
		s.logg.Info(logCtx, "payment.reviewed")
	}

	return s.Get(ctx, id)
}

// Delete removes a confirmation. Only rejected records may go; everything else
// stays for the audit trail.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOrDependency(err, "payment confirmation not found")
	}
	if payment.Status != enums.PaymentConfirmationStatusRejected {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only rejected confirmations can be deleted").
			WithDetails(map[string]any{"current": payment.Status})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment confirmation")
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
