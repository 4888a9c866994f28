package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/core/numerator"
	"suvarnadesk/internal/core/tx"
	"suvarnadesk/internal/core/types"
	"suvarnadesk/internal/domain"
	"suvarnadesk/internal/domain/audit"
	"suvarnadesk/internal/domain/pricing"
	"suvarnadesk/pkg/logger"
)

// numberPrefix is the invoice number series ("INV-2026-00001").
const numberPrefix = "INV"

// CustomerChecker verifies the referenced customer exists.
type CustomerChecker interface {
	Exists(ctx context.Context, customerID id.ID) (bool, error)
}

// WorkerChecker verifies the referenced worker exists.
type WorkerChecker interface {
	Exists(ctx context.Context, workerID id.ID) (bool, error)
}

// Auditor records invoice changes.
type Auditor interface {
	LogInvoiceChange(ctx context.Context, invoiceID id.ID, action string, changes map[string]any) error
}

// CreateInput is the caller-supplied invoice draft.
type CreateInput struct {
	CustomerID id.ID                   `json:"customerId"`
	WorkerID   *id.ID                  `json:"workerId,omitempty"`
	Date       time.Time               `json:"date"`
	GSTPercent decimal.Decimal         `json:"gstPercent"`
	AmountPaid decimal.Decimal         `json:"amountPaid"`
	Comment    string                  `json:"comment,omitempty"`
	LineItems  []pricing.LineItemInput `json:"lineItems"`
	// Descriptions are optional per-line labels, index-aligned with LineItems.
	Descriptions []string `json:"descriptions,omitempty"`
}

// Service provides invoice business logic.
type Service struct {
	repo      Repository
	txManager tx.Manager
	calc      *pricing.Calculator
	numerator numerator.Generator
	customers CustomerChecker
	workers   WorkerChecker
	auditor   Auditor
}

// ServiceConfig configures the invoice service.
type ServiceConfig struct {
	Repo      Repository
	TxManager tx.Manager
	Calc      *pricing.Calculator
	Numerator numerator.Generator
	Customers CustomerChecker
	Workers   WorkerChecker
	Auditor   Auditor
}

// NewService creates an invoice service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:      cfg.Repo,
		txManager: cfg.TxManager,
		calc:      cfg.Calc,
		numerator: cfg.Numerator,
		customers: cfg.Customers,
		workers:   cfg.Workers,
		auditor:   cfg.Auditor,
	}
}

// Create prices every line against current rates, derives aggregates,
// assigns the next gapless invoice number and persists the frozen
// snapshot. The saved invoice never re-prices.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Invoice, error) {
	if id.IsNil(in.CustomerID) {
		return nil, apperror.NewValidation("customerId is required").
			WithDetail("field", "customerId")
	}
	exists, err := s.customers.Exists(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NewNotFound("customer", in.CustomerID.String())
	}
	if in.WorkerID != nil {
		exists, err := s.workers.Exists(ctx, *in.WorkerID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperror.NewNotFound("worker", in.WorkerID.String())
		}
	}

	priced, err := s.calc.PriceLineItems(ctx, in.LineItems)
	if err != nil {
		return nil, err
	}
	totals, err := pricing.PriceInvoice(priced, in.GSTPercent, in.AmountPaid)
	if err != nil {
		return nil, err
	}

	inv := New()
	inv.CustomerID = in.CustomerID
	inv.WorkerID = in.WorkerID
	inv.Comment = in.Comment
	if !in.Date.IsZero() {
		inv.Date = in.Date
	}
	audit.EnrichCreatedBy(ctx, &inv.CreatedBy, &inv.UpdatedBy)
	inv.ApplyTotals(totals)

	for i, p := range priced {
		desc := ""
		if i < len(in.Descriptions) {
			desc = in.Descriptions[i]
		}
		inv.Lines = append(inv.Lines, LineFromPriced(inv.ID, i+1, p, desc))
	}
	inv.MarkFinalized()

	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}

	// Strict numbering keeps the invoice series gapless; the numerator
	// row update serializes with the insert inside the transaction.
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		number, err := s.numerator.GetNextNumber(ctx,
			numerator.DefaultConfig(numberPrefix),
			&numerator.Options{Strategy: numerator.StrategyStrict},
			inv.Date)
		if err != nil {
			return err
		}
		inv.Number = number

		if err := s.repo.Create(ctx, inv); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, inv.Lines)
	})
	if err != nil {
		return nil, err
	}

	if s.auditor != nil {
		changes := map[string]any{
			"number":      inv.Number,
			"customer_id": inv.CustomerID.String(),
			"grand_total": inv.GrandTotal.String(),
			"lines":       len(inv.Lines),
		}
		// Backdated entry of paper invoices is legitimate but worth
		// flagging in the trail.
		if inv.IsBackdated() {
			changes["backdated"] = true
		}
		if auditErr := s.auditor.LogInvoiceChange(ctx, inv.ID, "create", changes); auditErr != nil {
			logger.Warn(ctx, "invoice audit failed", "error", auditErr)
		}
	}

	logger.Info(ctx, "invoice created",
		"number", inv.Number,
		"grand_total", inv.GrandTotal.String(),
		"lines", len(inv.Lines))
	return inv, nil
}

// GetByID returns the invoice with its lines.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return inv, nil
}

// GetByNumber returns the invoice with its lines.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	inv, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return inv, nil
}

// List returns invoices without lines.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}

// RecordPayment applies a payment against the invoice balance under a
// row lock. Overpayment yields a negative balance (customer credit).
func (s *Service) RecordPayment(ctx context.Context, invoiceID id.ID, amount decimal.Decimal) (*Invoice, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount").
			WithDetail("value", amount.String())
	}

	var (
		inv    *Invoice
		before map[string]any
	)
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.repo.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		before = paymentState(locked)
		if err := locked.RecordPayment(types.MinorUnitsFromDecimal(amount), time.Now().UTC()); err != nil {
			return err
		}
		audit.EnrichUpdatedBy(ctx, &locked.UpdatedBy)
		if err := s.repo.Update(ctx, locked); err != nil {
			return err
		}
		inv = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.auditor != nil {
		changes := audit.Diff(before, paymentState(inv))
		changes["amount"] = amount.String()
		if auditErr := s.auditor.LogInvoiceChange(ctx, inv.ID, "payment", changes); auditErr != nil {
			logger.Warn(ctx, "invoice audit failed", "error", auditErr)
		}
	}

	return inv, nil
}

// paymentState snapshots the fields a payment may change.
func paymentState(inv *Invoice) map[string]any {
	return map[string]any{
		"amount_paid": inv.AmountPaid.String(),
		"balance_due": inv.BalanceDue.String(),
		"status":      string(inv.PaymentStatus()),
	}
}

// Delete soft-deletes the invoice. Lines are retained for history.
func (s *Service) Delete(ctx context.Context, invoiceID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, invoiceID)
	})
}
