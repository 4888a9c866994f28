package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/domain/catalogs/labourcharge"
	"suvarnadesk/internal/domain/rates"
)

// ledgerResolver adapts the rate ledger to RateResolver.
type ledgerResolver struct {
	ledger *rates.Service
}

func (r ledgerResolver) ResolveRate(ctx context.Context, metal rates.MetalType, purity string) (decimal.Decimal, error) {
	rec, err := r.ledger.GetRate(ctx, metal, purity)
	if err != nil {
		return decimal.Zero, err
	}
	return rec.Rate(), nil
}

// chargeCatalogResolver adapts the labour charge catalog to ChargeResolver.
type chargeCatalogResolver struct {
	charges *labourcharge.Service
}

func (r chargeCatalogResolver) ResolveCharge(ctx context.Context, chargeID id.ID) (*labourcharge.LabourCharge, error) {
	return r.charges.GetActiveCharge(ctx, chargeID)
}

// Quote is a priced set of line items with invoice aggregates,
// computed from current rates but not persisted.
type Quote struct {
	LineItems []*PricedLineItem `json:"lineItems"`
	Totals    *InvoiceTotals    `json:"totals"`
}

// Service exposes pricing quotes over the live rate ledger and labour
// charge catalog.
type Service struct {
	calc *Calculator
}

// NewService wires the calculator against the ledger and catalog.
func NewService(ledger *rates.Service, charges *labourcharge.Service) *Service {
	return &Service{
		calc: NewCalculator(
			ledgerResolver{ledger: ledger},
			chargeCatalogResolver{charges: charges},
		),
	}
}

// Calculator returns the underlying calculator, used by the invoice
// document service to price lines at save time.
func (s *Service) Calculator() *Calculator {
	return s.calc
}

// QuoteInvoice prices the inputs against current rates and derives
// invoice aggregates. Re-run it whenever any input changes; nothing
// is cached between calls.
func (s *Service) QuoteInvoice(ctx context.Context, inputs []LineItemInput, gstPercent, amountPaid decimal.Decimal) (*Quote, error) {
	lines, err := s.calc.PriceLineItems(ctx, inputs)
	if err != nil {
		return nil, err
	}
	totals, err := PriceInvoice(lines, gstPercent, amountPaid)
	if err != nil {
		return nil, err
	}
	return &Quote{LineItems: lines, Totals: totals}, nil
}
