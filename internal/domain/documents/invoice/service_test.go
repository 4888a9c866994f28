package invoice

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/core/numerator"
	"suvarnadesk/internal/core/types"
	"suvarnadesk/internal/domain"
	"suvarnadesk/internal/domain/catalogs/labourcharge"
	"suvarnadesk/internal/domain/pricing"
	"suvarnadesk/internal/domain/rates"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	mu       sync.Mutex
	invoices map[id.ID]*Invoice
	lines    map[id.ID][]*Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		invoices: make(map[id.ID]*Invoice),
		lines:    make(map[id.ID][]*Line),
	}
}

func (r *fakeRepo) Create(ctx context.Context, inv *Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *inv
	clone.Lines = nil
	r.invoices[inv.ID] = &clone
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, inv *Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[inv.ID]; !ok {
		return apperror.NewNotFound("invoice", inv.ID.String())
	}
	clone := *inv
	clone.Lines = nil
	r.invoices[inv.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, invoiceID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}
	inv.DeletionMark = true
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	clone := *inv
	return &clone, nil
}

func (r *fakeRepo) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.Number == number {
			clone := *inv
			return &clone, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", number)
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	return r.GetByID(ctx, invoiceID)
}

func (r *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := domain.ListResult[*Invoice]{}
	for _, inv := range r.invoices {
		clone := *inv
		result.Items = append(result.Items, &clone)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) SaveLines(ctx context.Context, lines []*Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range lines {
		clone := *line
		r.lines[line.InvoiceID] = append(r.lines[line.InvoiceID], &clone)
	}
	return nil
}

func (r *fakeRepo) GetLines(ctx context.Context, invoiceID id.ID) ([]*Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lines[invoiceID], nil
}

type existsAll struct{}

func (existsAll) Exists(ctx context.Context, _ id.ID) (bool, error) { return true, nil }

type existsNone struct{}

func (existsNone) Exists(ctx context.Context, _ id.ID) (bool, error) { return false, nil }

func seqNumerator() *numerator.MockGenerator {
	var (
		mu sync.Mutex
		n  int64
	)
	return &numerator.MockGenerator{
		GetNextNumberFunc: func(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("%s-%s-%05d", cfg.Prefix, period.Format("2006"), n), nil
		},
	}
}

type stubRates struct {
	rate decimal.Decimal
}

func (s stubRates) ResolveRate(ctx context.Context, metal rates.MetalType, purity string) (decimal.Decimal, error) {
	if s.rate.IsZero() {
		return decimal.Zero, apperror.NewNoActiveRate(string(metal), purity)
	}
	return s.rate, nil
}

type stubCharges struct {
	charges map[id.ID]*labourcharge.LabourCharge
}

func (s stubCharges) ResolveCharge(ctx context.Context, chargeID id.ID) (*labourcharge.LabourCharge, error) {
	if c, ok := s.charges[chargeID]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("labour_charge", chargeID.String())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestService(repo Repository, rate decimal.Decimal, charges map[id.ID]*labourcharge.LabourCharge) *Service {
	return NewService(ServiceConfig{
		Repo:      repo,
		TxManager: passthroughTxManager{},
		Calc:      pricing.NewCalculator(stubRates{rate: rate}, stubCharges{charges: charges}),
		Numerator: seqNumerator(),
		Customers: existsAll{},
		Workers:   existsAll{},
	})
}

func goldInput(customerID id.ID) CreateInput {
	return CreateInput{
		CustomerID: customerID,
		GSTPercent: dec("3"),
		AmountPaid: dec("50000"),
		LineItems: []pricing.LineItemInput{
			{
				ItemType: pricing.ItemGold,
				Purity:   "24K",
				Weight:   pricing.Weight{Value: dec("10"), Unit: pricing.UnitGram},
			},
		},
	}
}

func TestCreate_FreezesSnapshot(t *testing.T) {
	repo := newFakeRepo()
	chargeID := id.New()
	charges := map[id.ID]*labourcharge.LabourCharge{
		chargeID: labourcharge.New("LC-001", "Basic Making", labourcharge.ChargePerGram, types.MinorUnitsFromDecimal(dec("200"))),
	}
	svc := newTestService(repo, dec("6500"), charges)
	ctx := context.Background()

	in := goldInput(id.New())
	in.LineItems = append(in.LineItems, pricing.LineItemInput{
		ItemType:       pricing.ItemGold,
		Purity:         "24K",
		Weight:         pricing.Weight{Value: dec("10"), Unit: pricing.UnitGram},
		LabourChargeID: &chargeID,
	})

	inv, err := svc.Create(ctx, in)
	require.NoError(t, err)

	// 65000 + 67000 = 132000; GST 3% = 3960; grand = 135960; paid 50000.
	assert.Equal(t, "132000.00", inv.Subtotal.String())
	assert.Equal(t, "3960.00", inv.GSTAmount.String())
	assert.Equal(t, "135960.00", inv.GrandTotal.String())
	assert.Equal(t, "85960.00", inv.BalanceDue.String())
	assert.True(t, inv.Finalized)
	assert.Equal(t, PaymentPartial, inv.PaymentStatus())

	// Lines are persisted with snapshotted rates.
	loaded, err := svc.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 2)
	assert.Equal(t, "6500.00", loaded.Lines[0].RatePerGram.String())
	assert.Equal(t, "2000.00", loaded.Lines[1].LabourChargeAmount.String())
	assert.Equal(t, 1, loaded.Lines[0].LineNo)
	assert.Equal(t, 2, loaded.Lines[1].LineNo)
}

func TestCreate_AssignsSequentialNumbers(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, dec("6500"), nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, goldInput(id.New()))
	require.NoError(t, err)
	second, err := svc.Create(ctx, goldInput(id.New()))
	require.NoError(t, err)

	year := time.Now().Format("2006")
	assert.Equal(t, fmt.Sprintf("INV-%s-00001", year), first.Number)
	assert.Equal(t, fmt.Sprintf("INV-%s-00002", year), second.Number)
}

func TestCreate_UnknownCustomerRejected(t *testing.T) {
	svc := NewService(ServiceConfig{
		Repo:      newFakeRepo(),
		TxManager: passthroughTxManager{},
		Calc:      pricing.NewCalculator(stubRates{rate: dec("6500")}, stubCharges{}),
		Numerator: seqNumerator(),
		Customers: existsNone{},
		Workers:   existsAll{},
	})

	_, err := svc.Create(context.Background(), goldInput(id.New()))
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_MissingRateFailsWholeInvoice(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, decimal.Zero, nil)

	_, err := svc.Create(context.Background(), goldInput(id.New()))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNoActiveRate, appErr.Code)

	// Nothing was persisted.
	result, listErr := repo.List(context.Background(), domain.ListFilter{})
	require.NoError(t, listErr)
	assert.Zero(t, result.TotalCount)
}

func TestRecordPayment(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, dec("6500"), nil)
	ctx := context.Background()

	inv, err := svc.Create(ctx, goldInput(id.New()))
	require.NoError(t, err)
	// grand 66950 (65000 + 3% GST 1950), paid 50000, balance 16950.
	assert.Equal(t, "16950.00", inv.BalanceDue.String())

	paid, err := svc.RecordPayment(ctx, inv.ID, dec("16950"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", paid.BalanceDue.String())
	assert.Equal(t, PaymentPaid, paid.PaymentStatus())

	// Overpayment becomes a credit.
	credit, err := svc.RecordPayment(ctx, inv.ID, dec("100"))
	require.NoError(t, err)
	assert.Equal(t, "-100.00", credit.BalanceDue.String())
	assert.Equal(t, PaymentCredit, credit.PaymentStatus())
}

func TestRecordPayment_Validation(t *testing.T) {
	svc := newTestService(newFakeRepo(), dec("6500"), nil)

	_, err := svc.RecordPayment(context.Background(), id.New(), decimal.Zero)
	require.Error(t, err)

	_, err = svc.RecordPayment(context.Background(), id.New(), dec("-5"))
	require.Error(t, err)
}
