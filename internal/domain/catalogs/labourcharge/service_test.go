package labourcharge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/domain"
)

// passthroughTxManager runs fn directly, no real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo is an in-memory catalog store. List records the last filter
// it received so tests can assert on service-side filter handling.
type fakeRepo struct {
	items      map[id.ID]*LabourCharge
	lastFilter domain.ListFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[id.ID]*LabourCharge)}
}

func (r *fakeRepo) Create(ctx context.Context, c *LabourCharge) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, chargeID id.ID) (*LabourCharge, error) {
	c, ok := r.items[chargeID]
	if !ok {
		return nil, apperror.NewNotFound("labour_charge", chargeID.String())
	}
	return c, nil
}

func (r *fakeRepo) GetByCode(ctx context.Context, code string) (*LabourCharge, error) {
	for _, c := range r.items {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("labour_charge", code)
}

func (r *fakeRepo) Update(ctx context.Context, c *LabourCharge) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeRepo) SetDeletionMark(ctx context.Context, chargeID id.ID, marked bool) error {
	c, ok := r.items[chargeID]
	if !ok {
		return apperror.NewNotFound("labour_charge", chargeID.String())
	}
	c.DeletionMark = marked
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*LabourCharge], error) {
	r.lastFilter = filter
	result := domain.ListResult[*LabourCharge]{Limit: filter.Limit, Offset: filter.Offset}
	for _, c := range r.items {
		if c.DeletionMark && !filter.IncludeDeleted {
			continue
		}
		result.Items = append(result.Items, c)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) Exists(ctx context.Context, chargeID id.ID) (bool, error) {
	_, ok := r.items[chargeID]
	return ok, nil
}

func (r *fakeRepo) GetTree(ctx context.Context, rootID *id.ID) ([]*LabourCharge, error) {
	return nil, nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, passthroughTxManager{})
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	t.Run("unknown charge type rejected", func(t *testing.T) {
		c := New("LC-001", "Making charge", ChargeType("perKilo"), 45000)
		err := svc.Create(ctx, c)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		c := New("LC-001", "Making charge", ChargePerGram, 0)
		err := svc.Create(ctx, c)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("valid charge stored", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)
		c := New("LC-001", "Making charge", ChargePerGram, 45000)
		require.NoError(t, svc.Create(ctx, c))
		assert.Contains(t, repo.items, c.ID)
	})
}

func TestGetActiveCharge(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	active := New("LC-001", "Making charge", ChargePerGram, 45000)
	retired := New("LC-002", "Old polishing fee", ChargeFixedPerItem, 20000)
	retired.DeletionMark = true
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, retired))

	t.Run("active charge returned", func(t *testing.T) {
		got, err := svc.GetActiveCharge(ctx, active.ID)
		require.NoError(t, err)
		assert.Equal(t, "LC-001", got.Code)
	})

	t.Run("retired charge rejected", func(t *testing.T) {
		_, err := svc.GetActiveCharge(ctx, retired.ID)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeChargeInactive, appErr.Code)
	})

	t.Run("missing charge is not found", func(t *testing.T) {
		_, err := svc.GetActiveCharge(ctx, id.New())
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestListActive(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	// Even if the caller asks for deleted records, ListActive strips them.
	f := domain.DefaultListFilter()
	f.IncludeDeleted = true

	_, err := svc.ListActive(ctx, f)
	require.NoError(t, err)
	assert.False(t, repo.lastFilter.IncludeDeleted)
}

func TestAfterUpdateHook(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	var seen []string
	svc.Hooks().On(domain.AfterUpdate, func(ctx context.Context, c *LabourCharge) error {
		seen = append(seen, c.Code)
		return nil
	})

	c := New("LC-001", "Making charge", ChargePerGram, 45000)
	require.NoError(t, svc.Create(ctx, c))
	assert.Empty(t, seen)

	c.Amount = 50000
	require.NoError(t, svc.Update(ctx, c))
	assert.Equal(t, []string{"LC-001"}, seen)
}
