package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/domain"
	"suvarnadesk/internal/domain/filter"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo stores customers in memory and records the last list filter.
type fakeRepo struct {
	items      map[id.ID]*Customer
	lastFilter domain.ListFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[id.ID]*Customer)}
}

func (r *fakeRepo) Create(ctx context.Context, c *Customer) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	c, ok := r.items[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID.String())
	}
	return c, nil
}

func (r *fakeRepo) GetByCode(ctx context.Context, code string) (*Customer, error) {
	for _, c := range r.items {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("customer", code)
}

func (r *fakeRepo) Update(ctx context.Context, c *Customer) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeRepo) SetDeletionMark(ctx context.Context, customerID id.ID, marked bool) error {
	c, ok := r.items[customerID]
	if !ok {
		return apperror.NewNotFound("customer", customerID.String())
	}
	c.DeletionMark = marked
	return nil
}

func (r *fakeRepo) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Customer], error) {
	r.lastFilter = f
	result := domain.ListResult[*Customer]{Limit: f.Limit, Offset: f.Offset}
	for _, c := range r.items {
		if matchesPhone(c, f.AdvancedFilters) {
			result.Items = append(result.Items, c)
		}
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func matchesPhone(c *Customer, filters []filter.Item) bool {
	for _, f := range filters {
		if f.Field == "phone" && f.Operator == filter.Equal && f.Value != c.Phone {
			return false
		}
	}
	return true
}

func (r *fakeRepo) Exists(ctx context.Context, customerID id.ID) (bool, error) {
	_, ok := r.items[customerID]
	return ok, nil
}

func (r *fakeRepo) GetTree(ctx context.Context, rootID *id.ID) ([]*Customer, error) {
	return nil, nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), passthroughTxManager{})
	ctx := context.Background()

	t.Run("missing phone rejected", func(t *testing.T) {
		err := svc.Create(ctx, New("CUST-001", "Asha Mehta", ""))
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		c := New("CUST-001", "Asha Mehta", "+91-9812001001")
		c.Email = "not-an-email"
		err := svc.Create(ctx, c)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestFindByPhone(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, passthroughTxManager{})
	ctx := context.Background()

	asha := New("CUST-001", "Asha Mehta", "+91-9812001001")
	ravi := New("CUST-002", "Ravi Shah", "+91-9812002002")
	require.NoError(t, svc.Create(ctx, asha))
	require.NoError(t, svc.Create(ctx, ravi))

	result, err := svc.FindByPhone(ctx, "+91-9812002002")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "CUST-002", result.Items[0].Code)

	// The lookup is an exact-match advanced filter on the phone field.
	require.Len(t, repo.lastFilter.AdvancedFilters, 1)
	assert.Equal(t, "phone", repo.lastFilter.AdvancedFilters[0].Field)
	assert.Equal(t, filter.Equal, repo.lastFilter.AdvancedFilters[0].Operator)
}
