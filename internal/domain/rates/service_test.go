package rates

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suvarnadesk/internal/core/apperror"
)

// passthroughTxManager runs fn directly, no real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo is an in-memory ledger that mirrors the storage contract,
// including the at-most-one-active rule.
type fakeRepo struct {
	mu      sync.Mutex
	records []*RateRecord

	insertErr error
	lockCalls int
}

func (r *fakeRepo) LockPair(ctx context.Context, metal MetalType, purity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lockCalls++
	return nil
}

func (r *fakeRepo) DeactivateActive(ctx context.Context, metal MetalType, purity string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rec := range r.records {
		if rec.MetalType == metal && rec.Purity == purity && rec.IsActive {
			rec.IsActive = false
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) Insert(ctx context.Context, rec *RateRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *rec
	r.records = append(r.records, &clone)
	return nil
}

func (r *fakeRepo) GetActive(ctx context.Context, metal MetalType, purity string) (*RateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.MetalType == metal && rec.Purity == purity && rec.IsActive {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, apperror.NewNoActiveRate(string(metal), purity)
}

func (r *fakeRepo) ListActive(ctx context.Context) ([]*RateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*RateRecord
	for _, rec := range r.records {
		if rec.IsActive {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeRepo) History(ctx context.Context, metal MetalType, purity string, since time.Time) ([]*RateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*RateRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if rec.MetalType == metal && rec.Purity == purity && !rec.CreatedAt.Before(since) {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubFeed struct {
	quotes []Quote
	err    error
	block  chan struct{} // if set, FetchCurrentPrices waits until closed
	calls  int
	mu     sync.Mutex
}

func (f *stubFeed) FetchCurrentPrices(ctx context.Context) ([]Quote, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func newTestService(repo *fakeRepo, feed PriceFeed) *Service {
	return NewService(ServiceConfig{
		Repo:      repo,
		TxManager: passthroughTxManager{},
		Feed:      feed,
	})
}

func TestUpsertRate_Validation(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   RateInput
	}{
		{"unknown metal", RateInput{MetalType: "platinum", Purity: "950", RatePerGram: decimal.NewFromInt(3000)}},
		{"missing purity", RateInput{MetalType: MetalGold, RatePerGram: decimal.NewFromInt(6500)}},
		{"zero rate", RateInput{MetalType: MetalGold, Purity: "24K", RatePerGram: decimal.Zero}},
		{"negative rate", RateInput{MetalType: MetalGold, Purity: "24K", RatePerGram: decimal.NewFromInt(-1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpsertRate(ctx, tc.in)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestUpsertRate_Supersession(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.UpsertRate(ctx, RateInput{
		MetalType: MetalGold, Purity: "24K",
		RatePerGram: decimal.NewFromInt(6500), Source: SourceManual,
	})
	require.NoError(t, err)

	_, err = svc.UpsertRate(ctx, RateInput{
		MetalType: MetalGold, Purity: "24K",
		RatePerGram: decimal.NewFromInt(6600), Source: SourceManual,
	})
	require.NoError(t, err)

	active, err := svc.GetActiveRates(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1, "exactly one active record per pair")
	assert.Equal(t, "6600.00", active[0].RatePerGram.String())

	history, err := svc.GetHistory(ctx, MetalGold, "24K", 7)
	require.NoError(t, err)
	assert.Len(t, history, 2, "superseded record is retained")

	// Newest first, and only the newest is active.
	assert.True(t, history[0].IsActive)
	assert.False(t, history[1].IsActive)

	assert.Equal(t, 2, repo.lockCalls, "each upsert takes the pair lock")
}

func TestUpsertRate_CrossPairIndependent(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.UpsertRate(ctx, RateInput{MetalType: MetalGold, Purity: "24K", RatePerGram: decimal.NewFromInt(6500)})
	require.NoError(t, err)
	_, err = svc.UpsertRate(ctx, RateInput{MetalType: MetalGold, Purity: "22K", RatePerGram: decimal.NewFromInt(6000)})
	require.NoError(t, err)
	_, err = svc.UpsertRate(ctx, RateInput{MetalType: MetalSilver, Purity: "Sterling", RatePerGram: decimal.NewFromInt(82)})
	require.NoError(t, err)

	active, err := svc.GetActiveRates(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

func TestGetRate_NoActiveRate(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil)

	_, err := svc.GetRate(context.Background(), MetalSilver, "999")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNoActiveRate, appErr.Code)
	assert.True(t, apperror.IsNotFound(err))
}

func TestBulkUpsert_BestEffort(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, nil)
	ctx := context.Background()

	entries := []RateInput{
		{MetalType: MetalGold, Purity: "24K", RatePerGram: decimal.NewFromInt(6500)},
		{MetalType: MetalGold, Purity: "22K", RatePerGram: decimal.Zero}, // invalid
		{MetalType: MetalSilver, Purity: "Sterling", RatePerGram: decimal.NewFromInt(82)},
	}

	result, err := svc.BulkUpsert(ctx, entries)
	require.NoError(t, err)

	// Entries before and after the failed one are still applied.
	assert.Len(t, result.Applied, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 1, result.Failed[0].Index)

	active, err := svc.GetActiveRates(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestBulkUpsert_Empty(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil)
	_, err := svc.BulkUpsert(context.Background(), nil)
	require.Error(t, err)
}

func TestRefresh_FeedFailureLeavesRatesUntouched(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &stubFeed{err: errors.New("connection refused")})
	ctx := context.Background()

	// Seed an existing rate.
	_, err := svc.UpsertRate(ctx, RateInput{MetalType: MetalGold, Purity: "24K", RatePerGram: decimal.NewFromInt(6500)})
	require.NoError(t, err)

	_, err = svc.RefreshFromExternalSource(ctx)
	require.Error(t, err)
	assert.True(t, apperror.IsUpstreamUnavailable(err))

	// Existing rate still active and unchanged.
	rec, err := svc.GetRate(ctx, MetalGold, "24K")
	require.NoError(t, err)
	assert.Equal(t, "6500.00", rec.RatePerGram.String())
}

func TestRefresh_AppliesQuotesWithAPISource(t *testing.T) {
	repo := &fakeRepo{}
	feed := &stubFeed{quotes: []Quote{
		{MetalType: MetalGold, Purity: "24K", RatePerGram: decimal.NewFromInt(6700)},
		{MetalType: MetalSilver, Purity: "Sterling", RatePerGram: decimal.NewFromInt(85)},
	}}
	svc := newTestService(repo, feed)
	ctx := context.Background()

	result, err := svc.RefreshFromExternalSource(ctx)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Applied, 2)
	assert.Empty(t, result.Failed)

	for _, rec := range result.Applied {
		assert.Equal(t, SourceAPI, rec.Source)
	}
}

func TestRefresh_OverlappingCallIsNoOp(t *testing.T) {
	repo := &fakeRepo{}
	block := make(chan struct{})
	feed := &stubFeed{
		quotes: []Quote{{MetalType: MetalGold, Purity: "24K", RatePerGram: decimal.NewFromInt(6700)}},
		block:  block,
	}
	svc := newTestService(repo, feed)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.RefreshFromExternalSource(ctx)
	}()

	// Wait until the first refresh is inside the feed call.
	require.Eventually(t, func() bool {
		feed.mu.Lock()
		defer feed.mu.Unlock()
		return feed.calls == 1
	}, time.Second, 5*time.Millisecond)

	// The overlapping call returns immediately with no result and no error.
	result, err := svc.RefreshFromExternalSource(ctx)
	require.NoError(t, err)
	assert.Nil(t, result)

	close(block)
	<-done

	feed.mu.Lock()
	defer feed.mu.Unlock()
	assert.Equal(t, 1, feed.calls, "second call never reached the feed")
}
