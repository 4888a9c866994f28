package rates

import (
	"context"
	"sync/atomic"
	"time"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/core/tx"
	"suvarnadesk/pkg/logger"
)

// Auditor records ledger changes. Implemented by the postgres audit service.
type Auditor interface {
	LogRateChange(ctx context.Context, recordID id.ID, action string, changes map[string]any) error
}

// Service orchestrates rate ledger operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
	feed      PriceFeed
	auditor   Auditor

	// refreshing guards against overlapping external refreshes.
	// An overlapping call is a logged no-op, not an error.
	refreshing atomic.Bool

	// feedTimeout bounds the external fetch so the guard flag
	// is never held indefinitely.
	feedTimeout time.Duration
}

// ServiceConfig configures the rate ledger service.
type ServiceConfig struct {
	Repo        Repository
	TxManager   tx.Manager
	Feed        PriceFeed
	Auditor     Auditor
	FeedTimeout time.Duration
}

// NewService creates a rate ledger service.
func NewService(cfg ServiceConfig) *Service {
	timeout := cfg.FeedTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Service{
		repo:        cfg.Repo,
		txManager:   cfg.TxManager,
		feed:        cfg.Feed,
		auditor:     cfg.Auditor,
		feedTimeout: timeout,
	}
}

// UpsertRate supersedes the current active quotation for the pair and
// inserts a new active one. The deactivate-then-insert sequence runs in
// a single transaction holding a per-pair advisory lock, so concurrent
// upserts for the same pair serialize while other pairs proceed freely.
func (s *Service) UpsertRate(ctx context.Context, in RateInput) (*RateRecord, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	rec := NewRecord(in)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.LockPair(ctx, in.MetalType, in.Purity); err != nil {
			return err
		}

		superseded, err := s.repo.DeactivateActive(ctx, in.MetalType, in.Purity)
		if err != nil {
			return err
		}

		if err := s.repo.Insert(ctx, rec); err != nil {
			return err
		}

		if superseded > 0 {
			logger.Debug(ctx, "rate superseded",
				"metal_type", in.MetalType,
				"purity", in.Purity,
				"rate_per_gram", in.RatePerGram.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.auditor != nil {
		if auditErr := s.auditor.LogRateChange(ctx, rec.ID, "create", map[string]any{
			"metal_type":    rec.MetalType,
			"purity":        rec.Purity,
			"rate_per_gram": rec.RatePerGram.String(),
			"source":        rec.Source,
		}); auditErr != nil {
			logger.Warn(ctx, "rate audit failed", "error", auditErr)
		}
	}

	return rec, nil
}

// BulkEntryError describes one failed entry of a bulk upsert.
type BulkEntryError struct {
	Index int       `json:"index"`
	Input RateInput `json:"input"`
	Err   error     `json:"-"`
	Error string    `json:"error"`
}

// BulkResult reports the outcome of a best-effort bulk upsert.
type BulkResult struct {
	Applied []*RateRecord    `json:"applied"`
	Failed  []BulkEntryError `json:"failed,omitempty"`
}

// BulkUpsert applies UpsertRate once per entry, in input order.
//
// Batch semantics are best-effort: a failed entry does not roll back
// entries already applied. Callers get the full per-entry breakdown
// instead of a single error.
func (s *Service) BulkUpsert(ctx context.Context, entries []RateInput) (*BulkResult, error) {
	if len(entries) == 0 {
		return nil, apperror.NewValidation("at least one rate entry is required").
			WithDetail("field", "entries")
	}

	result := &BulkResult{}
	for i, in := range entries {
		rec, err := s.UpsertRate(ctx, in)
		if err != nil {
			result.Failed = append(result.Failed, BulkEntryError{
				Index: i,
				Input: in,
				Err:   err,
				Error: err.Error(),
			})
			logger.Warn(ctx, "bulk upsert entry failed",
				"index", i,
				"metal_type", in.MetalType,
				"purity", in.Purity,
				"error", err)
			continue
		}
		result.Applied = append(result.Applied, rec)
	}
	return result, nil
}

// GetActiveRates returns all active quotations ordered by (metal, purity).
func (s *Service) GetActiveRates(ctx context.Context) ([]*RateRecord, error) {
	return s.repo.ListActive(ctx)
}

// GetRate returns the active quotation for the pair.
func (s *Service) GetRate(ctx context.Context, metal MetalType, purity string) (*RateRecord, error) {
	if !metal.IsValid() {
		return nil, apperror.NewValidation("metalType must be gold or silver").
			WithDetail("field", "metalType").
			WithDetail("value", string(metal))
	}
	if purity == "" {
		return nil, apperror.NewValidation("purity is required").
			WithDetail("field", "purity")
	}
	return s.repo.GetActive(ctx, metal, purity)
}

// GetHistory returns all quotations for the pair within the window,
// newest first. sinceDays <= 0 means the last 30 days.
func (s *Service) GetHistory(ctx context.Context, metal MetalType, purity string, sinceDays int) ([]*RateRecord, error) {
	if !metal.IsValid() {
		return nil, apperror.NewValidation("metalType must be gold or silver").
			WithDetail("field", "metalType").
			WithDetail("value", string(metal))
	}
	if purity == "" {
		return nil, apperror.NewValidation("purity is required").
			WithDetail("field", "purity")
	}
	if sinceDays <= 0 {
		sinceDays = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -sinceDays)
	return s.repo.History(ctx, metal, purity, since)
}

// RefreshFromExternalSource fetches current market prices and applies
// them via BulkUpsert with source = api.
//
// If a refresh is already running, the overlapping call returns
// immediately with (nil, nil) and is only logged. A feed failure leaves
// existing active rates untouched: no upsert is attempted at all.
func (s *Service) RefreshFromExternalSource(ctx context.Context) (*BulkResult, error) {
	if !s.refreshing.CompareAndSwap(false, true) {
		logger.Info(ctx, "rate refresh already running, skipping")
		return nil, nil
	}
	defer s.refreshing.Store(false)

	fetchCtx, cancel := context.WithTimeout(ctx, s.feedTimeout)
	defer cancel()

	quotes, err := s.feed.FetchCurrentPrices(fetchCtx)
	if err != nil {
		return nil, apperror.NewUpstreamUnavailable("price_feed", err)
	}
	if len(quotes) == 0 {
		logger.Warn(ctx, "price feed returned no quotes")
		return &BulkResult{}, nil
	}

	entries := make([]RateInput, 0, len(quotes))
	for _, q := range quotes {
		entries = append(entries, RateInput{
			MetalType:   q.MetalType,
			Purity:      q.Purity,
			RatePerGram: q.RatePerGram,
			Source:      SourceAPI,
		})
	}

	result, err := s.BulkUpsert(ctx, entries)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "rate refresh completed",
		"applied", len(result.Applied),
		"failed", len(result.Failed))
	return result, nil
}
