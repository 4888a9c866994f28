// Package rate_repo provides the PostgreSQL implementation of the rate ledger.
package rate_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/domain/rates"
	"suvarnadesk/internal/infrastructure/storage/postgres"
)

const rateTable = "rate_records"

// RateRepo implements rates.Repository.
//
// The table carries a partial unique index on (metal_type, purity)
// WHERE is_active, so at most one active record per pair survives even
// if the advisory lock is bypassed.
type RateRepo struct {
	txm        *postgres.TxManager
	selectCols []string
}

// NewRateRepo creates a new rate ledger repository.
func NewRateRepo(txm *postgres.TxManager) *RateRepo {
	return &RateRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[rates.RateRecord](),
	}
}

func (r *RateRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// LockPair takes a transaction-scoped advisory lock keyed by the pair.
// The lock is released automatically at commit or rollback.
func (r *RateRepo) LockPair(ctx context.Context, metal rates.MetalType, purity string) error {
	querier := r.txm.GetQuerier(ctx)
	_, err := querier.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`,
		string(metal)+"/"+purity)
	if err != nil {
		return fmt.Errorf("lock rate pair: %w", err)
	}
	return nil
}

// DeactivateActive clears is_active on the current active record.
func (r *RateRepo) DeactivateActive(ctx context.Context, metal rates.MetalType, purity string) (int64, error) {
	q := r.builder().
		Update(rateTable).
		Set("is_active", false).
		Set("last_updated", time.Now()).
		Where(squirrel.Eq{"metal_type": metal, "purity": purity, "is_active": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build deactivate: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("deactivate rate: %w", err)
	}
	return result.RowsAffected(), nil
}

// Insert stores a new rate record.
func (r *RateRepo) Insert(ctx context.Context, rec *rates.RateRecord) error {
	data := postgres.StructToMap(rec)

	q := r.builder().
		Insert(rateTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert rate: %w", err)
	}
	return nil
}

// GetActive returns the single active record for the pair.
func (r *RateRepo) GetActive(ctx context.Context, metal rates.MetalType, purity string) (*rates.RateRecord, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(rateTable).
		Where(squirrel.Eq{"metal_type": metal, "purity": purity, "is_active": true}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec rates.RateRecord
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNoActiveRate(string(metal), purity)
		}
		return nil, fmt.Errorf("get active rate: %w", err)
	}
	return &rec, nil
}

// ListActive returns all active records ordered by pair.
func (r *RateRepo) ListActive(ctx context.Context) ([]*rates.RateRecord, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(rateTable).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("metal_type ASC", "purity ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var recs []*rates.RateRecord
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &recs, sql, args...); err != nil {
		return nil, fmt.Errorf("list active rates: %w", err)
	}
	return recs, nil
}

// History returns records for the pair created at or after since, newest first.
func (r *RateRepo) History(ctx context.Context, metal rates.MetalType, purity string, since time.Time) ([]*rates.RateRecord, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(rateTable).
		Where(squirrel.Eq{"metal_type": metal, "purity": purity}).
		Where(squirrel.GtOrEq{"created_at": since}).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var recs []*rates.RateRecord
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &recs, sql, args...); err != nil {
		return nil, fmt.Errorf("rate history: %w", err)
	}
	return recs, nil
}
