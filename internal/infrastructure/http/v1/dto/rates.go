package dto

import (
	"suvarnadesk/internal/domain/rates"
)

// BulkUpsertRatesRequest is the request body for the bulk rate update.
type BulkUpsertRatesRequest struct {
	Entries []rates.RateInput `json:"entries" binding:"required"`
}
