package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/domain/documents/invoice"
	"suvarnadesk/internal/infrastructure/storage/postgres"
)

const (
	invoiceTable     = "doc_invoices"
	invoiceLineTable = "doc_invoice_lines"
)

var invoiceLineColumns = postgres.ExtractDBColumns[invoice.Line]()

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]

	txm      *postgres.TxManager
	inserter *postgres.BatchInserter
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*invoice.Invoice](
			txm,
			invoiceTable,
			postgres.ExtractDBColumns[invoice.Invoice](),
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
		txm:      txm,
		inserter: postgres.NewBatchInserter(txm),
	}
}

// SaveLines bulk-inserts the line snapshot using COPY.
func (r *InvoiceRepo) SaveLines(ctx context.Context, lines []*invoice.Line) error {
	if len(lines) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(lines))
	for _, line := range lines {
		data := postgres.StructToMap(line)
		row := make([]any, 0, len(invoiceLineColumns))
		for _, col := range invoiceLineColumns {
			row = append(row, data[col])
		}
		rows = append(rows, row)
	}

	n, err := r.inserter.CopyFromSlice(ctx, invoiceLineTable, invoiceLineColumns, rows)
	if err != nil {
		return fmt.Errorf("copy invoice lines: %w", err)
	}
	if n != int64(len(lines)) {
		return fmt.Errorf("copy invoice lines: inserted %d of %d", n, len(lines))
	}
	return nil
}

// GetLines returns lines for the invoice ordered by line_no.
func (r *InvoiceRepo) GetLines(ctx context.Context, invoiceID id.ID) ([]*invoice.Line, error) {
	q := r.Builder().
		Select(invoiceLineColumns...).
		From(invoiceLineTable).
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []*invoice.Line
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}
	return lines, nil
}
