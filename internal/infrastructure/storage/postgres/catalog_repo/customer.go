package catalog_repo

import (
	"suvarnadesk/internal/domain/catalogs/customer"
	"suvarnadesk/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

// CustomerRepo implements the customer catalog repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*customer.Customer](
			txm,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}
