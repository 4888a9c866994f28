package catalog_repo

import (
	"suvarnadesk/internal/domain/catalogs/labourcharge"
	"suvarnadesk/internal/infrastructure/storage/postgres"
)

const labourChargeTable = "cat_labour_charges"

// LabourChargeRepo implements the labour charge catalog repository.
type LabourChargeRepo struct {
	*BaseCatalogRepo[*labourcharge.LabourCharge]
}

// NewLabourChargeRepo creates a new labour charge repository.
func NewLabourChargeRepo(txm *postgres.TxManager) *LabourChargeRepo {
	return &LabourChargeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*labourcharge.LabourCharge](
			txm,
			labourChargeTable,
			postgres.ExtractDBColumns[labourcharge.LabourCharge](),
			func() *labourcharge.LabourCharge { return &labourcharge.LabourCharge{} },
		),
	}
}
