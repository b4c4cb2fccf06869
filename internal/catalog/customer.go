package catalog

import (
	"context"

	"github.com/douglasalbuquerque/vision-api/pkg/db"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
	"github.com/douglasalbuquerque/vision-api/pkg/types"
)

// ResolveCustomer maps an ERP companyId to an existing customer id. Identifiers
// that are not integers cannot name a customer and are reported as not found.
func ResolveCustomer(ctx context.Context, store Store, companyID types.LooseString) (int64, error) {
	id, err := companyID.Int64()
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "Customer not found")
	}
	customer, err := store.GetCustomer(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "Customer not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}
	return customer.ID, nil
}
