package controllers

import (
	"net/http"

	"github.com/douglasalbuquerque/vision-api/api/middleware"
	"github.com/douglasalbuquerque/vision-api/api/responses"
	"github.com/douglasalbuquerque/vision-api/api/validators"
	"github.com/douglasalbuquerque/vision-api/internal/pricing"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
	"github.com/douglasalbuquerque/vision-api/pkg/logger"
)

// PricesBatch handles POST /api/prices/batch. The result is written without
// the data envelope.
func PricesBatch(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteFlatError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var req pricing.BatchRequest
		if err := validators.DecodeLenientJSON(r, &req); err != nil {
			responses.WriteFlatError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"erp_id":     req.ERPId.String(),
				"company_id": req.CompanyID.String(),
				"items":      len(req.Items),
				"principal":  middleware.PrincipalFromContext(ctx),
			})
		}

		resp, err := svc.ResolvePrices(ctx, req)
		if err != nil {
			responses.WriteFlatError(ctx, logg, w, err)
			return
		}
		responses.WriteRaw(w, http.StatusOK, resp)
	}
}
