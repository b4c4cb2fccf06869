package controllers

import (
	"net/http"

	"github.com/douglasalbuquerque/vision-api/api/responses"
	"github.com/douglasalbuquerque/vision-api/api/validators"
	"github.com/douglasalbuquerque/vision-api/internal/matching"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
	"github.com/douglasalbuquerque/vision-api/pkg/logger"
)

// PartsSearch handles POST /api/parts/search2.
func PartsSearch(svc matching.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteFlatError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search service unavailable"))
			return
		}

		var req matching.SearchRequest
		if err := validators.DecodeLenientJSON(r, &req); err != nil {
			responses.WriteFlatError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"erp_id":     req.ERPId.String(),
				"company_id": req.CompanyID.String(),
			})
		}

		resp, err := svc.SearchParts(ctx, req)
		if err != nil {
			responses.WriteFlatError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			logg.Debug(logg.WithField(ctx, "results", resp.TotalResults), "parts.search.complete")
		}
		responses.WriteRaw(w, http.StatusOK, resp)
	}
}
