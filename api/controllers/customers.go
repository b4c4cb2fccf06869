package controllers

import (
	"net/http"

	"github.com/douglasalbuquerque/vision-api/api/responses"
	"github.com/douglasalbuquerque/vision-api/internal/customers"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
	"github.com/douglasalbuquerque/vision-api/pkg/logger"
)

func CustomerList(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
