package controllers

import (
	"net/http"

	"github.com/omarsadiq/tailorware-backend/api/responses"
	"github.com/omarsadiq/tailorware-backend/api/validators"
	"github.com/omarsadiq/tailorware-backend/internal/audit"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
	"github.com/omarsadiq/tailorware-backend/pkg/logger"
	"github.com/omarsadiq/tailorware-backend/pkg/pagination"
)

// AuditList returns the audit trail, optionally filtered by entity_type.
// The router restricts this endpoint to admins.
func AuditList(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entityType := validators.SanitizeString(r.URL.Query().Get("entity_type"), 64)

		rows, err := svc.List(r.Context(), entityType, limit, offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
