package controllers

import (
	"net/http"
	"strings"

	"github.com/omega-store/omega-backend/api/responses"
	"github.com/omega-store/omega-backend/api/validators"
	employeessvc "github.com/omega-store/omega-backend/internal/employees"
	"github.com/omega-store/omega-backend/pkg/enums"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/logger"
)

// EmployeeCreate registers a staff account.
func EmployeeCreate(svc employeessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "employees service unavailable"))
			return
		}

		var payload employeessvc.CreateEmployeeInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// EmployeeGet fetches one staff account by id.
func EmployeeGet(svc employeessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// EmployeeList returns a cursor page of staff accounts.
func EmployeeList(svc employeessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filters employeessvc.EmployeeFilters
		if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
			role, parseErr := enums.ParseRole(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown role").
					WithDetails(map[string]any{"field": "role"}))
				return
			}
			filters.Role = &role
		}
		active, err := queryBool(r, "is_active")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.IsActive = active

		resp, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// EmployeeUpdate edits mutable staff fields.
func EmployeeUpdate(svc employeessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload employeessvc.UpdateEmployeeInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// EmployeeDeactivate disables a staff account without deleting it.
func EmployeeDeactivate(svc employeessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Deactivate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
