package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adfinis/poweradmin-api/internal/api/request"
	"github.com/adfinis/poweradmin-api/internal/api/response"
	"github.com/adfinis/poweradmin-api/internal/core"
	"github.com/adfinis/poweradmin-api/internal/model"
)

type Zone struct {
	svc *core.ZoneService
}

func NewZone(services *core.Services) *Zone {
	return &Zone{svc: services.Zone}
}

// List godoc
//
//	@Summary		List zones
//	@Description	Returns the caller's zone links. Zones are created implicitly with their domain and cannot be written through this API.
//	@Tags			Zones
//	@Security		BearerAuth
//	@Param			limit	query		int		false	"Page size"	default(50)
//	@Param			cursor	query		string	false	"Pagination cursor"
//	@Success		200		{object}	response.PaginatedResponse{items=[]model.Zone}
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		500		{object}	response.ErrorResponse
//	@Router			/zones [get]
func (h *Zone) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	pg := request.ParsePagination(r)
	cursor, err := pg.CursorID()
	if err != nil {
		response.WriteFieldError(w, "cursor", err.Error())
		return
	}

	zones, hasMore, err := h.svc.ListByOwner(r.Context(), uid, pg.Limit, cursor)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if zones == nil {
		zones = []model.Zone{}
	}

	var nextCursor string
	if hasMore && len(zones) > 0 {
		nextCursor = strconv.FormatInt(zones[len(zones)-1].ID, 10)
	}
	response.WritePaginated(w, http.StatusOK, zones, nextCursor, hasMore)
}

// Get godoc
//
//	@Summary		Get a zone
//	@Tags			Zones
//	@Security		BearerAuth
//	@Param			domain	path		string	true	"Domain name"
//	@Success		200		{object}	model.Zone
//	@Failure		403		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/zones/{domain} [get]
func (h *Zone) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	name, err := request.RequireID(chi.URLParam(r, "domain"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	z, err := h.svc.GetByDomain(r.Context(), uid, request.NormalizeName(name))
	if err != nil {
		writeServiceError(w, r, err, name)
		return
	}
	response.WriteJSON(w, http.StatusOK, z)
}
