package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/adfinis/poweradmin-api/internal/api/request"
	"github.com/adfinis/poweradmin-api/internal/api/response"
	"github.com/adfinis/poweradmin-api/internal/core"
	"github.com/adfinis/poweradmin-api/internal/model"
)

type Domain struct {
	svc *core.DomainService
}

func NewDomain(services *core.Services) *Domain {
	return &Domain{svc: services.Domain}
}

// Create godoc
//
//	@Summary		Create a domain
//	@Description	Creates a PowerDNS domain and, in the same transaction, the zone row that makes the caller its owner. Type defaults to NATIVE. No NOTIFY is sent to the DNS server.
//	@Tags			Domains
//	@Security		BearerAuth
//	@Param			body	body		request.CreateDomain	true	"Domain details"
//	@Success		201		{object}	model.Domain
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		401		{object}	response.ErrorResponse
//	@Failure		500		{object}	response.ErrorResponse
//	@Router			/domains [post]
func (h *Domain) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req request.CreateDomain
	if err := request.Decode(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	d := &model.Domain{Name: request.NormalizeName(req.Name), Type: req.Type}
	if err := h.svc.Create(r.Context(), uid, d); err != nil {
		writeServiceError(w, r, err, d.Name)
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Str("domain", d.Name).
		Str("type", d.Type).
		Msg("domain created")
	response.WriteJSON(w, http.StatusCreated, d)
}

// List godoc
//
//	@Summary		List domains
//	@Description	Returns the domains the caller owns through a zone link, ordered by name.
//	@Tags			Domains
//	@Security		BearerAuth
//	@Param			limit	query		int		false	"Page size"	default(50)
//	@Param			cursor	query		string	false	"Pagination cursor (last domain name)"
//	@Success		200		{object}	response.PaginatedResponse{items=[]model.Domain}
//	@Failure		401		{object}	response.ErrorResponse
//	@Failure		500		{object}	response.ErrorResponse
//	@Router			/domains [get]
func (h *Domain) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	pg := request.ParsePagination(r)

	domains, hasMore, err := h.svc.ListByOwner(r.Context(), uid, pg.Limit, pg.Cursor)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if domains == nil {
		domains = []model.Domain{}
	}

	var nextCursor string
	if hasMore && len(domains) > 0 {
		nextCursor = domains[len(domains)-1].Name
	}
	response.WritePaginated(w, http.StatusOK, domains, nextCursor, hasMore)
}

// Get godoc
//
//	@Summary		Get a domain
//	@Description	Returns a single domain by name if the caller owns it.
//	@Tags			Domains
//	@Security		BearerAuth
//	@Param			name	path		string	true	"Domain name"
//	@Success		200		{object}	model.Domain
//	@Failure		403		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/domains/{name} [get]
func (h *Domain) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	name, err := request.RequireID(chi.URLParam(r, "name"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.svc.GetByName(r.Context(), uid, request.NormalizeName(name))
	if err != nil {
		writeServiceError(w, r, err, name)
		return
	}
	response.WriteJSON(w, http.StatusOK, d)
}
