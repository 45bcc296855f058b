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

type Record struct {
	svc *core.RecordService
}

func NewRecord(services *core.Services) *Record {
	return &Record{svc: services.Record}
}

// decodeRecord reads and validates a record body. It writes a 400 and
// returns nil on failure.
func decodeRecord(w http.ResponseWriter, r *http.Request) *model.Record {
	var req request.Record
	if err := request.Decode(r, &req); err != nil {
		writeBadRequest(w, err)
		return nil
	}
	if err := request.ValidateRecord(req.Domain, req.Type, req.Name, req.Content); err != nil {
		writeBadRequest(w, err)
		return nil
	}
	return &model.Record{
		Domain:  request.NormalizeName(req.Domain),
		Name:    request.NormalizeName(req.Name),
		Type:    req.Type,
		Content: req.Content,
		TTL:     req.TTL,
		Prio:    req.Prio,
	}
}

// Create godoc
//
//	@Summary		Create a record
//	@Description	Creates a record in the named domain. The domain must exist (400 otherwise) and the caller must own it through a zone link (403 otherwise). TTL defaults to 3600.
//	@Tags			Records
//	@Security		BearerAuth
//	@Param			body	body		request.Record	true	"Record details"
//	@Success		201		{object}	model.Record
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		403		{object}	response.ErrorResponse
//	@Failure		500		{object}	response.ErrorResponse
//	@Router			/records [post]
func (h *Record) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	rec := decodeRecord(w, r)
	if rec == nil {
		return
	}

	if err := h.svc.Create(r.Context(), uid, rec); err != nil {
		writeServiceError(w, r, err, rec.Domain)
		return
	}
	response.WriteJSON(w, http.StatusCreated, rec)
}

// Update godoc
//
//	@Summary		Replace a record
//	@Description	Replaces every field of a record. The caller must own the target domain and, when the record moves, the domain it currently belongs to.
//	@Tags			Records
//	@Security		BearerAuth
//	@Param			id		path		int				true	"Record ID"
//	@Param			body	body		request.Record	true	"Record details"
//	@Success		200		{object}	model.Record
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		403		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/records/{id} [put]
func (h *Record) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := request.RequireIntID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec := decodeRecord(w, r)
	if rec == nil {
		return
	}
	rec.ID = id

	if err := h.svc.Update(r.Context(), uid, rec); err != nil {
		writeServiceError(w, r, err, rec.Domain)
		return
	}
	response.WriteJSON(w, http.StatusOK, rec)
}

// List godoc
//
//	@Summary		List records
//	@Description	Returns the records of every domain the caller owns, ordered by id.
//	@Tags			Records
//	@Security		BearerAuth
//	@Param			limit	query		int		false	"Page size"	default(50)
//	@Param			cursor	query		string	false	"Pagination cursor (last record id)"
//	@Success		200		{object}	response.PaginatedResponse{items=[]model.Record}
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		500		{object}	response.ErrorResponse
//	@Router			/records [get]
func (h *Record) List(w http.ResponseWriter, r *http.Request) {
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

	records, hasMore, err := h.svc.ListByOwner(r.Context(), uid, pg.Limit, cursor)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if records == nil {
		records = []model.Record{}
	}

	var nextCursor string
	if hasMore && len(records) > 0 {
		nextCursor = strconv.FormatInt(records[len(records)-1].ID, 10)
	}
	response.WritePaginated(w, http.StatusOK, records, nextCursor, hasMore)
}

// Get godoc
//
//	@Summary		Get a record
//	@Tags			Records
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Record ID"
//	@Success		200	{object}	model.Record
//	@Failure		403	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/records/{id} [get]
func (h *Record) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := request.RequireIntID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.GetByID(r.Context(), uid, id)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	response.WriteJSON(w, http.StatusOK, rec)
}
