package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Chris-Devine/codecamp/internal/domain"
	"github.com/Chris-Devine/codecamp/internal/service"
	"github.com/Chris-Devine/codecamp/pkg/httpx"
	"github.com/Chris-Devine/codecamp/pkg/slogx"
)

// CampsHandler serves the camp catalogue under /api/camps.
type CampsHandler struct {
	CampService *service.CampService
}

// HandleList godoc
//
//	@Summary	List Camps
//	@Tags		Camps
//	@Produce	json
//	@Success	200	{array}	CampModel
//	@Router		/api/camps [get].
func (h *CampsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	camps, err := h.CampService.ListCamps(ctx)
	if err != nil {
		log.Error("listing camps failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorModel{Error: "internal error"})
		return
	}

	models := make([]CampModel, 0, len(camps))
	for _, c := range camps {
		models = append(models, toCampModel(c))
	}
	httpx.WriteJSON(w, http.StatusOK, models)
}

// HandleGet godoc
//
//	@Summary	Get Camp
//	@Tags		Camps
//	@Produce	json
//	@Param		moniker			path		string	true	"Camp moniker"
//	@Param		includeSpeakers	query		bool	false	"Include the camp's speaker list"
//	@Success	200				{object}	CampModel
//	@Failure	404				{object}	ErrorModel
//	@Router		/api/camps/{moniker} [get].
func (h *CampsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var (
		camp domain.Camp
		err  error
	)
	if includeSpeakers(r) {
		camp, err = h.CampService.GetCampWithSpeakers(ctx, r.PathValue("moniker"))
	} else {
		camp, err = h.CampService.GetCamp(ctx, r.PathValue("moniker"))
	}
	if err != nil {
		if errors.Is(err, service.ErrCampNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorModel{Error: "camp not found"})
			return
		}
		log.Error("fetching camp failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorModel{Error: "internal error"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCampModel(camp))
}

// HandleCreate godoc
//
//	@Summary	Create Camp
//	@Tags		Camps
//	@Accept		json
//	@Produce	json
//	@Param		camp	body		CampModel	true	"Camp to create"
//	@Success	201		{object}	CampModel
//	@Failure	400		{object}	ErrorModel
//	@Failure	401		{object}	ErrorModel
//	@Security	BearerAuth
//	@Router		/api/camps [post].
func (h *CampsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	model, ok := decodeCampModel(w, r)
	if !ok {
		return
	}

	created, err := h.CampService.CreateCamp(ctx, model.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateMoniker):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorModel{Error: "moniker already in use"})
		case errors.Is(err, service.ErrInvalidMoniker):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorModel{Error: "moniker is required"})
		default:
			log.Error("creating camp failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorModel{Error: "internal error"})
		}
		return
	}

	w.Header().Set("Location", "/api/camps/"+created.Moniker)
	httpx.WriteJSON(w, http.StatusCreated, toCampModel(created))
}

// HandleUpdate godoc
//
//	@Summary	Update Camp
//	@Tags		Camps
//	@Accept		json
//	@Produce	json
//	@Param		moniker	path		string		true	"Camp moniker"
//	@Param		camp	body		CampModel	true	"New camp state; a different moniker renames the camp"
//	@Success	200		{object}	CampModel
//	@Failure	400		{object}	ErrorModel
//	@Failure	401		{object}	ErrorModel
//	@Failure	404		{object}	ErrorModel
//	@Security	BearerAuth
//	@Router		/api/camps/{moniker} [put].
func (h *CampsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	model, ok := decodeCampModel(w, r)
	if !ok {
		return
	}

	updated, err := h.CampService.UpdateCamp(ctx, r.PathValue("moniker"), model.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, ErrorModel{Error: "camp not found"})
		case errors.Is(err, service.ErrDuplicateMoniker):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorModel{Error: "moniker already in use"})
		default:
			log.Error("updating camp failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorModel{Error: "internal error"})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCampModel(updated))
}

// HandleDelete godoc
//
//	@Summary	Delete Camp
//	@Tags		Camps
//	@Param		moniker	path	string	true	"Camp moniker"
//	@Success	204		"camp deleted"
//	@Failure	401		{object}	ErrorModel
//	@Failure	404		{object}	ErrorModel
//	@Security	BearerAuth
//	@Router		/api/camps/{moniker} [delete].
func (h *CampsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.CampService.DeleteCamp(ctx, r.PathValue("moniker")); err != nil {
		if errors.Is(err, service.ErrCampNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorModel{Error: "camp not found"})
			return
		}
		log.Error("deleting camp failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorModel{Error: "internal error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// includeSpeakers reads the optional includeSpeakers query parameter.
// Anything strconv.ParseBool rejects counts as false.
func includeSpeakers(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("includeSpeakers"))
	return err == nil && v
}

func decodeCampModel(w http.ResponseWriter, r *http.Request) (CampModel, bool) {
	var model CampModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorModel{Error: "invalid request body"})
		return CampModel{}, false
	}
	if err := validate.Struct(model); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorModel{Error: "invalid camp: " + err.Error()})
		return CampModel{}, false
	}
	return model, true
}
