package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/groupfit/backend/api/transport"
	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/pkg/httpcontext"
	"github.com/groupfit/backend/usecase/cache"
	"github.com/groupfit/backend/usecase/filters"
)

type FilterHandler struct {
	baseHandler
	store  *filters.Store
	caches *cache.Manager
}

func NewFilterHandler(store *filters.Store, caches *cache.Manager, adapter *httpcontext.Adapter, logger *zap.Logger) *FilterHandler {
	return &FilterHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
		caches:      caches,
	}
}

// @Summary The current filter selection, defaulting to every grouping
// @Tags filters
// @Router /api/v1/filters [get]
func (h *FilterHandler) GetFilters(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	c, err := h.caches.Activate(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	selection, err := h.store.Selected(stdCtx, userID, c.Groupings())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, selection)
}

// @Summary Replace the filter selection
// @Tags filters
// @Router /api/v1/filters [put]
func (h *FilterHandler) SetFilters(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.FilterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.store.SetSelected(stdCtx, userID, req.GroupingIDs); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, req.GroupingIDs)
}

// @Summary Toggle one grouping in or out of the filter selection
// @Tags filters
// @Router /api/v1/filters/toggle/{id} [post]
func (h *FilterHandler) ToggleFilter(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing grouping id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	c, err := h.caches.Activate(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	selection, err := h.store.Selected(stdCtx, userID, c.Groupings())
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	selection = filters.Toggle(selection, id)
	if err := h.store.SetSelected(stdCtx, userID, selection); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, selection)
}

// @Summary The caller's display period
// @Tags filters
// @Router /api/v1/filters/period [get]
func (h *FilterHandler) GetPeriod(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	h.respondSuccess(ctx, http.StatusOK, string(h.store.Period(userID)))
}

// @Summary Set the caller's display period
// @Tags filters
// @Router /api/v1/filters/period [put]
func (h *FilterHandler) SetPeriod(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.PeriodRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	if err := h.store.SetPeriod(userID, domain.Period(req.Period)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, req.Period)
}
