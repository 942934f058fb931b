package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/groupfit/backend/api/transport"
	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/pkg/httpcontext"
	"github.com/groupfit/backend/usecase/cache"
	"github.com/groupfit/backend/usecase/filters"
	"github.com/groupfit/backend/usecase/view"
)

// CalendarHandler serves the display projections derived from the session
// cache: the day-keyed event map, marked dates, the day view and the
// period-bucketed agenda. Every projection is recomputed from the current
// snapshot on each request.
type CalendarHandler struct {
	baseHandler
	caches  *cache.Manager
	filters *filters.Store
	now     func() time.Time
}

func NewCalendarHandler(caches *cache.Manager, filterStore *filters.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		baseHandler: newBaseHandler(adapter, logger),
		caches:      caches,
		filters:     filterStore,
		now:         time.Now,
	}
}

// @Summary Calendar events keyed by day, scoped to the filter selection
// @Tags calendar
// @Router /api/v1/calendar/events [get]
func (h *CalendarHandler) GetEvents(ctx *fasthttp.RequestCtx) {
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

	scope, err := h.scopeFromRequest(ctx, stdCtx, userID, c)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view.CalendarEvents(c.Tasks(), c.Groupings(), scope))
}

// @Summary Days on which a grouping has at least one task
// @Tags calendar
// @Router /api/v1/calendar/marked [get]
func (h *CalendarHandler) GetMarkedDates(ctx *fasthttp.RequestCtx) {
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

	groupingID := string(ctx.QueryArgs().Peek("grouping_id"))
	h.respondSuccess(ctx, http.StatusOK, view.MarkedDateKeys(c.Tasks(), groupingID))
}

// @Summary Tasks falling on one calendar day
// @Tags calendar
// @Router /api/v1/calendar/day/{date} [get]
func (h *CalendarHandler) GetDay(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	dateKey, _ := ctx.UserValue("date").(string)
	if _, err := time.Parse("2006-01-02", dateKey); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid date, want YYYY-MM-DD", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	c, err := h.caches.Activate(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	groupingID := string(ctx.QueryArgs().Peek("grouping_id"))
	h.respondSuccess(ctx, http.StatusOK, c.TasksOn(dateKey, groupingID))
}

// @Summary Period-bucketed agenda around the current instant
// @Tags calendar
// @Router /api/v1/agenda [get]
func (h *CalendarHandler) GetAgenda(ctx *fasthttp.RequestCtx) {
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

	period := h.filters.Period(userID)
	if raw := string(ctx.QueryArgs().Peek("period")); raw != "" {
		override := domain.Period(raw)
		if !override.IsValid() {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid period", nil))
			return
		}
		period = override
	}

	selection, err := h.filters.Selected(stdCtx, userID, c.Groupings())
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	buckets := view.PeriodBuckets(h.now(), period, c.Tasks(), c.Groupings(), selection)
	h.respondSuccess(ctx, http.StatusOK, buckets)
}

// scopeFromRequest picks between the single-grouping scope, when the query
// names one, and the filter-selection scope.
func (h *CalendarHandler) scopeFromRequest(ctx *fasthttp.RequestCtx, stdCtx context.Context, userID string, c *cache.Cache) (view.Scope, error) {
	if groupingID := string(ctx.QueryArgs().Peek("grouping_id")); groupingID != "" {
		color := DefaultGroupingColor(c.Groupings(), groupingID)
		return view.GroupingScope(groupingID, color), nil
	}

	selection, err := h.filters.Selected(stdCtx, userID, c.Groupings())
	if err != nil {
		return view.Scope{}, err
	}
	return view.FilterScope(selection), nil
}

// DefaultGroupingColor resolves a grouping's color from the snapshot,
// falling back to the calendar default when the id is unknown.
func DefaultGroupingColor(groupings []domain.Grouping, groupingID string) string {
	for _, g := range groupings {
		if g.ID == groupingID {
			return g.DefaultColor
		}
	}
	return view.DefaultEventColor
}
