package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/groupfit/backend/api/transport"
	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/pkg/httpcontext"
	"github.com/groupfit/backend/usecase/cache"
)

type TaskHandler struct {
	baseHandler
	caches *cache.Manager
}

func NewTaskHandler(caches *cache.Manager, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		caches:      caches,
	}
}

// @Summary List the session's cached tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
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
	h.respondSuccess(ctx, http.StatusOK, c.Tasks())
}

// @Summary Search cached tasks by title
// @Tags tasks
// @Router /api/v1/tasks/search [get]
func (h *TaskHandler) SearchTasks(ctx *fasthttp.RequestCtx) {
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

	query := string(ctx.QueryArgs().Peek("q"))
	groupingID := string(ctx.QueryArgs().Peek("grouping_id"))
	h.respondSuccess(ctx, http.StatusOK, c.SearchTasks(query, groupingID))
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	draft, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	c, err := h.caches.Activate(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	created, err := c.CreateTask(stdCtx, draft)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	patch, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	c, err := h.caches.Activate(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := c.UpdateTask(stdCtx, id, patch); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, c.Tasks())
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	c, err := h.caches.Activate(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := c.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *TaskHandler) parseTask(ctx *fasthttp.RequestCtx) (domain.Task, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return domain.Task{}, false
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid start_date_time", nil))
		return domain.Task{}, false
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid end_date_time", nil))
		return domain.Task{}, false
	}

	var notification *time.Time
	if req.Notification != "" {
		parsed, err := time.Parse(time.RFC3339, req.Notification)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid notification", nil))
			return domain.Task{}, false
		}
		notification = &parsed
	}

	return domain.Task{
		Title:        req.Title,
		Start:        start,
		End:          end,
		Location:     req.Location,
		GroupingID:   req.GroupingID,
		Notes:        req.Notes,
		Priority:     req.Priority,
		Notification: notification,
		IsComplete:   req.IsComplete,
		CompletedBy:  req.CompletedBy,
	}, true
}
