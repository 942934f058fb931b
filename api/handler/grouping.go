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
	groupingUC "github.com/groupfit/backend/usecase/grouping"
)

type GroupingHandler struct {
	baseHandler
	uc     *groupingUC.UseCase
	caches *cache.Manager
}

func NewGroupingHandler(uc *groupingUC.UseCase, caches *cache.Manager, adapter *httpcontext.Adapter, logger *zap.Logger) *GroupingHandler {
	return &GroupingHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		caches:      caches,
	}
}

// @Summary List the session's cached groupings
// @Tags groupings
// @Router /api/v1/groupings [get]
func (h *GroupingHandler) GetGroupings(ctx *fasthttp.RequestCtx) {
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

	if string(ctx.QueryArgs().Peek("shared")) == "true" {
		h.respondSuccess(ctx, http.StatusOK, c.SharedGroupings())
		return
	}
	h.respondSuccess(ctx, http.StatusOK, c.Groupings())
}

// @Summary Create a grouping and enroll its first members
// @Tags groupings
// @Router /api/v1/groupings [post]
func (h *GroupingHandler) CreateGrouping(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.GroupCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateGroup(stdCtx, userID, req.Name, req.DefaultColor, req.MemberIDs)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	// The session cache learns about the new grouping on the next refresh.
	if c, err := h.caches.Activate(stdCtx, userID); err == nil {
		if err := c.RefreshGroupings(stdCtx); err != nil {
			h.logger.Warn("grouping refresh after create failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Rename a grouping
// @Tags groupings
// @Router /api/v1/groupings/{id} [put]
func (h *GroupingHandler) RenameGrouping(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	var req transport.GroupRenameRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Rename(stdCtx, userID, id, req.Name); err != nil {
		h.respondError(ctx, err)
		return
	}

	if c, err := h.caches.Activate(stdCtx, userID); err == nil {
		if err := c.RefreshGroupings(stdCtx); err != nil {
			h.logger.Warn("grouping refresh after rename failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Enroll members into a grouping
// @Tags groupings
// @Router /api/v1/groupings/{id}/members [post]
func (h *GroupingHandler) AddMembers(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	var req transport.GroupMembersRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.AddMembers(stdCtx, userID, id, req.MemberIDs); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Select a grouping and load its member roster
// @Tags groupings
// @Router /api/v1/groupings/{id}/select [post]
func (h *GroupingHandler) SelectGrouping(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	c, err := h.caches.Activate(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := c.SetSelectedGrouping(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, c.Members())
}

// @Summary Clear the selected grouping
// @Tags groupings
// @Router /api/v1/groupings/selection [delete]
func (h *GroupingHandler) ClearSelection(ctx *fasthttp.RequestCtx) {
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

	if err := c.SetSelectedGrouping(stdCtx, ""); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary List the selected grouping's member roster
// @Tags groupings
// @Router /api/v1/groupings/selection/members [get]
func (h *GroupingHandler) GetMembers(ctx *fasthttp.RequestCtx) {
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
	h.respondSuccess(ctx, http.StatusOK, c.Members())
}
