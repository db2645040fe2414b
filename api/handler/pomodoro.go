package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/dayflow/backend/pkg/httpcontext"
	insightsUC "github.com/dayflow/backend/usecase/insights"
	plannerUC "github.com/dayflow/backend/usecase/planner"
)

type PomodoroHandler struct {
	baseHandler
	planner  *plannerUC.UseCase
	insights *insightsUC.UseCase
}

func NewPomodoroHandler(planner *plannerUC.UseCase, insights *insightsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PomodoroHandler {
	return &PomodoroHandler{
		baseHandler: newBaseHandler(adapter, logger),
		planner:     planner,
		insights:    insights,
	}
}

// @Summary Active pomodoro slice status
// @Tags pomodoro
// @Router /api/v1/pomodoro [get]
func (h *PomodoroHandler) Status(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status, err := h.planner.SliceStatus(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}

// @Summary Complete the active pomodoro slice
// @Tags pomodoro
// @Router /api/v1/pomodoro/complete [post]
func (h *PomodoroHandler) CompleteSlice(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status, err := h.planner.CompleteSlice(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if err := h.insights.AddBreakMinutes(stdCtx, int64(status.NextBreakMinutes)); err != nil {
		h.logger.Warn("failed to credit break time", zap.Error(err))
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}
