package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/dayflow/backend/domain"
	"github.com/dayflow/backend/pkg/httpcontext"
	insightsUC "github.com/dayflow/backend/usecase/insights"
)

type InsightsHandler struct {
	baseHandler
	uc    *insightsUC.UseCase
	clock domain.Clock
}

func NewInsightsHandler(uc *insightsUC.UseCase, clock domain.Clock, adapter *httpcontext.Adapter, logger *zap.Logger) *InsightsHandler {
	if clock == nil {
		clock = domain.SystemClock()
	}
	return &InsightsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		clock:       clock,
	}
}

// @Summary Daily statistics snapshot
// @Tags insights
// @Router /api/v1/stats [get]
func (h *InsightsHandler) GetStats(ctx *fasthttp.RequestCtx) {
	date, ok := h.queryDate(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.StatsFor(stdCtx, date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// @Summary Daily accountability report
// @Tags insights
// @Router /api/v1/report [get]
func (h *InsightsHandler) GetReport(ctx *fasthttp.RequestCtx) {
	date, ok := h.queryDate(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	report, err := h.uc.Report(stdCtx, date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}

// @Summary Current streak
// @Tags insights
// @Router /api/v1/streak [get]
func (h *InsightsHandler) GetStreak(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	streak, err := h.uc.Streak(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, streak)
}

// @Summary Evaluate today's streak
// @Tags insights
// @Router /api/v1/streak/evaluate [post]
func (h *InsightsHandler) EvaluateStreak(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.EvaluateStreak(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

func (h *InsightsHandler) queryDate(ctx *fasthttp.RequestCtx) (time.Time, bool) {
	value := string(ctx.QueryArgs().Peek("date"))
	if value == "" {
		return h.clock.Now(), true
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		h.respondInvalid(ctx, "invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return parsed, true
}
