package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/dayflow/backend/api/transport"
	"github.com/dayflow/backend/pkg/httpcontext"
	advisorUC "github.com/dayflow/backend/usecase/advisor"
)

type AdvisorHandler struct {
	baseHandler
	uc *advisorUC.UseCase
}

func NewAdvisorHandler(uc *advisorUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AdvisorHandler {
	return &AdvisorHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Export schedule context
// @Tags advisor
// @Router /api/v1/advisor/context [get]
func (h *AdvisorHandler) Context(ctx *fasthttp.RequestCtx) {
	format := string(ctx.QueryArgs().Peek("format"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	out, err := h.uc.Context(stdCtx, format)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"context": out})
}

// @Summary Ask the advisor a question
// @Tags advisor
// @Router /api/v1/advisor/ask [post]
func (h *AdvisorHandler) Ask(ctx *fasthttp.RequestCtx) {
	var req transport.AskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	answer, err := h.uc.Ask(stdCtx, req.Question)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"answer": answer})
}

// @Summary Validate today's plan
// @Tags advisor
// @Router /api/v1/advisor/validate [post]
func (h *AdvisorHandler) Validate(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	answer, err := h.uc.Validate(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"answer": answer})
}

// @Summary Plan the rest of the day
// @Tags advisor
// @Router /api/v1/advisor/plan [post]
func (h *AdvisorHandler) Plan(ctx *fasthttp.RequestCtx) {
	var req transport.PlanRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	answer, err := h.uc.Plan(stdCtx, req.Goals)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"answer": answer})
}

// @Summary Ask for a rescue plan
// @Tags advisor
// @Router /api/v1/advisor/optimize [post]
func (h *AdvisorHandler) Optimize(ctx *fasthttp.RequestCtx) {
	var req transport.OptimizeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	answer, err := h.uc.Optimize(stdCtx, req.Situation)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"answer": answer})
}
