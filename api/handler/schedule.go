package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/dayflow/backend/api/transport"
	"github.com/dayflow/backend/domain"
	"github.com/dayflow/backend/pkg/httpcontext"
	plannerUC "github.com/dayflow/backend/usecase/planner"
)

type ScheduleHandler struct {
	baseHandler
	uc    *plannerUC.UseCase
	clock domain.Clock
}

func NewScheduleHandler(uc *plannerUC.UseCase, clock domain.Clock, adapter *httpcontext.Adapter, logger *zap.Logger) *ScheduleHandler {
	if clock == nil {
		clock = domain.SystemClock()
	}
	return &ScheduleHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		clock:       clock,
	}
}

// @Summary Get a day's schedule
// @Tags schedule
// @Router /api/v1/schedule [get]
func (h *ScheduleHandler) GetSchedule(ctx *fasthttp.RequestCtx) {
	date, ok := h.queryDate(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	schedule, err := h.uc.ScheduleFor(stdCtx, date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, schedule)
}

// @Summary Create a day's schedule
// @Tags schedule
// @Router /api/v1/schedule [post]
func (h *ScheduleHandler) CreateSchedule(ctx *fasthttp.RequestCtx) {
	var req transport.ScheduleCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	date, ok := h.parseDate(ctx, req.Date)
	if !ok {
		return
	}

	inputs := make([]plannerUC.TaskInput, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		inputs = append(inputs, taskInput(t))
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	schedule, err := h.uc.CreateSchedule(stdCtx, date, inputs)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, schedule)
}

// @Summary Shift tasks from an index onward
// @Tags schedule
// @Router /api/v1/schedule/shift [post]
func (h *ScheduleHandler) Shift(ctx *fasthttp.RequestCtx) {
	var req transport.ShiftRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	date, ok := h.parseDate(ctx, req.Date)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	schedule, err := h.uc.Shift(stdCtx, date, req.FromIndex, req.Minutes)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, schedule)
}

// @Summary Day summary metrics
// @Tags schedule
// @Router /api/v1/schedule/summary [get]
func (h *ScheduleHandler) Summary(ctx *fasthttp.RequestCtx) {
	date, ok := h.queryDate(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.Summarize(stdCtx, date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}

// @Summary Current in-progress task
// @Tags schedule
// @Router /api/v1/schedule/current [get]
func (h *ScheduleHandler) CurrentTask(ctx *fasthttp.RequestCtx) {
	h.taskQuery(ctx, h.uc.CurrentTask)
}

// @Summary Next pending task
// @Tags schedule
// @Router /api/v1/schedule/next [get]
func (h *ScheduleHandler) NextTask(ctx *fasthttp.RequestCtx) {
	h.taskQuery(ctx, h.uc.NextTask)
}

// @Summary Plan a task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *ScheduleHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	date, ok := h.parseDate(ctx, req.Date)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.AddTask(stdCtx, date, taskInput(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, task)
}

// @Summary Start a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/start [post]
func (h *ScheduleHandler) StartTask(ctx *fasthttp.RequestCtx) {
	h.taskAction(ctx, h.uc.StartTask)
}

// @Summary Pause a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/pause [post]
func (h *ScheduleHandler) PauseTask(ctx *fasthttp.RequestCtx) {
	h.taskAction(ctx, h.uc.PauseTask)
}

// @Summary Resume a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/resume [post]
func (h *ScheduleHandler) ResumeTask(ctx *fasthttp.RequestCtx) {
	h.taskAction(ctx, h.uc.ResumeTask)
}

// @Summary Complete a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/complete [post]
func (h *ScheduleHandler) CompleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}
	date, ok := h.queryDate(ctx)
	if !ok {
		return
	}
	force, _ := strconv.ParseBool(string(ctx.QueryArgs().Peek("force")))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.CompleteTask(stdCtx, date, id, force)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Skip a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/skip [post]
func (h *ScheduleHandler) SkipTask(ctx *fasthttp.RequestCtx) {
	h.taskAction(ctx, h.uc.SkipTask)
}

// @Summary Reschedule a task's planned window
// @Tags tasks
// @Router /api/v1/tasks/{id}/times [put]
func (h *ScheduleHandler) UpdateTaskTimes(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}
	var req transport.TaskTimesRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	date, ok := h.parseDate(ctx, req.Date)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.UpdateTaskTimes(stdCtx, date, id, req.Start, req.End)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Delete a task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *ScheduleHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}
	date, ok := h.queryDate(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, date, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

type taskActionFunc func(ctx context.Context, date time.Time, id string) (*domain.Task, error)

type taskQueryFunc func(ctx context.Context, date time.Time) (*domain.Task, error)

func (h *ScheduleHandler) taskAction(ctx *fasthttp.RequestCtx, action taskActionFunc) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}
	date, ok := h.queryDate(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := action(stdCtx, date, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

func (h *ScheduleHandler) taskQuery(ctx *fasthttp.RequestCtx, query taskQueryFunc) {
	date, ok := h.queryDate(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := query(stdCtx, date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

func (h *ScheduleHandler) taskID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return "", false
	}
	return id, true
}

// queryDate resolves the optional ?date=YYYY-MM-DD parameter, defaulting to
// today per the clock.
func (h *ScheduleHandler) queryDate(ctx *fasthttp.RequestCtx) (time.Time, bool) {
	return h.parseDate(ctx, string(ctx.QueryArgs().Peek("date")))
}

func (h *ScheduleHandler) parseDate(ctx *fasthttp.RequestCtx, value string) (time.Time, bool) {
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

func taskInput(req transport.TaskCreateRequest) plannerUC.TaskInput {
	return plannerUC.TaskInput{
		Title:           req.Title,
		Start:           req.Start,
		End:             req.End,
		Tags:            req.Tags,
		Notes:           req.Notes,
		PomodoroMinutes: req.PomodoroMinutes,
	}
}
