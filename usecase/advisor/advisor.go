package advisor

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dayflow/backend/domain"
	"github.com/dayflow/backend/repository"
)

// TextAdvisor accepts a free-form prompt and returns free-form text. The
// implementation behind it (AI CLI, remote model) is not the core's concern.
type TextAdvisor interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// UseCase builds prompts from the day's schedule and relays them to the
// configured advisor.
type UseCase struct {
	schedules repository.ScheduleRepository
	advisor   TextAdvisor
	clock     domain.Clock
	logger    *zap.Logger
}

func New(schedules repository.ScheduleRepository, advisor TextAdvisor, clock domain.Clock, logger *zap.Logger) *UseCase {
	if clock == nil {
		clock = domain.SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		schedules: schedules,
		advisor:   advisor,
		clock:     clock,
		logger:    logger,
	}
}

// Context exports today's schedule context in the given format.
func (uc *UseCase) Context(ctx context.Context, format string) (string, error) {
	snapshot, err := uc.collect(ctx)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(format) {
	case "json":
		return snapshot.JSON()
	case "", "markdown", "md":
		return snapshot.Markdown(), nil
	default:
		return "", domain.NewError(domain.ErrCodeInvalid, "unknown context format, expected json or markdown")
	}
}

// Ask relays a free question with schedule context attached.
func (uc *UseCase) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", domain.NewError(domain.ErrCodeInvalid, "question must not be empty")
	}
	return uc.advise(ctx, assistantTemplate, map[string]string{"question": question})
}

// Validate asks the advisor to sanity-check today's plan.
func (uc *UseCase) Validate(ctx context.Context) (string, error) {
	return uc.advise(ctx, validationTemplate, nil)
}

// Plan asks for a plan for the rest of the day.
func (uc *UseCase) Plan(ctx context.Context, goals string) (string, error) {
	if strings.TrimSpace(goals) == "" {
		goals = "Finish the planned tasks"
	}
	return uc.advise(ctx, planningTemplate, map[string]string{"goals": goals})
}

// Optimize asks for a rescue plan for the given situation.
func (uc *UseCase) Optimize(ctx context.Context, situation string) (string, error) {
	if strings.TrimSpace(situation) == "" {
		situation = "Running behind schedule"
	}
	return uc.advise(ctx, optimizationTemplate, map[string]string{"situation": situation})
}

func (uc *UseCase) advise(ctx context.Context, template string, vars map[string]string) (string, error) {
	snapshot, err := uc.collect(ctx)
	if err != nil {
		return "", err
	}
	if vars == nil {
		vars = map[string]string{}
	}
	vars["context"] = snapshot.Markdown()

	prompt := render(template, vars)
	answer, err := uc.advisor.Ask(ctx, prompt)
	if err != nil {
		uc.logger.Error("advisor request failed", zap.Error(err))
		return "", err
	}
	return answer, nil
}

func (uc *UseCase) collect(ctx context.Context) (*ScheduleContext, error) {
	schedule, err := uc.schedules.GetToday(ctx)
	if err != nil {
		return nil, err
	}
	return CollectContext(schedule, uc.clock.Now()), nil
}
