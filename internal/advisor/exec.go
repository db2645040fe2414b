package advisor

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dayflow/backend/domain"
)

// ExecAdvisor shells out to a local AI CLI (claude, copilot, ...) and
// returns its stdout. The prompt is passed as the final argument.
type ExecAdvisor struct {
	command string
	args    []string
	timeout time.Duration
	logger  *zap.Logger
}

func NewExecAdvisor(command string, args []string, timeout time.Duration, logger *zap.Logger) *ExecAdvisor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecAdvisor{
		command: command,
		args:    args,
		timeout: timeout,
		logger:  logger,
	}
}

func (a *ExecAdvisor) Ask(ctx context.Context, prompt string) (string, error) {
	if a.command == "" {
		return "", domain.NewError(domain.ErrCodeInvalid, "no advisor command configured")
	}

	runCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	args := append(append([]string(nil), a.args...), prompt)
	cmd := exec.CommandContext(runCtx, a.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	if err := cmd.Run(); err != nil {
		a.logger.Error("advisor command failed",
			zap.String("command", a.command),
			zap.String("stderr", strings.TrimSpace(stderr.String())),
			zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeInternal, "advisor command failed", err)
	}
	a.logger.Debug("advisor command finished",
		zap.String("command", a.command),
		zap.Duration("took", time.Since(started)))

	answer := strings.TrimSpace(stdout.String())
	if answer == "" {
		return "", domain.NewError(domain.ErrCodeInternal, "advisor returned no output")
	}
	return answer, nil
}
