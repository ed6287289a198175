package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/Ayash-Bera/medipredict/internal/symptoms"
	"github.com/sirupsen/logrus"
)

// Process runs a local interpreter per prediction and exchanges JSON over
// its standard streams.
type Process struct {
	interpreter string
	args        []string
	timeout     time.Duration
	logger      *logrus.Logger
}

// processPayload matches the script contract, which reads symptoms as one
// comma-delimited string.
type processPayload struct {
	Symptoms string `json:"symptoms"`
}

func NewProcess(interpreter string, args []string, timeout time.Duration, logger *logrus.Logger) *Process {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Process{
		interpreter: interpreter,
		args:        args,
		timeout:     timeout,
		logger:      logger,
	}
}

func (p *Process) Predict(ctx context.Context, tokens []string) (*models.PredictionResult, error) {
	input, err := json.Marshal(processPayload{Symptoms: symptoms.Join(tokens)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.interpreter, p.args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	runErr := cmd.Run()

	fields := logrus.Fields{
		"interpreter": p.interpreter,
		"duration_ms": time.Since(start).Milliseconds(),
		"stdout_size": stdout.Len(),
		"stderr_size": stderr.Len(),
	}
	p.logger.WithFields(fields).Debug("Predictor process exited")

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: process timed out after %s", ErrUnavailable, p.timeout)
	}
	// Anything on stderr is a failure, whatever the exit code says.
	if stderr.Len() > 0 {
		return nil, fmt.Errorf("%w: process wrote to stderr: %s", ErrUnavailable, truncate(bytes.TrimSpace(stderr.Bytes()), 512))
	}
	if runErr != nil {
		return nil, fmt.Errorf("%w: process failed: %v", ErrUnavailable, runErr)
	}

	return decodeResult(stdout.Bytes())
}

// Health checks that the interpreter can be resolved.
func (p *Process) Health(ctx context.Context) error {
	if _, err := exec.LookPath(p.interpreter); err != nil {
		return fmt.Errorf("%w: interpreter %q not found: %v", ErrUnavailable, p.interpreter, err)
	}
	return nil
}

