package analysis

import (
	"context"
	"errors"
	"time"

	"cvmatch-backend/internal/matcher"
	"cvmatch-backend/internal/profiles"
	"cvmatch-backend/internal/shared/metrics"
	"cvmatch-backend/internal/shared/telemetry"
)

// Processor executes analysis tasks on the worker side. It owns the retry
// loop: transient matcher failures are retried in-process up to the policy's
// attempt limit, so observers only ever see processing followed by a single
// terminal state.
type Processor struct {
	Svc      *Service
	Profiles profiles.Repo
	Matcher  matcher.Client
	Retry    RetryPolicy

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewProcessor constructs a Processor with the default retry policy.
func NewProcessor(svc *Service, profileRepo profiles.Repo, m matcher.Client) *Processor {
	return &Processor{
		Svc:      svc,
		Profiles: profileRepo,
		Matcher:  m,
		Retry:    DefaultRetryPolicy(),
		sleep:    sleepCtx,
	}
}

// ProcessAnalysis runs one analysis to a terminal state. It returns an error
// only when the job could not be resolved or persisted; matcher failures are
// absorbed into the job's failed state and reported as success to the queue
// so the message is not redelivered.
func (p *Processor) ProcessAnalysis(ctx context.Context, analysisID string) error {
	job, err := p.Svc.Repo.GetByID(ctx, analysisID)
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		return err
	}
	if Terminal(job.Status) {
		// Duplicate delivery of an already-settled job.
		telemetry.Info("analysis.duplicate_delivery", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": analysisID,
			"status":      job.Status,
		})
		return nil
	}

	startedAt := time.Now().UTC()
	if err := p.Svc.Repo.MarkStarted(ctx, analysisID, startedAt); err != nil {
		return err
	}

	profile, err := p.Profiles.GetByUserID(ctx, job.UserID)
	if errors.Is(err, profiles.ErrNotFound) {
		// Deterministic: the user has no profile to compare. No retries.
		return p.Svc.ReportFailure(ctx, analysisID, FailureCodeProfileNotFound,
			errors.New("no profile found for user"))
	}
	if err != nil {
		return err
	}

	input := matcher.Input{
		ProfileText:    profiles.RenderText(profile),
		JobDescription: job.JobDescriptionText,
	}

	var lastErr error
	for attempt := 1; attempt <= p.Retry.MaxAttempts; attempt++ {
		result, err := p.runAttempt(ctx, input)
		if err == nil {
			if obsErr := p.Svc.ReportResult(ctx, analysisID, Result(result)); obsErr != nil {
				return obsErr
			}
			metrics.ObserveAnalysisDurationMs(float64(time.Since(startedAt).Milliseconds()))
			return nil
		}
		lastErr = err

		telemetry.Warn("analysis.attempt_failed", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": analysisID,
			"attempt":     attempt,
			"error":       err.Error(),
		})
		if !retryable(err) {
			break
		}
		if attempt == p.Retry.MaxAttempts {
			break
		}
		metrics.IncAnalysisRetried()
		if err := p.sleep(ctx, p.Retry.Delay(attempt)); err != nil {
			lastErr = err
			break
		}
	}

	code := FailureCodeRetriesExhausted
	if errors.Is(lastErr, matcher.ErrInvalidResult) {
		code = FailureCodeSchemaMismatch
	}
	return p.Svc.ReportFailure(ctx, analysisID, code, lastErr)
}

// runAttempt executes one matcher call bounded by the per-attempt budget.
func (p *Processor) runAttempt(ctx context.Context, input matcher.Input) (matcher.Result, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, p.Retry.AttemptBudget)
	defer cancel()

	result, err := p.Matcher.Match(attemptCtx, input)
	if err != nil {
		return matcher.Result{}, err
	}
	if err := matcher.Validate(result); err != nil {
		return matcher.Result{}, err
	}
	return result, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
