package llm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"peerreview_service/internal/domain"
	"peerreview_service/pkg/logger"
)

const DefaultMaxAttempts = 3

// Completer is the single-shot completion call the pipeline retries.
type Completer interface {
	Complete(ctx context.Context, numbered string) (string, error)
}

// Pipeline turns a submitted artifact into a validated structured
// critique: number the lines once, then run complete+validate
// round-trips under one bounded retry policy. Transport and schema
// failures are retried identically and only told apart in logs.
type Pipeline struct {
	completer   Completer
	maxAttempts int
	log         *logger.Logger
}

func NewPipeline(completer Completer, maxAttempts int, log *logger.Logger) *Pipeline {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Pipeline{completer: completer, maxAttempts: maxAttempts, log: log}
}

// Generate produces the critique for artifactText or a *TerminalFailure
// once the attempt budget is exhausted. It persists nothing; the caller
// stores the result against the submission.
func (p *Pipeline) Generate(ctx context.Context, artifactText string, submissionID uuid.UUID) (*domain.FeedbackResult, error) {
	numbered := NumberLines(artifactText)
	maxLine := CountLines(artifactText)

	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, &TerminalFailure{Attempts: attempt - 1, LastErr: err}
		}

		raw, err := p.completer.Complete(ctx, numbered)
		if err != nil {
			lastErr = err
			p.log.Warnf("completion attempt %d/%d failed in transport for submission %s: %v",
				attempt, p.maxAttempts, submissionID, err)
			continue
		}

		result, err := ParseFeedback(raw, maxLine)
		if err != nil {
			lastErr = err
			var schemaErr *SchemaError
			if errors.As(err, &schemaErr) {
				p.log.Warnf("completion attempt %d/%d returned malformed output for submission %s: %v",
					attempt, p.maxAttempts, submissionID, err)
			}
			continue
		}

		result.SubmissionID = submissionID
		p.log.Info("generated structured feedback",
			zap.String("submission_id", submissionID.String()),
			zap.Int("attempts", attempt),
		)
		return result, nil
	}

	return nil, &TerminalFailure{Attempts: p.maxAttempts, LastErr: lastErr}
}
