package llm

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peerreview_service/pkg/logger"
)

// stubCompleter replays a scripted sequence of responses.
type stubCompleter struct {
	calls     int
	responses []func() (string, error)
}

func (s *stubCompleter) Complete(ctx context.Context, numbered string) (string, error) {
	i := s.calls
	s.calls++
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i]()
}

func malformed() (string, error) { return "not json at all", nil }
func valid() (string, error)     { return validCritique, nil }

func transportDown() (string, error) {
	return "", &TransportError{Message: "connection refused"}
}

func TestPipelineGenerate(t *testing.T) {
	submissionID := uuid.New()
	log := logger.New()

	t.Run("FirstSuccessWins", func(t *testing.T) {
		stub := &stubCompleter{responses: []func() (string, error){valid}}
		p := NewPipeline(stub, 3, log)

		result, err := p.Generate(context.Background(), "x=1\ny=2\n", submissionID)
		require.NoError(t, err)
		assert.Equal(t, 1, stub.calls)
		assert.Equal(t, submissionID, result.SubmissionID)
	})

	t.Run("ExhaustsBudgetOnPermanentSchemaFailure", func(t *testing.T) {
		stub := &stubCompleter{responses: []func() (string, error){malformed}}
		p := NewPipeline(stub, 3, log)

		_, err := p.Generate(context.Background(), "x=1\ny=2\n", submissionID)
		var terminal *TerminalFailure
		require.ErrorAs(t, err, &terminal)
		assert.Equal(t, 3, stub.calls)
		assert.Equal(t, 3, terminal.Attempts)
	})

	t.Run("RecoversAfterTwoFailures", func(t *testing.T) {
		stub := &stubCompleter{responses: []func() (string, error){transportDown, malformed, valid}}
		p := NewPipeline(stub, 3, log)

		result, err := p.Generate(context.Background(), "x=1\ny=2\n", submissionID)
		require.NoError(t, err)
		assert.Equal(t, 3, stub.calls)
		assert.Equal(t, "Short program, two issues.", result.Summary)
	})

	t.Run("TransportAndSchemaFailuresShareOneBudget", func(t *testing.T) {
		stub := &stubCompleter{responses: []func() (string, error){transportDown}}
		p := NewPipeline(stub, 3, log)

		_, err := p.Generate(context.Background(), "x=1\n", submissionID)
		var terminal *TerminalFailure
		require.ErrorAs(t, err, &terminal)
		assert.Equal(t, 3, stub.calls)

		var transportErr *TransportError
		assert.ErrorAs(t, terminal.LastErr, &transportErr)
	})

	t.Run("RejectsCritiqueAddressingMissingLines", func(t *testing.T) {
		// The artifact has two lines; a critique about line 3 is
		// malformed and must burn an attempt.
		beyond := func() (string, error) {
			return `{"summary": "s", "hints": {"critical": [{"lines": [3], "hint": "h"}], "structure": [], "styling": []}}`, nil
		}
		stub := &stubCompleter{responses: []func() (string, error){beyond}}
		p := NewPipeline(stub, 2, log)

		_, err := p.Generate(context.Background(), "x=1\ny=2\n", submissionID)
		var terminal *TerminalFailure
		require.ErrorAs(t, err, &terminal)
		assert.Equal(t, 2, stub.calls)
	})

	t.Run("CancelledContextStopsRetrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		stub := &stubCompleter{responses: []func() (string, error){malformed}}
		p := NewPipeline(stub, 3, log)

		_, err := p.Generate(ctx, "x=1\n", submissionID)
		var terminal *TerminalFailure
		require.ErrorAs(t, err, &terminal)
		assert.Equal(t, 0, stub.calls)
	})
}
