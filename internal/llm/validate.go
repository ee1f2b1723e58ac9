package llm

import (
	"encoding/json"
	"fmt"
	"sort"

	"peerreview_service/internal/domain"
)

// maxRangeSpan caps how many lines a single [a,b] range may cover.
// The provider's output is untrusted; without the cap a response like
// [[1, 2000000000]] would be expanded in full before the artifact
// bound is checked.
const maxRangeSpan = 10000

// lineList accepts the two shapes the prompt allows for "lines":
// plain 1-based numbers and two-element [a,b] ranges, which expand
// inclusively. The decoded result is a sorted, deduplicated set.
type lineList []int

func (l *lineList) UnmarshalJSON(data []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}

	seen := map[int]bool{}
	add := func(n int) {
		if !seen[n] {
			seen[n] = true
			*l = append(*l, n)
		}
	}

	for _, elem := range elems {
		var n int
		if err := json.Unmarshal(elem, &n); err == nil {
			add(n)
			continue
		}
		var bounds []int
		if err := json.Unmarshal(elem, &bounds); err != nil || len(bounds) != 2 {
			return fmt.Errorf("line entry %s is neither a number nor an [a,b] range", elem)
		}
		if bounds[0] < 1 {
			return fmt.Errorf("line range [%d,%d] starts before line 1", bounds[0], bounds[1])
		}
		if bounds[0] > bounds[1] {
			return fmt.Errorf("line range [%d,%d] is reversed", bounds[0], bounds[1])
		}
		if span := bounds[1] - bounds[0] + 1; span > maxRangeSpan {
			return fmt.Errorf("line range [%d,%d] covers %d lines, limit is %d", bounds[0], bounds[1], span, maxRangeSpan)
		}
		for n := bounds[0]; n <= bounds[1]; n++ {
			add(n)
		}
	}

	sort.Ints(*l)
	return nil
}

type hintPayload struct {
	Lines lineList `json:"lines"`
	Hint  string   `json:"hint"`
}

type feedbackPayload struct {
	Summary string                     `json:"summary"`
	Hints   map[string]json.RawMessage `json:"hints"`
}

var requiredBuckets = []string{"critical", "structure", "styling"}

// ParseFeedback validates raw as a structured critique. Beyond JSON
// well-formedness it requires the summary, all three hint buckets, and
// that every hint addresses a non-empty set of positive line numbers
// no greater than maxLine (unbounded when maxLine <= 0). Any violation
// is a *SchemaError.
func ParseFeedback(raw string, maxLine int) (*domain.FeedbackResult, error) {
	var payload feedbackPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &SchemaError{Reason: "response is not valid JSON", Err: err}
	}

	if payload.Summary == "" {
		return nil, &SchemaError{Reason: "missing summary"}
	}

	buckets := map[string][]domain.Hint{}
	for _, name := range requiredBuckets {
		rawBucket, ok := payload.Hints[name]
		if !ok {
			return nil, &SchemaError{Reason: fmt.Sprintf("missing hint bucket %q", name)}
		}
		var entries []hintPayload
		if err := json.Unmarshal(rawBucket, &entries); err != nil {
			return nil, &SchemaError{Reason: fmt.Sprintf("hint bucket %q is malformed", name), Err: err}
		}
		hints, err := toHints(name, entries, maxLine)
		if err != nil {
			return nil, err
		}
		buckets[name] = hints
	}

	return &domain.FeedbackResult{
		Summary: payload.Summary,
		Hints: domain.HintSet{
			Critical:  buckets["critical"],
			Structure: buckets["structure"],
			Styling:   buckets["styling"],
		},
	}, nil
}

func toHints(bucket string, entries []hintPayload, maxLine int) ([]domain.Hint, error) {
	hints := make([]domain.Hint, 0, len(entries))
	for _, entry := range entries {
		if len(entry.Lines) == 0 {
			return nil, &SchemaError{Reason: fmt.Sprintf("%s hint has no affected lines", bucket)}
		}
		for _, n := range entry.Lines {
			if n < 1 {
				return nil, &SchemaError{Reason: fmt.Sprintf("%s hint addresses non-positive line %d", bucket, n)}
			}
			if maxLine > 0 && n > maxLine {
				return nil, &SchemaError{Reason: fmt.Sprintf("%s hint addresses line %d beyond artifact end %d", bucket, n, maxLine)}
			}
		}
		hints = append(hints, domain.Hint{Lines: entry.Lines, Text: entry.Hint})
	}
	return hints, nil
}
