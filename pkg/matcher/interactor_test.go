package matcher

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type stubFallback struct {
	response string
	err      error
	calls    int
}

func (s *stubFallback) Generate(ctx context.Context, userInput, industry, chatbotName string) (string, error) {
	s.calls++
	return s.response, s.err
}

func newTestInteractor(fallback FallbackGenerator) *Interactor {
	return NewInteractor(NewMatcher(), NewClassifier(), fallback)
}

func TestInteractRuleHit(t *testing.T) {
	fallback := &stubFallback{response: "unused"}
	i := newTestInteractor(fallback)

	rules := []TriggerRule{
		{ID: "r1", Trigger: "opening hours", Response: "We open at 9am.", IsAI: true},
	}

	got := i.Interact(context.Background(), "what are your opening hours?", rules, "retail", "Lula")
	if !got.Matched {
		t.Fatal("expected rule hit")
	}
	if got.Response != "We open at 9am." {
		t.Errorf("response = %q", got.Response)
	}
	if !got.IsAI {
		t.Error("IsAI should carry the rule flag")
	}
	if got.IsGeneralAI {
		t.Error("IsGeneralAI must be false on rule hits")
	}
	if got.ResponseID != "r1" || got.ConfidenceScore == 0 || got.MatchedTriggers == nil {
		t.Errorf("rule-hit metadata missing: %+v", got)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback called %d times on a rule hit", fallback.calls)
	}
}

func TestInteractFallback(t *testing.T) {
	fallback := &stubFallback{response: "Here's a generic answer."}
	i := newTestInteractor(fallback)

	rules := []TriggerRule{
		{ID: "r1", Trigger: "hello", Response: "Hi!"},
	}

	got := i.Interact(context.Background(), "asdkjasd", rules, "retail", "Lula")
	if got.Matched {
		t.Fatal("expected no rule match")
	}
	if got.Response != "Here's a generic answer." {
		t.Errorf("response = %q", got.Response)
	}
	if !got.IsAI || !got.IsGeneralAI {
		t.Errorf("fallback flags = IsAI %v IsGeneralAI %v, want both true", got.IsAI, got.IsGeneralAI)
	}
	if got.ResponseID != "" || got.MatchedTriggers != nil || got.ConfidenceScore != 0 {
		t.Errorf("fallback result carries rule metadata: %+v", got)
	}
	if fallback.calls != 1 {
		t.Errorf("fallback called %d times, want exactly 1", fallback.calls)
	}
}

func TestInteractFallbackError(t *testing.T) {
	fallback := &stubFallback{err: errors.New("quota exceeded")}
	i := newTestInteractor(fallback)

	got := i.Interact(context.Background(), "asdkjasd", nil, "retail", "")
	if got.Response != ApologyResponse {
		t.Errorf("response = %q, want the fixed apology", got.Response)
	}
	if !got.IsAI || !got.IsGeneralAI {
		t.Error("apology turns are still AI-generated turns")
	}
	if fallback.calls != 1 {
		t.Errorf("fallback called %d times, want exactly 1 (no retry)", fallback.calls)
	}
}

func TestInteractIntentBeatsKeywordPass(t *testing.T) {
	fallback := &stubFallback{}
	i := newTestInteractor(fallback)

	// Keyword pass alone would hit the generic "order" rule first; the
	// order-status intent must route to the status rule instead.
	rules := []TriggerRule{
		{ID: "generic", Trigger: "order help", Response: "Generic order help."},
		{ID: "status", Trigger: "order status", Response: "Check your email for tracking."},
	}

	got := i.Interact(context.Background(), "where is my order?", rules, "retail", "")
	if got.ResponseID != "status" {
		t.Errorf("response id = %q, want status (intent short-circuit)", got.ResponseID)
	}
	if got.ConfidenceScore != 85 {
		t.Errorf("confidence = %v, want 85", got.ConfidenceScore)
	}
}

func TestInteractIdempotent(t *testing.T) {
	fallback := &stubFallback{response: "generated"}
	i := newTestInteractor(fallback)

	rules := []TriggerRule{
		{ID: "r1", Trigger: "shipping rates", Response: "Flat fee."},
	}

	first := i.Interact(context.Background(), "shipping rates?", rules, "retail", "")
	second := i.Interact(context.Background(), "shipping rates?", rules, "retail", "")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated interactions differ: %+v vs %+v", first, second)
	}
}
