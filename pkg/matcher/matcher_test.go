package matcher

import (
	"reflect"
	"testing"
)

func TestMatchExactPass(t *testing.T) {
	rules := []TriggerRule{
		{ID: "r1", Trigger: "shipping info", Response: "We ship worldwide."},
		{ID: "r2", Trigger: "hello", Response: "Hi there!"},
	}

	tests := []struct {
		name  string
		input string
	}{
		{name: "identical", input: "hello"},
		{name: "upper case", input: "HELLO"},
		{name: "mixed case", input: "HeLLo"},
		{name: "surrounding whitespace", input: "  hello \t"},
	}

	m := NewMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.input, rules)
			if !got.Matched {
				t.Fatalf("Match(%q) not matched", tt.input)
			}
			if got.Response != "Hi there!" {
				t.Errorf("response = %q, want %q", got.Response, "Hi there!")
			}
			if got.ConfidenceScore != 100 {
				t.Errorf("confidence = %v, want 100", got.ConfidenceScore)
			}
			if got.ResponseID != "r2" {
				t.Errorf("response id = %q, want r2", got.ResponseID)
			}
			if !reflect.DeepEqual(got.MatchedTriggers, []string{"hello"}) {
				t.Errorf("matched triggers = %v, want [hello]", got.MatchedTriggers)
			}
		})
	}
}

func TestMatchKeywordPass(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		rules          []TriggerRule
		wantMatched    bool
		wantID         string
		wantTriggers   []string
		wantConfidence float64
	}{
		{
			name:  "single keyword containment",
			input: "tell me about refund options",
			rules: []TriggerRule{
				{ID: "r1", Trigger: "refund policy", Response: "See our policy."},
			},
			wantMatched:    true,
			wantID:         "r1",
			wantTriggers:   []string{"refund"},
			wantConfidence: 50,
		},
		{
			name:  "all keywords capped at 95",
			input: "what is our refund policy",
			rules: []TriggerRule{
				{ID: "r1", Trigger: "our refund policy", Response: "See our policy."},
			},
			wantMatched:    true,
			wantID:         "r1",
			wantTriggers:   []string{"our", "refund", "policy"},
			wantConfidence: 95,
		},
		{
			name:  "substring inside a longer word",
			input: "shipment to canada",
			rules: []TriggerRule{
				{ID: "r1", Trigger: "ship cost", Response: "Costs vary."},
			},
			wantMatched:    true,
			wantID:         "r1",
			wantTriggers:   []string{"ship"},
			wantConfidence: 50,
		},
		{
			name:  "short tokens filtered out",
			input: "is it ok to proceed",
			rules: []TriggerRule{
				{ID: "r1", Trigger: "ok to", Response: "Sure."},
			},
			wantMatched: false,
		},
		{
			name:  "no overlap at all",
			input: "asdkjasd",
			rules: []TriggerRule{
				{ID: "r1", Trigger: "hello", Response: "Hi!"},
			},
			wantMatched: false,
		},
	}

	m := NewMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.input, tt.rules)
			if got.Matched != tt.wantMatched {
				t.Fatalf("matched = %v, want %v", got.Matched, tt.wantMatched)
			}
			if !tt.wantMatched {
				if got.Response != "" || got.ResponseID != "" || got.MatchedTriggers != nil {
					t.Errorf("no-match result carries data: %+v", got)
				}
				return
			}
			if got.ResponseID != tt.wantID {
				t.Errorf("response id = %q, want %q", got.ResponseID, tt.wantID)
			}
			if !reflect.DeepEqual(got.MatchedTriggers, tt.wantTriggers) {
				t.Errorf("matched triggers = %v, want %v", got.MatchedTriggers, tt.wantTriggers)
			}
			if got.ConfidenceScore != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.ConfidenceScore, tt.wantConfidence)
			}
		})
	}
}

func TestMatchFirstRuleWins(t *testing.T) {
	rules := []TriggerRule{
		{ID: "first", Trigger: "shipping rates", Response: "First answer."},
		{ID: "second", Trigger: "shipping times rates costs", Response: "Second answer."},
	}

	m := NewMatcher()
	got := m.Match("what are your shipping rates and costs", rules)
	if !got.Matched {
		t.Fatal("expected a match")
	}
	if got.ResponseID != "first" {
		t.Errorf("response id = %q, want first (configured order wins)", got.ResponseID)
	}
}

func TestMatchShortTriggerOnlyExact(t *testing.T) {
	rules := []TriggerRule{
		{ID: "r1", Trigger: "ok to", Response: "Go ahead."},
	}

	m := NewMatcher()

	if got := m.Match("ok to", rules); !got.Matched {
		t.Error("exact input should match even when all tokens are short")
	}
	if got := m.Match("is it ok to continue", rules); got.Matched {
		t.Error("keyword pass should never fire for an all-short-token trigger")
	}
}

func TestMatchCustomKeywordLength(t *testing.T) {
	rules := []TriggerRule{
		{ID: "r1", Trigger: "faq", Response: "Read the FAQ."},
	}

	if got := NewMatcher().Match("open the faq page", rules); !got.Matched {
		t.Error("three-letter keyword should pass the default filter")
	}
	if got := NewMatcher(WithMinKeywordLength(3)).Match("open the faq page", rules); got.Matched {
		t.Error("raised threshold should discard the three-letter keyword")
	}
}

func TestMatchDeterministic(t *testing.T) {
	rules := []TriggerRule{
		{ID: "r1", Trigger: "order status", Response: "Check your email."},
		{ID: "r2", Trigger: "returns", Response: "Within 30 days."},
	}

	m := NewMatcher()
	first := m.Match("what is my order status?", rules)
	second := m.Match("what is my order status?", rules)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}

func TestMatchEmptyRules(t *testing.T) {
	m := NewMatcher()
	if got := m.Match("anything", nil); got.Matched {
		t.Errorf("match against empty rule list = %+v, want no match", got)
	}
}
