package matcher

import (
	"testing"
)

func TestClassifierDetect(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantBucket string
		wantOK     bool
	}{
		{name: "place an order phrase", input: "I want to place an order", wantBucket: "new-order", wantOK: true},
		{name: "order plus tomorrow conjunction", input: "order three pizzas for delivery tomorrow", wantBucket: "new-order", wantOK: true},
		{name: "where is my order", input: "where is my order?", wantBucket: "order-status", wantOK: true},
		{name: "track keyword", input: "can I track my package", wantBucket: "order-status", wantOK: true},
		{name: "order plus placed conjunction", input: "I placed an order yesterday", wantBucket: "order-status", wantOK: true},
		{name: "unrelated input", input: "what are your opening hours", wantOK: false},
		{name: "order alone is ambiguous", input: "order", wantOK: false},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, ok := c.Detect(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Detect(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && bucket.Name != tt.wantBucket {
				t.Errorf("bucket = %q, want %q", bucket.Name, tt.wantBucket)
			}
		})
	}
}

func TestClassifierMatchShortCircuit(t *testing.T) {
	// No plain keyword overlap between "pizza" and the trigger: only the
	// intent bucket can reach this rule.
	rules := []TriggerRule{
		{ID: "r1", Trigger: "place order details", Response: "Use the order form."},
	}

	c := NewClassifier()
	got := c.Match("I want to order pizza for tomorrow", rules)
	if !got.Matched {
		t.Fatal("new-order bucket should reach the place-order rule")
	}
	if got.Response != "Use the order form." {
		t.Errorf("response = %q", got.Response)
	}
	if got.ConfidenceScore != 85 {
		t.Errorf("confidence = %v, want 85", got.ConfidenceScore)
	}
}

func TestClassifierMatchFallsThrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rules []TriggerRule
	}{
		{
			name:  "no bucket detected",
			input: "do you sell gift cards",
			rules: []TriggerRule{{ID: "r1", Trigger: "place order", Response: "..."}},
		},
		{
			name:  "bucket detected but no marker rule",
			input: "I want to place an order",
			rules: []TriggerRule{{ID: "r1", Trigger: "opening hours", Response: "..."}},
		},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Match(tt.input, tt.rules); got.Matched {
				t.Errorf("Match(%q) = %+v, want fall-through", tt.input, got)
			}
		})
	}
}

func TestClassifierOrderStatusScenario(t *testing.T) {
	rules := []TriggerRule{
		{ID: "r1", Trigger: "order status", Response: "Check your email for tracking."},
		{ID: "r2", Trigger: "returns", Response: "..."},
	}

	c := NewClassifier()
	got := c.Match("Where is my order?", rules)
	if !got.Matched {
		t.Fatal("order-status bucket should match rule 1")
	}
	if got.Response != "Check your email for tracking." {
		t.Errorf("response = %q", got.Response)
	}
	if got.IsAI {
		t.Error("rule is not AI-authored")
	}
}

func TestClassifierCustomBuckets(t *testing.T) {
	buckets := []IntentBucket{
		{
			Name:            "returns",
			Phrases:         []string{"send back", "return my"},
			TriggerMarkers:  []string{"return policy"},
			ReportedMatches: []string{"returns"},
			Confidence:      80,
		},
	}

	rules := []TriggerRule{
		{ID: "r1", Trigger: "our return policy", Response: "30 days, free."},
	}

	c := NewClassifier(buckets...)
	got := c.Match("how do I send back these shoes", rules)
	if !got.Matched {
		t.Fatal("custom bucket should match")
	}
	if got.ConfidenceScore != 80 {
		t.Errorf("confidence = %v, want 80", got.ConfidenceScore)
	}

	// The default order buckets must be gone.
	if _, ok := c.Detect("where is my order"); ok {
		t.Error("default buckets should be replaced, not appended")
	}
}
