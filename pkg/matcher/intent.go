package matcher

import (
	"strings"
)

// IntentBucket declares a coarse intent together with the trigger markers
// that identify which configured rules answer it. Detection fires when any
// phrase is contained in the input, or when every member of a conjunction is.
type IntentBucket struct {
	Name            string
	Phrases         []string
	Conjunctions    [][]string
	TriggerMarkers  []string
	ReportedMatches []string
	Confidence      float64
}

// DefaultIntentBuckets returns the order-handling buckets shipped with every
// retail chatbot: placing a new order versus checking an existing one.
func DefaultIntentBuckets() []IntentBucket {
	return []IntentBucket{
		{
			Name: "new-order",
			Phrases: []string{
				"can i order",
				"want to order",
				"place an order",
				"make an order",
				"order for tomorrow",
			},
			Conjunctions:    [][]string{{"order", "tomorrow"}},
			TriggerMarkers:  []string{"place order", "make order", "new order"},
			ReportedMatches: []string{"order", "new order"},
			Confidence:      85,
		},
		{
			Name: "order-status",
			Phrases: []string{
				"where is my order",
				"order status",
				"track",
			},
			Conjunctions:    [][]string{{"order", "placed"}},
			TriggerMarkers:  []string{"order status", "where is my order"},
			ReportedMatches: []string{"order status", "track order"},
			Confidence:      85,
		},
	}
}

type Classifier struct {
	buckets []IntentBucket
}

// NewClassifier builds an intent classifier over the given buckets. With no
// buckets it uses the defaults.
func NewClassifier(buckets ...IntentBucket) *Classifier {
	if len(buckets) == 0 {
		buckets = DefaultIntentBuckets()
	}
	return &Classifier{buckets: buckets}
}

// Detect returns the first bucket whose phrase set or conjunctions cover the
// input, or false when no bucket applies.
func (c *Classifier) Detect(userInput string) (IntentBucket, bool) {
	inputLower := normalize(userInput)

	for _, bucket := range c.buckets {
		if bucket.covers(inputLower) {
			return bucket, true
		}
	}

	return IntentBucket{}, false
}

// Match attempts an intent short-circuit: when a bucket is detected, the
// first rule whose trigger contains one of the bucket's markers wins
// immediately. Inputs outside every bucket, and detected buckets with no
// marker rule, report no match so the caller falls through to the plain
// two-pass matcher.
func (c *Classifier) Match(userInput string, rules []TriggerRule) MatchResult {
	bucket, ok := c.Detect(userInput)
	if !ok {
		return MatchResult{Matched: false}
	}

	for _, rule := range rules {
		triggerLower := normalize(rule.Trigger)
		for _, marker := range bucket.TriggerMarkers {
			if strings.Contains(triggerLower, marker) {
				return MatchResult{
					Matched:         true,
					Response:        rule.Response,
					IsAI:            rule.IsAI,
					ResponseID:      rule.ID,
					MatchedTriggers: bucket.ReportedMatches,
					ConfidenceScore: bucket.Confidence,
				}
			}
		}
	}

	return MatchResult{Matched: false}
}

func (b IntentBucket) covers(inputLower string) bool {
	for _, phrase := range b.Phrases {
		if strings.Contains(inputLower, phrase) {
			return true
		}
	}

	for _, conjunction := range b.Conjunctions {
		all := len(conjunction) > 0
		for _, part := range conjunction {
			if !strings.Contains(inputLower, part) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}

	return false
}
