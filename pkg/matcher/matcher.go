package matcher

import (
	"strings"
)

// DefaultMinKeywordLength mirrors the widget editor guidance: trigger tokens
// of two characters or fewer are treated as noise during keyword matching.
const DefaultMinKeywordLength = 2

type TriggerRule struct {
	ID       string
	Trigger  string
	Response string
	IsAI     bool
}

type MatchResult struct {
	Matched         bool
	Response        string
	IsAI            bool
	ResponseID      string
	MatchedTriggers []string
	ConfidenceScore float64
}

type Matcher struct {
	minKeywordLen int
}

type MatcherOption func(*Matcher)

// WithMinKeywordLength overrides the keyword noise threshold. Tokens whose
// length is less than or equal to n are discarded before the keyword pass.
func WithMinKeywordLength(n int) MatcherOption {
	return func(m *Matcher) {
		m.minKeywordLen = n
	}
}

func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{
		minKeywordLen: DefaultMinKeywordLength,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match runs the two-pass trigger matching: an exact pass over the full
// normalized phrase, then a keyword-containment pass. Rules are evaluated in
// configured order and the first satisfying rule wins in both passes.
func (m *Matcher) Match(userInput string, rules []TriggerRule) MatchResult {
	inputLower := normalize(userInput)

	for _, rule := range rules {
		if inputLower == normalize(rule.Trigger) {
			return MatchResult{
				Matched:         true,
				Response:        rule.Response,
				IsAI:            rule.IsAI,
				ResponseID:      rule.ID,
				MatchedTriggers: []string{rule.Trigger},
				ConfidenceScore: 100,
			}
		}
	}

	for _, rule := range rules {
		keywords := m.splitKeywords(rule.Trigger)
		if len(keywords) == 0 {
			continue
		}

		var matched []string
		for _, keyword := range keywords {
			if strings.Contains(inputLower, keyword) {
				matched = append(matched, keyword)
			}
		}

		if len(matched) > 0 {
			confidence := float64(len(matched)) / float64(len(keywords)) * 100
			if confidence > 95 {
				confidence = 95
			}

			return MatchResult{
				Matched:         true,
				Response:        rule.Response,
				IsAI:            rule.IsAI,
				ResponseID:      rule.ID,
				MatchedTriggers: matched,
				ConfidenceScore: confidence,
			}
		}
	}

	return MatchResult{Matched: false}
}

func (m *Matcher) splitKeywords(trigger string) []string {
	var keywords []string
	for _, token := range strings.Fields(normalize(trigger)) {
		if len(token) > m.minKeywordLen {
			keywords = append(keywords, token)
		}
	}
	return keywords
}
