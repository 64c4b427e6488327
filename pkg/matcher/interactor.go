package matcher

import (
	"context"
)

// ApologyResponse is returned to the visitor whenever the generative
// provider fails. Provider errors never reach the widget.
const ApologyResponse = "I'm sorry, I couldn't process your request at the moment. How else can I assist you?"

// FallbackGenerator produces a free-text answer when no trigger rule covers
// the input. Implementations may fail; the Interactor recovers locally.
type FallbackGenerator interface {
	Generate(ctx context.Context, userInput string, industry string, chatbotName string) (string, error)
}

// InteractionResult is the orchestrator-boundary shape: rule-hit metadata
// (ResponseID, MatchedTriggers, ConfidenceScore) is populated only for
// genuine rule matches, never for fallback turns.
type InteractionResult struct {
	Response        string
	Matched         bool
	IsAI            bool
	IsGeneralAI     bool
	ResponseID      string
	MatchedTriggers []string
	ConfidenceScore float64
}

type Interactor struct {
	matcher    *Matcher
	classifier *Classifier
	fallback   FallbackGenerator
}

func NewInteractor(m *Matcher, c *Classifier, fallback FallbackGenerator) *Interactor {
	return &Interactor{
		matcher:    m,
		classifier: c,
		fallback:   fallback,
	}
}

// Interact handles a single inbound widget message: intent short-circuit,
// then the two-pass matcher, then exactly one fallback call. The matching
// steps are pure; only the fallback call touches the network, and the caller
// bounds it through ctx.
func (i *Interactor) Interact(ctx context.Context, userInput string, rules []TriggerRule, industry string, chatbotName string) InteractionResult {
	result := i.classifier.Match(userInput, rules)
	if !result.Matched {
		result = i.matcher.Match(userInput, rules)
	}

	if result.Matched {
		return InteractionResult{
			Response:        result.Response,
			Matched:         true,
			IsAI:            result.IsAI,
			ResponseID:      result.ResponseID,
			MatchedTriggers: result.MatchedTriggers,
			ConfidenceScore: result.ConfidenceScore,
		}
	}

	response, err := i.fallback.Generate(ctx, userInput, industry, chatbotName)
	if err != nil {
		response = ApologyResponse
	}

	return InteractionResult{
		Response:    response,
		Matched:     false,
		IsAI:        true,
		IsGeneralAI: true,
	}
}
