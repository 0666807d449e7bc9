// README: Requirement analyzer; asks the model to structure free speech and falls back to keyword matching.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"voyage/internal/ai"
	"voyage/internal/modules/itinerary"
)

// ErrEmptySpeech is returned for blank analysis input.
var ErrEmptySpeech = errors.New("speech text is empty")

type AnalysisResult struct {
	Draft    itinerary.RequirementDraft `json:"draft"`
	Source   Source                     `json:"source"`
	Fallback *Fallback                  `json:"fallback,omitempty"`
}

type RequirementAnalyzer struct {
	client ai.Client
	log    zerolog.Logger
}

func NewRequirementAnalyzer(client ai.Client, log zerolog.Logger) *RequirementAnalyzer {
	return &RequirementAnalyzer{client: client, log: log}
}

// Analyze turns speech into a RequirementDraft. Model failures never surface;
// the keyword matcher answers instead.
func (a *RequirementAnalyzer) Analyze(ctx context.Context, speech string) (AnalysisResult, error) {
	speech = strings.TrimSpace(speech)
	if speech == "" {
		return AnalysisResult{}, ErrEmptySpeech
	}

	draft, fb := a.fromModel(ctx, speech)
	if fb == nil {
		return AnalysisResult{Draft: draft, Source: SourceLLM}, nil
	}
	a.log.Warn().Str("kind", string(fb.Kind)).Str("reason", fb.Message).Msg("requirement analysis fell back to keywords")
	return AnalysisResult{Draft: itinerary.KeywordAnalysis(speech), Source: SourceMock, Fallback: fb}, nil
}

func (a *RequirementAnalyzer) fromModel(ctx context.Context, speech string) (itinerary.RequirementDraft, *Fallback) {
	if a.client == nil {
		return itinerary.RequirementDraft{}, fallbackFor(ai.ErrConfigurationMissing)
	}
	completion, err := a.client.Complete(ctx, itinerary.BuildAnalysisPrompt(speech))
	if err != nil {
		return itinerary.RequirementDraft{}, fallbackFor(err)
	}
	candidate, ok := ai.ExtractJSON(completion)
	if !ok {
		return itinerary.RequirementDraft{}, &Fallback{Kind: FallbackMalformedJSON, Message: "completion carried no content"}
	}

	var draft itinerary.RequirementDraft
	if err := json.Unmarshal([]byte(candidate), &draft); err != nil {
		return itinerary.RequirementDraft{}, fallbackFor(fmt.Errorf("%w: %v", itinerary.ErrMalformedJSON, err))
	}
	if draft.Preferences == nil {
		draft.Preferences = []string{}
	}
	return draft, nil
}
