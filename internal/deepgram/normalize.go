package deepgram

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clipscribe/clipscribe/internal/transcript"
)

// Normalized is the provider-independent view of a raw response.
type Normalized struct {
	Transcript      string
	Words           []transcript.Word
	UtteranceGroups [][]transcript.Word
	Metadata        transcript.Metadata
}

// Normalize validates the raw provider response field by field and maps it
// into transcript structures. Timestamps are rounded to millisecond
// precision; metadata fields are taken directly from the provider without
// recomputation. A response missing its channel or alternative structure
// is rejected as a ProviderError rather than a generic decode failure.
func Normalize(raw *RawResponse) (*Normalized, error) {
	if len(raw.Results.Channels) == 0 {
		return nil, shapeError("response has no channels")
	}
	alts := raw.Results.Channels[0].Alternatives
	if len(alts) == 0 {
		return nil, shapeError("response has no alternatives")
	}
	alt := alts[0]

	words, err := normalizeWords(alt.Words)
	if err != nil {
		return nil, err
	}

	groups := make([][]transcript.Word, 0, len(raw.Results.Utterances))
	for _, u := range raw.Results.Utterances {
		group, err := normalizeWords(u.Words)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	language := alt.DetectedLanguage
	if language == "" {
		language = "unknown"
	}
	model := DefaultModel
	if raw.Metadata.ModelInfo != nil && raw.Metadata.ModelInfo.Name != "" {
		model = raw.Metadata.ModelInfo.Name
	}

	return &Normalized{
		Transcript:      alt.Transcript,
		Words:           words,
		UtteranceGroups: groups,
		Metadata: transcript.Metadata{
			Duration:   roundMs(raw.Metadata.Duration),
			Language:   language,
			Model:      model,
			Confidence: alt.Confidence,
		},
	}, nil
}

func normalizeWords(raw []RawWord) ([]transcript.Word, error) {
	words := make([]transcript.Word, 0, len(raw))
	for i, w := range raw {
		if w.Start > w.End {
			return nil, shapeError(fmt.Sprintf("word %d: start %.3f after end %.3f", i, w.Start, w.End))
		}
		if w.Confidence < 0 || w.Confidence > 1 {
			return nil, shapeError(fmt.Sprintf("word %d: confidence %f out of range", i, w.Confidence))
		}
		words = append(words, transcript.Word{
			Text:       w.Word,
			Start:      roundMs(w.Start),
			End:        roundMs(w.End),
			Confidence: w.Confidence,
		})
	}
	return words, nil
}

// roundMs rounds a second-based timestamp to millisecond precision.
// decimal rounding avoids the float drift of a multiply/divide round trip.
func roundMs(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(3).Float64()
	return f
}

func shapeError(msg string) *ProviderError {
	return &ProviderError{Code: "unexpected_shape", Message: msg}
}
