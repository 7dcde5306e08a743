package transcript

import "strings"

// DefaultGapThreshold is the silence gap, in seconds, that starts a new
// utterance when the provider reports no utterance boundaries.
const DefaultGapThreshold = 1.5

// FromGroups builds utterances from provider-grouped words, one utterance
// per group. Empty groups are skipped.
func FromGroups(groups [][]Word) []Utterance {
	utterances := make([]Utterance, 0, len(groups))
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		utterances = append(utterances, newUtterance(group))
	}
	return utterances
}

// Segment groups an ordered word sequence into utterances using a silence
// gap heuristic: a new utterance starts whenever the gap between the end of
// one word and the start of the next exceeds gapThreshold seconds. A
// threshold <= 0 falls back to DefaultGapThreshold.
func Segment(words []Word, gapThreshold float64) []Utterance {
	if len(words) == 0 {
		return nil
	}
	if gapThreshold <= 0 {
		gapThreshold = DefaultGapThreshold
	}

	var utterances []Utterance
	groupStart := 0
	for i := 1; i < len(words); i++ {
		if words[i].Start-words[i-1].End > gapThreshold {
			utterances = append(utterances, newUtterance(words[groupStart:i]))
			groupStart = i
		}
	}
	utterances = append(utterances, newUtterance(words[groupStart:]))
	return utterances
}

// newUtterance derives the utterance fields from its member words:
// start/end are the min start and max end, confidence is the mean of the
// word confidences, text is the space-joined word text.
func newUtterance(words []Word) Utterance {
	texts := make([]string, len(words))
	start := words[0].Start
	end := words[0].End
	var confSum float64

	for i, w := range words {
		texts[i] = w.Text
		if w.Start < start {
			start = w.Start
		}
		if w.End > end {
			end = w.End
		}
		confSum += w.Confidence
	}

	return Utterance{
		Text:       strings.Join(texts, " "),
		Start:      start,
		End:        end,
		Confidence: confSum / float64(len(words)),
		Words:      words,
	}
}
