package transcript

// Word is a single transcribed token with start/end time in seconds
// and a confidence score in [0,1]. Words are immutable once produced.
type Word struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Utterance is a contiguous group of words treated as one spoken segment.
// Start and End are derived from the member words; Confidence is the
// arithmetic mean of the member words' confidences.
type Utterance struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
	Words      []Word  `json:"words"`
}

// Metadata carries the provider-reported transcription attributes.
// Confidence is the provider's overall score, not recomputed.
type Metadata struct {
	Duration   float64 `json:"duration"`
	Language   string  `json:"language"`
	Model      string  `json:"model"`
	Confidence float64 `json:"confidence"`
}

// Result is the structured transcription handed to downstream consumers.
// Its field names and types are a compatibility surface; do not change
// their shape without a version bump.
type Result struct {
	Transcript string      `json:"transcript"`
	Words      []Word      `json:"words"`
	Utterances []Utterance `json:"utterances"`
	Metadata   Metadata    `json:"metadata"`
}

// TimeRange is a contiguous time interval matched to one or more keywords.
// Ranges are produced by FindTimeRanges and are not persisted.
type TimeRange struct {
	Start       float64  `json:"start"`
	End         float64  `json:"end"`
	MatchedText string   `json:"matched_text"`
	Keywords    []string `json:"keywords"`
}
