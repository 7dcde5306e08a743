package deepgram

// RawResponse is the typed intermediate for Deepgram's pre-recorded
// transcription payload. Only the fields the normalizer consumes are
// declared; everything optional is tolerated as absent.
type RawResponse struct {
	Metadata RawMetadata `json:"metadata"`
	Results  RawResults  `json:"results"`
}

type RawMetadata struct {
	Duration  float64       `json:"duration"`
	ModelInfo *RawModelInfo `json:"model_info,omitempty"`
}

type RawModelInfo struct {
	Name string `json:"name"`
}

type RawResults struct {
	Channels   []RawChannel   `json:"channels"`
	Utterances []RawUtterance `json:"utterances,omitempty"`
}

type RawChannel struct {
	Alternatives []RawAlternative `json:"alternatives"`
}

type RawAlternative struct {
	Transcript       string    `json:"transcript"`
	Confidence       float64   `json:"confidence"`
	DetectedLanguage string    `json:"detected_language,omitempty"`
	Words            []RawWord `json:"words"`
}

type RawWord struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

type RawUtterance struct {
	Transcript string    `json:"transcript"`
	Start      float64   `json:"start"`
	End        float64   `json:"end"`
	Confidence float64   `json:"confidence"`
	Words      []RawWord `json:"words"`
}

// errorBody is Deepgram's error response shape.
type errorBody struct {
	ErrCode string `json:"err_code"`
	ErrMsg  string `json:"err_msg"`
}
