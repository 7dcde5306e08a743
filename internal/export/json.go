package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/clipscribe/clipscribe/internal/transcript"
)

// WriteJSON writes the result in its wire-contract JSON shape.
func WriteJSON(result *transcript.Result, outputPath string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// ReadJSON loads a previously written result file.
func ReadJSON(path string) (*transcript.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}
	var result transcript.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &result, nil
}
