package export

import (
	"fmt"
	"time"

	"github.com/gomutex/godocx"

	"github.com/clipscribe/clipscribe/internal/transcript"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

// WriteDocx renders the transcription into a styled docx document: a title,
// a metadata line, then one timestamped paragraph per utterance.
func WriteDocx(result *transcript.Result, title, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	doc.AddParagraph("").AddText(title).Font(fontName).Size(titleSize).Color("000000").Bold(true)

	meta := fmt.Sprintf("Duration: %s | Language: %s | Model: %s",
		formatTimestamp(result.Metadata.Duration),
		result.Metadata.Language,
		result.Metadata.Model,
	)
	doc.AddParagraph("").AddText(meta).Font(fontName).Size(fontSize).Color("666666")
	doc.AddParagraph("")

	for _, u := range result.Utterances {
		p := doc.AddParagraph("")
		ts := fmt.Sprintf("[%s - %s] ", formatTimestamp(u.Start), formatTimestamp(u.End))
		p.AddText(ts).Font(fontName).Size(fontSize).Color("666666").Bold(true)
		p.AddText(u.Text).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

// formatTimestamp renders seconds as mm:ss, or hh:mm:ss past an hour.
func formatTimestamp(sec float64) string {
	d := time.Duration(sec * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
