// Package validator checks that a downloaded language pack is written in its
// claimed target language.
package validator

import (
	"strings"

	"github.com/allergiapp/langpack/internal"
	"github.com/allergiapp/langpack/internal/detector"
)

// minValidationLength is the minimum rune count required to attempt language
// detection. Shorter texts produce unreliable results and are skipped.
const minValidationLength = 20

// Validator verifies stored language packs. The underlying detector is
// expensive to build; reuse the instance.
type Validator struct {
	det *detector.Detector
}

// New creates a Validator backed by the lingua-go language detector.
func New() *Validator {
	return &Validator{det: detector.New()}
}

// Mismatch is one pack entry whose detected language differs from the pack's
// target language.
type Mismatch struct {
	Field    string
	Detected string
}

// Report summarises one verification pass over a pack.
type Report struct {
	Checked    int
	Skipped    int // too short or ambiguous for detection
	Mismatched []Mismatch
}

// VerifyBundle inspects every allergen name, description, warning and card
// text of data and reports entries whose detected language differs from
// targetLang. Short and ambiguous texts are skipped, not failed. Entries the
// download kept in English as a quality fallback will legitimately show up
// as mismatches.
func (v *Validator) VerifyBundle(data *internal.DownloadedLanguageData, targetLang string) Report {
	var r Report

	check := func(field, text string) {
		text = strings.TrimSpace(text)
		if len([]rune(text)) < minValidationLength {
			r.Skipped++
			return
		}

		detected, ok := v.det.DetectISO(text)
		if !ok {
			r.Skipped++
			return
		}

		r.Checked++
		if !strings.EqualFold(detected, targetLang) {
			r.Mismatched = append(r.Mismatched, Mismatch{Field: field, Detected: detected})
		}
	}

	for id, name := range data.Allergens {
		check("allergen:"+string(id), name)
	}
	for id, desc := range data.Descriptions {
		check("description:"+string(id), desc)
	}
	for id, warning := range data.Warnings {
		check("warning:"+string(id), warning)
	}

	check("cardTexts.header", data.CardTexts.Header)
	check("cardTexts.subtitle", data.CardTexts.Subtitle)
	check("cardTexts.message", data.CardTexts.Message)
	check("cardTexts.thanks", data.CardTexts.Thanks)
	check("cardTexts.tapToSee", data.CardTexts.TapToSee)
	check("cardTexts.showIn", data.CardTexts.ShowIn)

	return r
}
