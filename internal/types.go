package internal

import "time"

// AllergenID identifies one allergen of the source catalog.
type AllergenID string

// Phase names one of the three user-visible stages of a language download.
// Warnings are translated under the descriptions phase; the card UI has no
// separate label for them.
type Phase string

const (
	PhaseAllergens    Phase = "allergens"
	PhaseDescriptions Phase = "descriptions"
	PhaseCardTexts    Phase = "cardTexts"
)

// DownloadProgress is the snapshot reported after each translated item.
// Current and Total count within the reported phase; Percentage covers the
// whole download and never decreases over one attempt.
type DownloadProgress struct {
	Phase      Phase `json:"phase"`
	Current    int   `json:"current"`
	Total      int   `json:"total"`
	Percentage int   `json:"percentage"`
}

// CardTexts holds the six translated card strings.
type CardTexts struct {
	Header   string `json:"header"`
	Subtitle string `json:"subtitle"`
	Message  string `json:"message"`
	Thanks   string `json:"thanks"`
	TapToSee string `json:"tapToSee"`
	ShowIn   string `json:"showIn"`
}

// DownloadedLanguageData is the persisted language pack for one downloaded
// language. Allergens and Descriptions carry one entry per catalog allergen;
// Warnings only entries for allergens that have a warning (nil when the
// catalog has none). Values are either the translated text or, when the
// translation was rejected as partial, the English original.
type DownloadedLanguageData struct {
	Allergens    map[AllergenID]string `json:"allergens"`
	Descriptions map[AllergenID]string `json:"descriptions"`
	Warnings     map[AllergenID]string `json:"warnings,omitempty"`
	CardTexts    CardTexts             `json:"cardTexts"`
	DownloadedAt time.Time             `json:"downloadedAt"`
}
