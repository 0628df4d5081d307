// Package download implements the language pack download workflow: a
// sequential, cancellable batch translation of the source catalog with
// global progress reporting.
package download

import (
	"context"
	"math"
	"time"

	"github.com/allergiapp/langpack/internal"
	"github.com/allergiapp/langpack/internal/batch"
	"github.com/allergiapp/langpack/internal/catalog"
	"github.com/allergiapp/langpack/internal/quality"
)

// Card texts are always translated from English, whatever display language
// the app itself is using.
const sourceLang = "en"

// ProgressFunc receives a snapshot after every translated item.
type ProgressFunc func(p internal.DownloadProgress)

// Orchestrator turns the source catalog into one DownloadedLanguageData
// bundle for a target language. It either returns a complete bundle or an
// error; no partial bundle is ever produced.
type Orchestrator struct {
	catalog catalog.Catalog
	batch   *batch.Translator
	now     func() time.Time
}

func NewOrchestrator(cat catalog.Catalog, b *batch.Translator) *Orchestrator {
	return &Orchestrator{catalog: cat, batch: b, now: time.Now}
}

// Download translates the whole catalog into targetLang. Progress percentage
// is global over all phases, so the caller can drive a single bar, while
// Current/Total stay phase-local. Warnings are reported under the
// descriptions phase with offset counters.
func (o *Orchestrator) Download(ctx context.Context, targetLang string, onProgress ProgressFunc) (*internal.DownloadedLanguageData, error) {
	names := o.catalog.Names()
	descriptions := o.catalog.Descriptions()
	warningIDs, warnings := o.catalog.Warnings()
	cardTexts := o.catalog.CardTextList()

	totalItems := len(names) + len(descriptions) + len(warnings) + len(cardTexts)
	completedItems := 0

	report := func(phase internal.Phase, current, total int) {
		if onProgress == nil {
			return
		}
		onProgress(internal.DownloadProgress{
			Phase:      phase,
			Current:    current,
			Total:      total,
			Percentage: int(math.Round(float64(completedItems) / float64(totalItems) * 100)),
		})
	}

	report(internal.PhaseAllergens, 0, len(names))
	translatedNames, err := o.batch.TranslateAll(ctx, names, sourceLang, targetLang, func(current, total int) {
		completedItems = current
		report(internal.PhaseAllergens, current, total)
	})
	if err != nil {
		return nil, err
	}

	namesDone := len(names)
	report(internal.PhaseDescriptions, 0, len(descriptions))
	translatedDescriptions, err := o.batch.TranslateAll(ctx, descriptions, sourceLang, targetLang, func(current, total int) {
		completedItems = namesDone + current
		report(internal.PhaseDescriptions, current, total)
	})
	if err != nil {
		return nil, err
	}

	// Warnings ride along as a continuation of the descriptions phase: they
	// are secondary enrichment and the UI has no label for them, so their
	// counters pick up where the descriptions left off.
	var translatedWarnings []string
	if len(warnings) > 0 {
		descDone := namesDone + len(descriptions)
		translatedWarnings, err = o.batch.TranslateAll(ctx, warnings, sourceLang, targetLang, func(current, total int) {
			completedItems = descDone + current
			report(internal.PhaseDescriptions, len(descriptions)+current, len(descriptions)+total)
		})
		if err != nil {
			return nil, err
		}
	}

	preCards := len(names) + len(descriptions) + len(warnings)
	report(internal.PhaseCardTexts, 0, len(cardTexts))
	translatedCards, err := o.batch.TranslateAll(ctx, cardTexts, sourceLang, targetLang, func(current, total int) {
		completedItems = preCards + current
		report(internal.PhaseCardTexts, current, total)
	})
	if err != nil {
		return nil, err
	}

	return o.assemble(translatedNames, translatedDescriptions, warningIDs, warnings, translatedWarnings, translatedCards), nil
}

// assemble zips the translated lists back onto their allergen IDs by
// position, relying on the catalog's stable ordering.
func (o *Orchestrator) assemble(names, descriptions []string, warningIDs []internal.AllergenID, warningOriginals, warnings, cards []string) *internal.DownloadedLanguageData {
	data := &internal.DownloadedLanguageData{
		Allergens:    make(map[internal.AllergenID]string, len(o.catalog.Allergens)),
		Descriptions: make(map[internal.AllergenID]string, len(o.catalog.Allergens)),
	}

	for i, a := range o.catalog.Allergens {
		data.Allergens[a.ID] = names[i]
		data.Descriptions[a.ID] = bestTranslation(a.Description, descriptions[i])
	}

	// Absent, not empty, when the catalog has no warnings: consumers can
	// tell "no warnings exist" from "warnings are empty strings".
	if len(warningIDs) > 0 {
		data.Warnings = make(map[internal.AllergenID]string, len(warningIDs))
		for i, id := range warningIDs {
			data.Warnings[id] = bestTranslation(warningOriginals[i], warnings[i])
		}
	}

	data.CardTexts = internal.CardTexts{
		Header:   cards[0],
		Subtitle: cards[1],
		Message:  cards[2],
		Thanks:   cards[3],
		TapToSee: cards[4],
		ShowIn:   cards[5],
	}
	data.DownloadedAt = o.now()

	return data
}

// bestTranslation keeps the English original when the translation looks like
// the provider gave the source back largely unchanged. Applied to
// descriptions and warnings only; allergen names are short single words
// where the overlap check is least reliable, so they are stored as returned.
func bestTranslation(original, translated string) string {
	if quality.IsPartialTranslation(original, translated) {
		return original
	}
	return translated
}
