package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/allergiapp/langpack/internal"
	"github.com/allergiapp/langpack/internal/batch"
	"github.com/allergiapp/langpack/internal/catalog"
	"github.com/allergiapp/langpack/internal/translator"
)

type mockService struct {
	translateFunc func(ctx context.Context, req translator.Request) (string, error)
	availableFunc func(ctx context.Context) error
	callCount     atomic.Int32
}

func (m *mockService) Name() string { return "mock" }

func (m *mockService) Translate(ctx context.Context, req translator.Request) (string, error) {
	m.callCount.Add(1)
	if m.translateFunc != nil {
		return m.translateFunc(ctx, req)
	}
	return strings.ToUpper(req.Text), nil
}

func (m *mockService) IsAvailable(ctx context.Context) error {
	if m.availableFunc != nil {
		return m.availableFunc(ctx)
	}
	return nil
}

// testCatalog has two allergens, one with a warning, plus the six card texts.
func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		Allergens: []catalog.Allergen{
			{
				ID:          "peanuts",
				Name:        "Peanuts",
				Description: "Peanuts and products containing peanut butter or peanut oil.",
			},
			{
				ID:          "gluten",
				Name:        "Gluten",
				Description: "Cereals containing gluten such as wheat, rye and barley.",
				Warning:     "Flour is used to thicken many sauces and soups.",
			},
		},
		CardTexts: internal.CardTexts{
			Header:   "ATTENTION",
			Subtitle: "FOOD ALLERGIES",
			Message:  "I have the following food allergies.",
			Thanks:   "Thank you for your understanding.",
			TapToSee: "Tap to see examples",
			ShowIn:   "Show in",
		},
	}
}

func newTestOrchestrator(cat catalog.Catalog, svc translator.Service) *Orchestrator {
	return NewOrchestrator(cat, batch.New(svc, time.Millisecond))
}

// gibberish maps every input to a unique token the overlap heuristic can
// never flag, standing in for a genuine translation.
func gibberish() func(ctx context.Context, req translator.Request) (string, error) {
	var n atomic.Int32
	return func(_ context.Context, req translator.Request) (string, error) {
		return fmt.Sprintf("xlat%03d", n.Add(1)), nil
	}
}

func TestDownload_BundleShape(t *testing.T) {
	svc := &mockService{translateFunc: gibberish()}
	o := newTestOrchestrator(catalog.Default(), svc)

	data, err := o.Download(context.Background(), "fr", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(data.Allergens) != 14 {
		t.Errorf("expected 14 allergens, got %d", len(data.Allergens))
	}
	if len(data.Descriptions) != 14 {
		t.Errorf("expected 14 descriptions, got %d", len(data.Descriptions))
	}
	if len(data.Warnings) != 12 {
		t.Errorf("expected 12 warnings, got %d", len(data.Warnings))
	}
	for _, text := range []string{
		data.CardTexts.Header, data.CardTexts.Subtitle, data.CardTexts.Message,
		data.CardTexts.Thanks, data.CardTexts.TapToSee, data.CardTexts.ShowIn,
	} {
		if text == "" {
			t.Error("expected all six card texts to be populated")
		}
	}
	if data.DownloadedAt.IsZero() {
		t.Error("expected DownloadedAt to be stamped")
	}
}

func TestDownload_UppercaseStub(t *testing.T) {
	// The uppercasing stub echoes the source case-insensitively, so the
	// quality guard kicks in for descriptions and warnings while names and
	// card texts, which it does not cover, keep the uppercased value.
	cat := testCatalog()
	svc := &mockService{}
	o := newTestOrchestrator(cat, svc)

	var last internal.DownloadProgress
	data, err := o.Download(context.Background(), "fr", func(p internal.DownloadProgress) {
		last = p
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.Allergens["peanuts"] != "PEANUTS" {
		t.Errorf("expected uppercased name, got %q", data.Allergens["peanuts"])
	}
	if data.Allergens["gluten"] != "GLUTEN" {
		t.Errorf("expected uppercased name, got %q", data.Allergens["gluten"])
	}

	for _, a := range cat.Allergens {
		if data.Descriptions[a.ID] != a.Description {
			t.Errorf("expected English fallback for description %s, got %q", a.ID, data.Descriptions[a.ID])
		}
	}
	if data.Warnings["gluten"] != cat.Allergens[1].Warning {
		t.Errorf("expected English fallback for warning, got %q", data.Warnings["gluten"])
	}

	if data.CardTexts.Header != "ATTENTION" || data.CardTexts.TapToSee != "TAP TO SEE EXAMPLES" {
		t.Errorf("expected uppercased card texts, got %+v", data.CardTexts)
	}

	if last.Percentage != 100 {
		t.Errorf("expected final progress of 100, got %d", last.Percentage)
	}
}

func TestDownload_TranslatedValuesFlowThrough(t *testing.T) {
	cat := testCatalog()
	svc := &mockService{translateFunc: gibberish()}
	o := newTestOrchestrator(cat, svc)

	data, err := o.Download(context.Background(), "fr", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, a := range cat.Allergens {
		if data.Descriptions[a.ID] == a.Description {
			t.Errorf("expected translated description for %s, got the original", a.ID)
		}
	}
	if data.Warnings["gluten"] == cat.Allergens[1].Warning {
		t.Error("expected translated warning, got the original")
	}
	if len(data.Warnings) != 1 {
		t.Errorf("expected exactly 1 warning entry, got %d", len(data.Warnings))
	}
	if _, ok := data.Warnings["peanuts"]; ok {
		t.Error("expected no warning entry for an allergen without a warning")
	}
}

func TestDownload_NamesNotGuarded(t *testing.T) {
	// The provider echoes the source with a suffix: flagged as partial, so
	// descriptions fall back to English but names keep the returned value.
	cat := testCatalog()
	svc := &mockService{translateFunc: func(_ context.Context, req translator.Request) (string, error) {
		return req.Text + " zz", nil
	}}
	o := newTestOrchestrator(cat, svc)

	data, err := o.Download(context.Background(), "fr", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.Allergens["peanuts"] != "Peanuts zz" {
		t.Errorf("expected name to keep the returned value, got %q", data.Allergens["peanuts"])
	}
	if data.Descriptions["peanuts"] != cat.Allergens[0].Description {
		t.Errorf("expected description fallback, got %q", data.Descriptions["peanuts"])
	}
}

func TestDownload_ProgressMonotonicAndGlobal(t *testing.T) {
	cat := testCatalog()
	svc := &mockService{translateFunc: gibberish()}
	o := newTestOrchestrator(cat, svc)

	var snapshots []internal.DownloadProgress
	_, err := o.Download(context.Background(), "fr", func(p internal.DownloadProgress) {
		snapshots = append(snapshots, p)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := -1
	for i, p := range snapshots {
		if p.Percentage < prev {
			t.Fatalf("snapshot %d: percentage decreased from %d to %d", i, prev, p.Percentage)
		}
		if p.Current > p.Total {
			t.Fatalf("snapshot %d: current %d exceeds total %d", i, p.Current, p.Total)
		}
		if p.Percentage == 100 && i != len(snapshots)-1 {
			t.Fatalf("snapshot %d: reached 100%% before the last item", i)
		}
		prev = p.Percentage
	}

	final := snapshots[len(snapshots)-1]
	if final.Percentage != 100 {
		t.Errorf("expected final percentage 100, got %d", final.Percentage)
	}
	if final.Phase != internal.PhaseCardTexts {
		t.Errorf("expected final phase cardTexts, got %s", final.Phase)
	}
}

func TestDownload_WarningsReportedAsDescriptionsContinuation(t *testing.T) {
	cat := testCatalog()
	svc := &mockService{translateFunc: gibberish()}
	o := newTestOrchestrator(cat, svc)

	var snapshots []internal.DownloadProgress
	_, err := o.Download(context.Background(), "fr", func(p internal.DownloadProgress) {
		snapshots = append(snapshots, p)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two descriptions plus one warning: the warning item must appear as
	// descriptions 3/3, never as a phase of its own.
	found := false
	for _, p := range snapshots {
		if p.Phase == internal.PhaseDescriptions && p.Current == 3 && p.Total == 3 {
			found = true
		}
	}
	if !found {
		t.Error("expected the warning item to be reported as descriptions 3/3")
	}
}

func TestDownload_NoWarningsOmitsField(t *testing.T) {
	cat := testCatalog()
	cat.Allergens[1].Warning = ""
	svc := &mockService{translateFunc: gibberish()}
	o := newTestOrchestrator(cat, svc)

	data, err := o.Download(context.Background(), "fr", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Warnings != nil {
		t.Errorf("expected absent warnings map, got %v", data.Warnings)
	}
}

func TestDownload_ErrorAbortsWithoutBundle(t *testing.T) {
	svc := &mockService{}
	svc.translateFunc = func(_ context.Context, req translator.Request) (string, error) {
		if svc.callCount.Load() > 3 {
			return "", translator.ErrNetwork
		}
		return "ok" + req.Text, nil
	}
	o := newTestOrchestrator(testCatalog(), svc)

	data, err := o.Download(context.Background(), "fr", nil)
	if !errors.Is(err, translator.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if data != nil {
		t.Error("expected no partial bundle on error")
	}
}

func TestDownload_CancellationPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := &mockService{}
	o := newTestOrchestrator(testCatalog(), svc)

	data, err := o.Download(ctx, "fr", nil)
	if !errors.Is(err, translator.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if data != nil {
		t.Error("expected no bundle on cancellation")
	}
	if n := svc.callCount.Load(); n != 0 {
		t.Errorf("expected zero network calls, got %d", n)
	}
}
