package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/allergiapp/langpack/internal"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testBundle() *internal.DownloadedLanguageData {
	return &internal.DownloadedLanguageData{
		Allergens: map[internal.AllergenID]string{
			"peanuts": "Arachides",
			"gluten":  "Gluten",
		},
		Descriptions: map[internal.AllergenID]string{
			"peanuts": "Arachides et produits à base d'arachides.",
			"gluten":  "Céréales contenant du gluten.",
		},
		Warnings: map[internal.AllergenID]string{
			"gluten": "La farine est utilisée pour épaissir de nombreuses sauces.",
		},
		CardTexts: internal.CardTexts{
			Header:   "ATTENTION",
			Subtitle: "ALLERGIES ALIMENTAIRES",
			Message:  "J'ai les allergies alimentaires suivantes.",
			Thanks:   "Merci beaucoup.",
			TapToSee: "Appuyez pour voir des exemples",
			ShowIn:   "Afficher en",
		},
		DownloadedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestStore_SetGetRoundtrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	want := testBundle()

	if err := s.Set(ctx, "fr", want); err != nil {
		t.Fatalf("failed to set: %v", err)
	}

	got, err := s.Get(ctx, "fr")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a stored language pack")
	}

	if got.Allergens["peanuts"] != want.Allergens["peanuts"] {
		t.Errorf("allergens mismatch: %q", got.Allergens["peanuts"])
	}
	if len(got.Warnings) != 1 || got.Warnings["gluten"] != want.Warnings["gluten"] {
		t.Errorf("warnings mismatch: %v", got.Warnings)
	}
	if got.CardTexts != want.CardTexts {
		t.Errorf("card texts mismatch: %+v", got.CardTexts)
	}
	if !got.DownloadedAt.Equal(want.DownloadedAt) {
		t.Errorf("downloadedAt mismatch: %v vs %v", got.DownloadedAt, want.DownloadedAt)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := testStore(t)

	got, err := s.Get(context.Background(), "xx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected nil for a missing language pack")
	}
}

func TestStore_SetReplacesWhole(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := testBundle()
	if err := s.Set(ctx, "fr", first); err != nil {
		t.Fatal(err)
	}

	second := testBundle()
	second.Warnings = nil
	second.Allergens["peanuts"] = "Cacahuètes"
	if err := s.Set(ctx, "fr", second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "fr")
	if err != nil {
		t.Fatal(err)
	}
	if got.Allergens["peanuts"] != "Cacahuètes" {
		t.Errorf("expected replacement to win, got %q", got.Allergens["peanuts"])
	}
	if got.Warnings != nil {
		t.Errorf("expected warnings to be fully replaced, got %v", got.Warnings)
	}
}

func TestStore_Delete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "fr", testBundle()); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "fr"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	got, err := s.Get(ctx, "fr")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("expected language pack to be gone after delete")
	}
}

func TestStore_DeleteMissingIsNoError(t *testing.T) {
	s := testStore(t)

	if err := s.Delete(context.Background(), "xx"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStore_ListCodesSorted(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, code := range []string{"sw", "fr", "ja"} {
		if err := s.Set(ctx, code, testBundle()); err != nil {
			t.Fatal(err)
		}
	}

	codes, err := s.ListCodes(ctx)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"fr", "ja", "sw"}
	if len(codes) != len(want) {
		t.Fatalf("expected %d codes, got %d", len(want), len(codes))
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("code %d: expected %q, got %q", i, want[i], codes[i])
		}
	}
}

func TestStore_NormalizesCodes(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, " FR ", testBundle()); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "fr")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Error("expected case- and space-insensitive lookup to find the pack")
	}
}

func TestStore_DownloadEvents(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveDownloadEvent(ctx, "evt-1", "fr", true, 42000); err != nil {
		t.Fatalf("failed to save event: %v", err)
	}
	if err := s.SaveDownloadEvent(ctx, "evt-2", "sw", false, 1500); err != nil {
		t.Fatalf("failed to save event: %v", err)
	}

	events, err := s.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	byID := map[string]DownloadEvent{}
	for _, e := range events {
		byID[e.ID] = e
	}
	if e := byID["evt-1"]; !e.Success || e.LangCode != "fr" || e.DurationMS != 42000 {
		t.Errorf("unexpected event: %+v", e)
	}
	if e := byID["evt-2"]; e.Success || e.LangCode != "sw" || e.DurationMS != 1500 {
		t.Errorf("unexpected event: %+v", e)
	}
}
