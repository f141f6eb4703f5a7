package templates

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"returnnotify/internal/directory"
)

type stubLocales map[int64]*directory.Reseller

func (s stubLocales) ResellerByID(_ context.Context, id int64) (*directory.Reseller, error) {
	if id == 13 {
		return nil, errors.New("disk on fire")
	}
	return s[id], nil
}

func newTestRenderer(t *testing.T, locales LocaleSource) *Renderer {
	t.Helper()
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	renderer, err := NewRenderer(catalog, "en", locales, nil)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return renderer
}

func TestDefaultCatalogHasNotificationKeys(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	keys := []string{
		"NewPositionAdded",
		"PositionStatusHasChanged",
		"complaintEmployeeEmailSubject",
		"complaintEmployeeEmailBody",
		"complaintClientEmailSubject",
		"complaintClientEmailBody",
	}
	for _, lang := range []string{"en", "ru"} {
		for _, key := range keys {
			if strings.TrimSpace(catalog[lang][key]) == "" {
				t.Fatalf("catalog %s missing %s", lang, key)
			}
		}
	}
}

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	renderer := newTestRenderer(t, nil)
	got := renderer.Render(context.Background(), "PositionStatusHasChanged", map[string]string{"FROM": "Pending", "TO": "Rejected"}, 7)
	want := `Return status changed from "Pending" to "Rejected"`
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderPicksResellerLanguage(t *testing.T) {
	renderer := newTestRenderer(t, stubLocales{
		7: {ID: 7, Locale: "ru-RU"},
		8: {ID: 8, Locale: "en-GB"},
		9: {ID: 9, Locale: "ja"},
	})
	ctx := context.Background()

	tests := []struct {
		name       string
		resellerID int64
		want       string
	}{
		{name: "regional russian", resellerID: 7, want: "Добавлена новая позиция возврата"},
		{name: "regional english", resellerID: 8, want: "A new return position was added"},
		{name: "unsupported falls back", resellerID: 9, want: "A new return position was added"},
		{name: "unknown reseller", resellerID: 99, want: "A new return position was added"},
		{name: "lookup failure", resellerID: 13, want: "A new return position was added"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderer.Render(ctx, "NewPositionAdded", nil, tt.resellerID); got != tt.want {
				t.Fatalf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderUnknownKeyReturnsKey(t *testing.T) {
	renderer := newTestRenderer(t, nil)
	if got := renderer.Render(context.Background(), "noSuchMessage", nil, 7); got != "noSuchMessage" {
		t.Fatalf("Render = %q", got)
	}
}

func TestLoadCatalogMergesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	override := "[en]\nNewPositionAdded = \"Fresh position #COMPLAINT_NUMBER#\"\n\n[de]\nNewPositionAdded = \"Neue Position\"\n"
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if catalog["en"]["NewPositionAdded"] != "Fresh position #COMPLAINT_NUMBER#" {
		t.Fatalf("override not applied: %q", catalog["en"]["NewPositionAdded"])
	}
	if catalog["en"]["complaintClientEmailSubject"] == "" {
		t.Fatal("override dropped embedded keys")
	}
	renderer, err := NewRenderer(catalog, "en", stubLocales{4: {ID: 4, Locale: "de-AT"}}, nil)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if got := renderer.Render(context.Background(), "NewPositionAdded", nil, 4); got != "Neue Position" {
		t.Fatalf("Render = %q", got)
	}
	// Keys missing in the matched language fall back to the default language.
	if got := renderer.Render(context.Background(), "complaintClientEmailSubject", map[string]string{"COMPLAINT_NUMBER": "C-1"}, 4); got != "Your return C-1 was updated" {
		t.Fatalf("Render fallback = %q", got)
	}
}

func TestNewRendererRejectsUnknownDefaultLanguage(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	if _, err := NewRenderer(catalog, "fr", nil, nil); err == nil {
		t.Fatal("expected error for language without entries")
	}
	if _, err := NewRenderer(catalog, "not a tag!", nil, nil); err == nil {
		t.Fatal("expected error for malformed tag")
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		values map[string]string
		want   string
	}{
		{name: "no values", text: "#A#", values: nil, want: "#A#"},
		{name: "repeated", text: "#A#-#A#", values: map[string]string{"A": "x"}, want: "x-x"},
		{name: "missing marker kept", text: "#A# #B#", values: map[string]string{"A": "1"}, want: "1 #B#"},
		{name: "prefix names", text: "#DATE# #DATE_TIME#", values: map[string]string{"DATE": "d", "DATE_TIME": "dt"}, want: "d dt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.text, tt.values); got != tt.want {
				t.Fatalf("Substitute = %q, want %q", got, tt.want)
			}
		})
	}
}

type countingLocales struct {
	stubLocales
	lookups int
}

func (c *countingLocales) ResellerByID(ctx context.Context, id int64) (*directory.Reseller, error) {
	c.lookups++
	return c.stubLocales.ResellerByID(ctx, id)
}

func TestLanguageCacheResolvesResellerOnce(t *testing.T) {
	locales := &countingLocales{stubLocales: stubLocales{7: {ID: 7, Locale: "ru-RU"}}}
	renderer := newTestRenderer(t, locales)

	ctx := WithLanguageCache(context.Background())
	for i := 0; i < 4; i++ {
		if got := renderer.Render(ctx, "NewPositionAdded", nil, 7); got != "Добавлена новая позиция возврата" {
			t.Fatalf("Render = %q", got)
		}
	}
	if locales.lookups != 1 {
		t.Fatalf("expected one locale lookup, got %d", locales.lookups)
	}

	renderer.Render(context.Background(), "NewPositionAdded", nil, 7)
	renderer.Render(context.Background(), "NewPositionAdded", nil, 7)
	if locales.lookups != 3 {
		t.Fatalf("expected uncached renders to look up each time, got %d", locales.lookups)
	}
}
