package messages

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogIsComplete(t *testing.T) {
	c := Default()
	for name, text := range map[string]MessageText{
		"BudgetExceeded":     c.BudgetExceeded,
		"GoalAchieved":       c.GoalAchieved,
		"AccountDeactivated": c.AccountDeactivated,
	} {
		if text.Title == "" || text.Body == "" {
			t.Errorf("%s: missing default title or body", name)
		}
	}
}

func TestLoadOverridesOnlyProvidedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	contents := `{"budget_exceeded": {"title": "Estouro de orçamento"}}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing override file: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.BudgetExceeded.Title != "Estouro de orçamento" {
		t.Errorf("title override not applied, got %q", c.BudgetExceeded.Title)
	}
	if c.BudgetExceeded.Body != Default().BudgetExceeded.Body {
		t.Errorf("body should keep its default, got %q", c.BudgetExceeded.Body)
	}
	if c.GoalAchieved != Default().GoalAchieved {
		t.Errorf("untouched entry changed: %+v", c.GoalAchieved)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if c != Default() {
		t.Errorf("catalog should fall back to defaults, got %+v", c)
	}
}
