// Package messages holds the notification text catalog. Defaults are
// compiled in; a JSON file can override individual entries.
package messages

import (
	"encoding/json"
	"fmt"
	"os"
)

type MessageText struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Catalog maps alert kinds to their display text. Body strings are
// fmt.Sprintf templates; the argument order is documented per field.
type Catalog struct {
	// BudgetExceeded: budget name, spent amount, limit amount.
	BudgetExceeded MessageText `json:"budget_exceeded"`
	// GoalAchieved: goal name, target amount.
	GoalAchieved MessageText `json:"goal_achieved"`
	// AccountDeactivated: account name.
	AccountDeactivated MessageText `json:"account_deactivated"`
}

// Default returns the compiled-in catalog.
func Default() Catalog {
	return Catalog{
		BudgetExceeded: MessageText{
			Title: "Budget exceeded",
			Body:  "%s is over its limit: %s spent of %s.",
		},
		GoalAchieved: MessageText{
			Title: "Goal achieved",
			Body:  "%s is complete. You saved %s!",
		},
		AccountDeactivated: MessageText{
			Title: "Account unlinked",
			Body:  "%s is no longer syncing.",
		},
	}
}

// Load reads a JSON override file on top of the default catalog. Entries
// missing from the file keep their defaults.
func Load(path string) (Catalog, error) {
	catalog := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog, fmt.Errorf("failed to read messages file: %w", err)
	}
	var override Catalog
	if err := json.Unmarshal(data, &override); err != nil {
		return catalog, fmt.Errorf("failed to parse messages file: %w", err)
	}
	merge(&catalog.BudgetExceeded, override.BudgetExceeded)
	merge(&catalog.GoalAchieved, override.GoalAchieved)
	merge(&catalog.AccountDeactivated, override.AccountDeactivated)
	return catalog, nil
}

func merge(dst *MessageText, src MessageText) {
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.Body != "" {
		dst.Body = src.Body
	}
}
