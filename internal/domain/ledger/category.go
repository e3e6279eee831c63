package ledger

import (
	"golang.org/x/text/cases"
)

// CategoryKey folds a category label so that "Food", "FOOD" and "food" share a key.
func CategoryKey(category string) string {
	return cases.Fold().String(category)
}
