// Package analytics turns transaction and budget snapshots into monthly
// trends, category breakdowns, budget comparisons and insights.
//
// Every function in this package is a pure computation over its arguments:
// nothing is cached, nothing is persisted and inputs are never modified.
package analytics

// FallbackCategoryID is the id every unknown category resolves to.
const FallbackCategoryID = "other"

// Category is static display metadata for a transaction category.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var categoryTable = []Category{
	{ID: "food", Name: "Food & Dining", Icon: "🍽️", Color: "#FF6B6B"},
	{ID: "transportation", Name: "Transportation", Icon: "🚗", Color: "#4ECDC4"},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#45B7D1"},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#96CEB4"},
	{ID: "bills", Name: "Bills & Utilities", Icon: "💡", Color: "#FFEAA7"},
	{ID: "healthcare", Name: "Healthcare", Icon: "🏥", Color: "#DDA0DD"},
	{ID: "education", Name: "Education", Icon: "📚", Color: "#98D8C8"},
	{ID: "travel", Name: "Travel", Icon: "✈️", Color: "#F7DC6F"},
	{ID: "fitness", Name: "Fitness & Sports", Icon: "💪", Color: "#BB8FCE"},
	{ID: FallbackCategoryID, Name: "Other", Icon: "📦", Color: "#AED6F1"},
}

var categoryIndex = func() map[string]Category {
	m := make(map[string]Category, len(categoryTable))
	for _, c := range categoryTable {
		m[c.ID] = c
	}
	return m
}()

// Resolve returns the category for id, or the "other" entry when id is unknown.
func Resolve(id string) Category {
	if c, ok := categoryIndex[id]; ok {
		return c
	}
	return categoryIndex[FallbackCategoryID]
}

// Categories returns the registry in display order.
func Categories() []Category {
	return append([]Category(nil), categoryTable...)
}
