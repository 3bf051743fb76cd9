package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	food := Resolve("food")
	assert.Equal(t, "food", food.ID)
	assert.Equal(t, "Food & Dining", food.Name)
	assert.Equal(t, "#FF6B6B", food.Color)

	for _, id := range []string{"", "unknown", "FOOD"} {
		c := Resolve(id)
		assert.Equal(t, FallbackCategoryID, c.ID, "id %q", id)
		assert.Equal(t, "Other", c.Name)
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 10)
	assert.Equal(t, "food", cats[0].ID)
	assert.Equal(t, FallbackCategoryID, cats[len(cats)-1].ID)

	cats[0].Name = "changed"
	assert.Equal(t, "Food & Dining", Categories()[0].Name)
}
