package viewmodel

import (
	"context"

	"github.com/Kerhoff/familycart/internal/models"
)

// CategorySource supplies the catalog's top-level categories.
type CategorySource interface {
	Categories(ctx context.Context) ([]models.Category, error)
}

// Categories lists the catalog categories and tracks which ones the user
// has expanded.
type Categories struct {
	source CategorySource

	categories *Signal[[]models.Category]
	expanded   *Signal[map[int]bool]
}

func NewCategories(source CategorySource) *Categories {
	return &Categories{
		source:     source,
		categories: NewSignal[[]models.Category](nil),
		expanded:   NewSignal(map[int]bool{}),
	}
}

func (c *Categories) Categories() Observable[[]models.Category] {
	return c.categories
}

// Expanded holds the ids of the expanded categories.
func (c *Categories) Expanded() Observable[map[int]bool] {
	return c.expanded
}

func (c *Categories) Load(ctx context.Context) error {
	cats, err := c.source.Categories(ctx)
	if err != nil {
		return err
	}
	c.categories.Set(cats)
	return nil
}

// ToggleExpanded flips the expanded state of category id.
func (c *Categories) ToggleExpanded(id int) {
	c.expanded.Update(func(cur map[int]bool) map[int]bool {
		next := make(map[int]bool, len(cur)+1)
		for k := range cur {
			next[k] = true
		}
		if cur[id] {
			delete(next, id)
		} else {
			next[id] = true
		}
		return next
	})
}

// IsExpanded reports whether category id is expanded.
func (c *Categories) IsExpanded(id int) bool {
	return c.expanded.Get()[id]
}
