package catalog

import (
	"fmt"

	"github.com/mcdev12/chipstore/go/internal/models"
)

var chips = []models.Item{
	{ID: 1, Name: "Classic Salt", Price: 2.99, Description: "The timeless favorite", Image: "/havsalt.jpg"},
	{ID: 2, Name: "Sour Cream & Onion", Price: 3.49, Description: "Tangy and savory", Image: "/paprika.jpg"},
	{ID: 3, Name: "BBQ", Price: 3.49, Description: "Sweet and smoky", Image: "/parmesan.jpg"},
	{ID: 4, Name: "Jalapeño", Price: 3.99, Description: "Spicy kick", Image: "/havsalt.jpg"},
}

// Items returns the catalog in display order. The slice is a copy.
func Items() []models.Item {
	items := make([]models.Item, len(chips))
	copy(items, chips)
	return items
}

// Get looks up an item by id.
func Get(id int) (models.Item, error) {
	for _, item := range chips {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Item{}, fmt.Errorf("no catalog item with id %d", id)
}
