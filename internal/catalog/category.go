package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCategory is returned when a category label has no attribute table.
var ErrUnknownCategory = errors.New("catalog: category not found")

const doorsTable = "doors"

// attributeTables maps a category display label to its attribute table.
// It is the only source of table identifiers that reach SQL text and is never written after init.
var attributeTables = map[string]string{
	"Doors":     doorsTable,
	"Windows":   "windows",
	"Furniture": "furniture",
	"Flooring":  "flooring",
	"Lighting":  "lighting",
	"Wallpaper": "wallpapers",
}

// AttributeTable resolves a category label to its attribute table.
// Labels are matched exactly, without case or whitespace normalization.
func AttributeTable(category string) (string, error) {
	table, ok := attributeTables[category]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return table, nil
}

// Categories returns the supported category labels in sorted order.
func Categories() []string {
	labels := make([]string, 0, len(attributeTables))
	for label := range attributeTables {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
