package models

import (
	"hash/fnv"

	"github.com/shopspring/decimal"
)

// Entity is implemented by every resource kept in a collection.
type Entity[T any] interface {
	// Key returns the ID of the resource.
	Key() string

	// Merge returns a copy of the resource with the named fields taken from patch.
	// Fields that are not named keep their current value.
	Merge(patch T, fields []string) T

	// Toggle returns a copy of the resource with the named boolean field flipped.
	Toggle(field string) (T, error)
}

var hundred = decimal.NewFromInt(100)

// Hundred is the decimal value 100, used for percentages.
func Hundred() decimal.Decimal {
	return hundred
}

// BudgetPalette are the colors budgets can be displayed in.
var BudgetPalette = []string{
	"bg-blue-500",
	"bg-green-500",
	"bg-purple-500",
	"bg-red-500",
	"bg-yellow-500",
	"bg-indigo-500",
	"bg-pink-500",
	"bg-gray-500",
}

// GoalPalette are the colors pots can be displayed in.
var GoalPalette = []string{
	"bg-red-500",
	"bg-yellow-500",
	"bg-indigo-500",
	"bg-green-500",
	"bg-purple-500",
	"bg-blue-500",
	"bg-pink-500",
	"bg-gray-500",
}

// PaletteColor picks a color from the palette for the ID. The same ID always
// maps to the same color.
func PaletteColor(palette []string, id string) string {
	if len(palette) == 0 {
		return ""
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}
