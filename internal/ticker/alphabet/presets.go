package alphabet

import (
	"fmt"
	"sort"
	"strings"
)

// Preset unit lists.
const (
	NumberUnits       = "0123456789"
	AlphabeticalUnits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	HexUnits          = "0123456789ABCDEF"
	// PriceUnits covers signed decimal amounts with grouping and currency.
	PriceUnits = "0123456789.,-+$ "
)

var presets = map[string]string{
	"number":       NumberUnits,
	"alphabetical": AlphabeticalUnits,
	"hex":          HexUnits,
	"price":        PriceUnits,
}

// Number returns a fresh alphabet of decimal digits.
func Number() *Alphabet { return MustParse(NumberUnits) }

// Alphabetical returns a fresh alphabet of ASCII letters.
func Alphabetical() *Alphabet { return MustParse(AlphabeticalUnits) }

// Preset builds the named preset alphabet.
func Preset(name string) (*Alphabet, error) {
	units, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown alphabet preset %q (have %s)", name, strings.Join(PresetNames(), ", "))
	}
	return Parse(units)
}

// PresetNames returns the known preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
