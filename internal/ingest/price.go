package ingest

import (
	"math"
	"strings"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

// maxPrice bounds what a sheet may claim; larger values are treated as typos.
const maxPrice = 1_000_000

var priceCleaner = strings.NewReplacer("$", "", ",", "")

// ParsePrice reads a spreadsheet price cell. Empty cells, "contact", "n/a",
// anything unparseable and values above maxPrice are absent.
func ParsePrice(cell string) mo.Option[float64] {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "contact", "n/a":
		return mo.None[float64]()
	}
	d, err := decimal.NewFromString(strings.TrimSpace(priceCleaner.Replace(s)))
	if err != nil {
		return mo.None[float64]()
	}
	f := d.Round(2).InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) || f > maxPrice {
		return mo.None[float64]()
	}
	return mo.Some(f)
}
