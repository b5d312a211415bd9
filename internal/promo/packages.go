package promo

import (
	"strings"
	"time"
)

// Package is a purchasable trending slot.
type Package struct {
	ID       string
	Duration time.Duration
	PriceSOL float64
}

// Packages is the fixed price list, in display order.
var Packages = []Package{
	{ID: "3h", Duration: 3 * time.Hour, PriceSOL: 2.10},
	{ID: "6h", Duration: 6 * time.Hour, PriceSOL: 3.10},
	{ID: "12h", Duration: 12 * time.Hour, PriceSOL: 4.90},
	{ID: "24h", Duration: 24 * time.Hour, PriceSOL: 7.90},
}

// PackageByID looks up a package by its id.
func PackageByID(id string) (Package, bool) {
	for _, p := range Packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// Label returns the display form of the package id, e.g. "12H".
func (p Package) Label() string {
	return strings.ToUpper(p.ID)
}
