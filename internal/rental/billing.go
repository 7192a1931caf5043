package rental

import (
	"fmt"

	"github.com/miniapartment/e2e/internal/errs"
)

// Tier is one band of a consumption tariff: the first UpTo units beyond the
// previous band are billed at Price per unit. UpTo < 0 marks the open band.
type Tier struct {
	UpTo  int64
	Price int64
}

// ElectricityTariff mirrors the tiered household electricity price table
// (VND per kWh).
var ElectricityTariff = []Tier{
	{UpTo: 50, Price: 1678},
	{UpTo: 50, Price: 1734},
	{UpTo: 100, Price: 2014},
	{UpTo: 100, Price: 2536},
	{UpTo: 100, Price: 2834},
	{UpTo: -1, Price: 2927},
}

// WaterTariff mirrors the tiered household water price table (VND per m3).
var WaterTariff = []Tier{
	{UpTo: 10, Price: 5973},
	{UpTo: 10, Price: 7052},
	{UpTo: 10, Price: 8669},
	{UpTo: -1, Price: 15929},
}

// TariffCharge bills consumption against a tiered tariff.
func TariffCharge(tariff []Tier, units int64) int64 {
	if units <= 0 {
		return 0
	}
	var charge int64
	remaining := units
	for _, t := range tariff {
		if remaining <= 0 {
			break
		}
		band := remaining
		if t.UpTo >= 0 && band > t.UpTo {
			band = t.UpTo
		}
		charge += band * t.Price
		remaining -= band
	}
	return charge
}

// ComputeCharges fills in the derived fields of an invoice from its meter
// readings. End readings must not be lower than start readings.
func ComputeCharges(inv *Invoice) error {
	if inv.ElectricityEnd < inv.ElectricityStart {
		return errs.New(errs.InvalidArgument, "electricity end reading must not be lower than start reading")
	}
	if inv.WaterEnd < inv.WaterStart {
		return errs.New(errs.InvalidArgument, "water end reading must not be lower than start reading")
	}
	inv.ElectricityCharge = TariffCharge(ElectricityTariff, inv.ElectricityEnd-inv.ElectricityStart)
	inv.WaterCharge = TariffCharge(WaterTariff, inv.WaterEnd-inv.WaterStart)
	inv.Total = inv.ElectricityCharge + inv.WaterCharge
	return nil
}

// FormatMillions renders a VND amount the way the dashboard revenue cards
// do: value divided by one million, one decimal place, suffixed "tr".
func FormatMillions(v int64) string {
	return fmt.Sprintf("%.1ftr", float64(v)/1e6)
}
