package booking

import "math"

var movingPrices = map[string]int{
	"Small Van":         100,
	"Medium Truck":      150,
	"Large Truck":       200,
	"Specialty Vehicle": 250,
}

const defaultMovingPrice = 150

var wasteBasePrices = map[string]float64{
	"Household":    50,
	"Construction": 150,
	"Commercial":   200,
	"Recyclable":   40,
	"Hazardous":    300,
}

const defaultWasteBase = 50

// Recurring pickups get 10% off.
var wasteFrequencyMultipliers = map[string]float64{
	"One-time":  1,
	"Recurring": 0.9,
}

var logisticsPrices = map[string]int{
	"Standard": 25,
	"Express":  50,
}

const defaultLogisticsPrice = 25

// MovingPrice prices a move by vehicle type.
func MovingPrice(vehicle string) int {
	if p, ok := movingPrices[vehicle]; ok {
		return p
	}
	return defaultMovingPrice
}

// WastePrice is the waste-type base price times the frequency multiplier, rounded.
func WastePrice(wasteType, frequency string) int {
	base, ok := wasteBasePrices[wasteType]
	if !ok {
		base = defaultWasteBase
	}
	multiplier, ok := wasteFrequencyMultipliers[frequency]
	if !ok {
		multiplier = 1
	}
	return int(math.Round(base * multiplier))
}

// LogisticsPrice prices a delivery by delivery type.
func LogisticsPrice(deliveryType string) int {
	if p, ok := logisticsPrices[deliveryType]; ok {
		return p
	}
	return defaultLogisticsPrice
}
