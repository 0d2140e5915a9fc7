package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RoundFloat rounds a float64 to a specified number of decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// Dec converts a float to a decimal, treating NaN and infinities as zero.
func Dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// PercentOfDec returns value*percent/100.
func PercentOfDec(value decimal.Decimal, percent float64) decimal.Decimal {
	return value.Mul(Dec(percent)).Div(hundred)
}

// PercentOf is PercentOfDec for plain floats.
func PercentOf(value, percent float64) float64 {
	return PercentOfDec(Dec(value), percent).InexactFloat64()
}

// Sum adds values in decimal arithmetic so that long series of cents do not drift.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(Dec(v))
	}
	return total.InexactFloat64()
}

// Average returns total/count, or 0 when count is zero.
func Average(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return Dec(total).Div(decimal.NewFromInt(int64(count))).InexactFloat64()
}

// PercentageString formats part/total*100 with two decimals. A zero total is
// not guarded and yields "Infinity", "-Infinity" or "NaN" like a float division would.
func PercentageString(part, total float64) string {
	if total == 0 {
		switch {
		case part > 0:
			return "Infinity"
		case part < 0:
			return "-Infinity"
		default:
			return "NaN"
		}
	}
	return Dec(part).Div(Dec(total)).Mul(hundred).StringFixed(2)
}
