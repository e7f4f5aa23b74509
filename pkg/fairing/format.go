package fairing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DiameterStep is the diameter covered by one attachment node size.
const DiameterStep = 1.25

var printer = message.NewPrinter(language.English)

// NodeSize returns the attachment node size for a part of the given diameter.
// Halves round to even.
func NodeSize(diameter float32) int {
	return max(int(math.RoundToEven(float64(diameter/DiameterStep))), 0)
}

// FormatMass formats a mass in tonnes, switching to kilograms below 10kg.
func FormatMass(mass float32) string {
	if mass < 0.01 {
		return printer.Sprintf("%.3fkg", mass*1e3)
	}
	return printer.Sprintf("%.3ft", mass)
}

// FormatCost formats a cost as a grouped whole number.
func FormatCost(cost float32) string {
	return printer.Sprintf("%.0f", cost)
}
