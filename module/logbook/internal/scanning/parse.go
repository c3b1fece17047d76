package scanning

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

// Gas station brands commonly found on German fuel receipts.
var gasStations = []string{
	"SHELL", "ARAL", "ESSO", "BP", "TOTAL", "AGIP", "OMV", "JET", "STAR",
	"TANKSTELLE", "STATION", "RAIFFEISEN", "HEM", "ORLEN",
}

// Ordered so "Super E10" and "Super Plus" are matched before plain "Super".
var fuelTypePatterns = []struct {
	re       *regexp.Regexp
	fuelType string
}{
	{regexp.MustCompile(`SUPER\s*E?10`), "E10"},
	{regexp.MustCompile(`SUPER\s*PLUS`), "Super Plus"},
	{regexp.MustCompile(`SUPER`), "Super"},
	{regexp.MustCompile(`DIESEL`), "Diesel"},
	{regexp.MustCompile(`BENZIN`), "Benzin"},
	{regexp.MustCompile(`ADBLUE`), "AdBlue"},
}

var (
	dateRe      = regexp.MustCompile(`(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})`)
	litersRe    = regexp.MustCompile(`(\d+[,.]?\d*)\s*L`)
	unitPriceRe = regexp.MustCompile(`(\d+[,.]?\d*)\s*(?:€|EUR)?/L`)
	totalRe     = regexp.MustCompile(`(\d+[,.]?\d*)\s*(?:€|EUR)`)
	receiptNoRe = regexp.MustCompile(`(?:BELEG|RECEIPT|NR\.?|NUMMER)\s*:?\s*([A-Z0-9-]+)`)
	postalRe    = regexp.MustCompile(`\d{5}\s+[A-ZÄÖÜ]`)
	cleanRe     = regexp.MustCompile(`[^\w\s.\-äöüÄÖÜß]`)
)

// ParseReceipt extracts structured fields from OCR text of a fuel receipt.
// Matching is line by line, first match wins per field, except the total
// amount where the largest value across the whole document wins (receipts
// print subtotals before the final total). Absence of a field is a valid
// outcome; ParseReceipt never fails.
func ParseReceipt(text string) domain.ExtractedReceiptData {
	var result domain.ExtractedReceiptData

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if l := strings.TrimSpace(raw); l != "" {
			lines = append(lines, l)
		}
	}

	for i, original := range lines {
		line := strings.ToUpper(original)

		if result.GasStation == "" {
			for _, station := range gasStations {
				if strings.Contains(line, station) {
					result.GasStation = cleanText(original)
					break
				}
			}
		}

		if result.Date == "" {
			if m := dateRe.FindStringSubmatch(line); m != nil {
				result.Date = normalizeDate(m[1], m[2], m[3])
			}
		}

		if result.FuelType == "" {
			for _, fuel := range fuelTypePatterns {
				if fuel.re.MatchString(line) {
					result.FuelType = fuel.fuelType
					break
				}
			}
		}

		if result.FuelAmount == 0 && (strings.Contains(line, "L") || strings.Contains(line, "LITER")) {
			if m := litersRe.FindStringSubmatch(line); m != nil {
				result.FuelAmount = parseDecimal(m[1])
			}
		}

		if result.PricePerLiter == 0 && (strings.Contains(line, "€/L") || strings.Contains(line, "EUR/L")) {
			if m := unitPriceRe.FindStringSubmatch(line); m != nil {
				result.PricePerLiter = parseDecimal(m[1])
			}
		}

		if strings.Contains(line, "€") || strings.Contains(line, "EUR") {
			for _, amount := range totalCandidates(line) {
				if amount > result.TotalAmount {
					result.TotalAmount = amount
				}
			}
		}

		if result.ReceiptNumber == "" {
			if m := receiptNoRe.FindStringSubmatch(line); m != nil {
				result.ReceiptNumber = m[1]
			}
		}

		// Address with postal code is expected near the top of the receipt.
		if result.Location == "" && i < 5 && postalRe.MatchString(line) {
			result.Location = cleanText(original)
		}
	}

	// Fill the missing third of amount/price/total; direct matches are
	// never overwritten.
	if result.FuelAmount > 0 && result.PricePerLiter > 0 && result.TotalAmount == 0 {
		result.TotalAmount = math.Round(result.FuelAmount*result.PricePerLiter*100) / 100
	}
	if result.TotalAmount > 0 && result.FuelAmount > 0 && result.PricePerLiter == 0 {
		result.PricePerLiter = math.Round(result.TotalAmount/result.FuelAmount*1000) / 1000
	}

	return result
}

// totalCandidates returns every monetary amount on the line, skipping
// unit prices ("1,509 €/L" is not a total).
func totalCandidates(line string) []float64 {
	var amounts []float64
	for _, idx := range totalRe.FindAllStringSubmatchIndex(line, -1) {
		if strings.HasPrefix(line[idx[1]:], "/L") {
			continue
		}
		amounts = append(amounts, parseDecimal(line[idx[2]:idx[3]]))
	}
	return amounts
}

func normalizeDate(day, month, year string) string {
	if len(year) == 2 {
		year = "20" + year
	}
	return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// parseDecimal accepts comma or period as the fractional separator.
func parseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func cleanText(s string) string {
	return strings.TrimSpace(cleanRe.ReplaceAllString(s, ""))
}
