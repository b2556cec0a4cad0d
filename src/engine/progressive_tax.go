package engine

import "github.com/username/taxmate/backend/src/models"

// PersonalIncomeBrackets are the KRA 2025 annual PAYE bands. The final
// bracket has no width: everything above 9,600,000 is taxed at 35%.
var PersonalIncomeBrackets = []models.TaxBracket{
	{Width: 288000, Rate: 0.10},
	{Width: 100000, Rate: 0.25},
	{Width: 5612000, Rate: 0.30},
	{Width: 3600000, Rate: 0.325},
	{Width: 0, Rate: 0.35},
}

// PersonalRelief is the flat annual relief (KES 28,800).
const PersonalRelief = 28800.0

// reliefBracketIndex is the first bracket from which the relief kicks in.
// Income settled entirely within the first two brackets returns its partial
// tax with no relief subtracted. This asymmetry mirrors the reference
// policy verbatim; see the bracket boundary tests before "fixing" it.
const reliefBracketIndex = 2

// ProgressiveTax walks the brackets in ascending order, taxing up to each
// bracket's width at its rate and rolling the remainder forward. The
// personal relief applies only once income reaches the third or a later
// bracket, and the result is floored at zero.
func ProgressiveTax(annualIncome float64, brackets []models.TaxBracket, relief float64) float64 {
	if annualIncome <= 0 || len(brackets) == 0 {
		return 0
	}

	var tax float64
	remaining := annualIncome
	for i, b := range brackets {
		unbounded := b.Width <= 0 || i == len(brackets)-1
		if !unbounded && remaining > b.Width {
			tax += b.Width * b.Rate
			remaining -= b.Width
			continue
		}

		tax += remaining * b.Rate
		if i >= reliefBracketIndex {
			tax -= relief
		}
		if tax < 0 {
			tax = 0
		}
		return tax
	}
	return tax
}
