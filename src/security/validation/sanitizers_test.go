package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeForFormulaInjection(t *testing.T) {
	assert.Equal(t, "'=SUM(A1)", SanitizeForFormulaInjection("=SUM(A1)"))
	assert.Equal(t, "'+1234", SanitizeForFormulaInjection("  +1234"))
	assert.Equal(t, "Fuel Station", SanitizeForFormulaInjection("Fuel Station"))
	assert.Equal(t, "", SanitizeForFormulaInjection("   "))
}

func TestSanitizeDisplayString(t *testing.T) {
	assert.Equal(t, "Acme Ltd", SanitizeDisplayString("  Acme\x00 Ltd\n"))
	assert.Equal(t, "Plain vendor", SanitizeDisplayString("Plain vendor"))
}
