package building

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUnitConversions(t *testing.T) {
	assert.True(t, decimal.NewFromFloat(3412).Equal(KWHAsKBTU(decimal.NewFromInt(1000))))
	assert.True(t, decimal.NewFromInt(50).Equal(KBTUAsTherms(decimal.NewFromInt(5000))))
	assert.True(t, decimal.NewFromInt(10).Equal(KBTUAsGallonsFuelOil(decimal.NewFromInt(1385))))
	assert.True(t, decimal.NewFromInt(2).Equal(KBTUAsMlbsSteam(decimal.NewFromInt(2388))))
}
