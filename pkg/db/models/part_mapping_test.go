package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	base := decimal.RequireFromString("20.00")

	assert.True(t, EffectivePrice(base, decimal.NullDecimal{}).Equal(base))
	assert.True(t, EffectivePrice(base, decimal.NewNullDecimal(decimal.RequireFromString("15.50"))).Equal(decimal.RequireFromString("15.5")))
	assert.True(t, EffectivePrice(base, decimal.NewNullDecimal(decimal.Zero)).IsZero(), "a zero override still wins")
}
