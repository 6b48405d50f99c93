package model_test

import (
	"testing"

	"github.com/quepia/sistema-lafuga/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiferenciaPorcentual(t *testing.T) {
	cases := []struct {
		name   string
		menor  float64
		mayor  float64
		quiero string
	}{
		{"margen tipico", 1850, 1520, "21.71"}, // (1850-1520)/1520*100 = 21.7105... → 21.71
		{"sin diferencia", 1000, 1000, "0"},
		{"menor por debajo del mayor", 900, 1000, "-10"},
		{"mayor en cero", 1850, 0, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &model.Producto{
				PrecioMenor: decimal.NewFromFloat(tc.menor),
				PrecioMayor: decimal.NewFromFloat(tc.mayor),
			}
			assert.Equal(t, tc.quiero, p.DiferenciaPorcentual().String())
		})
	}
}
