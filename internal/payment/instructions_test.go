package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInstructions(t *testing.T) {
	t.Run("ReturnsTemplateForKnownMethod", func(t *testing.T) {
		for _, method := range []string{MethodCOD, MethodTransfer, MethodEWallet} {
			instructions := GetInstructions(method)
			assert.NotEmpty(t, instructions, method)

			found := false
			for _, instr := range instructions {
				if strings.Contains(instr, "{{amount}}") {
					found = true
					break
				}
			}
			assert.True(t, found, "%s instructions should mention the amount", method)
		}
	})

	t.Run("ReturnsDefaultForUnknown", func(t *testing.T) {
		instructions := GetInstructions("crypto")
		assert.Len(t, instructions, 1)
	})
}

func TestInjectVariables(t *testing.T) {
	t.Run("ReplacesPlaceholders", func(t *testing.T) {
		template := []string{"Transfer {{amount}} dengan berita {{order_id}}"}
		vars := InstructionVars{
			"amount":   "Rp100.000",
			"order_id": "ORD-001",
		}

		result := InjectVariables(template, vars)

		assert.Equal(t, []string{"Transfer Rp100.000 dengan berita ORD-001"}, result)
	})

	t.Run("LeavesMissingVariables", func(t *testing.T) {
		result := InjectVariables([]string{"Bayar {{amount}}"}, InstructionVars{})
		assert.Equal(t, "Bayar {{amount}}", result[0])
	})
}

func TestInstructions(t *testing.T) {
	steps := Instructions(MethodCOD, "ORD-1", 100000)
	assert.Contains(t, steps[1], "Rp100.000")
	assert.NotContains(t, strings.Join(steps, " "), "{{")
}

func TestFormatRupiah(t *testing.T) {
	cases := map[int64]string{
		0:       "Rp0",
		999:     "Rp999",
		15000:   "Rp15.000",
		100000:  "Rp100.000",
		1250000: "Rp1.250.000",
		-25000:  "-Rp25.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatRupiah(in))
	}
}
