package link_test

import (
	"testing"

	"github.com/chotalink/chotalink/internal/link"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAlias(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "PROMO", want: "promo"},
		{name: "collapses whitespace runs to one dash", input: "promo   sale", want: "promo-sale"},
		{name: "strips invalid characters", input: "Promo Sale!", want: "promo-sale"},
		{name: "keeps digits and dashes", input: "q4-2026", want: "q4-2026"},
		{name: "trims surrounding whitespace", input: "  promo  ", want: "promo"},
		{name: "empty when nothing usable remains", input: "!!!", want: ""},
		{name: "empty input stays empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, link.NormalizeAlias(tt.input))
		})
	}
}
