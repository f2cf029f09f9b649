package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// El filtro por nombre es una búsqueda de subcadena literal: los
// metacaracteres de LIKE en la entrada no deben actuar como comodines.
func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Apple", "Apple"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`a\b`, `a\\b`},
		{`%_\`, `\%\_\\`},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, escapeLike(tc.in), "entrada %q", tc.in)
	}
}
