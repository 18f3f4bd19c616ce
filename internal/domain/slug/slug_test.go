package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"My Shop", "my-shop"},
		{"my-shop", "my-shop"},
		{"MY  SHOP", "my--shop"},
		{"Boutique", "boutique"},
		{"", ""},
	}

	for _, c := range cases {
		require.Equal(t, c.want, Derive(c.label), "label %q", c.label)
	}
}
