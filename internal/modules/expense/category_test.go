package expense

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryForVendor(t *testing.T) {
	cases := []struct {
		vendor string
		want   Category
	}{
		{"Agiva Sport SA", CategoryAgivaSport},
		{"AGIVA", CategoryAgivaSport},
		{"Pandacola", CategoryPandacola},
		{"panda", CategoryPandacola},
		{"Frais de logistique", CategoryLogistique},
		{"Douane CH", CategoryLogistique},
		{"Production textile", CategoryProduction},
		{"Campagne marketing", CategoryMarketing},
		{"Stand marché de Noël", CategoryStand},
		{"  pandacola  ", CategoryPandacola},
		{"Inconnu SARL", CategoryAutre},
		{"", CategoryAutre},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategoryForVendor(tc.vendor), "vendor %q", tc.vendor)
	}
}
