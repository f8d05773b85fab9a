package expense

import "strings"

// categoryRules map vendor keywords to categories. Order matters:
// the first matching rule wins, AUTRE is the fallback.
var categoryRules = []struct {
	keyword  string
	category Category
}{
	{"agiva", CategoryAgivaSport},
	{"sport", CategoryAgivaSport},
	{"logistique", CategoryLogistique},
	{"douane", CategoryLogistique},
	{"production", CategoryProduction},
	{"marketing", CategoryMarketing},
	{"stand", CategoryStand},
	{"pandacola", CategoryPandacola},
	{"panda", CategoryPandacola},
}

// CategoryForVendor guesses the expense category from the vendor
// string found in an imported spreadsheet.
func CategoryForVendor(vendor string) Category {
	v := strings.ToLower(strings.TrimSpace(vendor))
	for _, rule := range categoryRules {
		if strings.Contains(v, rule.keyword) {
			return rule.category
		}
	}
	return CategoryAutre
}
