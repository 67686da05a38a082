package susceptibility

import "github.com/astpanel/isosel/internal/models"

// DTest derives the inducible clindamycin resistance outcome. A resistant
// D-test is only a true positive when clindamycin tested susceptible and
// erythromycin resistant.
func DTest(d, clindamycin, erythromycin string) models.Tag {
	switch d {
	case models.CategoryResistant:
		if clindamycin == models.CategorySusceptible && erythromycin == models.CategoryResistant {
			return models.TagPositive
		}
		return models.TagNegative
	case models.CategorySusceptible:
		return models.TagNegative
	default:
		return models.TagIndeterminate
	}
}
