package scoring

import (
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
)

// IsEligible reports whether a subject's age falls inside the test's
// normed range. Ineligibility is an ordinary displayable state, not an
// error: the surrounding workflow continues with other instruments.
func IsEligible(def *models.TestDefinition, age int) bool {
	return age >= def.AgeRange.Min && age <= def.AgeRange.Max
}
