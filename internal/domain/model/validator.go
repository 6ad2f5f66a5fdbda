// Package model holds the boundary models accepted and returned by the services.
// Every model checks its own invariants through Validate.
package model

import (
	"time"

	"github.com/sangkips/trademarket-api/pkg/apperror"
)

// Validator is implemented by every model that guards a mutation
type Validator interface {
	Validate() error
}

// Validate runs the rule set of v. A nil model always fails.
func Validate(v Validator) error {
	if v == nil {
		return apperror.NewNullModelError("Model")
	}
	return v.Validate()
}

// Birth dates accepted for customers, inclusive.
var (
	MinBirthDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxBirthDate = time.Date(2005, time.January, 1, 23, 59, 59, 0, time.UTC)
)
