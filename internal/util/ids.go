package util

import (
	"strings"

	"github.com/google/uuid"
)

// PlanIDPrefix marks identifiers issued for action plans.
const PlanIDPrefix = "ns-"

// GenerateID returns prefix followed by a random (version 4) UUID.
func GenerateID(prefix string) string {
	return prefix + uuid.NewString()
}

// GeneratePlanID generates a unique plan ID with the "ns-" prefix.
func GeneratePlanID() string {
	return GenerateID(PlanIDPrefix)
}

// IsPlanID reports whether id looks like an identifier from GeneratePlanID.
func IsPlanID(id string) bool {
	rest, ok := strings.CutPrefix(id, PlanIDPrefix)
	if !ok {
		return false
	}
	_, err := uuid.Parse(rest)
	return err == nil
}
