package errors

import stderrors "errors"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Dice errors
	CodeDiceInvalidNotation Code = "DICE_INVALID_NOTATION"

	// Progression errors
	CodeProgressionNoPoints         Code = "PROGRESSION_NO_POINTS_AVAILABLE"
	CodeProgressionUnknownAttribute Code = "PROGRESSION_UNKNOWN_ATTRIBUTE"
	CodeProgressionAttributeAtCap   Code = "PROGRESSION_ATTRIBUTE_OUT_OF_RANGE"
	CodeProgressionUnknownResource  Code = "PROGRESSION_UNKNOWN_RESOURCE"

	// Turn errors
	CodeTurnInProgress    Code = "TURN_IN_PROGRESS"
	CodeTurnCharacterDead Code = "TURN_CHARACTER_DEAD"
	CodeTurnNarrative     Code = "TURN_NARRATIVE_FAILED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}
