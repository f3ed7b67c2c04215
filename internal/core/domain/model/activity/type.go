package activity

import (
	"fmt"

	"magicmover/internal/pkg/errs"
)

// Type discriminates activity log entries.
type Type string

const (
	TypeLoading        Type = "LOADING"
	TypeUnloading      Type = "UNLOADING"
	TypeMissionStarted Type = "MISSION_STARTED"
	TypeMissionEnded   Type = "MISSION_ENDED"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) Validate() error {
	switch t {
	case TypeLoading, TypeUnloading, TypeMissionStarted, TypeMissionEnded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"activity type",
			fmt.Errorf("%q is not a valid activity type", string(t)),
		)
	}
}

// ParseType accepts the upper-case names used in storage and in the API.
func ParseType(value string) (Type, error) {
	t := Type(value)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}
