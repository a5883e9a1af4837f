package order

import (
	"fmt"

	"activation/internal/pkg/errs"
)

// Status is the lifecycle state that is persisted for an order.
//
//	New ──Activate──> Active ──Replace──┐
//	                    ^───────────────┘
//
// Everything finer grained (waiting for a code, code received, expired) is a
// Stage and is derived, never stored.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	// New orders have no phone number yet.
	New
	// Active orders hold a phone-number lease.
	Active
)

func (s Status) String() string {
	switch s {
	case New:
		return "New"
	case Active:
		return "Active"
	default:
		return "Unknown"
	}
}

// Validate rejects Unknown and any value read from storage that is out of range.
func (s Status) Validate() error {
	if s != New && s != Active {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// Activate returns the status after a first number assignment.
func (s Status) Activate() (Status, error) {
	switch s {
	case New:
		return Active, nil
	case Active:
		return Unknown, ErrOrderAlreadyActive
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to activate", s),
		)
	}
}

// ValidateCanHaveLease checks that a lease is present exactly when the order is Active.
func (s Status) ValidateCanHaveLease(hasLease bool) error {
	if hasLease && s != Active {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to hold a phone number", s),
		)
	}
	if !hasLease && s == Active {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status without a phone number", s),
		)
	}
	return nil
}
