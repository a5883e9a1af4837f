package order

import (
	"errors"
	"strings"

	"activation/internal/pkg/errs"
)

// Lease is a phone number rented from the provider together with the
// provider-side id needed to poll it for a code.
type Lease struct {
	phoneNumber string
	externalID  string
}

// NewLease validates both parts; a provider answer missing either is unusable.
func NewLease(phoneNumber, externalID string) (Lease, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	externalID = strings.TrimSpace(externalID)

	var phoneErr, idErr error
	if phoneNumber == "" {
		phoneErr = errs.NewValueIsRequiredError("phoneNumber")
	}
	if externalID == "" {
		idErr = errs.NewValueIsRequiredError("externalID")
	}
	if err := errors.Join(phoneErr, idErr); err != nil {
		return Lease{}, err
	}

	return Lease{phoneNumber: phoneNumber, externalID: externalID}, nil
}

func (l Lease) PhoneNumber() string {
	return l.phoneNumber
}

func (l Lease) ExternalID() string {
	return l.externalID
}

// IsEmpty reports whether l is the zero Lease.
func (l Lease) IsEmpty() bool {
	return l.phoneNumber == "" && l.externalID == ""
}
