package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/pkg/errs"
)

const (
	// MaxReplacements bounds how many times the lease of one order can be swapped.
	MaxReplacements = 3
	// ActivationWindow is how long a code may still arrive after a number was (re)assigned.
	ActivationWindow = 20 * time.Minute
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrForbidden marks policy violations. They are permanent for the current
	// order state; retrying without a state change cannot succeed.
	ErrForbidden = errors.New("operation is not allowed")

	ErrCodeAlreadyReceived     = fmt.Errorf("%w: verification code already received", ErrForbidden)
	ErrReplacementLimitReached = fmt.Errorf("%w: replacement limit reached", ErrForbidden)
	ErrOrderNotActive          = fmt.Errorf("%w: order has no phone number yet", ErrForbidden)

	// ErrOrderAlreadyActive is returned by Activate on an order that already holds a lease.
	ErrOrderAlreadyActive = errors.New("order is already active")
)

// Order is one activation link. It starts New, becomes Active when the first
// phone number is leased and then stays Active; replacements swap the lease
// in place.
//
// Invariants:
//   - replacementCount is within [0, MaxReplacements] and never decreases
//   - a lease is held exactly while the order is Active
//   - a verification code is only held while the order is Active
//   - id and credentialID never change
//
// version is the revision the order was read at. Stores use it as the
// compare-and-set token and write version+1 on success.
type Order struct {
	id               kernel.UUID
	credentialID     int64
	status           Status
	lease            Lease
	firstUsedAt      *time.Time
	replacementCount int
	verificationCode string
	version          int64

	isConstructed bool
}

// Snapshot carries every stored field of an Order across the persistence boundary.
type Snapshot struct {
	ID               kernel.UUID
	CredentialID     int64
	Status           Status
	PhoneNumber      string
	ExternalID       string
	FirstUsedAt      *time.Time
	ReplacementCount int
	VerificationCode string
	Version          int64
}

// NewOrder creates an order in the New status bound to a provider credential.
func NewOrder(id kernel.UUID, credentialID int64) (*Order, error) {
	o := &Order{
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCredentialID(credentialID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage and rejects rows that break an invariant.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:           s.Status,
		firstUsedAt:      s.FirstUsedAt,
		replacementCount: s.ReplacementCount,
		verificationCode: strings.TrimSpace(s.VerificationCode),
		version:          s.Version,
		isConstructed:    true,
	}

	var leaseErr error
	if s.PhoneNumber != "" || s.ExternalID != "" {
		o.lease, leaseErr = NewLease(s.PhoneNumber, s.ExternalID)
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCredentialID(s.CredentialID),
		s.Status.Validate(),
		leaseErr,
		o.validateInvariants(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CredentialID() int64 {
	return o.credentialID
}

func (o *Order) Status() Status {
	return o.status
}

// PhoneNumber is empty until the order is activated.
func (o *Order) PhoneNumber() string {
	return o.lease.PhoneNumber()
}

// ExternalID is the provider handle of the current lease, empty until activation.
func (o *Order) ExternalID() string {
	return o.lease.ExternalID()
}

func (o *Order) FirstUsedAt() *time.Time {
	return o.firstUsedAt
}

func (o *Order) ReplacementCount() int {
	return o.replacementCount
}

func (o *Order) RemainingReplacements() int {
	return MaxReplacements - o.replacementCount
}

func (o *Order) VerificationCode() string {
	return o.verificationCode
}

func (o *Order) HasCode() bool {
	return o.verificationCode != ""
}

func (o *Order) Version() int64 {
	return o.version
}

// ExpiresAt is the end of the current activation window, nil for New orders.
func (o *Order) ExpiresAt() *time.Time {
	if o.firstUsedAt == nil {
		return nil
	}
	t := o.firstUsedAt.Add(ActivationWindow)
	return &t
}

// Stage derives the caller-visible state at now.
func (o *Order) Stage(now time.Time) Stage {
	return DeriveStage(o.status, o.HasCode(), o.firstUsedAt, now)
}

// Snapshot exports the stored fields.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:               o.id,
		CredentialID:     o.credentialID,
		Status:           o.status,
		PhoneNumber:      o.lease.PhoneNumber(),
		ExternalID:       o.lease.ExternalID(),
		FirstUsedAt:      o.firstUsedAt,
		ReplacementCount: o.replacementCount,
		VerificationCode: o.verificationCode,
		Version:          o.version,
	}
}

// Activate assigns the first lease and opens the activation window at now.
// It returns ErrOrderAlreadyActive when a lease is already held.
func (o *Order) Activate(lease Lease, now time.Time) error {
	if lease.IsEmpty() {
		return errs.NewValueIsRequiredError("lease")
	}

	newStatus, err := o.status.Activate()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.lease = lease
	o.verificationCode = ""
	o.firstUsedAt = &now
	return nil
}

// CanReplace reports whether a new lease may be requested, without side effects.
// A received code blocks replacement regardless of the counter.
func (o *Order) CanReplace() error {
	if o.status != Active {
		return ErrOrderNotActive
	}
	if o.HasCode() {
		return ErrCodeAlreadyReceived
	}
	if o.replacementCount >= MaxReplacements {
		return ErrReplacementLimitReached
	}
	return nil
}

// Replace swaps the lease, clears the code, bumps the counter and restarts the window.
func (o *Order) Replace(lease Lease, now time.Time) error {
	if err := o.CanReplace(); err != nil {
		return err
	}
	if lease.IsEmpty() {
		return errs.NewValueIsRequiredError("lease")
	}

	o.lease = lease
	o.verificationCode = ""
	o.replacementCount++
	o.firstUsedAt = &now
	return nil
}

// ReceiveCode stores the first code delivered for the current lease.
func (o *Order) ReceiveCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("verificationCode")
	}
	if o.status != Active {
		return ErrOrderNotActive
	}
	if o.HasCode() {
		return ErrCodeAlreadyReceived
	}

	o.verificationCode = code
	return nil
}

// ResetCode forgets the received code so the caller can poll again. The lease,
// the counter and the window are left as they are.
func (o *Order) ResetCode() {
	o.verificationCode = ""
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCredentialID(credentialID int64) error {
	if credentialID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"credentialID",
			fmt.Errorf("%d is not greater than 0", credentialID),
		)
	}
	o.credentialID = credentialID
	return nil
}

func (o *Order) validateInvariants() error {
	var countErr, leaseErr, windowErr, codeErr, versionErr error

	if o.replacementCount < 0 || o.replacementCount > MaxReplacements {
		countErr = errs.NewValueIsOutOfRangeError("replacementCount", o.replacementCount, 0, MaxReplacements)
	}
	if o.status.Validate() == nil {
		leaseErr = o.status.ValidateCanHaveLease(!o.lease.IsEmpty())
	}
	if o.status == Active && o.firstUsedAt == nil {
		windowErr = errs.NewValueIsRequiredError("firstUsedAt")
	}
	if o.HasCode() && o.status != Active {
		codeErr = errs.NewValueIsInvalidErrorWithCause(
			"verificationCode",
			fmt.Errorf("%s orders cannot hold a code", o.status),
		)
	}
	if o.version < 0 {
		versionErr = errs.NewValueIsOutOfRangeError("version", o.version, 0, "unbounded")
	}

	return errors.Join(countErr, leaseErr, windowErr, codeErr, versionErr)
}
