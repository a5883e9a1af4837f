// Package order models an activation link and its phone-number lease.
//
// The package includes:
//   - Order: the aggregate root holding the lease, the replacement counter and the received code
//   - Status: the stored lifecycle state (New, Active)
//   - Stage: the state derived at read time from status, code presence and the activation window
//   - Lease: the phone number and provider handle returned by the SMS provider
//
// Key business rules:
//   - An order is activated once; reopening an active link returns the same number
//   - A lease can be replaced at most MaxReplacements times, and never after a code arrived
//   - Every (re)activation restarts the ActivationWindow
//   - A received code is kept until it is explicitly reset
//
// All methods are pure; persistence and provider calls live in the command handlers.
package order
