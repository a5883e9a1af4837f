// Package kernel holds the primitives shared by the domain model: the UUID
// value object used for order ids and the Clock used to evaluate expiry.
package kernel
