// Package commands implements the order lifecycle: activation, replacement,
// code polling and reset, plus the bulk create/delete used by administration.
// Each operation is a command validated at construction and a handler that
// reads the order, decides the transition, calls the provider when needed and
// writes back with a single compare-and-set.
package commands

import (
	"context"

	"activation/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CredentialRepoFactory interface {
		CredentialRepository() ports.CredentialRepository
	}

	// OrderUoW scopes one lifecycle operation. Handlers that call the provider
	// do not Begin a transaction: the provider call may take seconds, and the
	// compare-and-set write is atomic on its own.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		CredentialRepoFactory
	}

	// OrderUoWFactory creates a fresh unit of work per call.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
