package queries

import (
	"errors"

	"activation/internal/core/domain/model/order"
	"activation/internal/pkg/guard"
)

var ErrCountOrdersByStageQueryIsNotConstructed = errors.New(
	"CountOrdersByStageQuery must be created via NewCountOrdersByStageQuery constructor",
)

// CountOrdersByStageQuery counts every stored order by its current stage.
type CountOrdersByStageQuery struct {
	guard guard.ConstructorGuard
}

func NewCountOrdersByStageQuery() CountOrdersByStageQuery {
	return CountOrdersByStageQuery{guard: guard.NewConstructorGuard()}
}

func (q CountOrdersByStageQuery) Validate() error {
	return q.guard.Validate(ErrCountOrdersByStageQueryIsNotConstructed)
}

// CountOrdersByStageQueryResponse has an entry for every order.Stages value,
// zero included.
type CountOrdersByStageQueryResponse map[order.Stage]int64
