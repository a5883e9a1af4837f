package queries

import (
	"context"
	"database/sql"
	"time"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// CountOrdersByStageQueryHandler derives stages in Go with order.DeriveStage
// so that the expiry rule lives in one place and the query stays portable
// between PostgreSQL and SQLite.
type CountOrdersByStageQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

func NewCountOrdersByStageQueryHandler(db *gorm.DB, clock kernel.Clock) CountOrdersByStageQueryHandler {
	return CountOrdersByStageQueryHandler{db: db, clock: clock}
}

func (h CountOrdersByStageQueryHandler) Handle(
	ctx context.Context,
	query CountOrdersByStageQuery,
) (CountOrdersByStageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts := make(CountOrdersByStageQueryResponse, len(order.Stages))
	for _, s := range order.Stages {
		counts[s] = 0
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			verification_code,
			first_used_at
		FROM orders
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := h.clock.Now()
	for rows.Next() {
		var (
			status      int
			code        sql.NullString
			firstUsedAt sql.NullTime
		)
		if err = rows.Scan(&status, &code, &firstUsedAt); err != nil {
			return nil, err
		}

		var usedAt *time.Time
		if firstUsedAt.Valid {
			usedAt = &firstUsedAt.Time
		}
		stage := order.DeriveStage(order.Status(status), code.Valid && code.String != "", usedAt, now)
		counts[stage]++
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
