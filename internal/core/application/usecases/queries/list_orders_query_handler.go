package queries

import (
	"context"
	"database/sql"
	"strings"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the administration order list straight from
// the orders and credentials tables.
type ListOrdersQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

func NewListOrdersQueryHandler(db *gorm.DB, clock kernel.Clock) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, clock: clock}
}

// Handle returns Active orders before New ones, each group by first use,
// newest first. The order id breaks ties so the listing is stable.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT
			o.id,
			o.credential_id,
			c.template_name,
			o.status,
			o.phone_number,
			o.replacement_count,
			o.first_used_at,
			o.verification_code
		FROM orders o
		JOIN credentials c ON c.id = o.credential_id`)
	args := []any{}
	if query.CredentialID() != 0 {
		sb.WriteString(`
		WHERE o.credential_id = ?`)
		args = append(args, query.CredentialID())
	}
	sb.WriteString(`
		ORDER BY
			CASE o.status WHEN ? THEN 0 WHEN ? THEN 1 ELSE 2 END,
			o.first_used_at DESC,
			o.id`)
	args = append(args, int(order.Active), int(order.New))

	rows, err := h.db.WithContext(ctx).Raw(sb.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := h.clock.Now()
	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id           uuid.UUID
			templateName sql.NullString
			status       int
			phoneNumber  sql.NullString
			firstUsedAt  sql.NullTime
			code         sql.NullString
			resp         ListOrdersQueryResponse
		)
		err = rows.Scan(
			&id,
			&resp.CredentialID,
			&templateName,
			&status,
			&phoneNumber,
			&resp.ReplacementCount,
			&firstUsedAt,
			&code,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.TemplateName = templateName.String
		resp.Status = order.Status(status)
		resp.PhoneNumber = phoneNumber.String
		if firstUsedAt.Valid {
			usedAt := firstUsedAt.Time.UTC()
			resp.FirstUsedAt = &usedAt
		}
		resp.Stage = order.DeriveStage(resp.Status, code.Valid && code.String != "", resp.FirstUsedAt, now)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
