package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"
	"activation/internal/pkg/errs"

	"github.com/nyaruka/phonenumbers"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

func NewGetOrderQueryHandler(db *gorm.DB, clock kernel.Clock) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, clock: clock}
}

// Handle returns the order joined with its credential template, or an
// errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.status,
			o.phone_number,
			o.first_used_at,
			o.replacement_count,
			o.verification_code,
			c.template_name,
			c.product,
			c.country_display_name,
			c.country_area_code
		FROM orders o
		JOIN credentials c ON c.id = o.credential_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		status           int
		phoneNumber      sql.NullString
		firstUsedAt      sql.NullTime
		verificationCode sql.NullString
		templateName     sql.NullString
		displayName      sql.NullString
		areaCode         sql.NullString
		resp             GetOrderQueryResponse
	)
	err := row.Scan(
		&status,
		&phoneNumber,
		&firstUsedAt,
		&resp.ReplacementCount,
		&verificationCode,
		&templateName,
		&resp.Product,
		&displayName,
		&areaCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID = query.OrderID()
	resp.Status = order.Status(status)
	resp.PhoneNumber = phoneNumber.String
	resp.TemplateName = templateName.String
	resp.CountryDisplayName = displayName.String
	resp.CountryAreaCode = areaCode.String
	resp.PhoneRegion = phoneRegion(phoneNumber.String)
	resp.HasCode = verificationCode.Valid && verificationCode.String != ""
	resp.RemainingReplacements = max(order.MaxReplacements-resp.ReplacementCount, 0)
	if firstUsedAt.Valid {
		usedAt := firstUsedAt.Time.UTC()
		expiresAt := usedAt.Add(order.ActivationWindow)
		resp.FirstUsedAt = &usedAt
		resp.ExpiresAt = &expiresAt
	}
	resp.Stage = order.DeriveStage(resp.Status, resp.HasCode, resp.FirstUsedAt, h.clock.Now())

	return resp, nil
}

// phoneRegion resolves the region of a provider number. Providers return the
// number in international form with or without the leading plus.
func phoneRegion(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	num, err := phonenumbers.Parse(phone, "")
	if err != nil {
		return ""
	}
	return phonenumbers.GetRegionCodeForNumber(num)
}

