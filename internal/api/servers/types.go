// Package servers holds the HTTP contract of the service: the request and
// response bodies, the ServerInterface the echo adapter implements, and the
// embedded OpenAPI document the bodies are validated against.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// OrderId defines model for the orderId path parameter.
type OrderId = openapi_types.UUID

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ActivateOrderResponse defines model for ActivateOrderResponse.
type ActivateOrderResponse struct {
	PhoneNumber      string `json:"phoneNumber"`
	ReplacementCount int    `json:"replacementCount"`
}

// ReplacementResponse defines model for ReplacementResponse.
type ReplacementResponse struct {
	PhoneNumber      string `json:"phoneNumber"`
	ReplacementCount int    `json:"replacementCount"`
}

// PollCodeResponse defines model for PollCodeResponse.
type PollCodeResponse struct {
	Found   bool    `json:"found"`
	Code    *string `json:"code,omitempty"`
	Expired *bool   `json:"expired,omitempty"`
}

// ResetCodeResponse defines model for ResetCodeResponse.
type ResetCodeResponse struct {
	Success bool `json:"success"`
}

// OrderView defines model for OrderView.
type OrderView struct {
	Id                    openapi_types.UUID `json:"id"`
	Status                string             `json:"status"`
	Stage                 string             `json:"stage"`
	PhoneNumber           *string            `json:"phoneNumber,omitempty"`
	PhoneRegion           *string            `json:"phoneRegion,omitempty"`
	ReplacementCount      int                `json:"replacementCount"`
	RemainingReplacements int                `json:"remainingReplacements"`
	FirstUsedAt           *time.Time         `json:"firstUsedAt,omitempty"`
	ExpiresAt             *time.Time         `json:"expiresAt,omitempty"`
	HasCode               bool               `json:"hasCode"`
	TemplateName          string             `json:"templateName"`
	Product               string             `json:"product"`
	CountryDisplayName    *string            `json:"countryDisplayName,omitempty"`
	CountryAreaCode       *string            `json:"countryAreaCode,omitempty"`
}

// OrderSummary defines model for OrderSummary.
type OrderSummary struct {
	Id               openapi_types.UUID `json:"id"`
	CredentialId     int64              `json:"credentialId"`
	TemplateName     *string            `json:"templateName,omitempty"`
	Status           string             `json:"status"`
	Stage            string             `json:"stage"`
	PhoneNumber      *string            `json:"phoneNumber,omitempty"`
	ReplacementCount int                `json:"replacementCount"`
	FirstUsedAt      *time.Time         `json:"firstUsedAt,omitempty"`
}

// OrderList defines model for OrderList.
type OrderList struct {
	Orders []OrderSummary `json:"orders"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	CredentialId *int64 `form:"credentialId,omitempty" json:"credentialId,omitempty"`
}

// CreateOrdersRequest defines model for CreateOrdersRequest.
type CreateOrdersRequest struct {
	CredentialId int64 `json:"credentialId"`
	Count        int   `json:"count"`
}

// CreateOrdersResponse defines model for CreateOrdersResponse.
type CreateOrdersResponse struct {
	OrderIds []openapi_types.UUID `json:"orderIds"`
	Links    []string             `json:"links,omitempty"`
}

// DeleteOrdersRequest defines model for DeleteOrdersRequest.
type DeleteOrdersRequest struct {
	OrderIds []openapi_types.UUID `json:"orderIds"`
}

// DeleteOrdersResponse defines model for DeleteOrdersResponse.
type DeleteOrdersResponse struct {
	Deleted int64 `json:"deleted"`
}

// CreateOrdersJSONRequestBody defines body for CreateOrders for application/json ContentType.
type CreateOrdersJSONRequestBody = CreateOrdersRequest

// DeleteOrdersJSONRequestBody defines body for DeleteOrders for application/json ContentType.
type DeleteOrdersJSONRequestBody = DeleteOrdersRequest
