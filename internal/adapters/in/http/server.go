package http

import (
	"log/slog"
	"net/http"
	"strings"

	"activation/internal/api/servers"
	"activation/internal/core/application/usecases/commands"
	"activation/internal/core/application/usecases/queries"
	"activation/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements servers.ServerInterface on top of the order use cases.
type Server struct {
	// Command handlers
	activateHandler    commands.ActivateOrderCommandHandler
	replacementHandler commands.RequestReplacementCommandHandler
	pollCodeHandler    commands.PollCodeCommandHandler
	resetCodeHandler   commands.ResetCodeCommandHandler
	createHandler      commands.CreateOrdersCommandHandler
	deleteHandler      commands.DeleteOrdersCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	publicBaseURL string
	logger        *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer wires the use cases into the HTTP surface. publicBaseURL is the
// origin activation links are built on; links are omitted when it is empty.
func NewServer(
	activateHandler commands.ActivateOrderCommandHandler,
	replacementHandler commands.RequestReplacementCommandHandler,
	pollCodeHandler commands.PollCodeCommandHandler,
	resetCodeHandler commands.ResetCodeCommandHandler,
	createHandler commands.CreateOrdersCommandHandler,
	deleteHandler commands.DeleteOrdersCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	publicBaseURL string,
	logger *slog.Logger,
) *Server {
	return &Server{
		activateHandler:    activateHandler,
		replacementHandler: replacementHandler,
		pollCodeHandler:    pollCodeHandler,
		resetCodeHandler:   resetCodeHandler,
		createHandler:      createHandler,
		deleteHandler:      deleteHandler,
		getOrderHandler:    getOrderHandler,
		listOrdersHandler:  listOrdersHandler,
		publicBaseURL:      strings.TrimRight(publicBaseURL, "/"),
		logger:             logger.With("component", "http_server"),
	}
}

// ActivateOrder handles POST /api/v1/orders/{orderId}/activate.
func (s *Server) ActivateOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewActivateOrderCommand(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	res, err := s.activateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.ActivateOrderResponse{
		PhoneNumber:      res.PhoneNumber,
		ReplacementCount: res.ReplacementCount,
	})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.OrderView{
		Id:                    view.ID.Bytes(),
		Status:                strings.ToLower(view.Status.String()),
		Stage:                 view.Stage.String(),
		PhoneNumber:           optional(view.PhoneNumber),
		PhoneRegion:           optional(view.PhoneRegion),
		ReplacementCount:      view.ReplacementCount,
		RemainingReplacements: view.RemainingReplacements,
		FirstUsedAt:           view.FirstUsedAt,
		ExpiresAt:             view.ExpiresAt,
		HasCode:               view.HasCode,
		TemplateName:          view.TemplateName,
		Product:               view.Product,
		CountryDisplayName:    optional(view.CountryDisplayName),
		CountryAreaCode:       optional(view.CountryAreaCode),
	})
}

// RequestReplacement handles POST /api/v1/orders/{orderId}/replacement.
func (s *Server) RequestReplacement(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewRequestReplacementCommand(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	res, err := s.replacementHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.ReplacementResponse{
		PhoneNumber:      res.PhoneNumber,
		ReplacementCount: res.ReplacementCount,
	})
}

// PollCode handles GET /api/v1/orders/{orderId}/code.
func (s *Server) PollCode(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewPollCodeCommand(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	res, err := s.pollCodeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := servers.PollCodeResponse{Found: res.Found}
	switch {
	case res.Found:
		code := res.Code
		response.Code = &code
	case res.Expired:
		expired := true
		response.Expired = &expired
	}
	return ctx.JSON(http.StatusOK, response)
}

// ResetCode handles POST /api/v1/orders/{orderId}/code/reset.
func (s *Server) ResetCode(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewResetCodeCommand(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.resetCodeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.ResetCodeResponse{Success: true})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	var credentialID int64
	if params.CredentialId != nil {
		credentialID = *params.CredentialId
	}
	query, err := queries.NewListOrdersQuery(credentialID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := servers.OrderList{Orders: make([]servers.OrderSummary, len(orders))}
	for i, o := range orders {
		response.Orders[i] = servers.OrderSummary{
			Id:               o.ID.Bytes(),
			CredentialId:     o.CredentialID,
			TemplateName:     optional(o.TemplateName),
			Status:           strings.ToLower(o.Status.String()),
			Stage:            o.Stage.String(),
			PhoneNumber:      optional(o.PhoneNumber),
			ReplacementCount: o.ReplacementCount,
			FirstUsedAt:      o.FirstUsedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrders handles POST /api/v1/orders.
func (s *Server) CreateOrders(ctx echo.Context) error {
	var body servers.CreateOrdersJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateOrdersCommand(body.CredentialId, body.Count)
	if err != nil {
		return s.writeError(ctx, err)
	}

	ids, err := s.createHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := servers.CreateOrdersResponse{OrderIds: make([]openapi_types.UUID, len(ids))}
	for i, id := range ids {
		response.OrderIds[i] = id.Bytes()
		if s.publicBaseURL != "" {
			response.Links = append(response.Links, s.publicBaseURL+"/order/"+id.String())
		}
	}

	return ctx.JSON(http.StatusCreated, response)
}

// DeleteOrders handles POST /api/v1/orders/delete.
func (s *Server) DeleteOrders(ctx echo.Context) error {
	var body servers.DeleteOrdersJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ids := make([]kernel.UUID, 0, len(body.OrderIds))
	for _, raw := range body.OrderIds {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return s.writeError(ctx, err)
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewDeleteOrdersCommand(ids)
	if err != nil {
		return s.writeError(ctx, err)
	}

	deleted, err := s.deleteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.DeleteOrdersResponse{Deleted: deleted})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
