// Package http exposes the transition engine over a REST API. Handlers
// translate between the wire format and commands/queries, and map the
// rejection taxonomy onto HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"stateflow/internal/core/application/usecases/commands"
	"stateflow/internal/core/application/usecases/queries"
	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/model/kernel"
	"stateflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createItemHandler        commands.CreateItemCommandHandler
	attemptTransitionHandler commands.AttemptTransitionCommandHandler

	getItemHandler       queries.GetItemQueryHandler
	getAuditTrailHandler queries.GetAuditTrailQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createItemHandler commands.CreateItemCommandHandler,
	attemptTransitionHandler commands.AttemptTransitionCommandHandler,
	getItemHandler queries.GetItemQueryHandler,
	getAuditTrailHandler queries.GetAuditTrailQueryHandler,
) *Server {
	return &Server{
		createItemHandler:        createItemHandler,
		attemptTransitionHandler: attemptTransitionHandler,
		getItemHandler:           getItemHandler,
		getAuditTrailHandler:     getAuditTrailHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/items", s.CreateItem)
	api.GET("/items/:id", s.GetItem)
	api.POST("/items/:id/transitions", s.AttemptTransition)
	api.GET("/items/:id/audit", s.GetAuditTrail)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateItem handles POST /api/v1/items - registers a new tracked item in
// the catalog's initial state.
func (s *Server) CreateItem(ctx echo.Context) error {
	var request CreateItemRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	itemID := kernel.NewUUID()
	if request.ID != "" {
		parsed, err := kernel.UUIDFromString(request.ID)
		if err != nil {
			return badRequest(ctx, "Invalid item ID: "+err.Error())
		}
		itemID = parsed
	}

	cmd, err := commands.NewCreateItemCommand(itemID)
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}

	if err = s.createItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateItemResponse{ID: itemID.String()})
}

// AttemptTransition handles POST /api/v1/items/:id/transitions - attempts to
// move an item into a target state.
func (s *Server) AttemptTransition(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid item ID: "+err.Error())
	}

	var request TransitionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAttemptTransitionCommand(
		itemID, item.State(request.Target), request.Reason, request.Actor,
	)
	if err != nil {
		return badRequest(ctx, "Invalid transition request: "+err.Error())
	}

	result, err := s.attemptTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		ItemID:      result.ItemID.String(),
		FromState:   result.FromState.String(),
		ToState:     result.ToState.String(),
		Version:     result.Version,
		CommittedAt: result.CommittedAt,
	})
}

// GetItem handles GET /api/v1/items/:id - retrieves one item with its
// transition history.
func (s *Server) GetItem(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid item ID: "+err.Error())
	}

	query, err := queries.NewGetItemQuery(itemID)
	if err != nil {
		return badRequest(ctx, "Invalid item ID: "+err.Error())
	}

	result, err := s.getItemHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	history := make([]HistoryEntryResponse, len(result.History))
	for i, entry := range result.History {
		history[i] = HistoryEntryResponse{
			From:       entry.From,
			To:         entry.To,
			Reason:     entry.Reason,
			Actor:      entry.Actor,
			OccurredAt: entry.OccurredAt,
		}
	}

	return ctx.JSON(http.StatusOK, ItemResponse{
		ID:           result.ID.String(),
		CurrentState: result.CurrentState,
		Version:      result.Version,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
		History:      history,
	})
}

// GetAuditTrail handles GET /api/v1/items/:id/audit - retrieves every
// recorded transition attempt for one item.
func (s *Server) GetAuditTrail(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid item ID: "+err.Error())
	}

	query, err := queries.NewGetAuditTrailQuery(itemID)
	if err != nil {
		return badRequest(ctx, "Invalid item ID: "+err.Error())
	}

	entries, err := s.getAuditTrailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]AuditEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = AuditEntryResponse{
			ItemID:     entry.ItemID.String(),
			FromState:  entry.FromState,
			ToState:    entry.ToState,
			Outcome:    entry.Outcome,
			Violations: entry.Violations,
			Actor:      entry.Actor,
			RecordedAt: entry.RecordedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates the rejection taxonomy into HTTP status codes:
// missing items are 404, lost races and illegal edges are 409, rule and
// timeout rejections are 422, and anything else is 500.
func mapError(ctx echo.Context, err error) error {
	var illegal *item.IllegalTransitionError
	if errors.As(err, &illegal) {
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:       http.StatusConflict,
			ReasonCode: illegal.Code(),
			Message:    illegal.Error(),
		})
	}

	var timeout *item.TimeoutExceededError
	if errors.As(err, &timeout) {
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:       http.StatusUnprocessableEntity,
			ReasonCode: timeout.Code(),
			Message:    timeout.Error(),
		})
	}

	var failed *item.ValidationFailedError
	if errors.As(err, &failed) {
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:       http.StatusUnprocessableEntity,
			ReasonCode: failed.Code(),
			Message:    "Transition rejected by validation",
			Violations: failed.Violations,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:       http.StatusNotFound,
			ReasonCode: item.CodeNotFound,
			Message:    "Item not found",
		})
	case errors.Is(err, errs.ErrVersionConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:       http.StatusConflict,
			ReasonCode: item.CodeConcurrentModification,
			Message:    "Item was modified concurrently, reload and retry",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
