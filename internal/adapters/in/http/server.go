// Package http exposes the mover service over JSON HTTP with echo.
//
// Every handler follows the same steps: decode, build the command or query
// (which validates), run the use case, then map the result or the error kind
// to a response. Status codes are decided in one place, see statusOf.
package http

import (
	"log/slog"
	"net/http"

	"magicmover/internal/core/application/usecases/commands"
	"magicmover/internal/core/application/usecases/queries"
	"magicmover/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateItem   commands.CreateItemCommandHandler
	CreateMover  commands.CreateMoverCommandHandler
	LoadItems    commands.LoadItemsCommandHandler
	StartMission commands.StartMissionCommandHandler
	EndMission   commands.EndMissionCommandHandler
	UnloadItems  commands.UnloadItemsCommandHandler

	GetAllItems      queries.GetAllItemsQueryHandler
	GetAllMovers     queries.GetAllMoversQueryHandler
	GetMover         queries.GetMoverQueryHandler
	GetMoverActivity queries.GetMoverActivityQueryHandler
	GetTopPerformers queries.GetTopPerformersQueryHandler
}

// Server coordinates between HTTP requests and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{handlers: handlers, logger: logger.With("component", "http-server")}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/items", s.CreateItem)
	api.GET("/items", s.GetItems)

	api.POST("/movers", s.CreateMover)
	api.GET("/movers", s.GetMovers)
	api.GET("/movers/top-performers", s.GetTopPerformers)
	api.GET("/movers/:id", s.GetMover)
	api.POST("/movers/:id/load", s.LoadItems)
	api.POST("/movers/:id/start-mission", s.StartMission)
	api.POST("/movers/:id/end-mission", s.EndMission)
	api.POST("/movers/:id/unload", s.UnloadItems)
	api.GET("/movers/:id/activities", s.GetMoverActivity)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateItem handles POST /api/v1/items.
func (s *Server) CreateItem(ctx echo.Context) error {
	var body NewItem
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	weight, err := kernel.WeightFromString(body.Weight.String())
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	cmd, err := commands.NewCreateItemCommand(body.Name, weight)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	created, err := s.handlers.CreateItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toItem(queries.NewItemView(created)))
}

// GetItems handles GET /api/v1/items.
func (s *Server) GetItems(ctx echo.Context) error {
	items, err := s.handlers.GetAllItems.Handle(ctx.Request().Context(), queries.NewGetAllItemsQuery())
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]Item, len(items))
	for i, v := range items {
		response[i] = toItem(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateMover handles POST /api/v1/movers.
func (s *Server) CreateMover(ctx echo.Context) error {
	var body NewMover
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	limit, err := kernel.WeightFromString(body.WeightLimit.String())
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	cmd, err := commands.NewCreateMoverCommand(body.Name, limit)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	created, err := s.handlers.CreateMover.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toMover(queries.NewMoverView(created)))
}

// GetMovers handles GET /api/v1/movers.
func (s *Server) GetMovers(ctx echo.Context) error {
	movers, err := s.handlers.GetAllMovers.Handle(ctx.Request().Context(), queries.NewGetAllMoversQuery())
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]Mover, len(movers))
	for i, v := range movers {
		response[i] = toMover(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetMover handles GET /api/v1/movers/:id.
func (s *Server) GetMover(ctx echo.Context) error {
	moverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	query, err := queries.NewGetMoverQuery(moverID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	view, err := s.handlers.GetMover.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toMover(view))
}

// LoadItems handles POST /api/v1/movers/:id/load.
func (s *Server) LoadItems(ctx echo.Context) error {
	moverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	var body LoadItems
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	itemIDs, err := kernel.UUIDsFromStrings(body.ItemIDs)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	cmd, err := commands.NewLoadItemsCommand(moverID, itemIDs)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	loaded, err := s.handlers.LoadItems.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toMover(queries.NewMoverView(loaded)))
}

// StartMission handles POST /api/v1/movers/:id/start-mission.
func (s *Server) StartMission(ctx echo.Context) error {
	moverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	cmd, err := commands.NewStartMissionCommand(moverID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	started, err := s.handlers.StartMission.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toMover(queries.NewMoverView(started)))
}

// EndMission handles POST /api/v1/movers/:id/end-mission.
func (s *Server) EndMission(ctx echo.Context) error {
	moverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	cmd, err := commands.NewEndMissionCommand(moverID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	ended, err := s.handlers.EndMission.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toMover(queries.NewMoverView(ended)))
}

// UnloadItems handles POST /api/v1/movers/:id/unload.
func (s *Server) UnloadItems(ctx echo.Context) error {
	moverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	cmd, err := commands.NewUnloadItemsCommand(moverID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	unloaded, err := s.handlers.UnloadItems.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toMover(queries.NewMoverView(unloaded)))
}

// GetMoverActivity handles GET /api/v1/movers/:id/activities, newest first.
func (s *Server) GetMoverActivity(ctx echo.Context) error {
	moverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	query, err := queries.NewGetMoverActivityQuery(moverID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	entries, err := s.handlers.GetMoverActivity.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]Activity, len(entries))
	for i, v := range entries {
		response[i] = toActivity(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetTopPerformers handles GET /api/v1/movers/top-performers[?itemId=].
func (s *Server) GetTopPerformers(ctx echo.Context) error {
	var itemID *kernel.UUID
	if raw := ctx.QueryParam("itemId"); raw != "" {
		parsed, err := kernel.UUIDFromString(raw)
		if err != nil {
			return s.errorResponse(ctx, err)
		}
		itemID = &parsed
	}

	standings, err := s.handlers.GetTopPerformers.Handle(ctx.Request().Context(), queries.NewGetTopPerformersQuery(itemID))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]Performer, len(standings))
	for i, v := range standings {
		response[i] = toPerformer(v)
	}
	return ctx.JSON(http.StatusOK, response)
}
