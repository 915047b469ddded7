package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/jawafdehi/jawaf/internal/domain"
	"github.com/jawafdehi/jawaf/internal/present/rest/middleware"
	"github.com/jawafdehi/jawaf/internal/present/rest/presenter"
	"github.com/jawafdehi/jawaf/internal/usecase"
)

// Handler is the thin REST adapter over the core. It binds requests,
// resolves the actor from the request context and translates typed errors;
// all rules live below it.
type Handler struct {
	cases    *usecase.CaseUsecase
	entities *usecase.EntityUsecase
	sources  *usecase.SourceUsecase
}

func NewHandler(
	cases *usecase.CaseUsecase,
	entities *usecase.EntityUsecase,
	sources *usecase.SourceUsecase,
) *Handler {
	return &Handler{
		cases:    cases,
		entities: entities,
		sources:  sources,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/cases", h.handleCreateCase)
	e.GET("/cases/:id", h.handleGetCase)
	e.PATCH("/cases/:id", h.handleUpdateCase)
	e.POST("/cases/:id/transition", h.handleTransition)
	e.GET("/cases/:id/history", h.handleHistory)
	e.PUT("/cases/:id/contributors/:userID", h.handleAddContributor)
	e.DELETE("/cases/:id/contributors/:userID", h.handleRemoveContributor)
	e.GET("/entities/:id", h.handleGetEntity)
	e.GET("/entities/external/:externalID", h.handleGetEntityByExternalID)
	e.GET("/sources/:id", h.handleGetSource)
}

func (h *Handler) handleCreateCase(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.CreateCaseInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	rev, err := h.cases.Create(ctx, middleware.ActorFrom(ctx), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, rev)
}

func (h *Handler) handleGetCase(c echo.Context) error {
	ctx := c.Request().Context()

	kase, err := h.cases.Get(ctx, middleware.ActorFrom(ctx), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, kase)
}

type updateCaseRequest struct {
	ExpectedVersion int              `json:"expectedVersion"`
	Patch           domain.CasePatch `json:"patch"`
}

func (h *Handler) handleUpdateCase(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateCaseRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	rev, err := h.cases.UpdateContent(ctx, middleware.ActorFrom(ctx), c.Param("id"), req.ExpectedVersion, req.Patch)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, rev)
}

type transitionRequest struct {
	ExpectedVersion int              `json:"expectedVersion"`
	Target          string           `json:"target"`
	Patch           domain.CasePatch `json:"patch"`
}

func (h *Handler) handleTransition(c echo.Context) error {
	ctx := c.Request().Context()

	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	rev, err := h.cases.Transition(ctx, middleware.ActorFrom(ctx), c.Param("id"),
		req.ExpectedVersion, domain.CaseState(req.Target), req.Patch)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, rev)
}

func (h *Handler) handleHistory(c echo.Context) error {
	ctx := c.Request().Context()

	revisions, err := h.cases.History(ctx, middleware.ActorFrom(ctx), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, revisions)
}

type assignmentRequest struct {
	ExpectedVersion int `json:"expectedVersion"`
}

func (h *Handler) handleAddContributor(c echo.Context) error {
	ctx := c.Request().Context()

	var req assignmentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	rev, err := h.cases.AddContributor(ctx, middleware.ActorFrom(ctx), c.Param("id"), req.ExpectedVersion, c.Param("userID"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, rev)
}

func (h *Handler) handleRemoveContributor(c echo.Context) error {
	ctx := c.Request().Context()

	var req assignmentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	rev, err := h.cases.RemoveContributor(ctx, middleware.ActorFrom(ctx), c.Param("id"), req.ExpectedVersion, c.Param("userID"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, rev)
}

func (h *Handler) handleGetEntity(c echo.Context) error {
	ctx := c.Request().Context()

	entity, err := h.entities.Get(ctx, c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, entity)
}

func (h *Handler) handleGetEntityByExternalID(c echo.Context) error {
	ctx := c.Request().Context()

	entity, err := h.entities.GetByExternalID(ctx, c.Param("externalID"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, entity)
}

func (h *Handler) handleGetSource(c echo.Context) error {
	ctx := c.Request().Context()

	source, err := h.sources.Get(ctx, middleware.ActorFrom(ctx), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, source)
}
