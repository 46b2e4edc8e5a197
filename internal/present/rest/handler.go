package rest

import (
	"errors"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/twitton"
	"github.com/totegamma/twitton/internal/config"
	"github.com/totegamma/twitton/internal/domain"
	"github.com/totegamma/twitton/internal/present/rest/presenter"
	"github.com/totegamma/twitton/internal/usecase"
)

type Handler struct {
	config    config.Server
	webfinger *usecase.WebfingerUsecase
	actor     *usecase.ActorUsecase
	inbox     *usecase.InboxUsecase
}

func NewHandler(
	config config.Server,
	webfinger *usecase.WebfingerUsecase,
	actor *usecase.ActorUsecase,
	inbox *usecase.InboxUsecase,
) *Handler {
	return &Handler{
		config:    config,
		webfinger: webfinger,
		actor:     actor,
		inbox:     inbox,
	}
}

// RegisterRoutes mounts all endpoints; inbox middleware applies to the POST routes only.
func (h *Handler) RegisterRoutes(e *echo.Echo, inbox ...echo.MiddlewareFunc) {
	e.GET("/", h.handleIndex)
	e.GET("/.well-known/webfinger", h.handleWebfinger)
	e.GET("/user/:username", h.handleActor)
	e.POST("/inbox", h.handleSharedInbox, inbox...)
	e.POST("/user/:username/inbox", h.handleDirectInbox, inbox...)
}

func (h *Handler) handleIndex(c echo.Context) error {
	return presenter.HTML(c, domain.IndexBody)
}

func (h *Handler) handleWebfinger(c echo.Context) error {
	ctx := c.Request().Context()

	doc, err := h.webfinger.Resolve(ctx, c.QueryParam("resource"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return presenter.NotFound(c, "resource not found")
		}
		return presenter.InternalError(c, err)
	}

	return presenter.Document(c, twitton.MediaTypeJSON, doc)
}

func (h *Handler) handleActor(c echo.Context) error {
	ctx := c.Request().Context()
	username := c.Param("username")

	actor, err := h.actor.Get(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return presenter.NotFound(c, "user not found")
		}
		return presenter.InternalError(c, err)
	}

	if !h.config.ContentNegotiation {
		return presenter.Document(c, twitton.MediaTypeActivityJSON, actor)
	}

	c.Response().Header().Add(echo.HeaderVary, echo.HeaderAccept)

	switch c.Request().Header.Get(echo.HeaderAccept) {
	case twitton.MediaTypeActivityJSON, twitton.MediaTypeJSON:
		return presenter.Document(c, twitton.MediaTypeActivityJSON, actor)
	default:
		return presenter.HTML(c, fmt.Sprintf(domain.ProfilePageBody, actor.PreferredUsername))
	}
}

func (h *Handler) handleSharedInbox(c echo.Context) error {
	return h.acceptInbox(c, domain.InboxKindShared, "")
}

func (h *Handler) handleDirectInbox(c echo.Context) error {
	return h.acceptInbox(c, domain.InboxKindDirect, c.Param("username"))
}

func (h *Handler) acceptInbox(c echo.Context, kind domain.InboxKind, username string) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return presenter.BadRequest(c, err)
	}

	err = h.inbox.Accept(ctx, usecase.InboxMessage{
		Kind:      kind,
		Username:  username,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
		Header:    c.Request().Header.Clone(),
		Body:      body,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEncoding) {
			return presenter.BadRequestMessage(c, "invalid body encoding")
		}
		return presenter.InternalError(c, err)
	}

	return presenter.Empty(c)
}
