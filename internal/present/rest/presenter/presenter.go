package presenter

import (
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Document writes payload as JSON with the given media type and a weak ETag.
// A matching If-None-Match short-circuits to 304.
func Document(c echo.Context, mediaType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return InternalError(c, err)
	}

	etag := ETag(body)
	c.Response().Header().Set(echo.HeaderCacheControl, "max-age=300")
	c.Response().Header().Set("ETag", etag)

	if matchesETag(c.Request().Header.Get("If-None-Match"), etag) {
		return c.NoContent(http.StatusNotModified)
	}

	return c.Blob(http.StatusOK, mediaType, body)
}

// ETag returns a weak validator for body.
func ETag(body []byte) string {
	return fmt.Sprintf(`W/"%016x"`, xxh3.Hash(body))
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag || "W/"+candidate == etag {
			return true
		}
	}
	return false
}

// HTML writes a plain text/html body, escaping text.
func HTML(c echo.Context, text string) error {
	return c.Blob(http.StatusOK, "text/html", []byte(html.EscapeString(text)))
}

// Empty acknowledges with an empty JSON object.
func Empty(c echo.Context) error {
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte("{}"))
}

func BadRequest(c echo.Context, err error) error {
	slog.InfoContext(c.Request().Context(), "bad request", slog.String("error", err.Error()), slog.String("module", "presenter"))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	slog.InfoContext(c.Request().Context(), "bad request", slog.String("error", msg), slog.String("module", "presenter"))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	slog.DebugContext(c.Request().Context(), "not found", slog.String("error", msg), slog.String("module", "presenter"))
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func InternalError(c echo.Context, err error) error {
	slog.ErrorContext(c.Request().Context(), "internal error", slog.String("error", err.Error()), slog.String("module", "presenter"))
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
