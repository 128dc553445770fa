package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MontecalvoAm/portfolio/internal/view"
)

const (
	// pageHeader carries the page id on htmx requests. EventSource and
	// sendBeacon cannot set headers and use the pageParam query instead.
	pageHeader = "X-Page-ID"
	pageParam  = "page"

	pageKey   = "page"
	pageIDKey = "page_id"
)

// requestLogger writes one slog record per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.ErrorContext(c.Request.Context(), "request", attrs...)
		case status >= http.StatusBadRequest:
			logger.WarnContext(c.Request.Context(), "request", attrs...)
		default:
			logger.DebugContext(c.Request.Context(), "request", attrs...)
		}
	}
}

// requireSession resolves the page behind the request's page id. A view
// without a live page is told to reload, which mounts a new one.
func (s *Server) requireSession(c *gin.Context) {
	id := c.GetHeader(pageHeader)
	if id == "" {
		id = c.Query(pageParam)
	}
	if id == "" {
		refresh(c)
		return
	}
	page, err := s.sessions.Get(id)
	if err != nil {
		refresh(c)
		return
	}
	c.Set(pageKey, page)
	c.Set(pageIDKey, id)
	c.Next()
}

func pageFrom(c *gin.Context) *view.Page {
	return c.MustGet(pageKey).(*view.Page)
}

func refresh(c *gin.Context) {
	c.Header("HX-Refresh", "true")
	c.AbortWithStatus(http.StatusNoContent)
}

// fail maps a page update error to a response. Lifecycle errors are not
// the visitor's fault and never show up as error pages.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case view.IsClientError(err):
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusBadRequest)
	case errors.Is(err, view.ErrLoading):
		c.AbortWithStatus(http.StatusConflict)
	case errors.Is(err, view.ErrUnmounted):
		refresh(c)
	default:
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
