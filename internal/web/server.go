// Package web serves the portfolio page over HTTP. The page state lives on
// the server, one view.Page per visitor session, and HTMX requests mutate it
// and swap the re-rendered fragments in.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MontecalvoAm/portfolio/internal/config"
	"github.com/MontecalvoAm/portfolio/internal/contact"
	"github.com/MontecalvoAm/portfolio/internal/content"
	"github.com/MontecalvoAm/portfolio/internal/session"
	"github.com/MontecalvoAm/portfolio/internal/tracking"
	"github.com/MontecalvoAm/portfolio/internal/view"
)

// Deps are the collaborators of a Server. Tracker may be nil when visitor
// tracking is off; Contact may be nil when submissions are discarded.
type Deps struct {
	Config   *config.Config
	Content  *content.Store
	Sessions *session.Registry
	Contact  *contact.Service
	Tracker  *tracking.Tracker
	Logger   *slog.Logger
}

type Server struct {
	cfg       *config.Config
	opts      view.Options
	store     *content.Store
	sessions  *session.Registry
	contact   *contact.Service
	tracker   *tracking.Tracker
	logger    *slog.Logger
	templates *template.Template
	engine    *gin.Engine

	adminToken string
}

func New(d Deps) (*Server, error) {
	if d.Config == nil || d.Content == nil || d.Sessions == nil {
		return nil, errors.New("web: config, content and sessions are required")
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}
	token, err := tracking.RandomToken()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:        d.Config,
		opts:       d.Config.PageOptions(),
		store:      d.Content,
		sessions:   d.Sessions,
		contact:    d.Contact,
		tracker:    d.Tracker,
		logger:     logger,
		templates:  tmpl,
		adminToken: token,
	}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))
	if s.tracker != nil {
		r.Use(s.tracker.Middleware())
	}
	r.SetHTMLTemplate(s.templates)

	assets := s.cfg.Server.AssetsDir
	r.Static("/Pictures", filepath.Join(assets, "Pictures"))
	r.Static("/Video", filepath.Join(assets, "Video"))
	r.Static("/CV", filepath.Join(assets, "CV"))

	r.GET("/", s.index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
	})
	r.POST("/contact", s.submitContact)

	page := r.Group("/", s.requireSession)
	page.GET("/content", s.mainContent)
	page.GET("/typing", s.typingStream)
	page.POST("/tabs/:tab", s.selectTab)
	page.POST("/skills/next", s.nextSkills)
	page.POST("/skills/prev", s.prevSkills)
	page.POST("/observe", s.observe)
	page.POST("/menu/open", s.openMenu)
	page.POST("/menu/close", s.closeMenu)
	page.POST("/nav/:id", s.navigate)
	page.POST("/lightbox/dismiss", s.dismissLightbox)
	page.POST("/lightbox/:index", s.openLightbox)
	page.POST("/preview/:index/enter", s.enterPreview)
	page.POST("/preview/:index/leave", s.leavePreview)
	page.POST("/page/end", s.endPage)

	s.adminRoutes(r)
	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if s.tracker != nil {
		s.tracker.Wait()
	}
	return nil
}
