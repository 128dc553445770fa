package web

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MontecalvoAm/portfolio/internal/contact"
	"github.com/MontecalvoAm/portfolio/internal/tracking"
)

const adminCookie = "admin_token"

// Development fallbacks, only honoured in gin debug mode.
const (
	devAdminUsername = "admin"
	devAdminPassword = "admin123"
)

// adminStats is the payload of the stats API and export.
type adminStats struct {
	Visits   *tracking.Stats          `json:"visits,omitempty"`
	Messages map[contact.Status]int64 `json:"messages"`
	Sessions int                      `json:"sessions"`
}

func (s *Server) adminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{"title": "Privacy Policy"})
	})
	if !s.cfg.Admin.Enabled {
		return
	}

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})
	r.POST("/admin/login", s.adminLogin)
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		s.logger.Info("admin logout", "visitor", s.visitor(c))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin", s.adminAuth)
	admin.GET("/dashboard", s.adminDashboard)
	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.collectStats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})
	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.collectStats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=portfolio-stats.json")
		s.logger.Info("admin stats exported", "visitor", s.visitor(c))
		c.JSON(http.StatusOK, stats)
	})
	admin.GET("/messages", func(c *gin.Context) {
		msgs, err := s.recentMessages(c, 200)
		if err != nil {
			s.adminError(c, "Failed to load messages", err)
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{"messages": msgs})
	})
	admin.GET("/visitors", func(c *gin.Context) {
		if s.tracker == nil {
			c.HTML(http.StatusOK, "admin-visitors.html", gin.H{})
			return
		}
		visits, err := s.tracker.Recent(c.Request.Context(), 200)
		if err != nil {
			s.adminError(c, "Failed to load visitors", err)
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visits})
	})
	admin.DELETE("/messages/:id", s.deleteMessage)
}

// credentials returns the configured admin login. Unset values fall back to
// development defaults in debug mode and disable login otherwise.
func (s *Server) credentials() (string, string, bool) {
	user, pass := s.cfg.Admin.Username, s.cfg.Admin.Password
	if gin.Mode() == gin.DebugMode {
		if user == "" {
			user = devAdminUsername
			s.logger.Warn("using default admin username, set ADMIN_USERNAME")
		}
		if pass == "" {
			pass = devAdminPassword
			s.logger.Warn("using default admin password, set ADMIN_PASSWORD")
		}
	}
	return user, pass, user != "" && pass != ""
}

func (s *Server) adminLogin(c *gin.Context) {
	user, pass, ok := s.credentials()
	username := c.PostForm("username")
	password := c.PostForm("password")

	if ok &&
		subtle.ConstantTimeCompare([]byte(username), []byte(user)) == 1 &&
		subtle.ConstantTimeCompare([]byte(password), []byte(pass)) == 1 {
		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
		s.logger.Info("admin login", "visitor", s.visitor(c))
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	s.logger.Warn("failed admin login", "visitor", s.visitor(c))
	c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
}

func (s *Server) adminAuth(c *gin.Context) {
	token, err := c.Cookie(adminCookie)
	if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) adminDashboard(c *gin.Context) {
	stats, err := s.collectStats(c)
	if err != nil {
		s.adminError(c, "Failed to load statistics", err)
		return
	}
	msgs, err := s.recentMessages(c, 10)
	if err != nil {
		s.adminError(c, "Failed to load messages", err)
		return
	}
	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
		"visits":        stats.Visits,
		"messageCounts": stats.Messages,
		"sessions":      stats.Sessions,
		"messages":      msgs,
	})
}

func (s *Server) deleteMessage(c *gin.Context) {
	if s.contact == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	id := c.Param("id")
	err := s.contact.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, contact.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
	case err != nil:
		s.logger.Error("deleting message", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
	default:
		s.logger.Info("message deleted", "id", id, "visitor", s.visitor(c))
		c.Status(http.StatusOK)
	}
}

func (s *Server) collectStats(c *gin.Context) (*adminStats, error) {
	stats := &adminStats{Sessions: s.sessions.Len(), Messages: map[contact.Status]int64{}}
	if s.tracker != nil {
		visits, err := s.tracker.Stats(c.Request.Context())
		if err != nil {
			return nil, err
		}
		stats.Visits = visits
	}
	if s.contact != nil {
		counts, err := s.contact.Counts(c.Request.Context())
		if err != nil {
			return nil, err
		}
		stats.Messages = counts
	}
	return stats, nil
}

func (s *Server) recentMessages(c *gin.Context, limit int) ([]contact.Message, error) {
	if s.contact == nil {
		return nil, nil
	}
	return s.contact.Recent(c.Request.Context(), limit)
}

func (s *Server) adminError(c *gin.Context, msg string, err error) {
	s.logger.Error(msg, "error", err)
	c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": msg})
}

// visitor identifies the client in logs without recording its address.
func (s *Server) visitor(c *gin.Context) string {
	if s.tracker == nil {
		return ""
	}
	return s.tracker.HashIP(c.ClientIP())
}
