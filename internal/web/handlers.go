package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MontecalvoAm/portfolio/internal/contact"
	"github.com/MontecalvoAm/portfolio/internal/media"
	"github.com/MontecalvoAm/portfolio/internal/view"
)

// pollDelayMS is how soon the spinner asks again when it arrived before
// the loading gate opened.
const pollDelayMS = 100

// index mounts a fresh page for this page view. A full load restarts the
// loading gate and the typing animation; pages of other tabs are untouched.
func (s *Server) index(c *gin.Context) {
	id, page := s.sessions.Start()
	c.Set(pageIDKey, id)
	c.HTML(http.StatusOK, "index.html", s.data(c, page.Snapshot()))
}

// endPage unmounts the page when the browser leaves it.
func (s *Server) endPage(c *gin.Context) {
	s.sessions.End(c.GetString(pageIDKey))
	c.Status(http.StatusNoContent)
}

func (s *Server) mainContent(c *gin.Context) {
	snap := pageFrom(c).Snapshot()
	if snap.Loading {
		d := s.data(c, snap)
		d.DelayMS = pollDelayMS
		c.HTML(http.StatusOK, "spinner", d)
		return
	}
	c.HTML(http.StatusOK, "main", s.data(c, snap))
}

// typingStream pushes the hero heading as server-sent events while the
// name is being typed, then sends "done" and ends.
func (s *Server) typingStream(c *gin.Context) {
	updates, cancel := pageFrom(c).Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	var last view.Snapshot
	sent := false
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if snap.Loading {
				continue
			}
			if sent && snap.Typed == last.Typed && snap.TypingComplete == last.TypingComplete {
				continue
			}
			var buf bytes.Buffer
			if err := s.templates.ExecuteTemplate(&buf, "hero-title", s.data(c, snap)); err != nil {
				s.logger.Error("rendering hero title", "error", err)
				return
			}
			c.SSEvent("typed", buf.String())
			c.Writer.Flush()
			last, sent = snap, true

			if snap.TypingComplete {
				c.SSEvent("done", "")
				c.Writer.Flush()
				return
			}
		}
	}
}

func (s *Server) selectTab(c *gin.Context) {
	tab, err := view.ParseTab(c.Param("tab"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.renderUpdate(c, "about-panel", func(p *view.Page) (view.Snapshot, error) { return p.SelectTab(tab) })
}

func (s *Server) nextSkills(c *gin.Context) {
	s.renderUpdate(c, "about-panel", (*view.Page).NextSkillsPage)
}

func (s *Server) prevSkills(c *gin.Context) {
	s.renderUpdate(c, "about-panel", (*view.Page).PrevSkillsPage)
}

func (s *Server) openMenu(c *gin.Context) {
	s.renderUpdate(c, "menu", (*view.Page).OpenMenu)
}

func (s *Server) closeMenu(c *gin.Context) {
	s.renderUpdate(c, "menu", (*view.Page).CloseMenu)
}

// navigate follows a link in the mobile menu: the menu closes and the
// navigation bar is updated out of band.
func (s *Server) navigate(c *gin.Context) {
	id := c.Param("id")
	snap, err := pageFrom(c).NavigateTo(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.fragments(c, s.data(c, snap), "menu", "nav")
}

func (s *Server) openLightbox(c *gin.Context) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	s.renderUpdate(c, "lightbox", func(p *view.Page) (view.Snapshot, error) { return p.OpenProject(i) })
}

func (s *Server) dismissLightbox(c *gin.Context) {
	target, err := media.ParseClickTarget(c.Query("target"))
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	s.renderUpdate(c, "lightbox", func(p *view.Page) (view.Snapshot, error) { return p.DismissLightbox(target) })
}

func (s *Server) enterPreview(c *gin.Context) {
	s.preview(c, func(p *view.Page, i int) (view.Snapshot, error) {
		return p.EnterPreview(c.Request.Context(), i)
	})
}

func (s *Server) leavePreview(c *gin.Context) {
	s.preview(c, (*view.Page).LeavePreview)
}

// preview applies a hover change and tells the browser, through an
// HX-Trigger event, whether the video should now play.
func (s *Server) preview(c *gin.Context, fn func(*view.Page, int) (view.Snapshot, error)) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	snap, err := fn(pageFrom(c), i)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.trigger(c, "preview", gin.H{"index": i, "playing": snap.Previews[i].Playing})
}

// observe takes an intersection ratio measured in the browser. Section
// reports answer with the navigation bar swapped out of band; reveal
// reports answer with a "reveal" event.
func (s *Server) observe(c *gin.Context) {
	target := c.PostForm("target")
	ratio, err := strconv.ParseFloat(c.PostForm("ratio"), 64)
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	snap, err := pageFrom(c).Observe(target, ratio)
	if err != nil {
		s.fail(c, err)
		return
	}
	d := s.data(c, snap)
	if slices.Contains(d.Content.SectionIDs(), target) {
		s.fragments(c, d, "nav")
		return
	}
	s.trigger(c, "reveal", gin.H{"target": target, "visible": snap.Revealed[target]})
}

// submitContact stores and relays the form. The visitor always gets a
// fresh form back; failures only reach the log.
func (s *Server) submitContact(c *gin.Context) {
	sub := contact.Submission{
		Name:    c.PostForm("Name"),
		Email:   c.PostForm("Email"),
		Message: c.PostForm("Message"),
	}
	if s.contact != nil {
		hashed := ""
		if s.tracker != nil {
			hashed = s.tracker.HashIP(c.ClientIP())
		}
		if _, err := s.contact.Submit(c.Request.Context(), sub, hashed); err != nil {
			if errors.Is(err, contact.ErrIncomplete) {
				s.logger.Debug("ignoring incomplete contact submission")
			} else {
				s.logger.Error("contact submission", "error", err)
			}
		}
	}
	c.HTML(http.StatusOK, "contact-form", nil)
}

func (s *Server) renderUpdate(c *gin.Context, name string, fn func(*view.Page) (view.Snapshot, error)) {
	snap, err := fn(pageFrom(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, name, s.data(c, snap))
}

func (s *Server) trigger(c *gin.Context, event string, detail any) {
	b, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("HX-Trigger", string(b))
	c.Status(http.StatusOK)
}
