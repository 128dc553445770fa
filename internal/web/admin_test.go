package web

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MontecalvoAm/portfolio/internal/config"
	"github.com/MontecalvoAm/portfolio/internal/contact"
)

func TestAdmin_RequiresLogin(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/admin/dashboard", "/admin/messages", "/admin/visitors", "/admin/api/stats"} {
		w := h.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}
}

func TestAdmin_LoginAndDashboard(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/admin/login", url.Values{"username": {"owner"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = h.do(http.MethodPost, "/admin/login", url.Values{"username": {"owner"}, "password": {"secret"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	h.do(http.MethodPost, "/contact", url.Values{"Name": {"Ada"}, "Email": {"ada@example.com"}, "Message": {"Hi there"}})

	w = h.do(http.MethodGet, "/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dashboard")
	assert.Contains(t, w.Body.String(), "Hi there")

	w = h.do(http.MethodGet, "/admin/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sent":1`)

	w = h.do(http.MethodGet, "/admin/export/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	w = h.do(http.MethodGet, "/admin/logout", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	w = h.do(http.MethodGet, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAdmin_DeleteMessage(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodPost, "/admin/login", url.Values{"username": {"owner"}, "password": {"secret"}})
	h.do(http.MethodPost, "/contact", url.Values{"Name": {"Ada"}, "Email": {"ada@example.com"}})

	msgs, err := h.srv.contact.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	w := h.do(http.MethodDelete, "/admin/messages/"+msgs[0].ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodDelete, "/admin/messages/"+msgs[0].ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	counts, err := h.srv.contact.Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, counts[contact.StatusSent])
}

func TestAdmin_NoCredentialsOutsideDebug(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		c.Admin.Username = ""
		c.Admin.Password = ""
	})

	w := h.do(http.MethodPost, "/admin/login", url.Values{"username": {""}, "password": {""}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_Disabled(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Admin.Enabled = false })

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/admin/login", nil).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/privacy", nil).Code)
}
