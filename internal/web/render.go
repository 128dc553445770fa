package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MontecalvoAm/portfolio/internal/content"
	"github.com/MontecalvoAm/portfolio/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"reveal": revealClass,
	"delay": func(i, step int) string {
		return fmt.Sprintf("%dms", i*step)
	},
	"label": func(t view.Tab) string {
		s := string(t)
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"dict": func(kv ...any) (map[string]any, error) {
		if len(kv)%2 != 0 {
			return nil, fmt.Errorf("dict: odd number of arguments")
		}
		m := make(map[string]any, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			key, ok := kv[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
			}
			m[key] = kv[i+1]
		}
		return m, nil
	},
}

func revealClass(s view.Snapshot, id string) string {
	if s.Revealed[id] {
		return "reveal show-animate"
	}
	return "reveal"
}

// ParseTemplates parses the embedded page, fragment and admin templates.
func ParseTemplates() (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return t, nil
}

// pageData is the root value of every page and fragment template.
type pageData struct {
	PageID          string
	Content         *content.Content
	Page            view.Snapshot
	Tabs            []view.Tab
	DelayMS         int64
	RevealThreshold float64
	NavThreshold    float64
}

// data builds the template value from the page's own content, so a reload
// of the content file never mixes two versions into one page.
func (s *Server) data(c *gin.Context, snap view.Snapshot) pageData {
	opts := s.opts
	mounted := snap.Content
	if mounted == nil {
		mounted = s.store.Get()
	}
	return pageData{
		PageID:          c.GetString(pageIDKey),
		Content:         mounted,
		Page:            snap,
		Tabs:            view.Tabs,
		DelayMS:         opts.LoadingDelay.Milliseconds(),
		RevealThreshold: opts.RevealThreshold,
		NavThreshold:    opts.NavThreshold,
	}
}

// fragments renders several named templates into one response, for
// replies that carry out-of-band swaps next to the main target.
func (s *Server) fragments(c *gin.Context, data any, names ...string) {
	var buf bytes.Buffer
	for _, name := range names {
		if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
			s.logger.Error("rendering fragment", "template", name, "error", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
