// Package tracking records page visits without storing raw IP addresses.
package tracking

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Retention is how long visits are kept.
const Retention = 12 * 30 * 24 * time.Hour

// Visit is one recorded page view.
type Visit struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Tracker writes visits to the visitors table.
type Tracker struct {
	db     *sql.DB
	salt   string
	logger *slog.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

// New returns a Tracker with a fresh random salt. Hashes are only
// comparable within one process lifetime.
func New(db *sql.DB, logger *slog.Logger) (*Tracker, error) {
	salt, err := RandomToken()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{db: db, salt: salt, logger: logger, now: time.Now}, nil
}

// RandomToken returns 32 random bytes, hex encoded.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP hashes ip with the tracker's salt. Equal IPs give equal hashes.
func (t *Tracker) HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + t.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Record stores one visit.
func (t *Tracker) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)`,
		t.HashIP(ip), userAgent, path, t.now().UTC())
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// Cleanup deletes visits older than Retention and returns how many went.
func (t *Tracker) Cleanup(ctx context.Context) (int64, error) {
	res, err := t.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, t.now().UTC().Add(-Retention))
	if err != nil {
		return 0, fmt.Errorf("cleaning up visits: %w", err)
	}
	return res.RowsAffected()
}

// Wait blocks until background recordings started by the middleware finish.
func (t *Tracker) Wait() { t.wg.Wait() }

var untrackedPrefixes = []string{"/Pictures/", "/Video/", "/CV/", "/static/", "/admin/", "/favicon", "/privacy", "/healthz"}

// Middleware records page views in the background. Static files, admin
// pages and visitors sending DNT: 1 are skipped. HTMX fragment requests are
// not page views either.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || c.GetHeader("HX-Request") == "true" || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			if err := t.Record(context.Background(), ip, ua, path); err != nil {
				t.logger.Warn("error recording visitor", "error", err)
			}
		}()
		c.Next()
	}
}
