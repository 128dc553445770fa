// Package media controls portfolio video previews and the lightbox.
package media

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var (
	ErrNoSource    = errors.New("video source unavailable")
	ErrInterrupted = errors.New("play interrupted")
)

// Player is a video element that can be started, paused and rewound.
type Player interface {
	Play(ctx context.Context) error
	Pause()
	Seek(pos time.Duration)
}

// Preview plays a video while the pointer is over it.
type Preview struct {
	player Player
	logger *slog.Logger
}

// NewPreview wraps player. A nil logger discards play failures silently.
func NewPreview(player Player, logger *slog.Logger) *Preview {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Preview{player: player, logger: logger}
}

// Enter attempts playback. A rejected attempt is logged and dropped.
func (p *Preview) Enter(ctx context.Context) {
	if err := p.player.Play(ctx); err != nil {
		p.logger.DebugContext(ctx, "video play interrupted", "error", err)
	}
}

// Leave pauses playback and rewinds to the start.
func (p *Preview) Leave() {
	p.player.Pause()
	p.player.Seek(0)
}

// Element is the server-side state of one <video> tag. Rendering it gives
// the browser the attributes it needs to reproduce the state.
type Element struct {
	Source   string
	Missing  bool
	Playing  bool
	Position time.Duration
}

// Play starts the element unless its source is missing or ctx is done.
func (e *Element) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrInterrupted, err)
	}
	if e.Missing || e.Source == "" {
		return ErrNoSource
	}
	e.Playing = true
	return nil
}

func (e *Element) Pause() { e.Playing = false }

func (e *Element) Seek(pos time.Duration) { e.Position = pos }
