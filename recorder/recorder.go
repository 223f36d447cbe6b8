// Package recorder is the write seam between the pixel responder and the
// visit log. The local implementation appends through the store in process;
// the HTTP implementation posts to a visit API origin for split deployments.
// Either way the contract is one attempt, no retries: a failed record drops
// the event.
package recorder

import (
	"context"

	"trackpixel/cache"
	"trackpixel/model"
	"trackpixel/store"
	"trackpixel/utils"

	"github.com/rs/zerolog/log"
)

// Recorder accepts one visit event for a track code. Implementations must
// report unknown track codes as utils.ErrPixelNotFound so callers can tell
// them apart from infrastructure failures.
type Recorder interface {
	Record(ctx context.Context, trackCode string, visit model.Visit) error
}

// Local records visits straight through the store. The pixel cache, when
// enabled, spares one Redis lookup per impression on the hot path.
type Local struct {
	store *store.Store
	cache *cache.Cache
}

func NewLocal(s *store.Store, c *cache.Cache) *Local {
	return &Local{store: s, cache: c}
}

func (l *Local) Record(ctx context.Context, trackCode string, visit model.Visit) error {
	pixel, found := l.cache.GetPixel(trackCode)
	if !found {
		var err error
		pixel, err = l.store.GetPixelByCode(ctx, trackCode)
		if err != nil {
			return err
		}
		l.cache.SetPixel(trackCode, *pixel)
	}

	// Disabled pixels still serve the image; their visits are dropped here.
	if !pixel.Status {
		log.Debug().
			Str("track_code", trackCode).
			Str("pixel_id", pixel.ID).
			Msg("Pixel disabled, visit dropped")
		return nil
	}

	stored, err := l.store.AppendVisit(ctx, pixel.ID, visit)
	if err != nil {
		return err
	}

	log.Info().
		Str("track_code", trackCode).
		Str("pixel_id", pixel.ID).
		Int64("visit_id", stored.ID).
		Str("browser", stored.Browser).
		Str("os", stored.OS).
		Msg("Visit recorded")
	return nil
}

var _ Recorder = (*Local)(nil)

// ErrPixelNotFound is re-exported so HTTP clients of the recorder can map
// a 404 onto the same sentinel the local path returns.
var ErrPixelNotFound = utils.ErrPixelNotFound
