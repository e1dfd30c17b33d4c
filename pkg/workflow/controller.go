// Package workflow implements the itinerary selection and generation
// workflow: a controller owning the user's selection set, preference
// persistence with a local fallback tier, and itinerary requests against the
// trip planner API.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nepaltrails/trip-planner/internal/types"
)

// API is the slice of the trip planner client the controller depends on.
// *tripapi.Client satisfies it.
type API interface {
	SavePreferences(ctx context.Context, req types.SavePreferencesRequest) error
	LoadPreferences(ctx context.Context, sessionID string) (*types.PreferenceRecord, error)
	GenerateItinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResult, error)
}

var (
	// ErrEmptySelection means no attractions are selected; no request is sent.
	ErrEmptySelection = errors.New("select at least one attraction")

	// ErrInvalidDays means the requested day count is outside the allowed range.
	ErrInvalidDays = errors.New("day count out of range")

	// ErrSuperseded means a newer itinerary request was issued while this one
	// was in flight; its result was discarded and the display is unchanged.
	ErrSuperseded = errors.New("superseded by a newer itinerary request")
)

const (
	defaultDays          = 5
	defaultMinDays       = 3
	defaultMaxDays       = 14
	defaultStartLocation = "Kathmandu"
)

// Preferences are the filter defaults bound to the preference inputs.
type Preferences struct {
	Category   string
	MaxCost    float64
	Difficulty string
	Regions    []string
}

// Controller owns one session's workflow state. All state lives on the
// instance; independent sessions use independent controllers. Methods are
// safe for concurrent use.
type Controller struct {
	logger        *slog.Logger
	api           API
	sessionID     string
	sel           *SelectionSet
	remote        PreferenceStore
	local         PreferenceStore
	startLocation string
	minDays       int
	maxDays       int

	mu      sync.Mutex
	gen     uint64
	current *types.ItineraryResult
	prefs   Preferences
}

type Option func(*Controller)

// WithLogger sets the logger for swallowed persistence errors.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(c *Controller) { c.sessionID = id }
}

// WithLocalStore replaces the on-device fallback tier.
func WithLocalStore(s PreferenceStore) Option {
	return func(c *Controller) { c.local = s }
}

// WithDayBounds overrides the allowed itinerary day range.
func WithDayBounds(minDays, maxDays int) Option {
	return func(c *Controller) {
		c.minDays = minDays
		c.maxDays = maxDays
	}
}

// WithStartLocation overrides the fixed itinerary start location.
func WithStartLocation(loc string) Option {
	return func(c *Controller) { c.startLocation = loc }
}

// NewController creates a workflow controller with a fresh session ID and an
// empty selection.
func NewController(api API, opts ...Option) (*Controller, error) {
	c := &Controller{
		logger:        slog.Default(),
		api:           api,
		sessionID:     newSessionID(),
		sel:           NewSelectionSet(),
		startLocation: defaultStartLocation,
		minDays:       defaultMinDays,
		maxDays:       defaultMaxDays,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.remote = NewRemoteStore(api, c.sessionID)
	if c.local == nil {
		local, err := NewLocalStore("")
		if err != nil {
			return nil, err
		}
		c.local = local
	}
	return c, nil
}

func newSessionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("sess_%d_%s", time.Now().UnixMilli(), suffix)
}

// SessionID returns the identifier generated for this controller.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Selected returns the selected attraction IDs in insertion order.
func (c *Controller) Selected() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Selected()
}

// SelectionLen returns the current selection size.
func (c *Controller) SelectionLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Len()
}

// SetSelectionListener registers a callback invoked after every selection
// change, with the new selection in order.
func (c *Controller) SetSelectionListener(fn func(ids []int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.SetListener(fn)
}

// ToggleSelection flips membership of id and reports the new state.
func (c *Controller) ToggleSelection(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Toggle(id)
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Clear()
}

// SavePreferences persists the record remotely and to the local fallback.
// Both writes are best effort: failures are logged and swallowed, never
// surfaced, because preference memory is a convenience.
func (c *Controller) SavePreferences(ctx context.Context, p Preferences) {
	c.mu.Lock()
	c.prefs = p
	c.mu.Unlock()

	rec := types.PreferenceRecord{
		SessionID:         c.sessionID,
		PreferredCategory: p.Category,
		MaxCost:           p.MaxCost,
		Difficulty:        p.Difficulty,
		PreferredRegions:  p.Regions,
		CreatedAt:         time.Now().UTC(),
	}

	if err := c.remote.Save(ctx, rec); err != nil {
		c.logger.DebugContext(ctx, "Remote preference save failed", slog.Any("error", err))
	}
	// The local write happens regardless of the remote outcome.
	if err := c.local.Save(ctx, rec); err != nil {
		c.logger.DebugContext(ctx, "Local preference save failed", slog.Any("error", err))
	}
}

// LoadPreferences loads the saved record, remote tier first, local fallback
// second. Present fields are applied to the controller's preferences; absent
// fields leave existing values untouched. Returns the preferences after
// application.
func (c *Controller) LoadPreferences(ctx context.Context) Preferences {
	rec, err := c.remote.Load(ctx)
	if err != nil || rec == nil {
		if err != nil {
			c.logger.DebugContext(ctx, "Remote preference load failed, trying local fallback",
				slog.Any("error", err))
		}
		rec, err = c.local.Load(ctx)
		if err != nil {
			c.logger.DebugContext(ctx, "Local preference load failed", slog.Any("error", err))
			rec = nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if rec != nil {
		if rec.PreferredCategory != "" {
			c.prefs.Category = rec.PreferredCategory
		}
		if rec.MaxCost > 0 {
			c.prefs.MaxCost = rec.MaxCost
		}
		if rec.Difficulty != "" {
			c.prefs.Difficulty = rec.Difficulty
		}
		if len(rec.PreferredRegions) > 0 {
			c.prefs.Regions = rec.PreferredRegions
		}
	}
	return c.prefs
}

// Preferences returns the currently applied preference fields.
func (c *Controller) Preferences() Preferences {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs
}

// RequestItinerary sends the current selection to the itinerary endpoint and
// replaces the displayed result on success. An empty selection fails fast
// without any network call. When requests overlap, the newest one wins: a
// response belonging to a superseded request is discarded with ErrSuperseded
// and the display keeps whatever the newest request produced. This makes the
// overlap outcome deterministic instead of racing on response order.
// Any failure leaves the previous result intact.
func (c *Controller) RequestItinerary(ctx context.Context, days int) (*types.ItineraryResult, error) {
	c.mu.Lock()
	if c.sel.Len() == 0 {
		c.mu.Unlock()
		return nil, ErrEmptySelection
	}
	if days == 0 {
		days = defaultDays
	}
	if days < c.minDays || days > c.maxDays {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %d is not between %d and %d", ErrInvalidDays, days, c.minDays, c.maxDays)
	}
	ids := c.sel.Selected()
	c.gen++
	myGen := c.gen
	c.mu.Unlock()

	res, err := c.api.GenerateItinerary(ctx, types.ItineraryRequest{
		AttractionIDs: ids,
		Days:          days,
		StartLocation: c.startLocation,
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if myGen != c.gen {
		return nil, ErrSuperseded
	}
	c.current = res
	return res, nil
}

// Current returns the itinerary currently on display, nil before the first
// successful request.
func (c *Controller) Current() *types.ItineraryResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
