package workflow

import (
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	gocache "github.com/patrickmn/go-cache"

	"github.com/nepaltrails/trip-planner/internal/types"
)

// localStoreKey mirrors the key the browser front-end used for its
// device-local preference copy.
const localStoreKey = "nepalRecommenderPreferences"

func init() {
	gob.Register(types.PreferenceRecord{})
}

// PreferenceStore is one tier of the preference persistence stack.
// Load returns (nil, nil) when the tier holds no record.
type PreferenceStore interface {
	Save(ctx context.Context, rec types.PreferenceRecord) error
	Load(ctx context.Context) (*types.PreferenceRecord, error)
}

var (
	_ PreferenceStore = (*RemoteStore)(nil)
	_ PreferenceStore = (*LocalStore)(nil)
)

// RemoteStore persists preferences through the API, keyed by session.
type RemoteStore struct {
	api       API
	sessionID string
}

func NewRemoteStore(api API, sessionID string) *RemoteStore {
	return &RemoteStore{api: api, sessionID: sessionID}
}

func (s *RemoteStore) Save(ctx context.Context, rec types.PreferenceRecord) error {
	return s.api.SavePreferences(ctx, types.SavePreferencesRequest{
		SessionID:  s.sessionID,
		Category:   rec.PreferredCategory,
		MaxCost:    rec.MaxCost,
		Difficulty: rec.Difficulty,
		Regions:    rec.PreferredRegions,
	})
}

func (s *RemoteStore) Load(ctx context.Context) (*types.PreferenceRecord, error) {
	return s.api.LoadPreferences(ctx, s.sessionID)
}

// LocalStore is the on-device fallback tier, a single record persisted to a
// file so it survives process restarts.
type LocalStore struct {
	path  string
	cache *gocache.Cache
}

// NewLocalStore opens the fallback store at path. An empty path places the
// file under the user config directory.
func NewLocalStore(path string) (*LocalStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		path = filepath.Join(dir, "nepal-trails", "preferences.gob")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create preference dir: %w", err)
	}

	c := gocache.New(gocache.NoExpiration, 0)
	// A missing file just means nothing has been saved yet.
	_ = c.LoadFile(path)

	return &LocalStore{path: path, cache: c}, nil
}

func (s *LocalStore) Save(_ context.Context, rec types.PreferenceRecord) error {
	s.cache.Set(localStoreKey, rec, gocache.NoExpiration)
	if err := s.cache.SaveFile(s.path); err != nil {
		return fmt.Errorf("failed to persist preferences: %w", err)
	}
	return nil
}

func (s *LocalStore) Load(_ context.Context) (*types.PreferenceRecord, error) {
	v, ok := s.cache.Get(localStoreKey)
	if !ok {
		return nil, nil
	}
	rec, ok := v.(types.PreferenceRecord)
	if !ok {
		return nil, fmt.Errorf("unexpected preference record type %T", v)
	}
	return &rec, nil
}
