package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/portwarden/portwarden/config"
	"github.com/portwarden/portwarden/domain"
	"github.com/portwarden/portwarden/pkg/logger"
)

// favoritesFile is the on-disk shape: a flat list of port numbers under a
// single named key.
type favoritesFile struct {
	FavoritePorts []uint16 `json:"favoritePorts"`
}

func NewFavoritesRepository(cfg config.FavoritesConfig) domain.FavoritesRepository {
	return &FavoritesRepository{path: cfg.Path}
}

type FavoritesRepository struct {
	path string
	mu   sync.Mutex
}

// Load reads the persisted port list. Absent or malformed content loads as
// an empty list: a broken favorites file must never take the app down.
func (r *FavoritesRepository) Load(ctx context.Context) ([]uint16, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Logger(ctx).Warn().Err(err).Str("path", r.path).Msg("failed to read favorites file, starting empty")
		}
		return []uint16{}, nil
	}

	var file favoritesFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Logger(ctx).Warn().Err(err).Str("path", r.path).Msg("favorites file is malformed, starting empty")
		return []uint16{}, nil
	}
	if file.FavoritePorts == nil {
		return []uint16{}, nil
	}
	return file.FavoritePorts, nil
}

// Save writes the full port list through a temp-file rename so a crash
// mid-write cannot leave a truncated file behind.
func (r *FavoritesRepository) Save(ctx context.Context, ports []uint16) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(favoritesFile{FavoritePorts: ports})
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".favorites-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, r.path)
}
