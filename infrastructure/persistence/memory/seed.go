package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SeedLoader decodes a dataset from one file format
type SeedLoader interface {
	Load(reader io.Reader, target *Dataset) error
	Extension() string
}

// JSONSeedLoader reads JSON seed files
type JSONSeedLoader struct{}

// Load implements SeedLoader
func (JSONSeedLoader) Load(reader io.Reader, target *Dataset) error {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

// Extension implements SeedLoader
func (JSONSeedLoader) Extension() string { return "json" }

// YAMLSeedLoader reads YAML seed files
type YAMLSeedLoader struct{}

// Load implements SeedLoader
func (YAMLSeedLoader) Load(reader io.Reader, target *Dataset) error {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	return decoder.Decode(target)
}

// Extension implements SeedLoader
func (YAMLSeedLoader) Extension() string { return "yaml" }

var seedLoaders = map[string]SeedLoader{
	"json": JSONSeedLoader{},
	"yaml": YAMLSeedLoader{},
	"yml":  YAMLSeedLoader{},
}

// LoadDataset reads a seed file, choosing the decoder by file extension
func LoadDataset(path string) (*Dataset, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	loader, ok := seedLoaders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported seed format %q", ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data := &Dataset{}
	if err := loader.Load(file, data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return data, nil
}

// NewStoreFromFile builds a store from a seed file. A missing or malformed
// seed is logged and yields an empty store.
func NewStoreFromFile(path string, logger *zap.Logger, opts ...StoreOption) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := LoadDataset(path)
	if err != nil {
		logger.Error("Failed to load seed data, starting with an empty store",
			zap.String("path", path),
			zap.Error(err),
		)
		return NewStore(&Dataset{}, logger, opts...)
	}

	store := NewStore(data, logger, opts...)
	counts := store.Counts()
	logger.Info("Seed data loaded",
		zap.String("path", path),
		zap.Int("users", counts["users"]),
		zap.Int("weeks", counts["weeks"]),
		zap.Int("cards", counts["cards"]),
		zap.Int("sessions", counts["sessions"]),
	)
	return store
}
