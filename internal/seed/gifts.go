// Package seed loads reference data into a freshly migrated database.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed gifts.yaml
var defaultGifts []byte

// ParseGifts decodes a YAML gift list and checks every entry
func ParseGifts(data []byte) ([]models.Gift, error) {
	var gifts []models.Gift
	if err := yaml.Unmarshal(data, &gifts); err != nil {
		return nil, fmt.Errorf("parse gifts: %w", err)
	}
	seen := make(map[string]bool, len(gifts))
	for i, g := range gifts {
		if g.Name == "" {
			return nil, fmt.Errorf("gift %d: name is required", i)
		}
		if g.Price <= 0 {
			return nil, fmt.Errorf("gift %q: price must be positive", g.Name)
		}
		if seen[g.Name] {
			return nil, fmt.Errorf("gift %q: duplicate name", g.Name)
		}
		seen[g.Name] = true
	}
	return gifts, nil
}

// Gifts upserts the catalog from path, or the built-in one when path is empty.
// It returns the number of gifts written.
func Gifts(db *gorm.DB, path string) (int, error) {
	data := defaultGifts
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return 0, fmt.Errorf("read gifts: %w", err)
		}
	}
	gifts, err := ParseGifts(data)
	if err != nil {
		return 0, err
	}
	if err := repositories.NewPostgresGiftRepository(db).UpsertGifts(gifts); err != nil {
		return 0, err
	}
	return len(gifts), nil
}
