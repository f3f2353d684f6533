package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/harentsoaR/people-api/internal/models"
	"github.com/harentsoaR/people-api/internal/utils"
)

// LoadSeedFile reads a JSON array of Day Records (the GET /people/all shape)
// and stores each one. It returns how many records were loaded.
func LoadSeedFile(ctx context.Context, s Seeder, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	var days []models.DayRecord
	if err := json.Unmarshal(raw, &days); err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	for i, d := range days {
		if _, err := utils.ParseDate(d.Date, nil); err != nil {
			return i, fmt.Errorf("seed record %d: date %q: %w", i, d.Date, err)
		}
		if err := s.Put(ctx, d); err != nil {
			return i, err
		}
	}
	return len(days), nil
}
