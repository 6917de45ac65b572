// Package cache persists a local JSON snapshot of the company list under a
// fixed key, so a previously used buyer list survives restarts and is
// available as the seed when the database starts empty.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"taxinvoice-backend/models"
)

// StorageKey is the fixed name of the snapshot file.
const StorageKey = "tax-invoice-companies.json"

type CompanyCache struct {
	path string
}

func NewCompanyCache(dir string) *CompanyCache {
	return &CompanyCache{path: filepath.Join(dir, StorageKey)}
}

// Load returns the cached company list when every entry carries a non-empty
// gstNo and name; on a missing file, unreadable JSON or a failed validation
// it falls back to defaults.
func (c *CompanyCache) Load(defaults []models.Company) []models.Company {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return defaults
	}

	var companies []models.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return defaults
	}
	// "null" and "[]" both decode cleanly into an empty slice
	if len(companies) == 0 {
		return defaults
	}
	for _, company := range companies {
		if company.GstNo == "" || company.Name == "" {
			return defaults
		}
	}
	return companies
}

// Save writes the company list snapshot. Failures are reported, not fatal;
// the cache is an optimisation, never the source of truth.
func (c *CompanyCache) Save(companies []models.Company) error {
	data, err := json.Marshal(companies)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0644)
}
