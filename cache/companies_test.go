package cache

import (
	"os"
	"path/filepath"
	"testing"

	"taxinvoice-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() []models.Company {
	return []models.Company{
		{ID: uuid.New(), GstNo: "27AAPFU0939F1ZV", Name: "Default Traders"},
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c := NewCompanyCache(t.TempDir())

	got := c.Load(defaults())

	require.Len(t, got, 1)
	assert.Equal(t, "Default Traders", got[0].Name)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	c := NewCompanyCache(t.TempDir())
	companies := []models.Company{
		{ID: uuid.New(), GstNo: "24AABCP1234Q1Z5", Name: "Patel Construction Co", State: "Gujarat", StateCode: "24", PendingAmount: 1250.50},
		{ID: uuid.New(), GstNo: "27AAPFU0939F1ZV", Name: "Sharma Steel Traders"},
	}

	require.NoError(t, c.Save(companies))
	got := c.Load(defaults())

	require.Len(t, got, 2)
	assert.Equal(t, "Patel Construction Co", got[0].Name)
	assert.Equal(t, 1250.50, got[0].PendingAmount)
}

func TestLoadRejectsEntriesWithoutGstNo(t *testing.T) {
	dir := t.TempDir()
	c := NewCompanyCache(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, StorageKey),
		[]byte(`[{"gstNo":"","name":"Nameless"}]`), 0644))

	got := c.Load(defaults())

	require.Len(t, got, 1)
	assert.Equal(t, "Default Traders", got[0].Name)
}

func TestLoadRejectsEmptySnapshots(t *testing.T) {
	for _, snapshot := range []string{`null`, `[]`} {
		dir := t.TempDir()
		c := NewCompanyCache(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, StorageKey),
			[]byte(snapshot), 0644))

		got := c.Load(defaults())

		require.Len(t, got, 1, "snapshot %q must fall back to defaults", snapshot)
		assert.Equal(t, "Default Traders", got[0].Name)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	c := NewCompanyCache(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, StorageKey),
		[]byte(`{"not":"an array"`), 0644))

	got := c.Load(defaults())

	require.Len(t, got, 1)
	assert.Equal(t, "Default Traders", got[0].Name)
}
