package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigracionInicial_ContieneRestricciones(t *testing.T) {
	data, err := migrationsFS.ReadFile("migrations/00001_init_schema.sql")
	require.NoError(t, err)
	content := string(data)

	checks := []string{
		"-- +goose Up",
		"-- +goose Down",
		"UNIQUE (product_id, branch_id)",
		"CHECK (quantity >= 0)",
		"CHECK (quantity > 0)",
		"UNIQUE (business_id, document_type, document_number)",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE RESTRICT",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS movements",
	}
	for _, sub := range checks {
		assert.Contains(t, content, sub)
	}
}

func TestMigraciones_NombresOrdenables(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Regexp(t, `^\d{5}_[a-z_]+\.sql$`, e.Name())
	}
}
