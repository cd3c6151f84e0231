package site_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forsaj/sitecontent/core/site"
)

func TestNewFromEnv(t *testing.T) {
	t.Setenv("SITE_CONTENT_BASE_URL", "http://localhost:8055")
	t.Setenv("SITE_STATE_PATH", filepath.Join(t.TempDir(), "state.json"))

	svc, err := site.NewFromEnv(context.Background())
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	assert.NotNil(t, svc)
	assert.Empty(t, svc.Pages(), "no snapshot before the first fetch")
}
