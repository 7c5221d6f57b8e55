package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsSharedTokenSecret(t *testing.T) {
	cfg := Config{
		AccessSecret:  "one-secret-for-both",
		RefreshSecret: "one-secret-for-both",
		DatabaseFile:  filepath.Join(t.TempDir(), "quizapi.db"),
	}

	_, err := New(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "secrets must differ")
}

func TestNewWithDistinctSecrets(t *testing.T) {
	cfg := Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		DatabaseFile:  filepath.Join(t.TempDir(), "quizapi.db"),
	}

	app, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, app.db.Close())
}
