package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeGarbage(t *testing.T, directory string, name string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(directory, name), []byte("{not json"), 0644)
	require.NoError(t, err)
}
