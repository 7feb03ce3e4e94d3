package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetPathAfterGetLogger(t *testing.T) {
	// The logger is grabbed at package init time all over the tree; the
	// configured path must still win.
	log := GetLogger()

	path := filepath.Join(t.TempDir(), "debug.log")
	SetPath(path)
	log.Info("redirected")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "redirected")
}

func TestSetPathEmptyIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	SetPath(path)
	SetPath("")
	GetLogger().Info("kept destination")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "kept destination")
}
