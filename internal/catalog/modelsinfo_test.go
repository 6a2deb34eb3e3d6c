package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseModelsInfo(t *testing.T) {
	doc := `# Models

**Llama 3.1 8B**
- Model ID: llama-3.1-8b-instant
- Fast small model
- Good for everyday chat

**Whisper Large v3**
- Model ID: whisper-large-v3
- Speech to text
`
	path := filepath.Join(t.TempDir(), "models_info.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	info, err := ParseModelsInfo(path)
	require.NoError(t, err)
	require.Len(t, info, 2)
	require.Equal(t, "- Fast small model\n- Good for everyday chat", info["llama-3.1-8b-instant"])
	require.Equal(t, "- Speech to text", info["whisper-large-v3"])
}

func TestParseModelsInfoHeaderOnlyBlock(t *testing.T) {
	doc := `**bare-model-id**
- The header doubles as the id when no Model ID line follows
`
	path := filepath.Join(t.TempDir(), "models_info.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	info, err := ParseModelsInfo(path)
	require.NoError(t, err)
	require.Contains(t, info, "bare-model-id")
}

func TestParseModelsInfoMissingFile(t *testing.T) {
	_, err := ParseModelsInfo(filepath.Join(t.TempDir(), "nope.md"))
	require.Error(t, err)
}
