package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Yazip/tayat/internal/diag"
)

func TestLoadSource_DecodesByBOM(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "UTF-8 without BOM",
			data: []byte("int main(){}"),
			want: "int main(){}",
		},
		{
			name: "UTF-8 with BOM",
			data: []byte{0xEF, 0xBB, 0xBF, 'm', 'a', 'i', 'n'},
			want: "main",
		},
		{
			name: "UTF-16 LE with BOM",
			data: []byte{
				0xFF, 0xFE,
				'm', 0x00, 'a', 0x00, 'i', 0x00, 'n', 0x00,
			},
			want: "main",
		},
		{
			name: "UTF-16 BE with BOM",
			data: []byte{
				0xFE, 0xFF,
				0x00, 'm', 0x00, 'a', 0x00, 'i', 0x00, 'n',
			},
			want: "main",
		},
		{
			name: "empty file",
			data: []byte{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".tayat")
			require.NoError(t, os.WriteFile(path, tt.data, 0o644))

			got, derr := LoadSource(path)
			require.Nil(t, derr)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSource_InvalidUTF8PromotesBytesToRunes(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "invalid.tayat")
	require.NoError(t, os.WriteFile(path, []byte{'a', 0xFF, 'b'}, 0o644))

	got, derr := LoadSource(path)
	require.Nil(t, derr)
	require.Equal(t, string([]rune{'a', 0xFF, 'b'}), got)
}

func TestLoadSource_MissingFileReportsIODiagnostic(t *testing.T) {
	_, derr := LoadSource(filepath.Join(t.TempDir(), "does-not-exist.tayat"))
	require.NotNil(t, derr)
	require.Equal(t, diag.IO, derr.Category)
}
