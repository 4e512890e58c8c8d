package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	fileConfig = FileConfig{}

	assert.Equal(t, "comicshelf", GetName())
	assert.NotEmpty(t, GetVersion())
	assert.Equal(t, 8000, GetPort())
	assert.Equal(t, "0.0.0.0", GetListen())
	assert.Equal(t, "uploads", GetUploadFolder())
	assert.Equal(t, "db/comicshelf.db", GetDBPath())
	assert.Equal(t, "https://www.googleapis.com/books/v1", GetCatalogURL())
}

func TestEnvOverrides(t *testing.T) {
	fileConfig = FileConfig{}
	t.Setenv("COMICSHELF_PORT", "9090")
	t.Setenv("COMICSHELF_UPLOAD_FOLDER", "/tmp/staging")
	t.Setenv("COMICSHELF_CATALOG_URL", "http://catalog.local")

	assert.Equal(t, 9090, GetPort())
	assert.Equal(t, "/tmp/staging", GetUploadFolder())
	assert.Equal(t, "http://catalog.local", GetCatalogURL())
}

func TestLoadFile(t *testing.T) {
	fileConfig = FileConfig{}
	defer func() { fileConfig = FileConfig{} }()

	path := filepath.Join(t.TempDir(), "comicshelf.toml")
	content := "port = 7070\nuploadFolder = \"/var/lib/comicshelf/uploads\"\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	assert.NoError(t, LoadFile(path))

	// File values win over env vars
	t.Setenv("COMICSHELF_PORT", "9090")
	assert.Equal(t, 7070, GetPort())
	assert.Equal(t, "/var/lib/comicshelf/uploads", GetUploadFolder())
}

func TestLoadFileMissing(t *testing.T) {
	assert.NoError(t, LoadFile(filepath.Join(t.TempDir(), "absent.toml")))
}
