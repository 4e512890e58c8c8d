// Package config exposes build metadata and runtime settings for comicshelf.
// Settings come from environment variables (COMICSHELF_*) with an optional
// comicshelf.toml overlay for deployments that prefer a file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// FileConfig mirrors the comicshelf.toml layout. Every field is optional;
// values present in the file take precedence over environment variables.
type FileConfig struct {
	Listen       string `toml:"listen"`
	Port         int    `toml:"port"`
	DBFolder     string `toml:"dbFolder"`
	LogFolder    string `toml:"logFolder"`
	UploadFolder string `toml:"uploadFolder"`
	CatalogURL   string `toml:"catalogUrl"`
	Secret       string `toml:"secret"`
}

var fileConfig FileConfig

// LoadFile reads the optional TOML config overlay. A missing file is not an
// error; a malformed one is.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return toml.Unmarshal(data, &fileConfig)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("COMICSHELF_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("COMICSHELF_DEBUG") == "true"
}

func GetListen() string {
	if fileConfig.Listen != "" {
		return fileConfig.Listen
	}
	listen := os.Getenv("COMICSHELF_LISTEN")
	if listen == "" {
		return "0.0.0.0"
	}
	return listen
}

func GetPort() int {
	if fileConfig.Port != 0 {
		return fileConfig.Port
	}
	if port, err := strconv.Atoi(os.Getenv("COMICSHELF_PORT")); err == nil && port > 0 {
		return port
	}
	return 8000
}

func GetDBFolderPath() string {
	if fileConfig.DBFolder != "" {
		return fileConfig.DBFolder
	}
	dbFolderPath := os.Getenv("COMICSHELF_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	if fileConfig.LogFolder != "" {
		return fileConfig.LogFolder
	}
	logFolderPath := os.Getenv("COMICSHELF_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

// GetUploadFolder returns the staging directory for uploaded cover images.
func GetUploadFolder() string {
	if fileConfig.UploadFolder != "" {
		return fileConfig.UploadFolder
	}
	uploadFolder := os.Getenv("COMICSHELF_UPLOAD_FOLDER")
	if uploadFolder == "" {
		uploadFolder = "uploads"
	}
	return uploadFolder
}

// GetCatalogURL returns the base URL of the volume catalog API.
func GetCatalogURL() string {
	if fileConfig.CatalogURL != "" {
		return fileConfig.CatalogURL
	}
	catalogURL := os.Getenv("COMICSHELF_CATALOG_URL")
	if catalogURL == "" {
		catalogURL = "https://www.googleapis.com/books/v1"
	}
	return catalogURL
}

// GetSecret returns the session cookie secret, empty when unset. The web
// server falls back to a random per-process secret in that case.
func GetSecret() string {
	if fileConfig.Secret != "" {
		return fileConfig.Secret
	}
	return os.Getenv("COMICSHELF_SECRET")
}
