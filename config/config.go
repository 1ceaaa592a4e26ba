package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultDatabaseFile = "db/data.db"
	DefaultPort         = "8082"
)

const (
	RestoreModeDestructive = "destructive"
	RestoreModeStaged      = "staged"
)

const (
	defaultMaxUploadBytes = 100 << 20
	defaultBusyTimeoutMS  = 5000
)

type Config struct {
	// working directory the store file is resolved against; restore extracts here
	WorkDirectory string

	// store path relative to WorkDirectory, also used as the archive entry name
	DatabaseFile string
	DatabasePath string // full-calculated path of the store file

	// backup/restore settings
	TempDirectory  string
	RestoreMode    string
	MaxUploadBytes int64

	// sqlite busy timeout in milliseconds
	BusyTimeoutMS int

	// http settings
	Port               string
	CORSAllowedOrigins []string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func LoadConfig() (Config, error) {
	workDir := getEnvOrDefault("WORK_DIRECTORY", ".")
	absWorkDir, err := filepath.Abs(workDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for work directory '%s': %w", workDir, err)
	}

	dbFile := filepath.Clean(getEnvOrDefault("DATABASE_FILE", DefaultDatabaseFile))
	if filepath.IsAbs(dbFile) || dbFile == ".." || strings.HasPrefix(dbFile, ".."+string(filepath.Separator)) {
		return Config{}, fmt.Errorf("DATABASE_FILE '%s' must be relative to the work directory", dbFile)
	}

	tempDir := getEnvOrDefault("TEMP_DIRECTORY", os.TempDir())
	absTempDir, err := filepath.Abs(tempDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for temp directory '%s': %w", tempDir, err)
	}

	restoreMode := strings.ToLower(getEnvOrDefault("RESTORE_MODE", RestoreModeDestructive))
	if restoreMode != RestoreModeDestructive && restoreMode != RestoreModeStaged {
		log.Printf("Warning: Invalid RESTORE_MODE '%s'. Using default %s.", restoreMode, RestoreModeDestructive)
		restoreMode = RestoreModeDestructive
	}

	cfg := Config{
		WorkDirectory:      absWorkDir,
		DatabaseFile:       dbFile,
		DatabasePath:       filepath.Join(absWorkDir, dbFile),
		TempDirectory:      absTempDir,
		RestoreMode:        restoreMode,
		MaxUploadBytes:     int64(getEnvIntOrDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),
		BusyTimeoutMS:      getEnvIntOrDefault("BUSY_TIMEOUT_MS", defaultBusyTimeoutMS),
		Port:               getEnvOrDefault("PORT", DefaultPort),
		CORSAllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	return cfg, nil
}
