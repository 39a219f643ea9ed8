package edux

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// cacheDuration determines how long the course list is kept before refreshing
const cacheDuration = 12 * time.Hour

// CacheEntry represents the disk data format
type CacheEntry struct {
	Timestamp time.Time `json:"timestamp"`
	BaseURL   string    `json:"base_url"`
	Courses   []string  `json:"courses"`
}

// DefaultCacheDir returns ~/.eduxctl_cache
func DefaultCacheDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".eduxctl_cache"), nil
}

func getCachePath(dir, baseURL string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}

	// One file per Edux instance, e.g. "edux.fit.cvut.cz" -> "courses_edux.fit.cvut.cz.json"
	host := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.NewReplacer(":", "_", "/", "_").Replace(host)
	return filepath.Join(dir, "courses_"+host+".json"), nil
}

// readCache checks if a valid, unexpired course list exists for this instance
func readCache(dir, baseURL string) ([]string, bool) {
	if dir == "" {
		return nil, false
	}
	path, err := getCachePath(dir, baseURL)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Since(entry.Timestamp) > cacheDuration || entry.BaseURL != baseURL || len(entry.Courses) == 0 {
		return nil, false
	}

	return entry.Courses, true
}

// writeCache saves the course list to disk
func writeCache(dir, baseURL string, courses []string) {
	if dir == "" {
		return
	}
	path, err := getCachePath(dir, baseURL)
	if err != nil {
		return
	}

	entry := CacheEntry{
		Timestamp: time.Now(),
		BaseURL:   baseURL,
		Courses:   courses,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0644)
}
