package repository

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// loadDocument reads a whole-store JSON document into dst and reports
// whether dst was populated. A missing file is not an error: the store
// simply starts empty. Malformed content is logged and treated the same
// way rather than failing startup, so callers must discard dst when
// false is returned (it may be partially filled).
func loadDocument(path string, dst interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[storage] failed to read %s, starting empty: %v", path, err)
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("[storage] failed to parse %s, starting empty: %v", path, err)
		return false
	}

	return true
}

// saveDocument serializes the whole store to path, creating parent
// directories as needed.
func saveDocument(path string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
