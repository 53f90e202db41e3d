package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PackFile represents a discovered rule pack file
type PackFile struct {
	FilePath string
	Content  []byte
}

// DiscoverPacks walks the configured paths and reads every YAML file found.
// Missing directories are skipped so a repo without custom packs loads clean.
func DiscoverPacks(paths []string) ([]PackFile, error) {
	var files []PackFile

	for _, basePath := range paths {
		discovered, err := discoverInPath(basePath)
		if err != nil {
			return nil, fmt.Errorf("failed to discover rule packs in %s: %w", basePath, err)
		}

		files = append(files, discovered...)
	}

	return files, nil
}

func discoverInPath(basePath string) ([]PackFile, error) {
	var files []PackFile

	err := filepath.Walk(basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil // Skip if directory doesn't exist
			}
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		content, readErr := os.ReadFile(path) //nolint:gosec // Paths come from user configuration
		if readErr != nil {
			return readErr
		}

		files = append(files, PackFile{FilePath: path, Content: content})

		return nil
	})

	return files, err
}
