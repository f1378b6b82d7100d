package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FindRecordFiles returns every regular *.json file under root. Entries that
// cannot be read are skipped; only a missing root is an error.
func FindRecordFiles(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("corpus directory: %w", err)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && isRecordFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}
