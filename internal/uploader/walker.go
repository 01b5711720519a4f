package uploader

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// Walk enumerates every regular file under root and returns one UploadItem
// per file, with the relative path slash-normalized. The slice is fully
// materialized so callers know the total before uploading anything.
// Symlinked directories are not followed.
func Walk(root string) ([]UploadItem, error) {
	var items []UploadItem

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("failed to relativize %s against %s: %w", p, root, err)
		}

		items = append(items, UploadItem{
			LocalPath:    p,
			RelativePath: filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return items, nil
}
