package hybrid

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kmitrowski/paperparse"
)

// listPDFs returns the PDF files under dir in deterministic (sorted) order.
// Extension matching is case-insensitive. An unreadable directory is a
// fatal configuration error.
func listPDFs(dir string, recursive bool) ([]string, error) {
	var files []string

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isPDF(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, paperparse.Errorf(paperparse.EINVALID, "cannot read input directory %q: %v", dir, err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, paperparse.Errorf(paperparse.EINVALID, "cannot read input directory %q: %v", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && isPDF(entry.Name()) {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
