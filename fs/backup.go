// Package fs locates Firefox bookmark backups on disk.
package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/foxmark"
)

// LatestBackup returns the path of the newest bookmark backup JSON file in
// dir. Firefox names backups bookmarks-YYYY-MM-DD.json, so lexicographic
// order is date order; unrelated files are ignored.
func LatestBackup(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "bookmarks-") && strings.HasSuffix(name, ".json") {
			backups = append(backups, name)
		}
	}
	if len(backups) == 0 {
		return "", foxmark.Errorf(foxmark.ENOTFOUND, "no bookmark backups in %q", dir)
	}

	sort.Strings(backups)
	return filepath.Join(dir, backups[len(backups)-1]), nil
}
