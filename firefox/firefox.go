// Package firefox parses Firefox bookmark-backup JSON into a snapshot the
// registry can reconcile. The backup is a folder tree; bookmarked pages
// live under the unfiled-bookmarks root and tag associations under the
// tags root, where each tag is a folder whose children repeat the pages
// carrying it.
package firefox

import (
	"encoding/json"

	"github.com/fwojciec/foxmark"
)

// node is one entry of the backup tree. Containers carry children; places
// carry a URI.
type node struct {
	Title        string `json:"title"`
	URI          string `json:"uri"`
	DateAdded    int64  `json:"dateAdded"`
	LastModified int64  `json:"lastModified"`
	Root         string `json:"root"`
	Children     []node `json:"children"`
}

// Root markers across backup generations: newer backups name roots with
// the "root" attribute, older ones only by folder title.
const (
	unfiledRoot  = "unfiledBookmarksFolder"
	tagsRoot     = "tagsFolder"
	unfiledTitle = "Unsorted Bookmarks"
	tagsTitle    = "Tags"
)

// Parse converts backup JSON into a snapshot.
func Parse(data []byte) (*foxmark.Snapshot, error) {
	var root node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, foxmark.Errorf(foxmark.EINVALID, "malformed bookmark backup: %v", err)
	}

	var unfiled, tags *node
	for i := range root.Children {
		child := &root.Children[i]
		switch {
		case child.Root == unfiledRoot || child.Title == unfiledTitle:
			unfiled = child
		case child.Root == tagsRoot || child.Title == tagsTitle:
			tags = child
		}
	}

	if unfiled == nil {
		return nil, foxmark.Errorf(foxmark.EINVALID, "bookmark backup has no unfiled bookmarks folder")
	}

	snap := &foxmark.Snapshot{
		Tags:        make(map[string][]string),
		TagModified: make(map[string]int64),
	}

	if tags != nil {
		for _, tag := range tags.Children {
			if tag.Title == "" {
				continue
			}
			snap.TagModified[tag.Title] = toSeconds(tag.LastModified)
			for _, page := range tag.Children {
				if page.URI == "" {
					continue
				}
				snap.Tags[page.URI] = append(snap.Tags[page.URI], tag.Title)
			}
		}
	}

	for _, child := range unfiled.Children {
		if child.URI == "" {
			continue
		}
		snap.Marks = append(snap.Marks, foxmark.SnapshotMark{
			URI:          child.URI,
			Title:        child.Title,
			LastModified: toSeconds(child.LastModified),
			DateAdded:    toSeconds(child.DateAdded),
		})
	}

	return snap, nil
}

// toSeconds normalizes a backup timestamp to Unix seconds. Firefox has
// written microseconds and milliseconds across versions; anything wider
// than a 10-digit value is scaled down.
func toSeconds(ts int64) int64 {
	for ts > 9_999_999_999 {
		ts /= 1000
	}
	return ts
}
