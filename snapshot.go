package foxmark

// SnapshotMark is one bookmark entry from an imported browser snapshot.
type SnapshotMark struct {
	URI   string
	Title string

	// LastModified and DateAdded are Unix timestamps in seconds.
	LastModified int64
	DateAdded    int64
}

// Snapshot is a parsed bookmark export: the bookmarked pages plus the tag
// associations the browser stores in a separate folder tree.
type Snapshot struct {
	Marks []SnapshotMark

	// Tags maps a bookmarked URI to the tag names associated with it.
	Tags map[string][]string

	// TagModified maps a tag name to its own last-modified Unix timestamp.
	// A tag edit can bump the freshness of every mark carrying it even
	// when the mark's folder entry was not touched.
	TagModified map[string]int64
}
