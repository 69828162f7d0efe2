package foxmark

import "context"

// NosaveTag is the tag users attach to bookmarks whose page content should
// never be downloaded. Marks carrying it keep empty body fields and store
// NosaveErr as their error state so the download queue skips them.
const NosaveTag = "nosave"

// NosaveErr is the LastErr sentinel meaning "permanently excluded from
// download". It is distinct from real fetch errors, which are transient.
const NosaveErr = "nosave"

// Mark represents a stored bookmark: its identity fields, downloaded page
// content, and download state.
type Mark struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URI   string `json:"uri"`

	// Tags is a space-delimited list of tag names.
	Tags string `json:"tags"`

	// Hash fingerprints (URI, Title, Tags, Added). Identical hashes mean
	// the same logical mark; reconciliation skips re-registration on match.
	Hash string `json:"hash"`

	// Body is the raw fetched HTML; BodyClean is its normalized plain text.
	// Both are empty until the first successful download.
	Body      string `json:"body"`
	BodyClean string `json:"bodyClean"`

	// LastErr is the last download error message, "" when none, or
	// NosaveErr when the mark is excluded from download.
	LastErr string `json:"lastErr"`

	// Added, Modified, and Downloaded are Unix timestamps in seconds.
	// Downloaded is 0 until the first successful fetch.
	Added      int64 `json:"added"`
	Modified   int64 `json:"modified"`
	Downloaded int64 `json:"downloaded"`

	// Deleted is the soft-delete flag; rows are removed physically only by
	// explicit prune/delete operations.
	Deleted bool `json:"deleted"`
}

// Validate returns an error if the mark contains invalid fields.
func (m *Mark) Validate() error {
	if m.URI == "" {
		return Errorf(EINVALID, "mark URI required")
	}
	if m.Hash == "" {
		return Errorf(EINVALID, "mark hash required")
	}
	return nil
}

// Pending reports whether the mark is awaiting download.
func (m *Mark) Pending() bool {
	return m.Downloaded == 0 && m.LastErr == ""
}

// MarkRef identifies a mark queued for download.
type MarkRef struct {
	ID  int64
	URI string
}

// MarkService represents the storage layer for marks.
//
// Per-row writes keyed by distinct IDs are independent and may be issued
// concurrently; multi-row operations are not wrapped in a single
// transaction, so callers must tolerate partial completion.
type MarkService interface {
	// Register upserts a mark by its hash: it inserts a new row or, on
	// conflict, refreshes tags and title in place (e.g. a nosave tag was
	// added in the browser). It never duplicates by hash. The mark's ID is
	// set on insert.
	Register(ctx context.Context, mark *Mark) error

	// SaveSuccess stores a fetched body and its cleaned text, records the
	// download timestamp, clears any previous error, and updates the title
	// extracted from the page.
	SaveSuccess(ctx context.Context, id int64, body, bodyClean, title string) error

	// SaveError records a download error message for the mark.
	SaveError(ctx context.Context, id int64, message string) error

	// RemoveError clears the mark's error state so the next download run
	// retries it. Returns true iff a row changed.
	RemoveError(ctx context.Context, id int64) (bool, error)

	// FlagForRedownload resets the download timestamp and error state so
	// the next run refetches the mark. Returns true iff a row changed.
	FlagForRedownload(ctx context.Context, id int64) (bool, error)

	// FlagNonDownloadable clears body fields and sets LastErr to NosaveErr
	// for marks tagged nosave that still hold content. Idempotent; returns
	// the number of rows affected.
	FlagNonDownloadable(ctx context.Context) (int64, error)

	// DeleteMarksByID permanently removes marks. Returns the number of
	// rows removed.
	DeleteMarksByID(ctx context.Context, ids []int64) (int64, error)

	// ToggleDeletionFlag flips the soft-delete flag. Returns true iff a
	// row changed.
	ToggleDeletionFlag(ctx context.Context, id int64) (bool, error)

	// MarksToDownload returns marks pending download: no successful fetch
	// yet and an empty error state.
	MarksToDownload(ctx context.Context) ([]*MarkRef, error)

	// MarkByID retrieves a mark by ID. Returns ENOTFOUND if absent.
	MarkByID(ctx context.Context, id int64) (*Mark, error)

	// MarkHashes returns the complete hash-to-ID map, fetched once per
	// reconcile pass.
	MarkHashes(ctx context.Context) (map[string]int64, error)

	// MarksForSearch retrieves full rows for the given IDs in one batch.
	// The result is keyed by ID; iteration order is not the rank order.
	MarksForSearch(ctx context.Context, ids []int64) (map[int64]*Mark, error)

	// MarkCount returns the total number of marks.
	MarkCount(ctx context.Context) (int64, error)

	// ErrorLog returns marks with real download errors (not nosave),
	// newest first, at most limit rows.
	ErrorLog(ctx context.Context, limit int) ([]*Mark, error)

	// MarksFlaggedForDeletion returns IDs of soft-deleted marks.
	MarksFlaggedForDeletion(ctx context.Context) ([]int64, error)
}
