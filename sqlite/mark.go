package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/foxmark"
)

// Compile-time interface verification.
var _ foxmark.MarkService = (*MarkService)(nil)

// MarkService implements foxmark.MarkService using SQLite.
type MarkService struct {
	db *DB

	// now is swappable in tests.
	now func() time.Time
}

// NewMarkService creates a new MarkService.
func NewMarkService(db *DB) *MarkService {
	return &MarkService{db: db, now: time.Now}
}

const markColumns = "id, title, uri, hash, tags, body, body_clean, last_err, added, modified, downloaded, deleted"

// Register upserts a mark by hash. A fresh insert also bumps the use
// counter of each of the mark's tags inside the same transaction, so the
// tag browser stays consistent with the marks table.
func (s *MarkService) Register(ctx context.Context, mark *foxmark.Mark) error {
	if err := mark.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM marks WHERE hash = ?", mark.Hash).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		// New mark.
	case err != nil:
		return err
	default:
		// Same identity already registered: refresh the mutable fields
		// in place (e.g. a nosave tag was added in the browser).
		_, err = tx.ExecContext(ctx, `
			UPDATE marks SET tags = ?, title = ?, last_err = ?, modified = ?
			WHERE id = ?
		`, mark.Tags, mark.Title, mark.LastErr, mark.Modified, existingID)
		if err != nil {
			return err
		}
		mark.ID = existingID
		return tx.Commit()
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO marks (title, uri, hash, tags, body, body_clean, last_err, added, modified, deleted)
		VALUES (?, ?, ?, ?, '', '', ?, ?, ?, 0)
	`, mark.Title, mark.URI, mark.Hash, mark.Tags, mark.LastErr, mark.Added, mark.Modified)
	if err != nil {
		return err
	}
	mark.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}

	now := s.now().Unix()
	for _, tag := range strings.Fields(mark.Tags) {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO tags (name, uses, modified) VALUES (?, 1, ?)
			ON CONFLICT(name) DO UPDATE SET uses = uses + 1, modified = excluded.modified
		`, tag, now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveSuccess stores fetched content, stamps the download time, and clears
// any previous error. An empty title leaves the stored title untouched.
func (s *MarkService) SaveSuccess(ctx context.Context, id int64, body, bodyClean, title string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE marks
		SET body = ?, body_clean = ?, downloaded = ?, last_err = '',
			title = CASE WHEN ? = '' THEN title ELSE ? END
		WHERE id = ?
	`, body, bodyClean, s.now().Unix(), title, title, id)
	return err
}

// SaveError records a download error message for the mark.
func (s *MarkService) SaveError(ctx context.Context, id int64, message string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE marks SET last_err = ? WHERE id = ?", message, id)
	return err
}

// RemoveError clears the mark's error state.
func (s *MarkService) RemoveError(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE marks SET last_err = '' WHERE id = ? AND last_err != ''", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// FlagForRedownload resets the download state so the next run refetches.
func (s *MarkService) FlagForRedownload(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE marks SET downloaded = 0, last_err = '' WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// FlagNonDownloadable erases content for nosave-tagged marks that still
// hold a body. The space padding makes the LIKE match whole tag tokens.
func (s *MarkService) FlagNonDownloadable(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE marks
		SET body = '', body_clean = '', downloaded = 0, last_err = ?
		WHERE (' ' || tags || ' ') LIKE ? AND body != ''
	`, foxmark.NosaveErr, "% "+foxmark.NosaveTag+" %")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteMarksByID permanently removes marks.
func (s *MarkService) DeleteMarksByID(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args := inClause("DELETE FROM marks WHERE id IN ", ids)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ToggleDeletionFlag flips the soft-delete flag.
func (s *MarkService) ToggleDeletionFlag(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE marks SET deleted = NOT deleted WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// MarksToDownload returns marks pending download. Marks flagged nosave or
// carrying an error state are excluded by the last_err predicate.
func (s *MarkService) MarksToDownload(ctx context.Context) ([]*foxmark.MarkRef, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, uri FROM marks WHERE downloaded = 0 AND last_err = ''")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []*foxmark.MarkRef
	for rows.Next() {
		var ref foxmark.MarkRef
		if err := rows.Scan(&ref.ID, &ref.URI); err != nil {
			return nil, err
		}
		refs = append(refs, &ref)
	}
	return refs, rows.Err()
}

// MarkByID retrieves a mark by ID.
func (s *MarkService) MarkByID(ctx context.Context, id int64) (*foxmark.Mark, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+markColumns+" FROM marks WHERE id = ?", id)

	mark, err := scanMark(row)
	if err == sql.ErrNoRows {
		return nil, foxmark.Errorf(foxmark.ENOTFOUND, "mark not found")
	}
	if err != nil {
		return nil, err
	}
	return mark, nil
}

// MarkHashes returns the complete hash-to-ID map.
func (s *MarkService) MarkHashes(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT hash, id FROM marks")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hashes := make(map[string]int64)
	for rows.Next() {
		var hash string
		var id int64
		if err := rows.Scan(&hash, &id); err != nil {
			return nil, err
		}
		hashes[hash] = id
	}
	return hashes, rows.Err()
}

// MarksForSearch retrieves full rows for the given IDs in one batch,
// keyed by ID. Row order is whatever SQLite returns, not rank order.
func (s *MarkService) MarksForSearch(ctx context.Context, ids []int64) (map[int64]*foxmark.Mark, error) {
	marks := make(map[int64]*foxmark.Mark)
	if len(ids) == 0 {
		return marks, nil
	}

	query, args := inClause("SELECT "+markColumns+" FROM marks WHERE id IN ", ids)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		mark, err := scanMark(rows)
		if err != nil {
			return nil, err
		}
		marks[mark.ID] = mark
	}
	return marks, rows.Err()
}

// MarkCount returns the total number of marks.
func (s *MarkService) MarkCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM marks").Scan(&count)
	return count, err
}

// ErrorLog returns marks with real download errors, newest first.
func (s *MarkService) ErrorLog(ctx context.Context, limit int) ([]*foxmark.Mark, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+markColumns+` FROM marks
		WHERE last_err NOT IN ('', ?)
		ORDER BY id DESC
		LIMIT ?
	`, foxmark.NosaveErr, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []*foxmark.Mark
	for rows.Next() {
		mark, err := scanMark(rows)
		if err != nil {
			return nil, err
		}
		marks = append(marks, mark)
	}
	return marks, rows.Err()
}

// MarksFlaggedForDeletion returns IDs of soft-deleted marks.
func (s *MarkService) MarksFlaggedForDeletion(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM marks WHERE deleted = 1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMark(sc scanner) (*foxmark.Mark, error) {
	var m foxmark.Mark
	err := sc.Scan(&m.ID, &m.Title, &m.URI, &m.Hash, &m.Tags, &m.Body,
		&m.BodyClean, &m.LastErr, &m.Added, &m.Modified, &m.Downloaded, &m.Deleted)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
