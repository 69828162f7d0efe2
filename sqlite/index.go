package sqlite

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/foxmark"
)

// Compile-time interface verification.
var _ foxmark.SearchIndex = (*Index)(nil)

// FieldWeights ranks matches by where they occur: a title hit outranks a
// body hit.
type FieldWeights struct {
	Title float64
	URI   float64
	Tags  float64
	Body  float64
}

// DefaultFieldWeights returns the ranking weights used by the search UI.
func DefaultFieldWeights() FieldWeights {
	return FieldWeights{Title: 10, URI: 6, Tags: 8, Body: 1}
}

// Index implements foxmark.SearchIndex over the marks_index FTS5 table.
// The table's rowid is the mark ID.
type Index struct {
	db      *DB
	weights FieldWeights
	now     func() time.Time

	// Guards the temp table used for excerpt building.
	excerptMu sync.Mutex
}

// NewIndex creates an Index with the default field weights.
func NewIndex(db *DB) *Index {
	return &Index{db: db, weights: DefaultFieldWeights(), now: time.Now}
}

// sortAttrs whitelists attributes usable with the attribute sort modes.
// Attribute names reach the ORDER BY clause as SQL text, so only known
// column names pass.
var sortAttrs = map[string]string{
	"modified":   "modified",
	"downloaded": "downloaded",
}

// Query matches q against the index and returns mark IDs in rank order.
func (ix *Index) Query(ctx context.Context, q string, opts foxmark.SearchOptions) ([]int64, error) {
	expr := matchExpr(q, opts.Match)
	if expr == "" {
		return nil, nil
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT rowid FROM marks_index WHERE marks_index MATCH ?")
	args = append(args, expr)

	if opts.MaxAge > 0 {
		now := ix.now().Unix()
		query.WriteString(" AND modified BETWEEN ? AND ?")
		args = append(args, now-int64(opts.MaxAge/time.Second), now)
	}

	switch opts.Sort {
	case foxmark.SortAttrDesc, foxmark.SortAttrAsc:
		col, ok := sortAttrs[opts.SortAttr]
		if !ok {
			return nil, foxmark.Errorf(foxmark.EINVALID, "unknown sort attribute %q", opts.SortAttr)
		}
		dir := "DESC"
		if opts.Sort == foxmark.SortAttrAsc {
			dir = "ASC"
		}
		fmt.Fprintf(&query, " ORDER BY %s %s", col, dir)
	default:
		// bm25() returns lower-is-better scores.
		w := ix.weights
		fmt.Fprintf(&query, " ORDER BY bm25(marks_index, %g, %g, %g, %g)", w.Title, w.URI, w.Tags, w.Body)
	}

	rows, err := ix.db.QueryContext(ctx, query.String(), args...)
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

// BuildExcerpts builds one highlighted excerpt per body, positionally
// aligned. It loads the bodies into a scratch FTS5 table so snippet() can
// run over arbitrary text rather than stored index rows; bodies without a
// match yield an empty excerpt.
func (ix *Index) BuildExcerpts(ctx context.Context, bodies []string, q string, cfg foxmark.ExcerptConfig) ([]string, error) {
	excerpts := make([]string, len(bodies))
	if len(bodies) == 0 {
		return excerpts, nil
	}

	expr := matchExpr(q, foxmark.MatchAny)
	if expr == "" {
		return excerpts, nil
	}

	around := cfg.Around
	if around <= 0 {
		around = foxmark.DefaultExcerptConfig().Around
	}

	ix.excerptMu.Lock()
	defer ix.excerptMu.Unlock()

	if _, err := ix.db.ExecContext(ctx, `
		CREATE VIRTUAL TABLE temp.excerpt_src USING fts5(
			body, tokenize='porter unicode61 remove_diacritics 1'
		)
	`); err != nil {
		return nil, err
	}
	defer ix.db.ExecContext(ctx, "DROP TABLE temp.excerpt_src")

	for i, body := range bodies {
		if _, err := ix.db.ExecContext(ctx,
			"INSERT INTO temp.excerpt_src (rowid, body) VALUES (?, ?)", i+1, body); err != nil {
			return nil, err
		}
	}

	rows, err := ix.db.QueryContext(ctx, `
		SELECT rowid, snippet(excerpt_src, 0, ?, ?, ?, ?)
		FROM temp.excerpt_src
		WHERE excerpt_src MATCH ?
	`, cfg.BeforeMatch, cfg.AfterMatch, cfg.ChunkSeparator, around, expr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pos int
		var excerpt string
		if err := rows.Scan(&pos, &excerpt); err != nil {
			return nil, err
		}
		if pos >= 1 && pos <= len(bodies) {
			excerpts[pos-1] = truncate(excerpt, cfg.Limit)
		}
	}
	return excerpts, rows.Err()
}

// Upsert inserts or replaces the document keyed by its mark ID.
func (ix *Index) Upsert(ctx context.Context, doc *foxmark.IndexDoc) error {
	tx, err := ix.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM marks_index WHERE rowid = ?", doc.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO marks_index (rowid, title, uri, tags, body_clean, modified, downloaded)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Title, doc.URI, doc.Tags, doc.BodyClean, doc.Modified, doc.Downloaded); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteByID removes a document from the index.
func (ix *Index) DeleteByID(ctx context.Context, id int64) error {
	_, err := ix.db.ExecContext(ctx, "DELETE FROM marks_index WHERE rowid = ?", id)
	return err
}

// Seed rebuilds the index from the marks table.
func (ix *Index) Seed(ctx context.Context) (int64, error) {
	tx, err := ix.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM marks_index"); err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO marks_index (rowid, title, uri, tags, body_clean, modified, downloaded)
		SELECT id, title, uri, tags, body_clean, modified, downloaded FROM marks
	`); err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM marks_index").Scan(&count); err != nil {
		return 0, err
	}
	return count, tx.Commit()
}

// matchExpr converts a user query into an FTS5 match expression. Terms are
// double-quoted so characters meaningful to the FTS5 query syntax (/, -,
// column filters) read as literals; extended mode passes the user's own
// operators through with only a slash escape.
func matchExpr(q string, mode foxmark.MatchMode) string {
	if mode == foxmark.MatchExtended {
		// A bare "/" is a syntax error in FTS5 query text.
		return strings.TrimSpace(strings.ReplaceAll(q, "/", " "))
	}

	var terms []string
	for _, field := range strings.Fields(q) {
		term := strings.ReplaceAll(field, `"`, "")
		if term != "" {
			terms = append(terms, `"`+term+`"`)
		}
	}
	if len(terms) == 0 {
		return ""
	}

	switch mode {
	case foxmark.MatchAny:
		return strings.Join(terms, " OR ")
	case foxmark.MatchPhrase:
		return `"` + strings.ReplaceAll(strings.TrimSpace(strings.ReplaceAll(q, `"`, "")), "\n", " ") + `"`
	default:
		// MatchAll: FTS5 ANDs adjacent terms implicitly.
		return strings.Join(terms, " ")
	}
}

// truncate caps s at limit characters without splitting a rune.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
