package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/fwojciec/foxmark"
	"github.com/fwojciec/foxmark/crawl"
	"github.com/fwojciec/foxmark/registry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultListLimit caps history, tag, and error-log reads.
const DefaultListLimit = 100

// Searcher executes user searches. Satisfied by *query.Engine.
type Searcher interface {
	Search(ctx context.Context, q string, opts foxmark.SearchOptions) ([]*foxmark.SearchResult, error)
}

// callbackName validates the JSONP callback parameter: the value is echoed
// into executable JavaScript, so only plain identifiers pass.
var callbackName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$.]*$`)

// Server serves the JSONP read/write API consumed by the search UI.
//
// Reads never fail because of one bad row; write actions either succeed or
// return a clear failure payload. Missing or malformed required parameters
// yield 404, which the UI treats as "ignore".
type Server struct {
	Marks     foxmark.MarkService
	History   foxmark.HistoryService
	Tags      foxmark.TagService
	Index     foxmark.SearchIndex
	Searcher  Searcher
	Fetcher   foxmark.Fetcher
	Sanitizer foxmark.Sanitizer

	// ListLimit caps list reads. Zero means DefaultListLimit.
	ListLimit int

	// Logger records handler failures. Nil disables logging.
	Logger *slog.Logger
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/q", s.handleSearch)
	r.Get("/get_history", s.handleHistory)
	r.Get("/get_tags", s.handleTags)
	r.Get("/get_error_log", s.handleErrorLog)
	r.Get("/get_marks_count", s.handleMarkCount)
	r.Get("/get_page_title", s.handlePageTitle)
	r.Get("/add_mark", s.handleAddMark)
	r.Get("/delete_mark", s.handleDeleteMark)
	r.Get("/retry", s.handleRetry)
	r.Get("/redownload", s.handleRedownload)
	r.Get("/view", s.handleView)

	return r
}

func (s *Server) limit() int {
	if s.ListLimit > 0 {
		return s.ListLimit
	}
	return DefaultListLimit
}

// callback extracts and validates the JSONP callback parameter. The false
// return means the response is already written (404).
func (s *Server) callback(w http.ResponseWriter, r *http.Request) (string, bool) {
	cb := r.URL.Query().Get("callback")
	if !callbackName.MatchString(cb) {
		http.NotFound(w, r)
		return "", false
	}
	return cb, true
}

// markID extracts the required markId parameter.
func (s *Server) markID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("markId"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

// jsonp writes v as a JSONP response invoking the callback.
func (s *Server) jsonp(w http.ResponseWriter, callback string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("jsonp encoding failed", "error", err)
		}
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	fmt.Fprintf(w, "%s(%s);", callback, body)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	cb, ok := s.callback(w, r)
	if !ok {
		return
	}

	params := r.URL.Query()
	q := params.Get("q")
	if q == "" {
		s.jsonp(w, cb, []*foxmark.SearchResult{})
		return
	}

	opts := foxmark.SearchOptions{
		Match:    foxmark.MatchAll,
		Sort:     foxmark.SortRelevance,
		SortAttr: params.Get("sortAttr"),
	}
	if m := params.Get("match"); m != "" {
		opts.Match = foxmark.MatchMode(m)
	}
	if sm := params.Get("sort"); sm != "" {
		opts.Sort = foxmark.SortMode(sm)
	}
	if maxAge, err := strconv.ParseInt(params.Get("maxAge"), 10, 64); err == nil && maxAge > 0 {
		opts.MaxAge = time.Duration(maxAge) * time.Second
	}

	results, err := s.Searcher.Search(r.Context(), q, opts)
	if err != nil {
		s.fail(w, cb, err)
		return
	}

	// Remember the query for autocomplete; a history write failure never
	// blocks search results.
	if err := s.History.AddHistory(r.Context(), q); err != nil && s.Logger != nil {
		s.Logger.Error("history write failed", "query", q, "error", err)
	}

	if results == nil {
		results = []*foxmark.SearchResult{}
	}
	s.jsonp(w, cb, results)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	cb, ok := s.callback(w, r)
	if !ok {
		return
	}
	entries, err := s.History.History(r.Context(), s.limit())
	if err != nil {
		s.fail(w, cb, err)
		return
	}
	if entries == nil {
		entries = []*foxmark.HistoryEntry{}
	}
	s.jsonp(w, cb, entries)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	cb, ok := s.callback(w, r)
	if !ok {
		return
	}
	tags, err := s.Tags.Tags(r.Context(), s.limit())
	if err != nil {
		s.fail(w, cb, err)
		return
	}
	if tags == nil {
		tags = []*foxmark.Tag{}
	}
	s.jsonp(w, cb, tags)
}

func (s *Server) handleErrorLog(w http.ResponseWriter, r *http.Request) {
	cb, ok := s.callback(w, r)
	if !ok {
		return
	}
	marks, err := s.Marks.ErrorLog(r.Context(), s.limit())
	if err != nil {
		s.fail(w, cb, err)
		return
	}

	type errorEntry struct {
		ID      int64  `json:"id"`
		LastErr string `json:"lastErr"`
		Title   string `json:"title"`
		URI     string `json:"uri"`
		Tags    string `json:"tags"`
		Deleted bool   `json:"deleted"`
	}
	entries := make([]errorEntry, 0, len(marks))
	for _, m := range marks {
		entries = append(entries, errorEntry{
			ID: m.ID, LastErr: m.LastErr, Title: m.Title,
			URI: m.URI, Tags: m.Tags, Deleted: m.Deleted,
		})
	}
	s.jsonp(w, cb, entries)
}

func (s *Server) handleMarkCount(w http.ResponseWriter, r *http.Request) {
	cb, ok := s.callback(w, r)
	if !ok {
		return
	}
	count, err := s.Marks.MarkCount(r.Context())
	if err != nil {
		s.fail(w, cb, err)
		return
	}
	s.jsonp(w, cb, count)
}

func (s *Server) handlePageTitle(w http.ResponseWriter, r *http.Request) {
	cb, ok := s.callback(w, r)
	if !ok {
		return
	}
	uri := r.URL.Query().Get("uri")
	if uri == "" {
		http.NotFound(w, r)
		return
	}

	res, err := s.Fetcher.Fetch(r.Context(), uri)
	if err != nil || res.StatusCode != http.StatusOK {
		http.NotFound(w, r)
		return
	}
	s.jsonp(w, cb, crawl.ExtractTitle(res.Body))
}

func (s *Server) handleAddMark(w http.ResponseWriter, r *http.Request) {
	cb, ok := s.callback(w, r)
	if !ok {
		return
	}

	params := r.URL.Query()
	title := params.Get("title")
	uri := params.Get("uri")
	tags := params.Get("tags")
	if title == "" || uri == "" {
		http.NotFound(w, r)
		return
	}

	now := time.Now().Unix()
	mark := &foxmark.Mark{
		Title:    title,
		URI:      uri,
		Tags:     tags,
		Hash:     registry.Fingerprint(uri, title, tags, now),
		Added:    now,
		Modified: now,
	}
	if err := s.Marks.Register(r.Context(), mark); err != nil {
		s.fail(w, cb, err)
		return
	}

	// Index immediately so the mark is searchable before its download.
	if err := s.Index.Upsert(r.Context(), &foxmark.IndexDoc{
		ID: mark.ID, Title: mark.Title, URI: mark.URI,
		Tags: mark.Tags, Modified: mark.Modified,
	}); err != nil && s.Logger != nil {
		s.Logger.Error("index update failed", "id", mark.ID, "error", err)
	}

	s.jsonp(w, cb, mark.ID)
}

func (s *Server) handleDeleteMark(w http.ResponseWriter, r *http.Request) {
	cb, ok := s.callback(w, r)
	if !ok {
		return
	}
	id, ok := s.markID(w, r)
	if !ok {
		return
	}

	toggled, err := s.Marks.ToggleDeletionFlag(r.Context(), id)
	if err != nil {
		s.fail(w, cb, err)
		return
	}
	s.jsonp(w, cb, map[string]bool{"toggled": toggled})
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	cb, ok := s.callback(w, r)
	if !ok {
		return
	}
	id, ok := s.markID(w, r)
	if !ok {
		return
	}

	removed, err := s.Marks.RemoveError(r.Context(), id)
	if err != nil {
		s.fail(w, cb, err)
		return
	}
	s.jsonp(w, cb, map[string]bool{"removed": removed})
}

func (s *Server) handleRedownload(w http.ResponseWriter, r *http.Request) {
	cb, ok := s.callback(w, r)
	if !ok {
		return
	}
	id, ok := s.markID(w, r)
	if !ok {
		return
	}

	flagged, err := s.Marks.FlagForRedownload(r.Context(), id)
	if err != nil {
		s.fail(w, cb, err)
		return
	}
	s.jsonp(w, cb, map[string]bool{"flagged": flagged})
}

// handleView renders a mark's saved copy through the viewer policy.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id, ok := s.markID(w, r)
	if !ok {
		return
	}

	mark, err := s.Marks.MarkByID(r.Context(), id)
	if err != nil {
		if foxmark.ErrorCode(err) == foxmark.ENOTFOUND {
			http.NotFound(w, r)
			return
		}
		http.Error(w, foxmark.ErrorMessage(err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.Sanitizer.Sanitize(mark.Body, foxmark.PolicyViewer))
}

// fail reports a write-side failure as a JSONP payload with a reason
// string rather than a raw error page.
func (s *Server) fail(w http.ResponseWriter, callback string, err error) {
	if s.Logger != nil {
		s.Logger.Error("request failed", "error", err)
	}
	s.jsonp(w, callback, map[string]string{"error": foxmark.ErrorMessage(err)})
}
