// Package registry reconciles an imported bookmark snapshot against stored
// marks. It is the single source of truth for "what changed": new and
// changed marks are registered, unchanged marks are skipped via content
// hashing, and marks missing from the snapshot are reported for pruning.
package registry

import (
	"context"
	"strings"

	"github.com/fwojciec/foxmark"
)

// Registry reconciles snapshots with stored marks.
type Registry struct {
	Marks foxmark.MarkService
}

// NewRegistry creates a Registry backed by the given mark storage.
func NewRegistry(marks foxmark.MarkService) *Registry {
	return &Registry{Marks: marks}
}

// Result holds the outcome of a reconcile pass.
type Result struct {
	// Registered counts marks inserted or refreshed in storage.
	Registered int

	// Unchanged counts marks skipped because their fingerprint matched a
	// stored one.
	Unchanged int

	// PruneIDs are stored marks absent from the snapshot. The caller
	// decides whether to hard-delete them (see Registry.Cleanup).
	PruneIDs []int64

	// Errs collects per-mark registration failures. A storage write error
	// on one mark never aborts the batch.
	Errs []error
}

// Reconcile compares the snapshot against stored marks.
//
// For each imported mark it resolves the effective modified time (a tag's
// own edit bumps the mark's freshness), joins the associated tag names,
// derives the nosave error state, and fingerprints the identity fields.
// Marks whose fingerprint already exists in storage are skipped; the rest
// are upserted. Stored hashes left unseen at the end belong to marks no
// longer present in the snapshot and are returned as PruneIDs.
//
// Reconciling the same snapshot twice registers nothing the second time
// and reports no prune candidates.
func (r *Registry) Reconcile(ctx context.Context, snap *foxmark.Snapshot) (*Result, error) {
	// One hash-map fetch per pass, not per mark.
	remaining, err := r.Marks.MarkHashes(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{}

	for _, sm := range snap.Marks {
		tags := snap.Tags[sm.URI]
		modified := sm.LastModified
		for _, tag := range tags {
			if tm := snap.TagModified[tag]; tm > modified {
				modified = tm
			}
		}

		joined := strings.Join(tags, " ")

		lastErr := ""
		if hasNosave(tags) {
			lastErr = foxmark.NosaveErr
		}

		hash := Fingerprint(sm.URI, sm.Title, joined, sm.DateAdded)
		if _, ok := remaining[hash]; ok {
			// Same (uri, title, tags, added) tuple: same logical mark.
			delete(remaining, hash)
			res.Unchanged++
			continue
		}

		mark := &foxmark.Mark{
			Title:    sm.Title,
			URI:      sm.URI,
			Tags:     joined,
			Hash:     hash,
			LastErr:  lastErr,
			Added:    sm.DateAdded,
			Modified: modified,
		}
		if err := r.Marks.Register(ctx, mark); err != nil {
			res.Errs = append(res.Errs, err)
			continue
		}
		res.Registered++
	}

	for _, id := range remaining {
		res.PruneIDs = append(res.PruneIDs, id)
	}

	return res, nil
}

// CleanupResult reports sync-related maintenance counts.
type CleanupResult struct {
	// Pruned counts marks removed because the snapshot no longer has them.
	Pruned int64

	// Flagged counts marks whose content was erased because they carry the
	// nosave tag.
	Flagged int64
}

// Cleanup applies the maintenance that follows a reconcile pass: it erases
// stored content for nosave-tagged marks (idempotent; zero once applied)
// and hard-deletes the given prune candidates.
func (r *Registry) Cleanup(ctx context.Context, pruneIDs []int64) (*CleanupResult, error) {
	flagged, err := r.Marks.FlagNonDownloadable(ctx)
	if err != nil {
		return nil, err
	}

	var pruned int64
	if len(pruneIDs) > 0 {
		pruned, err = r.Marks.DeleteMarksByID(ctx, pruneIDs)
		if err != nil {
			return nil, err
		}
	}

	return &CleanupResult{Pruned: pruned, Flagged: flagged}, nil
}

func hasNosave(tags []string) bool {
	for _, tag := range tags {
		if tag == foxmark.NosaveTag {
			return true
		}
	}
	return false
}
