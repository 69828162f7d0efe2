// Package mock provides function-field mock implementations of foxmark
// interfaces for tests.
package mock

import (
	"context"

	"github.com/fwojciec/foxmark"
)

var _ foxmark.MarkService = (*MarkService)(nil)

// MarkService is a mock implementation of foxmark.MarkService.
type MarkService struct {
	RegisterFn                func(ctx context.Context, mark *foxmark.Mark) error
	SaveSuccessFn             func(ctx context.Context, id int64, body, bodyClean, title string) error
	SaveErrorFn               func(ctx context.Context, id int64, message string) error
	RemoveErrorFn             func(ctx context.Context, id int64) (bool, error)
	FlagForRedownloadFn       func(ctx context.Context, id int64) (bool, error)
	FlagNonDownloadableFn     func(ctx context.Context) (int64, error)
	DeleteMarksByIDFn         func(ctx context.Context, ids []int64) (int64, error)
	ToggleDeletionFlagFn      func(ctx context.Context, id int64) (bool, error)
	MarksToDownloadFn         func(ctx context.Context) ([]*foxmark.MarkRef, error)
	MarkByIDFn                func(ctx context.Context, id int64) (*foxmark.Mark, error)
	MarkHashesFn              func(ctx context.Context) (map[string]int64, error)
	MarksForSearchFn          func(ctx context.Context, ids []int64) (map[int64]*foxmark.Mark, error)
	MarkCountFn               func(ctx context.Context) (int64, error)
	ErrorLogFn                func(ctx context.Context, limit int) ([]*foxmark.Mark, error)
	MarksFlaggedForDeletionFn func(ctx context.Context) ([]int64, error)
}

func (s *MarkService) Register(ctx context.Context, mark *foxmark.Mark) error {
	return s.RegisterFn(ctx, mark)
}

func (s *MarkService) SaveSuccess(ctx context.Context, id int64, body, bodyClean, title string) error {
	return s.SaveSuccessFn(ctx, id, body, bodyClean, title)
}

func (s *MarkService) SaveError(ctx context.Context, id int64, message string) error {
	return s.SaveErrorFn(ctx, id, message)
}

func (s *MarkService) RemoveError(ctx context.Context, id int64) (bool, error) {
	return s.RemoveErrorFn(ctx, id)
}

func (s *MarkService) FlagForRedownload(ctx context.Context, id int64) (bool, error) {
	return s.FlagForRedownloadFn(ctx, id)
}

func (s *MarkService) FlagNonDownloadable(ctx context.Context) (int64, error) {
	return s.FlagNonDownloadableFn(ctx)
}

func (s *MarkService) DeleteMarksByID(ctx context.Context, ids []int64) (int64, error) {
	return s.DeleteMarksByIDFn(ctx, ids)
}

func (s *MarkService) ToggleDeletionFlag(ctx context.Context, id int64) (bool, error) {
	return s.ToggleDeletionFlagFn(ctx, id)
}

func (s *MarkService) MarksToDownload(ctx context.Context) ([]*foxmark.MarkRef, error) {
	return s.MarksToDownloadFn(ctx)
}

func (s *MarkService) MarkByID(ctx context.Context, id int64) (*foxmark.Mark, error) {
	return s.MarkByIDFn(ctx, id)
}

func (s *MarkService) MarkHashes(ctx context.Context) (map[string]int64, error) {
	return s.MarkHashesFn(ctx)
}

func (s *MarkService) MarksForSearch(ctx context.Context, ids []int64) (map[int64]*foxmark.Mark, error) {
	return s.MarksForSearchFn(ctx, ids)
}

func (s *MarkService) MarkCount(ctx context.Context) (int64, error) {
	return s.MarkCountFn(ctx)
}

func (s *MarkService) ErrorLog(ctx context.Context, limit int) ([]*foxmark.Mark, error) {
	return s.ErrorLogFn(ctx, limit)
}

func (s *MarkService) MarksFlaggedForDeletion(ctx context.Context) ([]int64, error) {
	return s.MarksFlaggedForDeletionFn(ctx)
}
