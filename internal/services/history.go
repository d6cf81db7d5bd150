package services

import (
	"context"
	"fmt"

	"github.com/aulagen/aulagen-backend/internal/data/repos"
	types "github.com/aulagen/aulagen-backend/internal/domain"
	"github.com/aulagen/aulagen-backend/internal/pkg/dbctx"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

type HistoryService interface {
	RecentPublications(ctx context.Context, courseID string, limit int) ([]*types.PublicationRun, error)
}

type historyService struct {
	log  *logger.Logger
	runs repos.PublicationRunRepo
}

func NewHistoryService(baseLog *logger.Logger, runs repos.PublicationRunRepo) HistoryService {
	return &historyService{
		log:  baseLog.With("service", "HistoryService"),
		runs: runs,
	}
}

func (hs *historyService) RecentPublications(ctx context.Context, courseID string, limit int) ([]*types.PublicationRun, error) {
	if hs.runs == nil {
		return nil, fmt.Errorf("publication history is not configured")
	}
	rows, err := hs.runs.ListRecent(dbctx.Context{Ctx: ctx}, courseID, limit)
	if err != nil {
		return nil, fmt.Errorf("list publication runs: %w", err)
	}
	return rows, nil
}
