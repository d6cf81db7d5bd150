package repos

import (
	"gorm.io/gorm"

	types "github.com/aulagen/aulagen-backend/internal/domain"
	"github.com/aulagen/aulagen-backend/internal/pkg/dbctx"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

type PublicationRunRepo interface {
	Create(dbc dbctx.Context, runs []*types.PublicationRun) ([]*types.PublicationRun, error)
	ListRecent(dbc dbctx.Context, courseID string, limit int) ([]*types.PublicationRun, error)
}

type publicationRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPublicationRunRepo(db *gorm.DB, baseLog *logger.Logger) PublicationRunRepo {
	return &publicationRunRepo{
		db:  db,
		log: baseLog.With("repo", "PublicationRunRepo"),
	}
}

func (r *publicationRunRepo) Create(dbc dbctx.Context, runs []*types.PublicationRun) ([]*types.PublicationRun, error) {
	if len(runs) == 0 {
		return []*types.PublicationRun{}, nil
	}
	if err := dbc.Conn(r.db).Create(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *publicationRunRepo) ListRecent(dbc dbctx.Context, courseID string, limit int) ([]*types.PublicationRun, error) {
	if limit <= 0 {
		limit = 20
	}
	q := dbc.Conn(r.db).Order("created_at DESC").Limit(limit)
	if courseID != "" {
		q = q.Where("course_id = ?", courseID)
	}
	var out []*types.PublicationRun
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
