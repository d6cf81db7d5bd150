package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/aulagen/aulagen-backend/internal/data/repos/testutil"
	types "github.com/aulagen/aulagen-backend/internal/domain"
	"github.com/aulagen/aulagen-backend/internal/pkg/dbctx"
)

func TestPublicationRunRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewPublicationRunRepo(db, testutil.Logger(t))

	now := time.Now().UTC()
	courseID := "course-" + uuid.NewString()

	older := &types.PublicationRun{
		ID:        uuid.New(),
		CourseID:  courseID,
		Subject:   "Historia",
		Results:   datatypes.JSON([]byte(`{}`)),
		Succeeded: 2,
		Failed:    0,
		CreatedAt: now.Add(-2 * time.Hour),
	}
	newer := &types.PublicationRun{
		ID:        uuid.New(),
		CourseID:  courseID,
		Subject:   "Matemáticas",
		Results:   datatypes.JSON([]byte(`{}`)),
		Succeeded: 1,
		Failed:    1,
		CreatedAt: now.Add(-1 * time.Hour),
	}
	otherCourse := &types.PublicationRun{
		ID:        uuid.New(),
		CourseID:  "course-" + uuid.NewString(),
		Results:   datatypes.JSON([]byte(`{}`)),
		CreatedAt: now,
	}

	created, err := repo.Create(dbc, []*types.PublicationRun{older, newer, otherCourse})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("Create: expected 3, got %d", len(created))
	}

	rows, err := repo.ListRecent(dbc, courseID, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ListRecent: expected 2 rows for course, got %d", len(rows))
	}
	if rows[0].ID != newer.ID || rows[1].ID != older.ID {
		t.Fatalf("ListRecent: expected newest-first ordering, got %v then %v", rows[0].ID, rows[1].ID)
	}

	limited, err := repo.ListRecent(dbc, courseID, 1)
	if err != nil {
		t.Fatalf("ListRecent limit: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != newer.ID {
		t.Fatalf("ListRecent limit: expected only newest run")
	}

	all, err := repo.ListRecent(dbc, "", 10)
	if err != nil {
		t.Fatalf("ListRecent all: %v", err)
	}
	if len(all) < 3 {
		t.Fatalf("ListRecent all: expected at least 3 rows, got %d", len(all))
	}
}
