package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focototal-be/internal/entities"
)

var projectCols = []string{"id", "name", "description", "color", "user_id", "created_at", "updated_at", "task_count"}

func TestProjectRepository_List_SearchAndSort(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProjectRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM projects p WHERE p.user_id = $1 AND p.name ILIKE $2")).
		WithArgs("u1", `%50\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.user_id = $1 AND p.name ILIKE $2 ORDER BY p.name ASC, p.id LIMIT $3 OFFSET $4")).
		WithArgs("u1", `%50\%%`, 10, 10).
		WillReturnRows(sqlmock.NewRows(projectCols).AddRow("p1", "Alpha", nil, "#FFAA00", "u1", now, now, 4))

	projects, total, err := repo.List(context.Background(), ProjectFilter{
		UserID: "u1", Search: "50%", SortBy: "name", SortOrder: SortAsc, Limit: 10, Offset: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, projects, 1)
	assert.Equal(t, 4, projects[0].TaskCount)
	assert.Equal(t, "#FFAA00", *projects[0].Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_List_UnknownSortFallsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProjectRepository(db)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY p.created_at DESC")).WillReturnRows(sqlmock.NewRows(projectCols))

	projects, total, err := repo.List(context.Background(), ProjectFilter{UserID: "u1", SortBy: "1; DROP TABLE users", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, projects)
	assert.NotNil(t, projects)
}

func TestProjectRepository_FindByID_ScopedToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1 AND p.user_id = $2")).
		WithArgs("p1", "intruder").
		WillReturnRows(sqlmock.NewRows(projectCols))

	_, err = repo.FindByID(context.Background(), "intruder", "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepository_UpdateAndDelete_NotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProjectRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $5 AND user_id = $6")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects WHERE id = $1 AND user_id = $2")).
		WithArgs("p1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), &entities.Project{ID: "p1", UserID: "u2", Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	err = repo.Delete(context.Background(), "u2", "p1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
