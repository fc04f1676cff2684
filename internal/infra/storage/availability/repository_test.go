package availability

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

var overrideColumns = []string{
	"id",
	"vet_id",
	"override_date",
	"is_closed",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"visit_types",
	"created_at",
	"updated_at",
}

func TestGetOverride_NotFound(t *testing.T) {
	// Пустая выборка транслируется в ErrOverrideNotFound, а не в ошибку скана
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM availability_overrides").
		WithArgs(int64(1), time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows(overrideColumns))

	repo := NewRepository(db)
	_, err = repo.GetOverride(context.Background(), 1, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrOverrideNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOverride_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM availability_overrides").
		WithArgs(int64(1), date).
		WillReturnRows(sqlmock.NewRows(overrideColumns).
			AddRow(int64(7), int64(1), date, false, "10:00:00", "14:00:00", int64(60), []byte("{Vaccination}"), now, now))

	repo := NewRepository(db)
	override, err := repo.GetOverride(context.Background(), 1, date)
	require.NoError(t, err)

	assert.Equal(t, int64(7), override.ID)
	assert.False(t, override.IsClosed)
	assert.Equal(t, types.MustTimeString("10:00:00"), override.StartTime)
	assert.Equal(t, types.MustTimeString("14:00:00"), override.EndTime)
	assert.Equal(t, 60, override.SlotDurationMinutes)
	assert.Equal(t, []string{"Vaccination"}, override.VisitTypes)

	assert.NoError(t, mock.ExpectationsWereMet())
}
