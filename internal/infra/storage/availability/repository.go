package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/PCM-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с расписанием ветеринара
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeek получает все недельные правила ветеринара с перерывами
// Правила отсортированы по дню недели (0=воскресенье .. 6=суббота)
func (r *Repository) GetWeek(ctx context.Context, vetID int64) ([]*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"vet_id",
		"day_of_week",
		"start_time",
		"end_time",
		"slot_duration_minutes",
		"visit_types",
		"is_closed",
		"created_at",
		"updated_at",
	).
		From("weekly_availability").
		Where(squirrel.Eq{"vet_id": vetID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := make([]*domain.WeeklyAvailability, 0, domain.DaysPerWeek)

	for rows.Next() {
		var day domain.WeeklyAvailability
		var startTime, endTime sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&day.ID,
			&day.VetID,
			&day.DayOfWeek,
			&startTime,
			&endTime,
			&day.SlotDurationMinutes,
			pq.Array(&day.VisitTypes),
			&day.IsClosed,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %v", ErrScanRow, err)
		}

		if startTime.Valid {
			if err := day.StartTime.Scan(startTime.String); err != nil {
				return nil, fmt.Errorf("%w: GetWeek - parse start_time: %v", ErrScanRow, err)
			}
		}
		if endTime.Valid {
			if err := day.EndTime.Scan(endTime.String); err != nil {
				return nil, fmt.Errorf("%w: GetWeek - parse end_time: %v", ErrScanRow, err)
			}
		}

		day.CreatedAt = createdAt.Time
		day.UpdatedAt = updatedAt.Time
		day.Breaks = []domain.Break{}

		week = append(week, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	// Присоединяем перерывы
	breaks, err := r.GetBreaksByVet(ctx, vetID)
	if err != nil {
		return nil, err
	}

	byAvailability := make(map[int64][]domain.Break, len(week))
	for _, b := range breaks {
		byAvailability[b.AvailabilityID] = append(byAvailability[b.AvailabilityID], b)
	}
	for _, day := range week {
		if dayBreaks, ok := byAvailability[day.ID]; ok {
			day.Breaks = dayBreaks
		}
	}

	return week, nil
}

// GetDay получает недельное правило для конкретного дня недели с перерывами
// Возвращает ErrDayNotFound, если правило для дня не настроено
func (r *Repository) GetDay(ctx context.Context, vetID int64, dayOfWeek int) (*domain.WeeklyAvailability, error) {
	week, err := r.GetWeek(ctx, vetID)
	if err != nil {
		return nil, err
	}

	for _, day := range week {
		if day.DayOfWeek == dayOfWeek {
			return day, nil
		}
	}

	return nil, ErrDayNotFound
}

// GetBreaksByVet получает все перерывы недельного расписания ветеринара
// Перерывы отсортированы по дню и времени начала
func (r *Repository) GetBreaksByVet(ctx context.Context, vetID int64) ([]domain.Break, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.availability_id",
		"b.start_time",
		"b.end_time",
	).
		From("availability_breaks b").
		Join("weekly_availability w ON w.id = b.availability_id").
		Where(squirrel.Eq{"w.vet_id": vetID}).
		OrderBy("w.day_of_week ASC, b.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBreaksByVet - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBreaksByVet - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make([]domain.Break, 0)

	for rows.Next() {
		var b domain.Break
		if err := rows.Scan(&b.ID, &b.AvailabilityID, &b.StartTime, &b.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetBreaksByVet - scan row: %v", ErrScanRow, err)
		}
		breaks = append(breaks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBreaksByVet - rows error: %v", ErrScanRow, err)
	}

	return breaks, nil
}

// ReplaceWeek заменяет все недельные правила ветеринара новым набором.
// Вызывается внутри транзакции (txmanager.Do) - либо вся неделя, либо ничего.
// Перерывы удаляются каскадно вместе со старыми правилами.
func (r *Repository) ReplaceWeek(ctx context.Context, vetID int64, week []*domain.WeeklyAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Удаляем старую неделю (перерывы уходят по ON DELETE CASCADE)
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("weekly_availability").
		Where(squirrel.Eq{"vet_id": vetID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute delete: %v", ErrExecQuery, err)
	}

	// Вставляем новые правила по одному, чтобы получить id для перерывов
	for _, day := range week {
		insertQuery, insertArgs, err := psqlbuilder.Insert("weekly_availability").
			Columns(
				"vet_id",
				"day_of_week",
				"start_time",
				"end_time",
				"slot_duration_minutes",
				"visit_types",
				"is_closed",
			).
			Values(
				vetID,
				day.DayOfWeek,
				day.StartTime,
				day.EndTime,
				day.SlotDurationMinutes,
				pq.Array(day.VisitTypes),
				day.IsClosed,
			).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceWeek - build insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&day.ID); err != nil {
			return fmt.Errorf("%w: ReplaceWeek - execute insert: %v", ErrExecQuery, err)
		}

		for i := range day.Breaks {
			day.Breaks[i].AvailabilityID = day.ID

			breakQuery, breakArgs, err := psqlbuilder.Insert("availability_breaks").
				Columns("availability_id", "start_time", "end_time").
				Values(day.ID, day.Breaks[i].StartTime, day.Breaks[i].EndTime).
				Suffix("RETURNING id").
				ToSql()
			if err != nil {
				return fmt.Errorf("%w: ReplaceWeek - build break insert: %v", ErrBuildQuery, err)
			}

			if err := executor.QueryRowContext(ctx, breakQuery, breakArgs...).Scan(&day.Breaks[i].ID); err != nil {
				return fmt.Errorf("%w: ReplaceWeek - execute break insert: %v", ErrExecQuery, err)
			}
		}
	}

	return nil
}

// GetOverride получает переопределение расписания на конкретную дату
func (r *Repository) GetOverride(ctx context.Context, vetID int64, date time.Time) (*domain.Override, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := overrideSelect().
		Where(squirrel.Eq{"vet_id": vetID}).
		Where(squirrel.Eq{"override_date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	override, err := scanOverride(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan override: %v", ErrScanRow, err)
	}

	return override, nil
}

// GetOverridesInRange получает переопределения дат в диапазоне [from, to]
func (r *Repository) GetOverridesInRange(ctx context.Context, vetID int64, from, to time.Time) ([]*domain.Override, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := overrideSelect().
		Where(squirrel.Eq{"vet_id": vetID}).
		Where(squirrel.GtOrEq{"override_date": from}).
		Where(squirrel.LtOrEq{"override_date": to}).
		OrderBy("override_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.Override, 0)

	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverridesInRange - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// UpsertOverride создает или обновляет переопределение даты
// На одну дату у ветеринара может быть не более одного переопределения
func (r *Repository) UpsertOverride(ctx context.Context, override *domain.Override) (*domain.Override, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_overrides").
		Columns(
			"vet_id",
			"override_date",
			"is_closed",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"visit_types",
		).
		Values(
			override.VetID,
			override.Date,
			override.IsClosed,
			override.StartTime,
			override.EndTime,
			override.SlotDurationMinutes,
			pq.Array(override.VisitTypes),
		).
		Suffix(`ON CONFLICT (vet_id, override_date) DO UPDATE SET
			is_closed = EXCLUDED.is_closed,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			visit_types = EXCLUDED.visit_types,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - execute upsert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// DeleteOverride удаляет переопределение даты
func (r *Repository) DeleteOverride(ctx context.Context, vetID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_overrides").
		Where(squirrel.Eq{"vet_id": vetID}).
		Where(squirrel.Eq{"override_date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// overrideSelect базовый SELECT для таблицы переопределений
func overrideSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
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
	).From("availability_overrides")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanOverride сканирует одну строку переопределения
func scanOverride(row rowScanner) (*domain.Override, error) {
	var override domain.Override
	var startTime, endTime sql.NullString
	var slotDuration sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.ID,
		&override.VetID,
		&override.Date,
		&override.IsClosed,
		&startTime,
		&endTime,
		&slotDuration,
		pq.Array(&override.VisitTypes),
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		if err := override.StartTime.Scan(startTime.String); err != nil {
			return nil, err
		}
	}
	if endTime.Valid {
		if err := override.EndTime.Scan(endTime.String); err != nil {
			return nil, err
		}
	}
	if slotDuration.Valid {
		override.SlotDurationMinutes = int(slotDuration.Int64)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}
