package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	"github.com/m04kA/DSM-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DSM-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// Repository репозиторий окон доступности инструкторов.
// Каждая строка таблицы - одна граница слота (инструктор, день недели, время).
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByInstructorAndDay возвращает границы слотов инструктора на день недели,
// отсортированные по возрастанию. Отсутствие строк - не ошибка: возвращается
// запись с пустым списком границ.
func (r *Repository) GetByInstructorAndDay(ctx context.Context, instructorID int64, day time.Weekday) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT start_time").
		From("availability_windows").
		Where(squirrel.Eq{
			"instructor_id": instructorID,
			"day_of_week":   int(day),
		}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructorAndDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructorAndDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	startTimes := make([]types.TimeString, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%w: GetByInstructorAndDay - scan start_time: %v", ErrScanRow, err)
		}

		parsed, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByInstructorAndDay - invalid start_time %q: %v", ErrScanRow, raw, err)
		}
		startTimes = append(startTimes, parsed)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByInstructorAndDay - rows error: %v", ErrScanRow, err)
	}

	return &domain.WeeklyAvailability{
		InstructorID: instructorID,
		DayOfWeek:    day,
		StartTimes:   startTimes,
	}, nil
}

// GetWeek возвращает окна доступности инструктора на всю неделю
func (r *Repository) GetWeek(ctx context.Context, instructorID int64) ([]*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week", "start_time").
		From("availability_windows").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	byDay := make(map[time.Weekday]*domain.WeeklyAvailability)
	order := make([]time.Weekday, 0)

	for rows.Next() {
		var (
			day int
			raw string
		)
		if err := rows.Scan(&day, &raw); err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %v", ErrScanRow, err)
		}

		parsed, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - invalid start_time %q: %v", ErrScanRow, raw, err)
		}

		weekday := time.Weekday(day)
		entry, ok := byDay[weekday]
		if !ok {
			entry = &domain.WeeklyAvailability{
				InstructorID: instructorID,
				DayOfWeek:    weekday,
			}
			byDay[weekday] = entry
			order = append(order, weekday)
		}
		entry.StartTimes = append(entry.StartTimes, parsed)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	result := make([]*domain.WeeklyAvailability, 0, len(order))
	for _, weekday := range order {
		result = append(result, byDay[weekday])
	}
	return result, nil
}
