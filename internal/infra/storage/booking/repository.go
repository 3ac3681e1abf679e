package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	"github.com/m04kA/DSM-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DSM-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// studentIDsSubquery агрегирует состав группы теоретического занятия
// в массив; для практических занятий возвращает пустой массив
const studentIDsSubquery = `COALESCE(
	(SELECT array_agg(cs.student_id ORDER BY cs.student_id)
	 FROM class_students cs WHERE cs.booking_id = bookings.id),
	'{}')`

var bookingColumns = []string{
	"id",
	"kind",
	"instructor_id",
	"enrollment_id",
	"student_id",
	"course_id",
	"resource_id",
	"max_students",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	studentIDsSubquery,
	"created_at",
	"updated_at",
}

// Repository репозиторий занятий (практических и теоретических)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает занятие. Для теоретического занятия дополнительно
// сохраняет состав группы в class_students.
//
// Если в контексте есть активная транзакция, запросы выполняются в ней -
// создание занятия с повторной проверкой конфликтов обязано идти в
// сериализуемой транзакции, иначе две параллельные валидации могут
// пройти на один и тот же слот.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"kind",
			"instructor_id",
			"enrollment_id",
			"student_id",
			"course_id",
			"resource_id",
			"max_students",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
		).
		Values(
			booking.Kind,
			booking.InstructorID,
			booking.EnrollmentID,
			booking.StudentID,
			booking.CourseID,
			booking.ResourceID,
			booking.MaxStudents,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if len(booking.StudentIDs) > 0 {
		insert := psqlbuilder.Insert("class_students").Columns("booking_id", "student_id")
		for _, studentID := range booking.StudentIDs {
			insert = insert.Values(booking.ID, studentID)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build roster insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - insert roster: %v", ErrExecQuery, err)
		}
	}

	return booking, nil
}

// GetByID получает занятие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}
	return bookings[0], nil
}

// GetWithFilter получает занятия с гибкой фильтрацией.
//
// Фильтр по студенту учитывает обе роли: студент практического занятия
// (колонка student_id) и участник группы теоретического (class_students).
//
// Если запрос выполняется внутри транзакции и указана дата, добавляется
// FOR UPDATE - блокировка строк на время повторной проверки конфликтов
// перед созданием занятия.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.InstructorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"instructor_id": *filter.InstructorID})
	}
	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"student_id": *filter.StudentID},
			squirrel.Expr("id IN (SELECT booking_id FROM class_students WHERE student_id = ?)", *filter.StudentID),
		})
	}
	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.ActiveStatuses})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date ASC, start_time ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountStudents возвращает число студентов, записанных на теоретическое занятие
func (r *Repository) CountStudents(ctx context.Context, bookingID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("class_students").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountStudents - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountStudents - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			booking              domain.Booking
			startTime            string
			studentIDs           pq.Int64Array
			createdAt, updatedAt sql.NullTime
		)

		err := rows.Scan(
			&booking.ID,
			&booking.Kind,
			&booking.InstructorID,
			&booking.EnrollmentID,
			&booking.StudentID,
			&booking.CourseID,
			&booking.ResourceID,
			&booking.MaxStudents,
			&booking.BookingDate,
			&startTime,
			&booking.DurationMinutes,
			&booking.Status,
			&studentIDs,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}

		parsed, err := types.NewTimeStringFromString(startTime)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - invalid start_time %q: %v", ErrScanRow, startTime, err)
		}

		booking.StartTime = parsed
		booking.StudentIDs = studentIDs
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
