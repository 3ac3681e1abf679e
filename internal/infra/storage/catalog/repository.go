package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	"github.com/m04kA/DSM-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DSM-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий справочных данных автошколы:
// курсы, инструкторы, ресурсы (автомобили и классы), зачисления
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetEnrollment получает зачисление по ID
func (r *Repository) GetEnrollment(ctx context.Context, id int64) (*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "student_id", "course_id", "status").
		From("enrollments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEnrollment - build select query: %v", ErrBuildQuery, err)
	}

	var enrollment domain.Enrollment
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEnrollment - scan enrollment: %v", ErrScanRow, err)
	}

	return &enrollment, nil
}

// GetActiveEnrollment получает действующее зачисление студента на курс
func (r *Repository) GetActiveEnrollment(ctx context.Context, studentID, courseID int64) (*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "student_id", "course_id", "status").
		From("enrollments").
		Where(squirrel.Eq{
			"student_id": studentID,
			"course_id":  courseID,
			"status":     domain.EnrollmentStatusActive,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveEnrollment - build select query: %v", ErrBuildQuery, err)
	}

	var enrollment domain.Enrollment
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveEnrollment - scan enrollment: %v", ErrScanRow, err)
	}

	return &enrollment, nil
}

// GetCourse получает курс по ID
func (r *Repository) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "category", "type", "required_lessons").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourse - build select query: %v", ErrBuildQuery, err)
	}

	var course domain.Course
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&course.ID,
		&course.Name,
		&course.Category,
		&course.Type,
		&course.RequiredLessons,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourse - scan course: %v", ErrScanRow, err)
	}

	return &course, nil
}

// GetInstructor получает инструктора по ID
func (r *Repository) GetInstructor(ctx context.Context, id int64) (*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "license_categories").
		From("instructors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetInstructor - build select query: %v", ErrBuildQuery, err)
	}

	var instructor domain.Instructor
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&instructor.ID,
		&instructor.Name,
		&instructor.LicenseCategories,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInstructorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetInstructor - scan instructor: %v", ErrScanRow, err)
	}

	return &instructor, nil
}

// GetResource получает ресурс (автомобиль или класс) по ID
func (r *Repository) GetResource(ctx context.Context, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "category", "max_capacity").
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetResource - build select query: %v", ErrBuildQuery, err)
	}

	var resource domain.Resource
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&resource.ID,
		&resource.Name,
		&resource.Category,
		&resource.MaxCapacity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetResource - scan resource: %v", ErrScanRow, err)
	}

	return &resource, nil
}
