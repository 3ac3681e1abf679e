package domain

import "strings"

// CourseType represents the kind of training a course provides
type CourseType string

const (
	CourseTheory   CourseType = "theory"
	CoursePractice CourseType = "practice"
)

// Course represents a training course of the driving school
type Course struct {
	ID              int64
	Name            string
	Category        string // категория прав (A, B, C, ...)
	Type            CourseType
	RequiredLessons int
}

// Resource represents a bookable resource: a training vehicle or a classroom
type Resource struct {
	ID          int64
	Name        string
	Category    string // категория прав, для которой предназначен ресурс
	MaxCapacity int
}

// IsVehicle returns true for single-occupant lesson resources
func (r *Resource) IsVehicle() bool {
	return r.MaxCapacity <= VehicleMaxCapacity
}

// IsClassroom returns true for multi-student class resources
func (r *Resource) IsClassroom() bool {
	return r.MaxCapacity > VehicleMaxCapacity
}

// Instructor represents a driving school instructor
type Instructor struct {
	ID   int64
	Name string

	// LicenseCategories категории прав инструктора через запятую ("B, C, CE")
	LicenseCategories string
}

// HasLicenseCategory проверяет наличие категории у инструктора.
// Сравнение регистронезависимое, пробелы вокруг кодов игнорируются.
func (i *Instructor) HasLicenseCategory(category string) bool {
	want := strings.ToLower(strings.TrimSpace(category))
	if want == "" {
		return false
	}
	for _, code := range strings.Split(i.LicenseCategories, ",") {
		if strings.ToLower(strings.TrimSpace(code)) == want {
			return true
		}
	}
	return false
}

// Enrollment represents a student's enrollment into a course
type Enrollment struct {
	ID        int64
	StudentID int64
	CourseID  int64
	Status    string
}

// IsActive returns true if the enrollment is in effect
func (e *Enrollment) IsActive() bool {
	return e.Status == EnrollmentStatusActive
}
