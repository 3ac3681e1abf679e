package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructor_HasLicenseCategory(t *testing.T) {
	instructor := &Instructor{ID: 1, LicenseCategories: "B, C, CE"}

	assert.True(t, instructor.HasLicenseCategory("B"))
	assert.True(t, instructor.HasLicenseCategory("b"))
	assert.True(t, instructor.HasLicenseCategory(" ce "))
	assert.False(t, instructor.HasLicenseCategory("A"))
	assert.False(t, instructor.HasLicenseCategory("E"))
	assert.False(t, instructor.HasLicenseCategory(""))
}

func TestResource_Kind(t *testing.T) {
	car := &Resource{ID: 1, MaxCapacity: 2}
	assert.True(t, car.IsVehicle())
	assert.False(t, car.IsClassroom())

	classroom := &Resource{ID: 2, MaxCapacity: 20}
	assert.False(t, classroom.IsVehicle())
	assert.True(t, classroom.IsClassroom())
}

func TestEnrollment_IsActive(t *testing.T) {
	assert.True(t, (&Enrollment{Status: EnrollmentStatusActive}).IsActive())
	assert.False(t, (&Enrollment{Status: "completed"}).IsActive())
}
