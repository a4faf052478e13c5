package models

import "strings"

// Role defines the user role type. Roles are parsed once at the API boundary
// and compared as Role values internally, never as raw strings.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleLecturer Role = "lecturer"
	RoleStudent  Role = "student"
)

// ParseRole parses a role string case-insensitively. The second return value
// reports whether the input named a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleLecturer:
		return RoleLecturer, true
	case RoleStudent:
		return RoleStudent, true
	}
	return "", false
}

// ProgramType defines the academic program type
type ProgramType string

const (
	ProgramBachelor    ProgramType = "bachelor"
	ProgramMaster      ProgramType = "master"
	ProgramPhD         ProgramType = "phd"
	ProgramDiploma     ProgramType = "diploma"
	ProgramCertificate ProgramType = "certificate"
)

// ParseProgramType parses a program type string case-insensitively.
func ParseProgramType(s string) (ProgramType, bool) {
	switch ProgramType(strings.ToLower(strings.TrimSpace(s))) {
	case ProgramBachelor:
		return ProgramBachelor, true
	case ProgramMaster:
		return ProgramMaster, true
	case ProgramPhD:
		return ProgramPhD, true
	case ProgramDiploma:
		return ProgramDiploma, true
	case ProgramCertificate:
		return ProgramCertificate, true
	}
	return "", false
}

// SemesterType defines the semester term type
type SemesterType string

const (
	SemesterFall   SemesterType = "fall"
	SemesterSpring SemesterType = "spring"
	SemesterSummer SemesterType = "summer"
)

// ParseSemesterType parses a semester type string case-insensitively.
func ParseSemesterType(s string) (SemesterType, bool) {
	switch SemesterType(strings.ToLower(strings.TrimSpace(s))) {
	case SemesterFall:
		return SemesterFall, true
	case SemesterSpring:
		return SemesterSpring, true
	case SemesterSummer:
		return SemesterSummer, true
	}
	return "", false
}

// EnrollmentStatus defines the lifecycle state of an enrollment
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// ParseEnrollmentStatus parses an enrollment status string case-insensitively.
func ParseEnrollmentStatus(s string) (EnrollmentStatus, bool) {
	switch EnrollmentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case EnrollmentEnrolled:
		return EnrollmentEnrolled, true
	case EnrollmentCompleted:
		return EnrollmentCompleted, true
	case EnrollmentDropped:
		return EnrollmentDropped, true
	}
	return "", false
}

// CanTransitionTo reports whether an enrollment may move from its current
// status to target. Enrolled is the only state with outgoing transitions;
// a genuine re-enrollment always creates a new row.
func (s EnrollmentStatus) CanTransitionTo(target EnrollmentStatus) bool {
	if s != EnrollmentEnrolled {
		return false
	}
	return target == EnrollmentCompleted || target == EnrollmentDropped
}
