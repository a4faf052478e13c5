package services

import (
	"github.com/ozan/academix/internal/app/repositories"
	"github.com/ozan/academix/internal/pkg/auth"
)

// Event types published to the notification hub after a successful commit.
const (
	EventEnrollmentCreated = "enrollment.created"
	EventEnrollmentUpdated = "enrollment.updated"
	EventLecturerAssigned  = "allocation.lecturer_assigned"
	EventLecturerRemoved   = "allocation.lecturer_removed"
	EventCourseAllocated   = "allocation.course_allocated"
	EventCourseRemoved     = "allocation.course_removed"
	EventSemesterChanged   = "semester.current_changed"
)

// Event is a notification published to connected clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Notifier delivers events to connected clients. Publishing is fire-and-forget;
// services never block or fail on notification delivery.
type Notifier interface {
	Publish(event Event)
}

// noopNotifier swallows events when no hub is wired in (tests, CLI tools).
type noopNotifier struct{}

func (noopNotifier) Publish(Event) {}

// NewNoopNotifier returns a Notifier that discards all events.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	DepartmentService *DepartmentService
	ProgramService    *ProgramService
	CourseService     *CourseService
	SemesterService   *SemesterService
	AllocationService *AllocationService
	EnrollmentService *EnrollmentService
}

// NewServices initializes all services with their repository dependencies
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, notifier Notifier) *Services {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}

	return &Services{
		AuthService: NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		DepartmentService: NewDepartmentService(
			repos.DepartmentRepository, repos.UserRepository),
		ProgramService: NewProgramService(
			repos.ProgramRepository, repos.DepartmentRepository),
		CourseService: NewCourseService(
			repos.CourseRepository, repos.DepartmentRepository,
			repos.SemesterRepository, repos.UserRepository),
		SemesterService: NewSemesterService(repos.SemesterRepository, notifier),
		AllocationService: NewAllocationService(
			repos.ProgramLecturerRepository, repos.ProgramCourseRepository,
			repos.ProgramRepository, repos.CourseRepository,
			repos.UserRepository, notifier),
		EnrollmentService: NewEnrollmentService(
			repos.EnrollmentRepository, repos.CourseRepository,
			repos.ProgramRepository, repos.UserRepository, notifier),
	}
}
