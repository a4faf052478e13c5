package services

import (
	"context"
	"sync"
	"time"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/app/repositories"
)

// In-memory store fakes backing the service tests. They mirror the SQL
// semantics the repositories rely on, including the active-scope uniqueness
// checks and the derived enrolled count.

type fakeNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *fakeNotifier) Publish(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *fakeNotifier) eventTypes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	types := make([]string, 0, len(n.events))
	for _, e := range n.events {
		types = append(types, e.Type)
	}
	return types
}

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	} else if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	f.add(user)
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) ListByRole(_ context.Context, role models.Role, departmentID *int64) ([]*models.User, error) {
	var out []*models.User
	for _, user := range f.users {
		if user.Role != role || !user.IsActive {
			continue
		}
		if departmentID != nil && (user.DepartmentID == nil || *user.DepartmentID != *departmentID) {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, id int64) error {
	user, ok := f.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

type fakeTokenStore struct {
	tokens map[string]*models.RefreshToken
	nextID int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.RefreshToken), nextID: 1}
}

func (f *fakeTokenStore) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = f.nextID
	f.nextID++
	token.CreatedAt = time.Now()
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenStore) GetByToken(_ context.Context, tokenValue string) (*models.RefreshToken, error) {
	token, ok := f.tokens[tokenValue]
	if !ok {
		return nil, repositories.ErrTokenNotFound
	}
	return token, nil
}

func (f *fakeTokenStore) Delete(_ context.Context, tokenValue string) error {
	if _, ok := f.tokens[tokenValue]; !ok {
		return repositories.ErrTokenNotFound
	}
	delete(f.tokens, tokenValue)
	return nil
}

func (f *fakeTokenStore) DeleteByUser(_ context.Context, userID int64) error {
	for value, token := range f.tokens {
		if token.UserID == userID {
			delete(f.tokens, value)
		}
	}
	return nil
}

type fakeDepartmentStore struct {
	departments map[int64]*models.Department
	programs    *fakeProgramStore
	courses     *fakeCourseStore
	users       *fakeUserStore
	enrollments *fakeEnrollmentStore
	nextID      int64
}

func newFakeDepartmentStore() *fakeDepartmentStore {
	return &fakeDepartmentStore{departments: make(map[int64]*models.Department), nextID: 1}
}

func (f *fakeDepartmentStore) add(department *models.Department) *models.Department {
	if department.ID == 0 {
		department.ID = f.nextID
		f.nextID++
	} else if department.ID >= f.nextID {
		f.nextID = department.ID + 1
	}
	f.departments[department.ID] = department
	return department
}

func (f *fakeDepartmentStore) Create(_ context.Context, department *models.Department) error {
	department.CreatedAt = time.Now()
	f.add(department)
	return nil
}

func (f *fakeDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	department, ok := f.departments[id]
	if !ok {
		return nil, repositories.ErrDepartmentNotFound
	}
	return department, nil
}

func (f *fakeDepartmentStore) GetAll(_ context.Context, activeOnly bool) ([]*models.Department, error) {
	var out []*models.Department
	for _, department := range f.departments {
		if activeOnly && !department.IsActive {
			continue
		}
		out = append(out, department)
	}
	return out, nil
}

func (f *fakeDepartmentStore) CodeExistsActive(_ context.Context, code string, excludeID int64) (bool, error) {
	for _, department := range f.departments {
		if department.Code == code && department.IsActive && department.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDepartmentStore) Update(_ context.Context, department *models.Department) error {
	if _, ok := f.departments[department.ID]; !ok {
		return repositories.ErrDepartmentNotFound
	}
	f.departments[department.ID] = department
	return nil
}

func (f *fakeDepartmentStore) CountActiveDependents(_ context.Context, id int64) (int, int, error) {
	var programs, courses int
	if f.programs != nil {
		for _, p := range f.programs.programs {
			if p.DepartmentID == id && p.IsActive {
				programs++
			}
		}
	}
	if f.courses != nil {
		for _, c := range f.courses.courses {
			if c.DepartmentID == id && c.IsActive {
				courses++
			}
		}
	}
	return programs, courses, nil
}

func (f *fakeDepartmentStore) Deactivate(_ context.Context, id int64) error {
	department, ok := f.departments[id]
	if !ok {
		return repositories.ErrDepartmentNotFound
	}
	department.IsActive = false
	return nil
}

func (f *fakeDepartmentStore) DeactivateCascade(_ context.Context, id int64) error {
	department, ok := f.departments[id]
	if !ok {
		return repositories.ErrDepartmentNotFound
	}
	if f.programs != nil {
		for _, p := range f.programs.programs {
			if p.DepartmentID == id {
				p.IsActive = false
			}
		}
	}
	if f.courses != nil {
		for _, c := range f.courses.courses {
			if c.DepartmentID == id {
				c.IsActive = false
			}
		}
	}
	if f.users != nil {
		for _, u := range f.users.users {
			if u.DepartmentID != nil && *u.DepartmentID == id {
				u.DepartmentID = nil
			}
		}
	}
	department.IsActive = false
	return nil
}

type fakeProgramStore struct {
	programs    map[int64]*models.Program
	enrollments *fakeEnrollmentStore
	nextID      int64
}

func newFakeProgramStore() *fakeProgramStore {
	return &fakeProgramStore{programs: make(map[int64]*models.Program), nextID: 1}
}

func (f *fakeProgramStore) add(program *models.Program) *models.Program {
	if program.ID == 0 {
		program.ID = f.nextID
		f.nextID++
	} else if program.ID >= f.nextID {
		f.nextID = program.ID + 1
	}
	f.programs[program.ID] = program
	return program
}

func (f *fakeProgramStore) Create(_ context.Context, program *models.Program) error {
	program.CreatedAt = time.Now()
	f.add(program)
	return nil
}

func (f *fakeProgramStore) GetByID(_ context.Context, id int64) (*models.Program, error) {
	program, ok := f.programs[id]
	if !ok {
		return nil, repositories.ErrProgramNotFound
	}
	return program, nil
}

func (f *fakeProgramStore) GetAll(_ context.Context, departmentID *int64, activeOnly bool) ([]*models.Program, error) {
	var out []*models.Program
	for _, program := range f.programs {
		if activeOnly && !program.IsActive {
			continue
		}
		if departmentID != nil && program.DepartmentID != *departmentID {
			continue
		}
		out = append(out, program)
	}
	return out, nil
}

func (f *fakeProgramStore) CodeExistsActive(_ context.Context, code string, excludeID int64) (bool, error) {
	for _, program := range f.programs {
		if program.Code == code && program.IsActive && program.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProgramStore) Update(_ context.Context, program *models.Program) error {
	if _, ok := f.programs[program.ID]; !ok {
		return repositories.ErrProgramNotFound
	}
	f.programs[program.ID] = program
	return nil
}

func (f *fakeProgramStore) CountActiveEnrollments(_ context.Context, id int64) (int, error) {
	if f.enrollments == nil {
		return 0, nil
	}
	var count int
	for _, e := range f.enrollments.enrollments {
		if e.ProgramID == id && e.Status == models.EnrollmentEnrolled {
			count++
		}
	}
	return count, nil
}

func (f *fakeProgramStore) Deactivate(_ context.Context, id int64) error {
	program, ok := f.programs[id]
	if !ok {
		return repositories.ErrProgramNotFound
	}
	program.IsActive = false
	return nil
}

func (f *fakeProgramStore) DeactivateWithEnrollments(_ context.Context, id int64) error {
	program, ok := f.programs[id]
	if !ok {
		return repositories.ErrProgramNotFound
	}
	if f.enrollments != nil {
		for _, e := range f.enrollments.enrollments {
			if e.ProgramID == id && e.Status == models.EnrollmentEnrolled {
				e.Status = models.EnrollmentDropped
				e.IsActive = false
			}
		}
	}
	program.IsActive = false
	return nil
}

type fakeCourseStore struct {
	courses     map[int64]*models.Course
	enrollments *fakeEnrollmentStore
	nextID      int64
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[int64]*models.Course), nextID: 1}
}

func (f *fakeCourseStore) add(course *models.Course) *models.Course {
	if course.ID == 0 {
		course.ID = f.nextID
		f.nextID++
	} else if course.ID >= f.nextID {
		f.nextID = course.ID + 1
	}
	f.courses[course.ID] = course
	return course
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	course.CreatedAt = time.Now()
	f.add(course)
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, repositories.ErrCourseNotFound
	}
	if f.enrollments != nil {
		course.EnrolledCount = f.enrollments.countEnrolled(id)
	}
	return course, nil
}

func (f *fakeCourseStore) GetAll(_ context.Context, filter repositories.CourseFilter) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, course := range f.courses {
		if filter.ActiveOnly && !course.IsActive {
			continue
		}
		if filter.DepartmentID != nil && course.DepartmentID != *filter.DepartmentID {
			continue
		}
		if filter.SemesterID != nil && course.SemesterID != *filter.SemesterID {
			continue
		}
		if filter.LecturerID != nil && (course.LecturerID == nil || *course.LecturerID != *filter.LecturerID) {
			continue
		}
		out = append(out, course)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourseStore) CodeExistsActive(_ context.Context, code string, excludeID int64) (bool, error) {
	for _, course := range f.courses {
		if course.Code == code && course.IsActive && course.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return repositories.ErrCourseNotFound
	}
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) Deactivate(_ context.Context, id int64) error {
	course, ok := f.courses[id]
	if !ok {
		return repositories.ErrCourseNotFound
	}
	course.IsActive = false
	return nil
}

type fakeSemesterStore struct {
	semesters map[int64]*models.Semester
	nextID    int64
}

func newFakeSemesterStore() *fakeSemesterStore {
	return &fakeSemesterStore{semesters: make(map[int64]*models.Semester), nextID: 1}
}

func (f *fakeSemesterStore) add(semester *models.Semester) *models.Semester {
	if semester.ID == 0 {
		semester.ID = f.nextID
		f.nextID++
	} else if semester.ID >= f.nextID {
		f.nextID = semester.ID + 1
	}
	f.semesters[semester.ID] = semester
	return semester
}

func (f *fakeSemesterStore) Create(_ context.Context, semester *models.Semester) error {
	semester.CreatedAt = time.Now()
	f.add(semester)
	return nil
}

func (f *fakeSemesterStore) GetByID(_ context.Context, id int64) (*models.Semester, error) {
	semester, ok := f.semesters[id]
	if !ok {
		return nil, repositories.ErrSemesterNotFound
	}
	return semester, nil
}

func (f *fakeSemesterStore) GetAll(_ context.Context, limit int) ([]*models.Semester, error) {
	var out []*models.Semester
	for _, semester := range f.semesters {
		out = append(out, semester)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeSemesterStore) GetCurrent(_ context.Context) (*models.Semester, error) {
	var newest *models.Semester
	for _, semester := range f.semesters {
		if semester.IsCurrent {
			return semester, nil
		}
		if newest == nil || semester.StartDate.After(newest.StartDate) {
			newest = semester
		}
	}
	if newest == nil {
		return nil, repositories.ErrSemesterNotFound
	}
	return newest, nil
}

func (f *fakeSemesterStore) SetCurrent(_ context.Context, id int64) error {
	target, ok := f.semesters[id]
	if !ok {
		return repositories.ErrSemesterNotFound
	}
	for _, semester := range f.semesters {
		semester.IsCurrent = false
	}
	target.IsCurrent = true
	return nil
}

func (f *fakeSemesterStore) Update(_ context.Context, semester *models.Semester) error {
	if _, ok := f.semesters[semester.ID]; !ok {
		return repositories.ErrSemesterNotFound
	}
	f.semesters[semester.ID] = semester
	return nil
}

type fakeEnrollmentStore struct {
	enrollments map[int64]*models.Enrollment
	nextID      int64
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{enrollments: make(map[int64]*models.Enrollment), nextID: 1}
}

func (f *fakeEnrollmentStore) add(enrollment *models.Enrollment) *models.Enrollment {
	if enrollment.ID == 0 {
		enrollment.ID = f.nextID
		f.nextID++
	} else if enrollment.ID >= f.nextID {
		f.nextID = enrollment.ID + 1
	}
	f.enrollments[enrollment.ID] = enrollment
	return enrollment
}

func (f *fakeEnrollmentStore) countEnrolled(courseID int64) int {
	var count int
	for _, e := range f.enrollments {
		if e.CourseID == courseID && e.Status == models.EnrollmentEnrolled {
			count++
		}
	}
	return count
}

func (f *fakeEnrollmentStore) Create(_ context.Context, enrollment *models.Enrollment) error {
	enrollment.EnrollmentDate = time.Now()
	f.add(enrollment)
	return nil
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return nil, repositories.ErrEnrollmentNotFound
	}
	return enrollment, nil
}

func (f *fakeEnrollmentStore) GetEnrolledByStudentAndCourse(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID && e.Status == models.EnrollmentEnrolled {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEnrollmentStore) CountEnrolledByCourse(_ context.Context, courseID int64) (int, error) {
	return f.countEnrolled(courseID), nil
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID int64, _ *int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListByCourse(_ context.Context, courseID int64, enrolledOnly bool) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if e.CourseID != courseID {
			continue
		}
		if enrolledOnly && e.Status != models.EnrollmentEnrolled {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEnrollmentStore) UpdateStatus(_ context.Context, id int64, status models.EnrollmentStatus, finalGrade *string) error {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return repositories.ErrEnrollmentNotFound
	}
	enrollment.Status = status
	enrollment.IsActive = status == models.EnrollmentEnrolled
	if finalGrade != nil {
		enrollment.FinalGrade = finalGrade
	}
	return nil
}

type fakeAssignmentStore struct {
	assignments map[int64]*models.ProgramLecturer
	nextID      int64
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{assignments: make(map[int64]*models.ProgramLecturer), nextID: 1}
}

func (f *fakeAssignmentStore) Create(_ context.Context, assignment *models.ProgramLecturer) error {
	assignment.ID = f.nextID
	f.nextID++
	assignment.AssignedAt = time.Now()
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeAssignmentStore) GetByProgramAndLecturer(_ context.Context, programID, lecturerID int64) (*models.ProgramLecturer, error) {
	for _, a := range f.assignments {
		if a.ProgramID == programID && a.LecturerID == lecturerID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAssignmentStore) GetByID(_ context.Context, programID, assignmentID int64) (*models.ProgramLecturer, error) {
	a, ok := f.assignments[assignmentID]
	if !ok || a.ProgramID != programID {
		return nil, repositories.ErrAssignmentNotFound
	}
	return a, nil
}

func (f *fakeAssignmentStore) Reactivate(_ context.Context, id int64, role string, assignedByID *int64) error {
	a, ok := f.assignments[id]
	if !ok {
		return repositories.ErrAssignmentNotFound
	}
	a.IsActive = true
	a.Role = role
	a.AssignedByID = assignedByID
	a.AssignedAt = time.Now()
	return nil
}

func (f *fakeAssignmentStore) ListByProgram(_ context.Context, programID int64, activeOnly bool) ([]*models.ProgramLecturer, error) {
	var out []*models.ProgramLecturer
	for _, a := range f.assignments {
		if a.ProgramID != programID {
			continue
		}
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAssignmentStore) ListByLecturer(_ context.Context, lecturerID int64) ([]*models.ProgramLecturer, error) {
	var out []*models.ProgramLecturer
	for _, a := range f.assignments {
		if a.LecturerID == lecturerID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentStore) Update(_ context.Context, assignment *models.ProgramLecturer) error {
	if _, ok := f.assignments[assignment.ID]; !ok {
		return repositories.ErrAssignmentNotFound
	}
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeAssignmentStore) Deactivate(_ context.Context, programID, assignmentID int64) error {
	a, ok := f.assignments[assignmentID]
	if !ok || a.ProgramID != programID {
		return repositories.ErrAssignmentNotFound
	}
	a.IsActive = false
	return nil
}

type fakeAllocationStore struct {
	allocations map[int64]*models.ProgramCourse
	nextID      int64
}

func newFakeAllocationStore() *fakeAllocationStore {
	return &fakeAllocationStore{allocations: make(map[int64]*models.ProgramCourse), nextID: 1}
}

func (f *fakeAllocationStore) Create(_ context.Context, alloc *models.ProgramCourse) error {
	alloc.ID = f.nextID
	f.nextID++
	alloc.AllocatedAt = time.Now()
	f.allocations[alloc.ID] = alloc
	return nil
}

func (f *fakeAllocationStore) GetByProgramAndCourse(_ context.Context, programID, courseID int64) (*models.ProgramCourse, error) {
	for _, a := range f.allocations {
		if a.ProgramID == programID && a.CourseID == courseID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAllocationStore) GetByID(_ context.Context, programID, allocationID int64) (*models.ProgramCourse, error) {
	a, ok := f.allocations[allocationID]
	if !ok || a.ProgramID != programID {
		return nil, repositories.ErrAllocationNotFound
	}
	return a, nil
}

func (f *fakeAllocationStore) Reactivate(_ context.Context, id int64, isRequired bool, semesterOrder int, allocatedByID *int64) error {
	a, ok := f.allocations[id]
	if !ok {
		return repositories.ErrAllocationNotFound
	}
	a.IsActive = true
	a.IsRequired = isRequired
	a.SemesterOrder = semesterOrder
	a.AllocatedByID = allocatedByID
	a.AllocatedAt = time.Now()
	return nil
}

func (f *fakeAllocationStore) ListByProgram(_ context.Context, programID int64, activeOnly bool) ([]*models.ProgramCourse, error) {
	var out []*models.ProgramCourse
	for _, a := range f.allocations {
		if a.ProgramID != programID {
			continue
		}
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAllocationStore) Update(_ context.Context, alloc *models.ProgramCourse) error {
	if _, ok := f.allocations[alloc.ID]; !ok {
		return repositories.ErrAllocationNotFound
	}
	f.allocations[alloc.ID] = alloc
	return nil
}

func (f *fakeAllocationStore) Deactivate(_ context.Context, programID, allocationID int64) error {
	a, ok := f.allocations[allocationID]
	if !ok || a.ProgramID != programID {
		return repositories.ErrAllocationNotFound
	}
	a.IsActive = false
	return nil
}
