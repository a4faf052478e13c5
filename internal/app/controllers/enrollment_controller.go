package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/app/models/dto"
	"github.com/ozan/academix/internal/app/services"
	"github.com/ozan/academix/internal/middleware"
)

// EnrollmentController handles enrollment endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new enrollment controller
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

func toEnrollmentResponse(enrollment *models.Enrollment) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		ID:             enrollment.ID,
		StudentID:      enrollment.StudentID,
		CourseID:       enrollment.CourseID,
		ProgramID:      enrollment.ProgramID,
		Status:         string(enrollment.Status),
		EnrollmentDate: enrollment.EnrollmentDate,
		FinalGrade:     enrollment.FinalGrade,
	}
	if enrollment.Student != nil {
		resp.StudentName = enrollment.Student.Name
	}
	if enrollment.Course != nil {
		resp.CourseName = enrollment.Course.Name
		resp.CourseCode = enrollment.Course.Code
		resp.Credits = enrollment.Course.Credits
		if enrollment.Course.Semester != nil {
			resp.SemesterName = enrollment.Course.Semester.Name
		}
		if enrollment.Course.Lecturer != nil {
			resp.LecturerName = enrollment.Course.Lecturer.Name
		}
	}
	return resp
}

// Enroll enrolls the calling student in a course
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), studentID, req.CourseID, req.ProgramID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toEnrollmentResponse(enrollment))
}

// GetMyEnrollments lists the calling student's enrollments
func (c *EnrollmentController) GetMyEnrollments(ctx *gin.Context) {
	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	semesterID, ok := parseOptionalID(ctx, "semesterId")
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.GetStudentEnrollments(ctx.Request.Context(), studentID, semesterID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.EnrollmentListResponse{Enrollments: make([]dto.EnrollmentResponse, 0, len(enrollments))}
	for _, enrollment := range enrollments {
		resp.Enrollments = append(resp.Enrollments, toEnrollmentResponse(enrollment))
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetCourseEnrollments lists a course's enrollments with student details
func (c *EnrollmentController) GetCourseEnrollments(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrolledOnly := ctx.DefaultQuery("enrolledOnly", "true") == "true"
	enrollments, err := c.enrollmentService.GetCourseEnrollments(ctx.Request.Context(), courseID, enrolledOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.EnrollmentListResponse{Enrollments: make([]dto.EnrollmentResponse, 0, len(enrollments))}
	for _, enrollment := range enrollments {
		resp.Enrollments = append(resp.Enrollments, toEnrollmentResponse(enrollment))
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateStatus moves an enrollment to a new status (admin and lecturers)
func (c *EnrollmentController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEnrollmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	status, _ := models.ParseEnrollmentStatus(req.Status)
	enrollment, err := c.enrollmentService.UpdateStatus(ctx.Request.Context(), id, status, req.FinalGrade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toEnrollmentResponse(enrollment))
}

// Drop moves the calling student's enrollment to dropped
func (c *EnrollmentController) Drop(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, okUser := middleware.CurrentUserID(ctx)
	role, okRole := middleware.CurrentRole(ctx)
	if !okUser || !okRole {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	enrollment, err := c.enrollmentService.Drop(ctx.Request.Context(), id, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toEnrollmentResponse(enrollment))
}
