package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/app/models/dto"
	"github.com/ozan/academix/internal/app/repositories"
	"github.com/ozan/academix/internal/app/services"
	"github.com/ozan/academix/internal/middleware"
	"github.com/ozan/academix/internal/pkg/helpers"
)

// CourseController handles course catalog endpoints
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new course controller
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

func toCourseResponse(course *models.Course) dto.CourseResponse {
	resp := dto.CourseResponse{
		ID:             course.ID,
		Name:           course.Name,
		Code:           course.Code,
		Credits:        course.Credits,
		DepartmentID:   course.DepartmentID,
		LecturerID:     course.LecturerID,
		SemesterID:     course.SemesterID,
		MaxCapacity:    course.MaxCapacity,
		EnrolledCount:  course.EnrolledCount,
		AvailableSpots: course.AvailableSpots(),
		IsActive:       course.IsActive,
	}
	if course.Description != nil {
		resp.Description = *course.Description
	}
	if course.Department != nil {
		resp.DepartmentName = course.Department.Name
	}
	if course.Lecturer != nil {
		resp.LecturerName = course.Lecturer.Name
	}
	return resp
}

func parseOptionalID(ctx *gin.Context, name string) (*int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &id, true
}

// Create creates a new course
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	course := &models.Course{
		Name:         req.Name,
		Code:         req.Code,
		Credits:      req.Credits,
		DepartmentID: req.DepartmentID,
		LecturerID:   req.LecturerID,
		SemesterID:   req.SemesterID,
		MaxCapacity:  req.MaxCapacity,
	}
	if req.Description != "" {
		course.Description = &req.Description
	}

	if err := c.courseService.CreateCourse(ctx.Request.Context(), course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toCourseResponse(course))
}

// GetAll lists one page of courses matching the query filters
func (c *CourseController) GetAll(ctx *gin.Context) {
	filter := repositories.CourseFilter{
		ActiveOnly: ctx.DefaultQuery("activeOnly", "true") == "true",
	}
	filter.Page, filter.Size = helpers.ParsePaginationParams(ctx)

	var ok bool
	if filter.DepartmentID, ok = parseOptionalID(ctx, "departmentId"); !ok {
		return
	}
	if filter.SemesterID, ok = parseOptionalID(ctx, "semesterId"); !ok {
		return
	}
	if filter.LecturerID, ok = parseOptionalID(ctx, "lecturerId"); !ok {
		return
	}

	courses, total, err := c.courseService.GetAllCourses(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.CourseListResponse{
		Courses:    make([]dto.CourseResponse, 0, len(courses)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Size),
	}
	for _, course := range courses {
		resp.Courses = append(resp.Courses, toCourseResponse(course))
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetByID retrieves one course with its derived enrollment count
func (c *CourseController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toCourseResponse(course))
}

// Update updates a course
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	course := &models.Course{
		ID:          id,
		Name:        req.Name,
		Code:        req.Code,
		Credits:     req.Credits,
		LecturerID:  req.LecturerID,
		SemesterID:  req.SemesterID,
		MaxCapacity: req.MaxCapacity,
		IsActive:    true,
	}
	if req.Description != "" {
		course.Description = &req.Description
	}

	if err := c.courseService.UpdateCourse(ctx.Request.Context(), course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toCourseResponse(course))
}

// Delete soft-deletes a course
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Course deleted"})
}
