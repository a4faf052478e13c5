package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/app/models/dto"
	"github.com/ozan/academix/internal/app/services"
	"github.com/ozan/academix/internal/middleware"
)

// AllocationController handles lecturer assignment and course allocation
// endpoints nested under programs.
type AllocationController struct {
	allocationService *services.AllocationService
}

// NewAllocationController creates a new allocation controller
func NewAllocationController(allocationService *services.AllocationService) *AllocationController {
	return &AllocationController{
		allocationService: allocationService,
	}
}

func toAssignmentResponse(assignment *models.ProgramLecturer, reactivated bool) dto.LecturerAssignmentResponse {
	resp := dto.LecturerAssignmentResponse{
		ID:          assignment.ID,
		ProgramID:   assignment.ProgramID,
		LecturerID:  assignment.LecturerID,
		Role:        assignment.Role,
		AssignedAt:  assignment.AssignedAt,
		IsActive:    assignment.IsActive,
		Reactivated: reactivated,
	}
	if assignment.Lecturer != nil {
		resp.LecturerName = assignment.Lecturer.Name
		resp.LecturerEmail = assignment.Lecturer.Email
	}
	if assignment.Program != nil {
		resp.ProgramName = assignment.Program.Name
		resp.ProgramCode = assignment.Program.Code
	}
	return resp
}

func toAllocationResponse(alloc *models.ProgramCourse, reactivated bool) dto.CourseAllocationResponse {
	resp := dto.CourseAllocationResponse{
		ID:            alloc.ID,
		ProgramID:     alloc.ProgramID,
		CourseID:      alloc.CourseID,
		IsRequired:    alloc.IsRequired,
		SemesterOrder: alloc.SemesterOrder,
		AllocatedAt:   alloc.AllocatedAt,
		IsActive:      alloc.IsActive,
		Reactivated:   reactivated,
	}
	if alloc.Course != nil {
		resp.CourseName = alloc.Course.Name
		resp.CourseCode = alloc.Course.Code
		resp.Credits = alloc.Course.Credits
	}
	return resp
}

// AssignLecturer assigns a lecturer to a program
func (c *AllocationController) AssignLecturer(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignLecturerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	var assignedBy *int64
	if userID, ok := middleware.CurrentUserID(ctx); ok {
		assignedBy = &userID
	}

	result, err := c.allocationService.AssignLecturer(ctx.Request.Context(), programID, req.LecturerID, req.Role, assignedBy)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusCreated
	if result.Reactivated {
		status = http.StatusOK
	}
	ctx.JSON(status, toAssignmentResponse(result.Assignment, result.Reactivated))
}

// GetAssignments lists a program's lecturer assignments
func (c *AllocationController) GetAssignments(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	activeOnly := ctx.DefaultQuery("activeOnly", "true") == "true"
	assignments, err := c.allocationService.GetAssignments(ctx.Request.Context(), programID, activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.LecturerAssignmentListResponse{Assignments: make([]dto.LecturerAssignmentResponse, 0, len(assignments))}
	for _, assignment := range assignments {
		resp.Assignments = append(resp.Assignments, toAssignmentResponse(assignment, false))
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetMyAssignments lists the programs the calling lecturer is assigned to
func (c *AllocationController) GetMyAssignments(ctx *gin.Context) {
	lecturerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	assignments, err := c.allocationService.GetLecturerAssignments(ctx.Request.Context(), lecturerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.LecturerAssignmentListResponse{Assignments: make([]dto.LecturerAssignmentResponse, 0, len(assignments))}
	for _, assignment := range assignments {
		resp.Assignments = append(resp.Assignments, toAssignmentResponse(assignment, false))
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateAssignment changes an assignment's role
func (c *AllocationController) UpdateAssignment(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(ctx, "assignmentId")
	if !ok {
		return
	}

	var req dto.UpdateLecturerAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	assignment, err := c.allocationService.UpdateAssignment(ctx.Request.Context(), programID, assignmentID, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toAssignmentResponse(assignment, false))
}

// RemoveAssignment soft-deletes an assignment
func (c *AllocationController) RemoveAssignment(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(ctx, "assignmentId")
	if !ok {
		return
	}

	if err := c.allocationService.RemoveAssignment(ctx.Request.Context(), programID, assignmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Assignment removed"})
}

// AllocateCourse allocates a course into a program's curriculum
func (c *AllocationController) AllocateCourse(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AllocateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	var allocatedBy *int64
	if userID, ok := middleware.CurrentUserID(ctx); ok {
		allocatedBy = &userID
	}

	result, err := c.allocationService.AllocateCourse(ctx.Request.Context(), programID, req.CourseID, req.IsRequired, req.SemesterOrder, allocatedBy)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusCreated
	if result.Reactivated {
		status = http.StatusOK
	}
	ctx.JSON(status, toAllocationResponse(result.Allocation, result.Reactivated))
}

// GetAllocations lists a program's course allocations in curriculum order
func (c *AllocationController) GetAllocations(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	activeOnly := ctx.DefaultQuery("activeOnly", "true") == "true"
	allocations, err := c.allocationService.GetAllocations(ctx.Request.Context(), programID, activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.CourseAllocationListResponse{Allocations: make([]dto.CourseAllocationResponse, 0, len(allocations))}
	for _, alloc := range allocations {
		resp.Allocations = append(resp.Allocations, toAllocationResponse(alloc, false))
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateAllocation changes an allocation's curriculum attributes
func (c *AllocationController) UpdateAllocation(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	allocationID, ok := parseIDParam(ctx, "allocationId")
	if !ok {
		return
	}

	var req dto.UpdateCourseAllocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	alloc, err := c.allocationService.UpdateAllocation(ctx.Request.Context(), programID, allocationID, req.IsRequired, req.SemesterOrder)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toAllocationResponse(alloc, false))
}

// RemoveAllocation soft-deletes an allocation
func (c *AllocationController) RemoveAllocation(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	allocationID, ok := parseIDParam(ctx, "allocationId")
	if !ok {
		return
	}

	if err := c.allocationService.RemoveAllocation(ctx.Request.Context(), programID, allocationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Allocation removed"})
}
