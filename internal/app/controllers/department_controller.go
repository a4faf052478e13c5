package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/app/models/dto"
	"github.com/ozan/academix/internal/app/services"
	"github.com/ozan/academix/internal/middleware"
)

// DepartmentController handles department endpoints
type DepartmentController struct {
	departmentService *services.DepartmentService
}

// NewDepartmentController creates a new department controller
func NewDepartmentController(departmentService *services.DepartmentService) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func toDepartmentResponse(department *models.Department) dto.DepartmentResponse {
	resp := dto.DepartmentResponse{
		ID:                 department.ID,
		Name:               department.Name,
		Code:               department.Code,
		HeadOfDepartmentID: department.HeadOfDepartmentID,
		IsActive:           department.IsActive,
	}
	if department.Description != nil {
		resp.Description = *department.Description
	}
	return resp
}

// Create creates a new department
func (c *DepartmentController) Create(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	department := &models.Department{
		Name:               req.Name,
		Code:               req.Code,
		HeadOfDepartmentID: req.HeadOfDepartmentID,
	}
	if req.Description != "" {
		department.Description = &req.Description
	}

	if err := c.departmentService.CreateDepartment(ctx.Request.Context(), department); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toDepartmentResponse(department))
}

// GetAll lists departments
func (c *DepartmentController) GetAll(ctx *gin.Context) {
	activeOnly := ctx.DefaultQuery("activeOnly", "true") == "true"

	departments, err := c.departmentService.GetAllDepartments(ctx.Request.Context(), activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.DepartmentListResponse{Departments: make([]dto.DepartmentResponse, 0, len(departments))}
	for _, department := range departments {
		resp.Departments = append(resp.Departments, toDepartmentResponse(department))
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetByID retrieves one department
func (c *DepartmentController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	department, err := c.departmentService.GetDepartmentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toDepartmentResponse(department))
}

// Update updates a department
func (c *DepartmentController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	department := &models.Department{
		ID:                 id,
		Name:               req.Name,
		Code:               req.Code,
		HeadOfDepartmentID: req.HeadOfDepartmentID,
		IsActive:           true,
	}
	if req.Description != "" {
		department.Description = &req.Description
	}

	if err := c.departmentService.UpdateDepartment(ctx.Request.Context(), department); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toDepartmentResponse(department))
}

// GetDependents reports what blocks a plain delete
func (c *DepartmentController) GetDependents(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	programs, courses, err := c.departmentService.GetDependents(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DepartmentDependentsResponse{
		CanDelete:      programs == 0 && courses == 0,
		ActivePrograms: int64(programs),
		ActiveCourses:  int64(courses),
	})
}

// Delete soft-deletes a department; ?force=true cascades to dependents
func (c *DepartmentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	force := ctx.Query("force") == "true"
	if err := c.departmentService.DeleteDepartment(ctx.Request.Context(), id, force); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Department deleted"})
}
