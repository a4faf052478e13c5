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

// ProgramController handles program endpoints
type ProgramController struct {
	programService *services.ProgramService
}

// NewProgramController creates a new program controller
func NewProgramController(programService *services.ProgramService) *ProgramController {
	return &ProgramController{
		programService: programService,
	}
}

func toProgramResponse(program *models.Program) dto.ProgramResponse {
	resp := dto.ProgramResponse{
		ID:            program.ID,
		Name:          program.Name,
		Code:          program.Code,
		ProgramType:   string(program.ProgramType),
		DepartmentID:  program.DepartmentID,
		DurationYears: program.DurationYears,
		TotalCredits:  program.TotalCredits,
		IsActive:      program.IsActive,
	}
	if program.Description != nil {
		resp.Description = *program.Description
	}
	if program.Department != nil {
		resp.DepartmentName = program.Department.Name
	}
	return resp
}

// Create creates a new program
func (c *ProgramController) Create(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	programType, _ := models.ParseProgramType(req.ProgramType)
	program := &models.Program{
		Name:          req.Name,
		Code:          req.Code,
		ProgramType:   programType,
		DepartmentID:  req.DepartmentID,
		DurationYears: req.DurationYears,
		TotalCredits:  req.TotalCredits,
	}
	if req.Description != "" {
		program.Description = &req.Description
	}

	if err := c.programService.CreateProgram(ctx.Request.Context(), program); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toProgramResponse(program))
}

// GetAll lists programs, optionally filtered by department
func (c *ProgramController) GetAll(ctx *gin.Context) {
	activeOnly := ctx.DefaultQuery("activeOnly", "true") == "true"

	var departmentID *int64
	if raw := ctx.Query("departmentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid departmentId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		departmentID = &id
	}

	programs, err := c.programService.GetAllPrograms(ctx.Request.Context(), departmentID, activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ProgramListResponse{Programs: make([]dto.ProgramResponse, 0, len(programs))}
	for _, program := range programs {
		resp.Programs = append(resp.Programs, toProgramResponse(program))
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetByID retrieves one program
func (c *ProgramController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	program, err := c.programService.GetProgramByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toProgramResponse(program))
}

// Update updates a program
func (c *ProgramController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	programType, _ := models.ParseProgramType(req.ProgramType)
	program := &models.Program{
		ID:            id,
		Name:          req.Name,
		Code:          req.Code,
		ProgramType:   programType,
		DurationYears: req.DurationYears,
		TotalCredits:  req.TotalCredits,
		IsActive:      true,
	}
	if req.Description != "" {
		program.Description = &req.Description
	}

	if err := c.programService.UpdateProgram(ctx.Request.Context(), program); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toProgramResponse(program))
}

// Delete soft-deletes a program; ?force=true drops its enrollments first
func (c *ProgramController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	force := ctx.Query("force") == "true"
	if err := c.programService.DeleteProgram(ctx.Request.Context(), id, force); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Program deleted"})
}
