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

// SemesterController handles academic term endpoints
type SemesterController struct {
	semesterService *services.SemesterService
}

// NewSemesterController creates a new semester controller
func NewSemesterController(semesterService *services.SemesterService) *SemesterController {
	return &SemesterController{
		semesterService: semesterService,
	}
}

func toSemesterResponse(semester *models.Semester) dto.SemesterResponse {
	return dto.SemesterResponse{
		ID:                semester.ID,
		Name:              semester.Name,
		SemesterType:      string(semester.SemesterType),
		Year:              semester.Year,
		StartDate:         semester.StartDate,
		EndDate:           semester.EndDate,
		RegistrationStart: semester.RegistrationStart,
		RegistrationEnd:   semester.RegistrationEnd,
		IsCurrent:         semester.IsCurrent,
		IsActive:          semester.IsActive,
	}
}

// Create creates a new semester
func (c *SemesterController) Create(ctx *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	semesterType, _ := models.ParseSemesterType(req.SemesterType)
	semester := &models.Semester{
		Name:              req.Name,
		SemesterType:      semesterType,
		Year:              req.Year,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		IsCurrent:         req.IsCurrent,
	}

	if err := c.semesterService.CreateSemester(ctx.Request.Context(), semester); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toSemesterResponse(semester))
}

// GetAll lists semesters, newest first
func (c *SemesterController) GetAll(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	semesters, err := c.semesterService.GetAllSemesters(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.SemesterListResponse{Semesters: make([]dto.SemesterResponse, 0, len(semesters))}
	for _, semester := range semesters {
		resp.Semesters = append(resp.Semesters, toSemesterResponse(semester))
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetCurrent retrieves the current semester
func (c *SemesterController) GetCurrent(ctx *gin.Context) {
	semester, err := c.semesterService.GetCurrentSemester(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSemesterResponse(semester))
}

// GetByID retrieves one semester
func (c *SemesterController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	semester, err := c.semesterService.GetSemesterByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSemesterResponse(semester))
}

// SetCurrent flags a semester as the current one
func (c *SemesterController) SetCurrent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.semesterService.SetCurrentSemester(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Current semester updated"})
}

// Update updates a semester
func (c *SemesterController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	semesterType, _ := models.ParseSemesterType(req.SemesterType)
	semester := &models.Semester{
		ID:                id,
		Name:              req.Name,
		SemesterType:      semesterType,
		Year:              req.Year,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		IsActive:          true,
	}

	if err := c.semesterService.UpdateSemester(ctx.Request.Context(), semester); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSemesterResponse(semester))
}
