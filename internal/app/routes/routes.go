package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ozan/academix/internal/app/controllers"
	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/middleware"
	"github.com/ozan/academix/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	departmentController *controllers.DepartmentController,
	programController *controllers.ProgramController,
	courseController *controllers.CourseController,
	semesterController *controllers.SemesterController,
	allocationController *controllers.AllocationController,
	enrollmentController *controllers.EnrollmentController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", authController.Me)
	authenticated.PUT("/auth/me", authController.UpdateMe)
	authenticated.POST("/auth/logout-all", authController.LogoutAll)
	authenticated.GET("/ws", wsHandler.Serve)

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	staffOnly := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleLecturer)

	// User directory for assignment pickers
	authenticated.GET("/users", adminOnly, authController.ListUsers)

	// Departments: read for everyone authenticated, management admin-only
	departments := authenticated.Group("/departments")
	{
		departments.GET("", departmentController.GetAll)
		departments.GET("/:id", departmentController.GetByID)

		departmentsAdmin := departments.Group("", adminOnly)
		{
			departmentsAdmin.POST("", departmentController.Create)
			departmentsAdmin.PUT("/:id", departmentController.Update)
			departmentsAdmin.GET("/:id/dependents", departmentController.GetDependents)
			departmentsAdmin.DELETE("/:id", departmentController.Delete)
		}
	}

	// Programs: read open, management and allocation admin-only
	programs := authenticated.Group("/programs")
	{
		programs.GET("", programController.GetAll)
		programs.GET("/:id", programController.GetByID)
		programs.GET("/:id/lecturers", allocationController.GetAssignments)
		programs.GET("/:id/courses", allocationController.GetAllocations)

		programsAdmin := programs.Group("", adminOnly)
		{
			programsAdmin.POST("", programController.Create)
			programsAdmin.PUT("/:id", programController.Update)
			programsAdmin.DELETE("/:id", programController.Delete)

			programsAdmin.POST("/:id/lecturers", allocationController.AssignLecturer)
			programsAdmin.PUT("/:id/lecturers/:assignmentId", allocationController.UpdateAssignment)
			programsAdmin.DELETE("/:id/lecturers/:assignmentId", allocationController.RemoveAssignment)

			programsAdmin.POST("/:id/courses", allocationController.AllocateCourse)
			programsAdmin.PUT("/:id/courses/:allocationId", allocationController.UpdateAllocation)
			programsAdmin.DELETE("/:id/courses/:allocationId", allocationController.RemoveAllocation)
		}
	}

	// Lecturer's own program assignments
	authenticated.GET("/lecturers/me/programs",
		authMiddleware.RoleRequired(models.RoleLecturer), allocationController.GetMyAssignments)

	// Courses: read open, management admin-only, rosters for staff
	courses := authenticated.Group("/courses")
	{
		courses.GET("", courseController.GetAll)
		courses.GET("/:id", courseController.GetByID)
		courses.GET("/:id/enrollments", staffOnly, enrollmentController.GetCourseEnrollments)

		coursesAdmin := courses.Group("", adminOnly)
		{
			coursesAdmin.POST("", courseController.Create)
			coursesAdmin.PUT("/:id", courseController.Update)
			coursesAdmin.DELETE("/:id", courseController.Delete)
		}
	}

	// Semesters: read open, management admin-only
	semesters := authenticated.Group("/semesters")
	{
		semesters.GET("", semesterController.GetAll)
		semesters.GET("/current", semesterController.GetCurrent)
		semesters.GET("/:id", semesterController.GetByID)

		semestersAdmin := semesters.Group("", adminOnly)
		{
			semestersAdmin.POST("", semesterController.Create)
			semestersAdmin.PUT("/:id", semesterController.Update)
			semestersAdmin.POST("/:id/current", semesterController.SetCurrent)
		}
	}

	// Enrollments: students enroll and drop their own, staff grade
	enrollments := authenticated.Group("/enrollments")
	{
		studentOnly := authMiddleware.RoleRequired(models.RoleStudent)
		enrollments.POST("", studentOnly, enrollmentController.Enroll)
		enrollments.GET("/me", studentOnly, enrollmentController.GetMyEnrollments)
		enrollments.POST("/:id/drop", enrollmentController.Drop)
		enrollments.PUT("/:id/status", staffOnly, enrollmentController.UpdateStatus)
	}
}
