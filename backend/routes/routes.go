package routes

import (
	"lms/backend/config"
	"lms/backend/controllers"
	"lms/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	authMiddleware := middleware.AuthMiddleware(cfg)

	app.Get("/api/me", authMiddleware, authController.Me)

	// Content hierarchy (read side)
	contentController := controllers.NewContentController(db, cfg)
	contents := app.Group("/api/contents", authMiddleware)
	contents.Get("/phases", contentController.ListPhases)
	contents.Get("/phases/:id/weeks", contentController.ListWeeks)
	contents.Get("/weeks/:id/contents", contentController.ListContents)
	contents.Get("/:id", contentController.Get)

	// Announcements
	announcementController := controllers.NewAnnouncementController(db, cfg)
	app.Get("/api/announcements", authMiddleware, announcementController.ListPublished)
	announcements := app.Group("/api/instructor/announcements", authMiddleware)
	announcements.Get("/", announcementController.ListAll)
	announcements.Post("/", announcementController.Create)
	announcements.Put("/:id", announcementController.Update)
	announcements.Post("/:id/publish", announcementController.Publish)
	announcements.Post("/:id/unpublish", announcementController.Unpublish)
	announcements.Delete("/:id", announcementController.Delete)

	// Submissions
	submissionController := controllers.NewSubmissionController(db, cfg)
	submissions := app.Group("/api/submissions", authMiddleware)
	submissions.Post("/", submissionController.Create)
	submissions.Get("/", submissionController.ListMine)
	instructorSubmissions := app.Group("/api/instructor/submissions", authMiddleware)
	instructorSubmissions.Get("/", submissionController.ListAll)
	instructorSubmissions.Get("/:id", submissionController.Get)
	instructorSubmissions.Post("/:id/feedback", submissionController.AddFeedback)
	instructorSubmissions.Delete("/:id", submissionController.Delete)

	// Notifications
	notificationController := controllers.NewNotificationController(db, cfg)
	notifications := app.Group("/api/notifications", authMiddleware)
	notifications.Get("/", notificationController.List)
	notifications.Get("/unread-count", notificationController.UnreadCount)
	notifications.Post("/read-all", notificationController.MarkAllRead)
	notifications.Post("/:id/read", notificationController.MarkRead)
	notifications.Delete("/:id", notificationController.Delete)

	// Progress
	progressController := controllers.NewProgressController(db, cfg)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Post("/", progressController.Update)
	progress.Get("/", progressController.ListMine)
	progress.Get("/rate", progressController.Rate)

	// Approvals and student list
	approvalController := controllers.NewApprovalController(db, cfg)
	approvals := app.Group("/api/instructor/approvals", authMiddleware)
	approvals.Get("/", approvalController.ListPending)
	approvals.Post("/batch", approvalController.ApproveBatch)
	approvals.Post("/:id/approve", approvalController.Approve)
	approvals.Post("/:id/reject", approvalController.Reject)
	app.Get("/api/instructor/students", authMiddleware, approvalController.ListStudents)

	// Instructor content management
	instructorContents := app.Group("/api/instructor/contents", authMiddleware)
	instructorContents.Post("/phases", contentController.CreatePhase)
	instructorContents.Post("/weeks", contentController.CreateWeek)
	instructorContents.Post("/", contentController.CreateContent)
	instructorContents.Put("/:id", contentController.UpdateContent)
	instructorContents.Delete("/:id", contentController.DeleteContent)

	// Dashboard
	dashboardController := controllers.NewDashboardController(db, cfg)
	dashboard := app.Group("/api/instructor/dashboard", authMiddleware)
	dashboard.Get("/stats", dashboardController.Stats)
	dashboard.Get("/distribution", dashboardController.Distribution)
	dashboard.Get("/trend", dashboardController.Trend)
	dashboard.Get("/pending-submissions", dashboardController.PendingSubmissions)
	dashboard.Get("/overall-progress", dashboardController.OverallProgress)
}
