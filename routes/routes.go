package routes

import (
	"journal-submission-api/controllers"
	"journal-submission-api/middleware"
	"journal-submission-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Journal Submission API is running",
		})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-email", controllers.VerifyEmail)
		auth.POST("/reset-password", controllers.ResetPassword)
		auth.POST("/check-user", controllers.CheckUser)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/logout", controllers.Logout)
			protected.GET("/user", controllers.UserProfile)
			protected.POST("/update-profile", controllers.UpdateProfile)
		}
	}

	article := router.Group("/article")
	{
		// Public listing; the journal id is accepted but not yet applied,
		// see ReviewService.AllArticles
		article.GET("/get-article-list/:journalId", controllers.GetArticleList)

		protected := article.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/add-article", controllers.AddArticle)
			protected.GET("/get-article", controllers.GetArticles)

			protected.POST("/update-article", middleware.RequireRole(models.RoleEditor), controllers.UpdateArticle)

			protected.POST("/update-review", middleware.RequireRole(models.RoleReviewer), controllers.UpdateReview)
			protected.GET("/get-review-articles", middleware.RequireRole(models.RoleReviewer), controllers.GetReviewArticles)
		}
	}

	journal := router.Group("/journal")
	{
		journal.GET("/get-journal-list", controllers.GetJournalList)

		admin := journal.Group("")
		admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleSuperAdmin))
		{
			admin.POST("/add-journal", controllers.AddJournal)
			admin.GET("/delete-journal/:journalId", controllers.DeleteJournal)
		}
	}

	reviewer := router.Group("/reviewer")
	reviewer.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleEditor))
	{
		reviewer.POST("/add-reviewer", controllers.AddReviewer)
		reviewer.POST("/add-bulk-reviewer", controllers.AddBulkReviewer)
		reviewer.GET("/get-reviewer-list", controllers.GetReviewerList)
		reviewer.GET("/delete-reviewer/:reviewerId", controllers.DeleteReviewer)
	}

	editor := router.Group("/editor")
	editor.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleSuperAdmin))
	{
		editor.POST("/add-editor", controllers.AddEditor)
		editor.GET("/remove-editor/:journalId", controllers.RemoveEditor)
	}

	zip := router.Group("/zip")
	{
		zip.POST("/create-zip",
			middleware.AuthMiddleware(), middleware.RequireRole(models.RoleEditor),
			controllers.CreateZip)
		// Download is unauthenticated: the generated name is the capability
		zip.GET("/download-zip/:filename", controllers.DownloadZip)
	}

	router.GET("/user/get-user-list",
		middleware.AuthMiddleware(), middleware.RequireRole(models.RoleEditor),
		controllers.UserList)

	router.POST("/mail-api/send-mail", controllers.SendMail)
}
