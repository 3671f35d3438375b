package router

import (
	"storefeedback/internal/handlers"
	"storefeedback/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	productHandler := handlers.NewProductHandler()
	feedbackHandler := handlers.NewFeedbackHandler()
	adminHandler := handlers.NewAdminHandler()

	// Public Pages
	r.GET("/", productHandler.Home)
	r.GET("/product/:slug", productHandler.Detail)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Feedback API. Authentication is checked per-operation inside the
	// service so that GET stays public and errors come back as JSON.
	r.GET("/feedback", feedbackHandler.List)
	r.POST("/feedback", feedbackHandler.Create)
	r.PUT("/feedback/:id", feedbackHandler.Update)
	r.DELETE("/feedback/:id", feedbackHandler.Delete)

	// Admin Pages
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired())
	{
		admin.GET("/feedback", adminHandler.FeedbackTable)
	}
}
