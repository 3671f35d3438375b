package handlers

import (
	"net/http"
	"storefeedback/internal/middleware"
	"storefeedback/internal/models"
	"storefeedback/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	feedback *services.FeedbackService
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		feedback: services.NewFeedbackService(),
	}
}

func (h *AdminHandler) checkAdmin(c *gin.Context) *models.User {
	user := middleware.CurrentUser(c)
	if user == nil || user.Role != models.RoleAdmin {
		return nil
	}
	return user
}

// FeedbackTable renders the moderation view: every feedback row across all
// products. Read-only: admins can inspect rows but not change them.
func (h *AdminHandler) FeedbackTable(c *gin.Context) {
	admin := h.checkAdmin(c)
	if admin == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	feedbacks, err := h.feedback.ListAll(admin)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load feedback")
		return
	}

	var total, sum int
	for _, f := range feedbacks {
		total++
		sum += f.Rating
	}
	average := 0.0
	if total > 0 {
		average = float64(sum) / float64(total)
	}

	Render(c, http.StatusOK, "admin/feedback.html", gin.H{
		"Title":         "Feedback Moderation",
		"Feedbacks":     feedbacks,
		"Total":         total,
		"AverageRating": average,
	})
}
