package handlers

import (
	"net/http"
	"storefeedback/internal/db"
	"storefeedback/internal/middleware"
	"storefeedback/internal/models"
	"storefeedback/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	feedback *services.FeedbackService
}

func NewProductHandler() *ProductHandler {
	return &ProductHandler{
		feedback: services.NewFeedbackService(),
	}
}

// Home renders the product grid.
func (h *ProductHandler) Home(c *gin.Context) {
	var products []models.Product
	if err := db.DB.Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load products")
		return
	}

	Render(c, http.StatusOK, "product/list.html", gin.H{
		"Title":    "Products",
		"Products": products,
	})
}

// Detail renders one product page with the customer feedback section: the
// submission form plus the feedback list with inline owner controls.
func (h *ProductHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")

	var product models.Product
	if err := db.DB.Preload("Category").Where("slug = ?", slug).First(&product).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Product not found")
		return
	}

	feedbacks, err := h.feedback.ListByProduct(slug)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load feedback")
		return
	}

	// The submission form only shows for customers who haven't reviewed yet.
	user := middleware.CurrentUser(c)
	canSubmit := false
	if user != nil && user.Role == models.RoleCustomer {
		canSubmit = true
		for _, f := range feedbacks {
			if f.User.ID == user.ID {
				canSubmit = false
				break
			}
		}
	}

	Render(c, http.StatusOK, "product/detail.html", gin.H{
		"Title":     product.Title,
		"Product":   product,
		"Feedbacks": feedbacks,
		"CanSubmit": canSubmit,
	})
}
