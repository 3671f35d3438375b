package handlers

import (
	"errors"
	"log"
	"net/http"
	"storefeedback/internal/middleware"
	"storefeedback/internal/services"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedback *services.FeedbackService
}

func NewFeedbackHandler() *FeedbackHandler {
	return &FeedbackHandler{
		feedback: services.NewFeedbackService(),
	}
}

type createFeedbackRequest struct {
	ProductID string `json:"productId"`
	Comment   string `json:"comment"`
	Rating    int    `json:"rating"`
}

type updateFeedbackRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

// List serves both listing modes: with ?productId it is the public per-product
// list, without it the moderation view gated on the admin capability.
func (h *FeedbackHandler) List(c *gin.Context) {
	if productID := c.Query("productId"); productID != "" {
		feedbacks, err := h.feedback.ListByProduct(productID)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"feedbacks": feedbacks})
		return
	}

	feedbacks, err := h.feedback.ListAll(middleware.CurrentUser(c))
	if err != nil {
		if errors.Is(err, services.ErrAdminOnly) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized or missing productId parameter"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedbacks": feedbacks})
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	var req createFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	feedback, err := h.feedback.Create(middleware.CurrentUser(c), req.ProductID, req.Comment, req.Rating)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": feedback})
}

func (h *FeedbackHandler) Update(c *gin.Context) {
	var req updateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	feedback, err := h.feedback.Update(middleware.CurrentUser(c), c.Param("id"), req.Comment, req.Rating)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	if err := h.feedback.Delete(middleware.CurrentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}

// fail maps service errors to the wire contract. Store failures are logged and
// reported as a generic message without internal detail.
func (h *FeedbackHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, services.ErrCustomerOnly):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only customers can create feedback"})
	case errors.Is(err, services.ErrAdminForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Admins cannot modify customer feedback"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own feedback"})
	case errors.Is(err, services.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: comment, rating"})
	case errors.Is(err, services.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, services.ErrFeedbackNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "You have already provided feedback for this product"})
	default:
		log.Printf("feedback handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
