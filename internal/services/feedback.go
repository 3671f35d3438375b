package services

import (
	"errors"
	"storefeedback/internal/db"
	"storefeedback/internal/models"
	"storefeedback/internal/utils"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Feedback lifecycle errors. Handlers map these to HTTP statuses; anything
// else coming out of this service is a store failure.
var (
	ErrAuthRequired     = errors.New("authentication required")
	ErrCustomerOnly     = errors.New("only customers can create feedback")
	ErrAdminForbidden   = errors.New("admins cannot modify customer feedback")
	ErrNotOwner         = errors.New("feedback belongs to another customer")
	ErrAdminOnly        = errors.New("admin access required")
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrProductNotFound  = errors.New("product not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrDuplicate        = errors.New("feedback already exists for this product")
)

// FeedbackView is the wire shape of one feedback row: the row itself plus the
// minimal author and product identities the storefront needs to render it.
type FeedbackView struct {
	ID        string     `json:"id"`
	Comment   string     `json:"comment"`
	Rating    int        `json:"rating"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	User      AuthorRef  `json:"user"`
	Product   ProductRef `json:"product"`
}

type AuthorRef struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type ProductRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type FeedbackService struct{}

func NewFeedbackService() *FeedbackService {
	return &FeedbackService{}
}

func toView(f models.Feedback) FeedbackView {
	return FeedbackView{
		ID:        f.Fid,
		Comment:   f.Comment,
		Rating:    f.Rating,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
		User:      AuthorRef{ID: f.User.ID, Email: f.User.Email},
		Product:   ProductRef{ID: f.Product.Slug, Title: f.Product.Title},
	}
}

func toViews(rows []models.Feedback) []FeedbackView {
	views := make([]FeedbackView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toView(row))
	}
	return views
}

// ListByProduct returns all feedback for one product, newest first. It is a
// public operation: an unknown product simply yields an empty list.
func (s *FeedbackService) ListByProduct(productID string) ([]FeedbackView, error) {
	var product models.Product
	if err := db.DB.Where("slug = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []FeedbackView{}, nil
		}
		return nil, err
	}

	var rows []models.Feedback
	err := db.DB.Preload("User").Preload("Product").
		Where("product_id = ?", product.ID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toViews(rows), nil
}

// ListAll is the moderation view: every feedback row across all products,
// newest first. Only the admin capability may call it.
func (s *FeedbackService) ListAll(caller *models.User) ([]FeedbackView, error) {
	if caller == nil || caller.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}

	var rows []models.Feedback
	err := db.DB.Preload("User").Preload("Product").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toViews(rows), nil
}

// Create stores a new feedback row for the caller. Customers only; one row per
// (product, customer) pair, enforced here and again by the unique index so a
// racing duplicate still surfaces as ErrDuplicate.
func (s *FeedbackService) Create(caller *models.User, productID, comment string, rating int) (*FeedbackView, error) {
	if caller == nil {
		return nil, ErrAuthRequired
	}
	if caller.Role != models.RoleCustomer {
		return nil, ErrCustomerOnly
	}
	if productID == "" {
		return nil, ErrMissingFields
	}
	if err := validateContent(comment, rating); err != nil {
		return nil, err
	}

	var product models.Product
	if err := db.DB.Where("slug = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var existing models.Feedback
	err := db.DB.Where("product_id = ? AND user_id = ?", product.ID, caller.ID).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	feedback := models.Feedback{
		Fid:       utils.RandStringBytesMaskImpr(8),
		ProductID: product.ID,
		UserID:    caller.ID,
		Comment:   strings.TrimSpace(comment),
		Rating:    rating,
	}
	if err := db.DB.Create(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	feedback.User = *caller
	feedback.Product = product
	view := toView(feedback)
	return &view, nil
}

// Update replaces comment and rating on the caller's own feedback and
// refreshes UpdatedAt. Admins are rejected outright; ownership is permanent.
func (s *FeedbackService) Update(caller *models.User, id, comment string, rating int) (*FeedbackView, error) {
	feedback, err := s.authorizeMutation(caller, id)
	if err != nil {
		return nil, err
	}
	if err := validateContent(comment, rating); err != nil {
		return nil, err
	}

	feedback.Comment = strings.TrimSpace(comment)
	feedback.Rating = rating
	updates := map[string]interface{}{
		"comment": feedback.Comment,
		"rating":  feedback.Rating,
	}
	if err := db.DB.Model(feedback).Updates(updates).Error; err != nil {
		return nil, err
	}

	view := toView(*feedback)
	return &view, nil
}

// Delete removes the caller's own feedback permanently. Same authorization
// rules as Update; no soft delete, so the pair can be reviewed again later.
func (s *FeedbackService) Delete(caller *models.User, id string) error {
	feedback, err := s.authorizeMutation(caller, id)
	if err != nil {
		return err
	}
	return db.DB.Delete(feedback).Error
}

// authorizeMutation loads one feedback row and applies the mutation policy:
// the caller must be authenticated, must hold the customer role (admin is
// explicitly forbidden) and must be the original author.
func (s *FeedbackService) authorizeMutation(caller *models.User, id string) (*models.Feedback, error) {
	if caller == nil {
		return nil, ErrAuthRequired
	}

	var feedback models.Feedback
	err := db.DB.Preload("User").Preload("Product").Where("fid = ?", id).First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}

	if caller.Role != models.RoleCustomer {
		return nil, ErrAdminForbidden
	}
	if feedback.UserID != caller.ID {
		return nil, ErrNotOwner
	}
	return &feedback, nil
}

func validateContent(comment string, rating int) error {
	if strings.TrimSpace(comment) == "" || rating == 0 {
		return ErrMissingFields
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
