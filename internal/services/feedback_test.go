package services

import (
	"fmt"
	"storefeedback/internal/db"
	"storefeedback/internal/models"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Feedback{},
	))
	db.DB = gdb
}

func createUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", Role: role}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}

func createProduct(t *testing.T, slug, title string) *models.Product {
	t.Helper()
	category := models.Category{Name: "Electronics"}
	require.NoError(t, db.DB.Where(models.Category{Name: category.Name}).FirstOrCreate(&category).Error)
	product := models.Product{Slug: slug, Title: title, CategoryID: category.ID}
	require.NoError(t, db.DB.Create(&product).Error)
	return &product
}

// backdate rewrites a row's timestamps without triggering gorm's auto
// UpdatedAt, so ordering and edited-marker behavior can be tested
// deterministically.
func backdate(t *testing.T, fid string, by time.Duration) {
	t.Helper()
	then := time.Now().Add(-by)
	err := db.DB.Model(&models.Feedback{}).Where("fid = ?", fid).
		UpdateColumns(map[string]interface{}{"created_at": then, "updated_at": then}).Error
	require.NoError(t, err)
}

func TestCreateFeedback(t *testing.T) {
	setupTestDB(t)
	svc := NewFeedbackService()
	customer := createUser(t, "testuser@example.com", models.RoleCustomer)
	createProduct(t, "sample-laptop", "Sample Laptop")

	view, err := svc.Create(customer, "sample-laptop", "Great", 5)
	require.NoError(t, err)

	assert.Len(t, view.ID, 8)
	assert.Equal(t, "Great", view.Comment)
	assert.Equal(t, 5, view.Rating)
	assert.Equal(t, customer.ID, view.User.ID)
	assert.Equal(t, "testuser@example.com", view.User.Email)
	assert.Equal(t, "sample-laptop", view.Product.ID)
	assert.Equal(t, "Sample Laptop", view.Product.Title)
	assert.False(t, view.CreatedAt.IsZero())
}

func TestCreateFeedbackValidation(t *testing.T) {
	setupTestDB(t)
	svc := NewFeedbackService()
	customer := createUser(t, "testuser@example.com", models.RoleCustomer)
	createProduct(t, "sample-laptop", "Sample Laptop")

	cases := []struct {
		name    string
		comment string
		rating  int
		want    error
	}{
		{"empty comment", "", 4, ErrMissingFields},
		{"blank comment", "   ", 4, ErrMissingFields},
		{"zero rating", "Great", 0, ErrMissingFields},
		{"rating too high", "Great", 6, ErrInvalidRating},
		{"negative rating", "Great", -1, ErrInvalidRating},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(customer, "sample-laptop", tc.comment, tc.rating)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// Every rating in range is accepted; each needs its own product because
	// of the one-feedback-per-product rule.
	for rating := 1; rating <= 5; rating++ {
		slug := fmt.Sprintf("product-%d", rating)
		createProduct(t, slug, "Product")
		_, err := svc.Create(customer, slug, "Fine", rating)
		assert.NoError(t, err)
	}
}

func TestCreateFeedbackAuthorization(t *testing.T) {
	setupTestDB(t)
	svc := NewFeedbackService()
	admin := createUser(t, "admin@singitronic.com", models.RoleAdmin)
	createProduct(t, "sample-laptop", "Sample Laptop")

	_, err := svc.Create(nil, "sample-laptop", "Great", 5)
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = svc.Create(admin, "sample-laptop", "Great", 5)
	assert.ErrorIs(t, err, ErrCustomerOnly)
}

func TestCreateFeedbackUnknownProduct(t *testing.T) {
	setupTestDB(t)
	svc := NewFeedbackService()
	customer := createUser(t, "testuser@example.com", models.RoleCustomer)

	_, err := svc.Create(customer, "no-such-product", "Great", 5)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateFeedbackDuplicate(t *testing.T) {
	setupTestDB(t)
	svc := NewFeedbackService()
	customer := createUser(t, "testuser@example.com", models.RoleCustomer)
	other := createUser(t, "other@example.com", models.RoleCustomer)
	createProduct(t, "sample-laptop", "Sample Laptop")

	_, err := svc.Create(customer, "sample-laptop", "Great", 5)
	require.NoError(t, err)

	_, err = svc.Create(customer, "sample-laptop", "Again", 4)
	assert.ErrorIs(t, err, ErrDuplicate)

	// A different customer still gets their own row.
	_, err = svc.Create(other, "sample-laptop", "Also great", 4)
	assert.NoError(t, err)
}

func TestUpdateFeedbackRoundTrip(t *testing.T) {
	setupTestDB(t)
	svc := NewFeedbackService()
	customer := createUser(t, "testuser@example.com", models.RoleCustomer)
	createProduct(t, "sample-laptop", "Sample Laptop")

	created, err := svc.Create(customer, "sample-laptop", "Great", 5)
	require.NoError(t, err)
	backdate(t, created.ID, time.Hour)

	updated, err := svc.Update(customer, created.ID, "Revised", 4)
	require.NoError(t, err)

	assert.Equal(t, "Revised", updated.Comment)
	assert.Equal(t, 4, updated.Rating)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	// Ownership and identity survive the edit.
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, customer.ID, updated.User.ID)
}

func TestUpdateFeedbackAuthorization(t *testing.T) {
	setupTestDB(t)
	svc := NewFeedbackService()
	owner := createUser(t, "owner@example.com", models.RoleCustomer)
	other := createUser(t, "other@example.com", models.RoleCustomer)
	admin := createUser(t, "admin@singitronic.com", models.RoleAdmin)
	createProduct(t, "sample-laptop", "Sample Laptop")

	created, err := svc.Create(owner, "sample-laptop", "Great", 5)
	require.NoError(t, err)

	_, err = svc.Update(nil, created.ID, "Revised", 4)
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = svc.Update(other, created.ID, "Revised", 4)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Update(admin, created.ID, "Revised", 4)
	assert.ErrorIs(t, err, ErrAdminForbidden)

	_, err = svc.Update(owner, "missing12", "Revised", 4)
	assert.ErrorIs(t, err, ErrFeedbackNotFound)

	// A not-found id stays not-found regardless of caller identity.
	_, err = svc.Update(admin, "missing12", "Revised", 4)
	assert.ErrorIs(t, err, ErrFeedbackNotFound)

	_, err = svc.Update(owner, created.ID, "", 4)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestDeleteFeedbackLifecycle(t *testing.T) {
	setupTestDB(t)
	svc := NewFeedbackService()
	owner := createUser(t, "owner@example.com", models.RoleCustomer)
	other := createUser(t, "other@example.com", models.RoleCustomer)
	admin := createUser(t, "admin@singitronic.com", models.RoleAdmin)
	createProduct(t, "sample-laptop", "Sample Laptop")

	created, err := svc.Create(owner, "sample-laptop", "Great", 5)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(nil, created.ID), ErrAuthRequired)
	assert.ErrorIs(t, svc.Delete(other, created.ID), ErrNotOwner)
	assert.ErrorIs(t, svc.Delete(admin, created.ID), ErrAdminForbidden)
	assert.ErrorIs(t, svc.Delete(owner, "missing12"), ErrFeedbackNotFound)

	require.NoError(t, svc.Delete(owner, created.ID))
	assert.ErrorIs(t, svc.Delete(owner, created.ID), ErrFeedbackNotFound)

	// Hard delete leaves no residue: the same pair can review again.
	_, err = svc.Create(owner, "sample-laptop", "Back again", 3)
	assert.NoError(t, err)
}

func TestListByProduct(t *testing.T) {
	setupTestDB(t)
	svc := NewFeedbackService()
	alice := createUser(t, "alice@example.com", models.RoleCustomer)
	bob := createUser(t, "bob@example.com", models.RoleCustomer)
	createProduct(t, "sample-laptop", "Sample Laptop")
	createProduct(t, "sample-headphones", "Sample Headphones")

	older, err := svc.Create(alice, "sample-laptop", "Solid machine", 4)
	require.NoError(t, err)
	backdate(t, older.ID, time.Hour)
	newer, err := svc.Create(bob, "sample-laptop", "Loved it", 5)
	require.NoError(t, err)
	_, err = svc.Create(alice, "sample-headphones", "Crisp sound", 5)
	require.NoError(t, err)

	views, err := svc.ListByProduct("sample-laptop")
	require.NoError(t, err)
	require.Len(t, views, 2)
	// Newest first.
	assert.Equal(t, newer.ID, views[0].ID)
	assert.Equal(t, older.ID, views[1].ID)
	assert.Equal(t, "bob@example.com", views[0].User.Email)

	// Unknown product is an empty list, not an error.
	views, err = svc.ListByProduct("no-such-product")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListAll(t *testing.T) {
	setupTestDB(t)
	svc := NewFeedbackService()
	customer := createUser(t, "testuser@example.com", models.RoleCustomer)
	admin := createUser(t, "admin@singitronic.com", models.RoleAdmin)
	createProduct(t, "sample-laptop", "Sample Laptop")
	createProduct(t, "sample-headphones", "Sample Headphones")

	first, err := svc.Create(customer, "sample-laptop", "Great", 5)
	require.NoError(t, err)
	backdate(t, first.ID, time.Hour)
	second, err := svc.Create(customer, "sample-headphones", "Nice", 4)
	require.NoError(t, err)

	_, err = svc.ListAll(nil)
	assert.ErrorIs(t, err, ErrAdminOnly)

	_, err = svc.ListAll(customer)
	assert.ErrorIs(t, err, ErrAdminOnly)

	views, err := svc.ListAll(admin)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second.ID, views[0].ID)
	assert.Equal(t, first.ID, views[1].ID)
}
