package db

import (
	"log"
	"os"
	"storefeedback/internal/models"
	"storefeedback/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=storefeedback port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Feedback{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedData()
}

// seedData creates the admin account, a test customer and a couple of catalog
// products so the feedback flows are usable on a fresh database.
func seedData() {
	seedUser("admin@singitronic.com", "admin123456", models.RoleAdmin)
	seedUser("testuser@example.com", "testuser123", models.RoleCustomer)

	var count int64
	DB.Model(&models.Product{}).Count(&count)
	if count > 0 {
		log.Println("Products already seeded, skipping")
		return
	}

	category := models.Category{Name: "Electronics"}
	if err := DB.Where(models.Category{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
		log.Printf("Failed to create category %s: %v", category.Name, err)
		return
	}

	products := []models.Product{
		{
			Slug:         "sample-laptop",
			Title:        "Sample Laptop",
			MainImage:    "laptop.jpg",
			Price:        999,
			Description:  "A high-performance laptop for work and gaming.",
			Manufacturer: "TechCorp",
			InStock:      10,
			CategoryID:   category.ID,
		},
		{
			Slug:         "sample-headphones",
			Title:        "Sample Headphones",
			MainImage:    "headphones.jpg",
			Price:        199,
			Description:  "Premium quality headphones with noise cancellation.",
			Manufacturer: "AudioTech",
			InStock:      25,
			CategoryID:   category.ID,
		},
	}

	for _, product := range products {
		if err := DB.Create(&product).Error; err != nil {
			log.Printf("Failed to create product %s: %v", product.Slug, err)
		}
	}
	log.Println("Initial products created successfully")
}

func seedUser(email, password, role string) {
	var count int64
	DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash password for %s: %v", email, err)
		return
	}

	user := models.User{Email: email, Password: hash, Role: role}
	if err := DB.Create(&user).Error; err != nil {
		log.Printf("Failed to create user %s: %v", email, err)
	}
}
