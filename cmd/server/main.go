package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"storefeedback/internal/db"
	"storefeedback/internal/middleware"
	"storefeedback/internal/router"
	"storefeedback/internal/utils"
	"strings"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("storefeedback_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("storefeedback server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%d seconds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%d minutes ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%d hours ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%d days ago", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%d months ago", seconds/2592000)
			}
			return fmt.Sprintf("%d years ago", seconds/31536000)
		},
		"stars": func(rating int) string {
			return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		},
		"markdown": utils.RenderMarkdown,
		"username": func(email string) string {
			return strings.Split(email, "@")[0]
		},
	}

	// Manual registration to ensure keys match handler expectation
	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)

	// Product
	r.AddFromFilesFuncs("product/list.html", funcMap, assemble(templatesDir+"/views/product/list.html")...)
	r.AddFromFilesFuncs("product/detail.html", funcMap, assemble(templatesDir+"/views/product/detail.html")...)

	// Admin
	r.AddFromFilesFuncs("admin/feedback.html", funcMap, assemble(templatesDir+"/views/admin/feedback.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
