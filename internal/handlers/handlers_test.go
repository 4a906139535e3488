package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/servex-platform/servex-backend/internal/middleware"
	"github.com/servex-platform/servex-backend/internal/models"
	"github.com/servex-platform/servex-backend/internal/utils"
)

const testJWTSecret = "test-secret"

// newTestDB opens a per-test in-memory database. cache=shared keeps every
// pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Contract{},
		&models.Review{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()

	authH := &AuthHandler{DB: db, JWTSecret: testJWTSecret, Expires: 60}
	hireH := NewHireHandler(db, nil)
	catalogH := NewCatalogHandler(db, nil)
	reportH := NewReportHandler(db)

	app.Get("/user/register", authH.RegisterForm)
	app.Post("/user/register", authH.Register)
	app.Get("/user/login", authH.LoginForm)
	app.Post("/user/login", authH.Login)
	app.Post("/user/logout", authH.Logout)

	app.Get("/services", catalogH.ListServices)
	app.Get("/services/:id", catalogH.GetService)
	app.Get("/categories", catalogH.GetCategories)

	app.Get("/user", reportH.ListUsers)
	app.Get("/user/weightedRank", reportH.WeightedRank)
	app.Get("/user/:id/report", reportH.UserReport)
	app.Get("/user/:id/report/services", reportH.ServiceReport)

	hire := app.Group("/hire",
		middleware.JWTFromCookie(testJWTSecret),
		middleware.AttachJWTLocals(),
	)
	hire.Post("/submit", hireH.Submit)
	hire.Get("/:id", hireH.Show)

	return app
}

func createUser(t *testing.T, db *gorm.DB, fullname, email, cpf string) models.User {
	t.Helper()
	u := models.User{
		Fullname:  fullname,
		Email:     email,
		CPF:       cpf,
		Password:  "irrelevant",
		AuthLevel: models.AuthLevelCustomer,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createCategory(t *testing.T, db *gorm.DB, name string, pricing models.PricingType) models.ServiceCategory {
	t.Helper()
	cat := models.ServiceCategory{Name: name, PricingType: pricing}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return cat
}

func createService(t *testing.T, db *gorm.DB, owner models.User, cat models.ServiceCategory, title string, basePrice float64) models.Service {
	t.Helper()
	svc := models.Service{
		UserID:            owner.ID,
		ServiceCategoryID: cat.ID,
		Title:             title,
		BasePrice:         basePrice,
	}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

func createAddress(t *testing.T, db *gorm.DB, user models.User) models.Address {
	t.Helper()
	addr := models.Address{
		UserID: user.ID,
		Street: "Av. P. H. Rolfs",
		Number: "100",
		City:   "Viçosa",
		State:  "MG",
		CEP:    "36570-000",
	}
	if err := db.Create(&addr).Error; err != nil {
		t.Fatalf("create address: %v", err)
	}
	return addr
}

func sessionCookie(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.SignJWT(testJWTSecret, user.ID.String(), string(user.AuthLevel), 60)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return middleware.SessionCookie + "=" + token
}

func postForm(t *testing.T, app *fiber.App, path, cookie string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return res
}

func get(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return res
}

func decodeBody(t *testing.T, res *http.Response, out any) {
	t.Helper()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		t.Fatalf("decode body %q: %v", string(b), err)
	}
}

func contractCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Contract{}).Count(&n).Error; err != nil {
		t.Fatalf("count contracts: %v", err)
	}
	return n
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("parse uuid %q: %v", s, err)
	}
	return id
}
