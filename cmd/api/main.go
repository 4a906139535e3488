package main

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/servex-platform/servex-backend/internal/config"
	"github.com/servex-platform/servex-backend/internal/db"
	"github.com/servex-platform/servex-backend/internal/handlers"
	"github.com/servex-platform/servex-backend/internal/middleware"
	"github.com/servex-platform/servex-backend/internal/models"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Println("redis unavailable, service cache disabled:", err)
			rdb = nil
		}
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Contract{},
		&models.Review{},
	); err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		// Anything that escapes a handler is rendered here with whatever
		// status code was attached.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   "Erro",
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://127.0.0.1:3000, http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	hireH := handlers.NewHireHandler(gdb, rdb)
	catalogH := handlers.NewCatalogHandler(gdb, rdb)
	reportH := handlers.NewReportHandler(gdb)

	// public
	app.Get("/user/register", authH.RegisterForm)
	app.Post("/user/register", authH.Register)
	app.Get("/user/login", authH.LoginForm)
	app.Post("/user/login", authH.Login)
	app.Get("/user/logout", authH.Logout)
	app.Post("/user/logout", authH.Logout)

	app.Get("/services", catalogH.ListServices)
	app.Get("/services/:id", catalogH.GetService)
	app.Get("/categories", catalogH.GetCategories)

	app.Get("/user", reportH.ListUsers)
	app.Get("/user/weightedRank", reportH.WeightedRank)
	app.Get("/user/:id/report", reportH.UserReport)
	app.Get("/user/:id/report/services", reportH.ServiceReport)

	// restricted to signed-in users
	hire := app.Group("/hire",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)
	hire.Post("/submit", hireH.Submit)
	hire.Get("/:id", hireH.Show)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
