package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex-platform/servex-backend/internal/models"
)

type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

func reportFail(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "0x05",
		"error":   "Erro ao computar relatório",
		"message": "Erro desconhecido.",
	})
}

// ListUsers answers GET /user with every registered user.
func (h *ReportHandler) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		log.Println("user list failed:", err)
		return reportFail(c)
	}
	return c.JSON(fiber.Map{"payload": users})
}

type WeightedRankRow struct {
	ReceiverID     uuid.UUID `gorm:"column:receiver_id" json:"receiver_id"`
	WeightedRating float64   `gorm:"column:weighted_rating" json:"weighted_rating"`
}

// WeightedRank scores each reviewed user by centering ratings around the
// midpoint and damping receivers with few reviews.
func (h *ReportHandler) WeightedRank(c *fiber.Ctx) error {
	var rows []WeightedRankRow
	err := h.DB.Raw(`SELECT receiver_id,
			SUM((reviews.rating - 3) / 2.0) + 10.0 / (COUNT(*) + 20) AS weighted_rating
		FROM reviews
		GROUP BY receiver_id
		ORDER BY weighted_rating DESC`).Scan(&rows).Error
	if err != nil {
		log.Println("weighted rank failed:", err)
		return reportFail(c)
	}
	return c.JSON(rows)
}

type ServiceReportRow struct {
	Fullname string  `json:"fullname"`
	Category string  `json:"category"`
	Title    string  `json:"title"`
	Sum      float64 `json:"sum"`
	Count    int64   `json:"count"`
	Avg      float64 `json:"avg"`
}

// ServiceReport answers GET /user/:id/report/services: contracted revenue per
// service the user offers, highest earning first.
func (h *ReportHandler) ServiceReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return reportFail(c)
	}

	var rows []ServiceReportRow
	err = h.DB.Raw(`SELECT users.fullname,
			service_categories.name AS category,
			services.title AS title,
			SUM(contracts.total_price) AS sum,
			COUNT(*) AS count,
			AVG(contracts.total_price) AS avg
		FROM users
		INNER JOIN services ON users.id = services.user_id
		INNER JOIN contracts ON contracts.service_id = services.id
		INNER JOIN service_categories ON service_categories.id = services.service_category_id
		WHERE users.id = ?
		GROUP BY services.id, users.fullname, service_categories.name, services.title
		ORDER BY SUM(contracts.total_price) DESC`, id).Scan(&rows).Error
	if err != nil {
		log.Println("service report failed:", err)
		return reportFail(c)
	}
	return c.JSON(rows)
}

type UserReportRow struct {
	Fullname    string  `json:"fullname"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	BasePrice   float64 `gorm:"column:base_price" json:"base_price"`
	PricingType string  `gorm:"column:pricing_type" json:"pricing_type"`
}

// UserReport answers GET /user/:id/report: every contract the user hired,
// joined with the service and category it was priced from.
func (h *ReportHandler) UserReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return reportFail(c)
	}

	var rows []UserReportRow
	err = h.DB.Raw(`SELECT users.fullname AS fullname,
			service_categories.name AS category,
			services.title AS title,
			contracts.total_price AS price,
			services.base_price AS base_price,
			service_categories.pricing_type AS pricing_type
		FROM users
		INNER JOIN contracts ON contracts.user_id = users.id
		INNER JOIN services ON contracts.service_id = services.id
		INNER JOIN service_categories ON service_categories.id = services.service_category_id
		WHERE users.id = ?
		ORDER BY contracts.total_price DESC`, id).Scan(&rows).Error
	if err != nil {
		log.Println("user report failed:", err)
		return reportFail(c)
	}
	return c.JSON(rows)
}
