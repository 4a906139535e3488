package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/servex-platform/servex-backend/internal/models"
)

type CatalogHandler struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewCatalogHandler(db *gorm.DB, rdb *redis.Client) *CatalogHandler {
	return &CatalogHandler{DB: db, RDB: rdb}
}

// ListServices answers GET /services with the public catalog.
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	var services []models.Service
	err := h.DB.
		Preload("User").
		Preload("ServiceCategory").
		Order("created_at DESC").
		Find(&services).Error
	if err != nil {
		log.Println("service list failed:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Falha ao listar serviços.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    services,
	})
}

// GetService answers GET /services/:id from the same cached joined lookup the
// hire form uses.
func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	detail, err := findServiceDetail(c.Context(), h.DB, h.RDB, c.Params("id"))
	if err != nil {
		log.Println("service lookup failed:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Falha ao buscar serviço.",
		})
	}
	if detail == nil {
		return serviceNotFound(c)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"data":          detail,
		"pricing_label": detail.PricingType.Label(),
	})
}

// GetCategories answers GET /categories.
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	var categories []models.ServiceCategory
	if err := h.DB.Order("name").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Falha ao listar categorias.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    categories,
	})
}
