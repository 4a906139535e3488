package handlers

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/servex-platform/servex-backend/internal/models"
)

type HireHandler struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewHireHandler(db *gorm.DB, rdb *redis.Client) *HireHandler {
	return &HireHandler{DB: db, RDB: rdb}
}

type HireSubmitReq struct {
	ServiceID        string `json:"__serviceId" form:"__serviceId"`
	Date             string `json:"date" form:"date"`
	Time             string `json:"time" form:"time"`
	ExpectedDuration string `json:"expectedDuration" form:"expectedDuration"`
	AddressID        string `json:"addressId" form:"addressId"`
	Message          string `json:"message" form:"message"`
}

// startDateLayout combines the form's separate date and time fields.
const startDateLayout = "2006-01-02 15:04"

func die(c *fiber.Ctx, status int, errTitle, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   errTitle,
		"message": message,
	})
}

func serviceNotFound(c *fiber.Ctx) error {
	return die(c, fiber.StatusNotFound, "Serviço inexistente", "O serviço solicitado não existe.")
}

func selfHire(c *fiber.Ctx) error {
	// Business-rule violation, not a transport failure: answered with a
	// success-coded error payload like the original error page.
	return die(c, fiber.StatusOK, "Erro", "Não é permitido contratar seu próprio serviço.")
}

// renderForm redisplays the hire form context together with the collected
// validation messages.
func renderForm(c *fiber.Ctx, service *ServiceDetail, formErrors []string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       false,
		"service":       service,
		"pricing_label": service.PricingType.Label(),
		"errors":        formErrors,
	})
}

func sessionUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("userId").(string)
	return uuid.Parse(raw)
}

// Show answers GET /hire/:id with the data the hire form needs: the service
// detail plus the session user's registered addresses.
func (h *HireHandler) Show(c *fiber.Ctx) error {
	uid, err := sessionUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	service, err := findServiceDetail(c.Context(), h.DB, h.RDB, c.Params("id"))
	if err != nil {
		log.Println("service lookup failed:", err)
		return die(c, fiber.StatusInternalServerError, "Erro crítico", "Erro desconhecido ao buscar serviço.")
	}
	if service == nil {
		return serviceNotFound(c)
	}
	if service.OwnerID == uid {
		return selfHire(c)
	}

	var addresses []models.Address
	if err := h.DB.Where("user_id = ?", uid).Find(&addresses).Error; err != nil {
		log.Println("address lookup failed:", err)
		return die(c, fiber.StatusInternalServerError, "Erro crítico", "Erro desconhecido ao buscar endereços.")
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"service":       service,
		"pricing_label": service.PricingType.Label(),
		"addresses":     addresses,
	})
}

// Submit validates a hire request and persists the contract. The checks run
// in the same fail-fast order the form relies on: service, ownership,
// pricing-type override, field presence, date format.
func (h *HireHandler) Submit(c *fiber.Ctx) error {
	uid, err := sessionUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req HireSubmitReq
	if err := c.BodyParser(&req); err != nil {
		return serviceNotFound(c)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return serviceNotFound(c)
	}

	service, err := findServiceDetail(c.Context(), h.DB, h.RDB, req.ServiceID)
	if err != nil {
		log.Println("service lookup failed:", err)
		return die(c, fiber.StatusInternalServerError, "Erro crítico", "Erro desconhecido ao contratar serviço.")
	}
	if service == nil {
		return serviceNotFound(c)
	}

	if service.OwnerID == uid {
		return selfHire(c)
	}

	// One-time charges are always billed as a single unit.
	if service.PricingType == models.PricingOnce {
		req.ExpectedDuration = "1"
	}

	if req.Date == "" || req.Time == "" || req.ExpectedDuration == "" {
		return renderForm(c, service, []string{"Preencha todos os campos"})
	}

	duration, err := strconv.Atoi(strings.TrimSpace(req.ExpectedDuration))
	if err != nil || duration <= 0 {
		return renderForm(c, service, []string{"Preencha todos os campos"})
	}

	startDate, err := time.Parse(startDateLayout, req.Date+" "+req.Time)
	if err != nil {
		return renderForm(c, service, []string{"Data inválida"})
	}

	var addressID *uuid.UUID
	if parsed, err := uuid.Parse(req.AddressID); err == nil {
		addressID = &parsed
	}

	contract := models.Contract{
		ServiceID:        service.ID,
		UserID:           uid,
		AddressID:        addressID,
		TotalPrice:       service.BasePrice * float64(duration),
		ExpectedDuration: duration,
		StartDate:        startDate,
		Message:          req.Message,
		Pending:          true,
		Accepted:         false,
		Completed:        false,
	}

	if err := h.DB.Create(&contract).Error; err != nil {
		log.Println("contract create failed:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Erro crítico",
			"message": "Erro desconhecido ao contratar serviço.",
			"detail":  err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(contract)
}
