package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/servex-platform/servex-backend/internal/middleware"
	"github.com/servex-platform/servex-backend/internal/models"
	"github.com/servex-platform/servex-backend/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Expires   int
}

type RegisterReq struct {
	Fullname        string `json:"fullname" form:"fullname"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	CPF             string `json:"cpf" form:"cpf"`

	Street     string `json:"street" form:"street"`
	Number     string `json:"number" form:"number"`
	Complement string `json:"complement" form:"complement"`
	District   string `json:"district" form:"district"`
	City       string `json:"city" form:"city"`
	State      string `json:"state" form:"state"`
	CEP        string `json:"cep" form:"cep"`
}

func registrationFail(c *fiber.Ctx, errs []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"errors":  errs,
	})
}

// RegisterForm answers GET /user/register for clients that probe the form
// before posting it.
func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Informe os dados de cadastro.",
	})
}

// Register creates the user and their first address in one transaction:
// either both rows exist afterwards or neither does.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return registrationFail(c, []string{"Preencha todos os campos."})
	}

	if req == (RegisterReq{}) {
		return registrationFail(c, []string{"Preencha todos os campos."})
	}

	if req.Password != req.ConfirmPassword {
		return registrationFail(c, []string{"As senhas inseridas não são iguais."})
	}

	pw, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"errors":  []string{"Falha ao processar a senha."},
		})
	}

	user := models.User{
		Fullname:  strings.TrimSpace(req.Fullname),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		CPF:       strings.TrimSpace(req.CPF),
		Password:  pw,
		AuthLevel: models.AuthLevelCustomer,
		Rating:    0,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		address := models.Address{
			UserID:     user.ID,
			Street:     req.Street,
			Number:     req.Number,
			Complement: req.Complement,
			District:   req.District,
			City:       req.City,
			State:      req.State,
			CEP:        req.CEP,
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return registrationFail(c, []string{mapConstraintError(err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Cadastro Concluído!",
	})
}

// mapConstraintError turns a persistence conflict into the field-specific
// message the registration form shows. Unmapped violations fall back to the
// raw database message.
func mapConstraintError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "email"):
		return "E-mail já cadastrado."
	case strings.Contains(msg, "cpf"):
		return "CPF já cadastrado."
	}
	return err.Error()
}

type LoginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginForm answers GET /user/login.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Informe e-mail e senha.",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Informe e-mail e senha.",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := req.Password

	if email == "" || password == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Informe e-mail e senha.",
		})
	}

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Usuário inexistente.",
		})
	}

	if !utils.CheckPassword(user.Password, password) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Senha incorreta.",
		})
	}

	token, err := utils.SignJWT(h.JWTSecret, user.ID.String(), string(user.AuthLevel), h.Expires)
	if err != nil {
		log.Println("sign token failed:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Falha ao criar a sessão.",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user": fiber.Map{
				"id":         user.ID,
				"fullname":   user.Fullname,
				"email":      user.Email,
				"auth_level": user.AuthLevel,
			},
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Sessão encerrada.",
	})
}
