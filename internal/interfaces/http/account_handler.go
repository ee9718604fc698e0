package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/application/usecase"
)

// AccountHandler maneja las cuentas de usuario (solo admin, salvo el bootstrap).
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler inyectando el caso de uso.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cuenta
// @Description  Sin administradores, la primera cuenta admin se crea sin sesión (bootstrap).
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cuentas
// @Tags         accounts
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.AccountListResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), ActorFrom(c), pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cuenta por ID
// @Tags         accounts
// @Produce      json
// @Param        id   path  int  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id} [get]
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cuenta
// @Description  Solo se aplican los campos presentes. Cambiar rol, estado o contraseña revoca las sesiones de la cuenta.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID de la cuenta"
// @Param        body  body  dto.UpdateAccountRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateAccountRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), ActorFrom(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cuenta
// @Description  Un admin no puede eliminarse a sí mismo; una cuenta con registros propios devuelve 409.
// @Tags         accounts
// @Produce      json
// @Param        id   path  int  true  "ID de la cuenta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), ActorFrom(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "cuenta eliminada"})
}
