package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/application/usecase"
)

// NoticeHandler maneja el tablón de avisos.
type NoticeHandler struct {
	uc *usecase.NoticeUseCase
}

// NewNoticeHandler construye el handler.
func NewNoticeHandler(uc *usecase.NoticeUseCase) *NoticeHandler {
	return &NoticeHandler{uc: uc}
}

// List godoc
// @Summary      Listar avisos vigentes
// @Description  Activos y sin vencer, del más reciente al más antiguo.
// @Tags         notices
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.NoticeListResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Router       /api/notices [get]
func (h *NoticeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.UserContext(), ActorFrom(c), pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Publicar aviso
// @Tags         notices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNoticeRequest  true  "Datos del aviso"
// @Success      201   {object}  dto.NoticeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/notices [post]
func (h *NoticeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNoticeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar aviso
// @Tags         notices
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del aviso"
// @Param        body  body  dto.UpdateNoticeRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.NoticeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/notices/{id} [put]
func (h *NoticeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateNoticeRequest
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
// @Summary      Eliminar aviso
// @Tags         notices
// @Produce      json
// @Param        id   path  int  true  "ID del aviso"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notices/{id} [delete]
func (h *NoticeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), ActorFrom(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "aviso eliminado"})
}
