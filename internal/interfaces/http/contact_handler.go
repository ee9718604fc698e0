package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/application/usecase"
)

// ContactHandler maneja las peticiones HTTP del directorio de contactos.
type ContactHandler struct {
	uc     *usecase.ContactUseCase
	export *usecase.ExportUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase, export *usecase.ExportUseCase) *ContactHandler {
	return &ContactHandler{uc: uc, export: export}
}

// List godoc
// @Summary      Listar contactos
// @Tags         contacts
// @Produce      json
// @Param        search      query  string  false  "Subcadena en nombre, apellido o email"
// @Param        company_id  query  int     false  "Filtrar por empresa"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ContactListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	in, err := contactListFrom(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear contacto
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContactRequest  true  "Datos del contacto"
// @Success      201   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContactRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener contacto por ID
// @Tags         contacts
// @Produce      json
// @Param        id   path  int  true  "ID del contacto"
// @Success      200  {object}  dto.ContactResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [get]
func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar contacto
// @Description  Solo se aplican los campos presentes; null borra un campo opcional.
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del contacto"
// @Param        body  body  dto.UpdateContactRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [put]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateContactRequest
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
// @Summary      Eliminar contacto
// @Tags         contacts
// @Produce      json
// @Param        id   path  int  true  "ID del contacto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), ActorFrom(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "contacto eliminado"})
}

// ExportPDF godoc
// @Summary      Directorio imprimible (PDF)
// @Tags         contacts
// @Produce      application/pdf
// @Param        search      query  string  false  "Subcadena en nombre, apellido o email"
// @Param        company_id  query  int     false  "Filtrar por empresa"
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/contacts/export.pdf [get]
func (h *ContactHandler) ExportPDF(c *fiber.Ctx) error {
	return h.serveExport(c, usecase.ExportPDF)
}

// ExportXML godoc
// @Summary      Directorio para teléfonos IP (CiscoIPPhoneDirectory)
// @Description  Responde 304 si If-None-Match coincide con el ETag actual.
// @Tags         contacts
// @Produce      xml
// @Param        search      query  string  false  "Subcadena en nombre, apellido o email"
// @Param        company_id  query  int     false  "Filtrar por empresa"
// @Success      200  {string}  string
// @Success      304  {string}  string
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/contacts/export.xml [get]
func (h *ContactHandler) ExportXML(c *fiber.Ctx) error {
	return h.serveExport(c, usecase.ExportXML)
}

func (h *ContactHandler) serveExport(c *fiber.Ctx, format usecase.ExportFormat) error {
	in, err := contactListFrom(c)
	if err != nil {
		return err
	}
	out, err := h.export.Export(c.UserContext(), ActorFrom(c), format, in)
	if err != nil {
		return err
	}
	if out.ETag != "" {
		c.Set(fiber.HeaderETag, out.ETag)
		if etagMatches(c.Get(fiber.HeaderIfNoneMatch), out.ETag) {
			return c.SendStatus(fiber.StatusNotModified)
		}
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	return c.Send(out.Body)
}

// etagMatches admite listas separadas por coma y "*".
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(candidate), "W/"))
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
