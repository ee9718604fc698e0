package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/domain"
)

// parseBody decodifica el JSON del cuerpo; cualquier fallo es errInvalidBody.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

// paramID lee el parámetro :id como entero positivo. Todas las rutas con :id exigen sesión,
// así que un anónimo recibe 401 antes que un 400 por id mal formado.
func paramID(c *fiber.Ctx) (int64, error) {
	if ActorFrom(c) == nil {
		return 0, domain.ErrUnauthenticated
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id inválido", domain.ErrInvalidInput)
	}
	return id, nil
}

// pageFrom lee limit/offset; los valores no numéricos se ignoran y DefaultPage los normaliza.
func pageFrom(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{
		Limit:  c.QueryInt("limit", dto.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	}
	p.DefaultPage()
	return p
}

// contactListFrom lee search, company_id y la página.
func contactListFrom(c *fiber.Ctx) (dto.ContactListRequest, error) {
	in := dto.ContactListRequest{
		PageRequest: pageFrom(c),
		Search:      c.Query("search"),
	}
	if raw := c.Query("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return in, fmt.Errorf("%w: company_id inválido", domain.ErrInvalidInput)
		}
		in.CompanyID = &id
	}
	return in, nil
}
