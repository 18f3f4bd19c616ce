package rest

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shanedonnelly/devops/internal/application"
	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/application/errs"
	"github.com/shanedonnelly/devops/internal/infra/auth"
	"github.com/shanedonnelly/devops/internal/infra/db"
)

type Server struct {
	commands *application.Collection
	tokens   *auth.TokenProvider
}

func NewServer(commands *application.Collection, tokens *auth.TokenProvider) *Server {
	return &Server{commands: commands, tokens: tokens}
}

func (s *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"service": "builder-service", "status": "running"})
}

func (s *Server) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	token, err := s.commands.Auth.Register(c.Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(token)
}

func (s *Server) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	token, err := s.commands.Auth.Login(c.Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(token)
}

func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	if err := s.commands.Auth.DeleteUser(c.Context(), id, identityFrom(c)); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "User deleted successfully"})
}

func (s *Server) ListSites(c *fiber.Ctx) error {
	sites, err := s.commands.ListSites.Query(c.Context(), identityFrom(c))
	if err != nil {
		return errorResponse(c, err)
	}

	resp := make([]dto.SiteResponse, 0, len(sites))
	for _, site := range sites {
		resp = append(resp, siteResponse(site))
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) CreateSite(c *fiber.Ctx) error {
	var req dto.CreateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	site, err := s.commands.CreateSite.Execute(c.Context(), &req, identityFrom(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(siteResponse(*site))
}

func (s *Server) UpdateSite(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid site id"})
	}

	var req dto.UpdateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	site, err := s.commands.UpdateSite.Execute(c.Context(), id, &req, identityFrom(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(siteResponse(*site))
}

func (s *Server) DeleteSite(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid site id"})
	}

	if err := s.commands.DeleteSite.Execute(c.Context(), id, identityFrom(c)); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Site deleted successfully"})
}

func (s *Server) UpdateSiteConfig(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid site id"})
	}

	var req dto.SiteConfig
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	if err := s.commands.UpdateSiteConfig.Execute(c.Context(), id, &req, identityFrom(c)); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Site config updated successfully"})
}

func (s *Server) GetSiteConfig(c *fiber.Ctx) error {
	config, err := s.commands.GetSiteConfig.Query(c.Context(), c.Params("stringId"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(config)
}

func (s *Server) GetCatalogue(c *fiber.Ctx) error {
	catalogue, err := s.commands.GetCatalogue.Query(c.Context(), c.Params("stringId"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(catalogue)
}

func (s *Server) ReplaceCatalogue(c *fiber.Ctx) error {
	var req dto.CatalogueUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	if err := s.commands.ReplaceCatalogue.Execute(c.Context(), c.Params("stringId"), &req, identityFrom(c)); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Catalogue updated successfully"})
}

func siteResponse(site db.Site) dto.SiteResponse {
	return dto.SiteResponse{
		ID:        site.ID,
		SiteName:  site.SiteName,
		StringID:  site.StringID,
		UserID:    site.UserID,
		CreatedAt: site.CreatedAt,
	}
}

func parseID(c *fiber.Ctx, param string) (uint64, error) {
	return strconv.ParseUint(c.Params(param), 10, 64)
}

// errorResponse maps the application error taxonomy onto HTTP statuses.
// Anything unclassified is logged and returned as a generic 500 so internal
// detail never leaks to the caller.
func errorResponse(c *fiber.Ctx, err error) error {
	var conflict errs.ConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: conflict.Err.Error()})
	}
	var unauthorized errs.UnauthorizedError
	if errors.As(err, &unauthorized) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: unauthorized.Err.Error()})
	}
	var forbidden errs.PermissionsError
	if errors.As(err, &forbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: forbidden.Err.Error()})
	}
	var notFound errs.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: notFound.Err.Error()})
	}

	slog.Error("internal error", "method", c.Method(), "path", c.Path(), "err", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
}
