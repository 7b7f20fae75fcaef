// FILE: internal/controller/provider_controller.go
package controller

import (
	"chat-relay-be/internal/pkg/serverutils"
	"chat-relay-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProviderController interface {
	RegisterRoutes(r fiber.Router)
	ListProviders(ctx *fiber.Ctx) error
}

type providerController struct {
	service service.IProviderService
}

func NewProviderController(service service.IProviderService) IProviderController {
	return &providerController{service: service}
}

func (c *providerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/providers")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.ListProviders)
}

func (c *providerController) ListProviders(ctx *fiber.Ctx) error {
	res, err := c.service.ListProviders(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Providers retrieved", res))
}
