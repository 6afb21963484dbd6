package server

import "github.com/gofiber/fiber/v3"

const (
	messageOK                  = "ok"
	messageBadRequest          = "Bad request"
	messageUnauthorized        = "Missing user identity"
	messageForbidden           = "Access denied"
	messageNotFound            = "Not found"
	messageInternalServerError = "Internal server error"
)

// Envelope wraps every response body.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(c fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{Status: status, Message: message, Data: data})
}

func ok(c fiber.Ctx, message string, data any) error {
	if message == "" {
		message = messageOK
	}
	return respond(c, fiber.StatusOK, message, data)
}
