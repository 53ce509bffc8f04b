package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the envelope every endpoint replies with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// SendSuccess replies 200 with the standard envelope.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus replies with the given status and the standard envelope.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return send(c, status, APIResponse{Success: true, Data: data, Message: fallback(message, "success")})
}

// SendError replies with an error envelope; data is always omitted.
func SendError(c *fiber.Ctx, status int, message string) error {
	return send(c, status, APIResponse{Success: false, Message: fallback(message, "error")})
}

func send(c *fiber.Ctx, status int, body APIResponse) error {
	return c.Status(status).JSON(body)
}

func fallback(message, def string) string {
	if message == "" {
		return def
	}
	return message
}
