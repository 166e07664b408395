package handlers

import (
	"github.com/pocketbase/pocketbase/core"
)

// apiError returns a JSON error payload with the given status. All handlers
// route their failures through here so clients always get the same shape.
func apiError(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]string{"error": message})
}

// fieldErrors returns a 400 with per-field validation messages. The
// ozzo-validation error types already marshal to a field -> message object.
func fieldErrors(e *core.RequestEvent, err error) error {
	return e.JSON(400, map[string]any{
		"error":  "Validation failed",
		"fields": err,
	})
}
