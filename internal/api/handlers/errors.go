package handlers

import (
	"net/http"

	"qr-service/internal/api/response"
)

// writeJSON encodes data as the response body with the given status code.
func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	response.JSON(w, data, statusCode)
}

// writeError maps any error to its stable HTTP status and JSON body via the
// shared response envelope, so every handler and middleware agrees on shape.
func writeError(w http.ResponseWriter, err error) {
	response.Error(w, err)
}
