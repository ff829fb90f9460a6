package handlers

import (
	"errors"
	"net/http"

	"valentine/models"
	"valentine/processing"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined responses
	OKResponse       = Response{}
	NotFoundResponse = Response{"Invitation not found"}
)

// StatusFor maps domain errors onto HTTP status codes. Anything the user can
// fix by changing the input is a 400.
func StatusFor(err error) int {
	var (
		tooLarge    *processing.PayloadTooLargeError
		unsupported *processing.UnsupportedImageError
		invalid     *models.ValidationError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &tooLarge), errors.As(err, &unsupported), errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// CreateErrorMessage is the text shown to the user when creating an invitation failed
func CreateErrorMessage(err error) string {
	if StatusFor(err) == http.StatusInternalServerError {
		return "Error creating invitation: " + err.Error()
	}
	return err.Error()
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "valentines-invitation"})
}
