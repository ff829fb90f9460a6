package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"valentine/logging"
	"valentine/models"
	"valentine/processing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type InvitationRequest struct {
	Name    string `form:"name" json:"name"`
	Sender  string `form:"sender" json:"sender"`
	Message string `form:"message" json:"message"`
	Theme   string `form:"theme" json:"theme"`
}

type Invitations struct {
	Store      *models.InvitationStore
	MaxPhotoMB int
}

// CreateInvitation reads the submitted form, normalizes the optional photo
// and stores a new invitation. Nothing is stored when any step fails.
func (h *Invitations) CreateInvitation(c *gin.Context) (string, error) {
	req := InvitationRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		return "", &models.ValidationError{Field: "form", Reason: err.Error()}
	}
	input := models.InvitationInput{
		RecipientName: req.Name,
		SenderName:    req.Sender,
		Message:       req.Message,
		Theme:         req.Theme,
	}.Normalized()
	if err := input.Validate(); err != nil {
		return "", err
	}
	raw, err := readPhoto(c)
	if err != nil {
		return "", err
	}
	if raw != nil {
		photo, err := processing.Normalize(raw, h.MaxPhotoMB)
		if err != nil {
			logging.Log.Info("Photo rejected", zap.Int("size", len(raw)), zap.Error(err))
			return "", err
		}
		input.Photo = &photo
	}
	id, err := h.Store.Create(c.Request.Context(), input)
	if err != nil {
		return "", err
	}
	return id, nil
}

// readPhoto returns nil when no file was uploaded
func readPhoto(c *gin.Context) ([]byte, error) {
	file, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening photo: %w", err)
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	return raw, nil
}

func (h *Invitations) APICreate(c *gin.Context) {
	id, err := h.CreateInvitation(c)
	if err != nil {
		status := StatusFor(err)
		if status == http.StatusInternalServerError {
			logging.Log.Error("Invitation create failed", zap.Error(err))
		}
		c.JSON(status, Response{CreateErrorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": id, "path": "/view/" + id})
}

func (h *Invitations) APIGet(c *gin.Context) {
	inv, err := h.Store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if err != nil {
		logging.Log.Error("Invitation fetch failed", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	c.JSON(http.StatusOK, inv)
}
