package web

import (
	"errors"
	"net/http"

	"valentine/handlers"
	"valentine/logging"
	"valentine/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const notFoundMessage = "Invitation not found. 💔"

type Pages struct {
	Invitations *handlers.Invitations
}

func (p *Pages) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"themes":     models.Themes,
		"maxPhotoMB": p.Invitations.MaxPhotoMB,
	})
}

// Create handles the form post and redirects to the new invitation
func (p *Pages) Create(c *gin.Context) {
	id, err := p.Invitations.CreateInvitation(c)
	if err != nil {
		status := handlers.StatusFor(err)
		if status == http.StatusInternalServerError {
			logging.Log.Error("Invitation create failed", zap.Error(err))
		}
		errorPage(c, status, handlers.CreateErrorMessage(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/view/"+id)
}

func (p *Pages) View(c *gin.Context) {
	id := c.Param("id")
	inv, err := p.Invitations.Store.Get(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		errorPage(c, http.StatusNotFound, notFoundMessage)
		return
	}
	if err != nil {
		logging.Log.Error("Invitation fetch failed", zap.String("id", id), zap.Error(err))
		errorPage(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.HTML(http.StatusOK, "viewer.tmpl", gin.H{
		"invitation_id": inv.ID,
		"name":          inv.RecipientName,
		"sender":        inv.SenderName,
		"message":       inv.Message,
		"theme":         inv.Theme,
		"photo":         inv.Photo,
	})
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}

func errorPage(c *gin.Context, status int, message string) {
	// Error pages must never be cached, even on routes that are
	c.Header("cache-control", "no-cache")
	c.HTML(status, "error.tmpl", gin.H{
		"status_code": status,
		"message":     message,
	})
}
