package models

import (
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultSenderName = "Your Secret Admirer"
	DefaultTheme      = ThemeRomantic

	ThemeRomantic   = "romantic"
	ThemePlayful    = "playful"
	ThemeElegant    = "elegant"
	ThemeMinimalist = "minimalist"

	idLength = 12
)

var Themes = []string{ThemeRomantic, ThemePlayful, ThemeElegant, ThemeMinimalist}

type Invitation struct {
	ID            string  `gorm:"type:varchar(12);primaryKey" json:"id"`
	CreatedAt     int64   `json:"created_at"`
	RecipientName string  `gorm:"type:varchar(200);index;not null" json:"recipient_name"`
	SenderName    string  `gorm:"type:varchar(200);not null" json:"sender_name"`
	Message       string  `gorm:"type:text;not null" json:"message"`
	Theme         string  `gorm:"type:varchar(50);not null" json:"theme"`
	Photo         *string `gorm:"column:photo_base64;type:longtext" json:"photo,omitempty"` // data:image/jpeg;base64,...
}

// InvitationInput holds the submitted fields before defaults are applied.
// Photo must already be normalized.
type InvitationInput struct {
	RecipientName string
	SenderName    string
	Message       string
	Theme         string
	Photo         *string
}

// Normalized returns a copy with whitespace trimmed and defaults applied to the optional fields.
func (in InvitationInput) Normalized() InvitationInput {
	in.RecipientName = strings.TrimSpace(in.RecipientName)
	in.Message = strings.TrimSpace(in.Message)
	in.SenderName = strings.TrimSpace(in.SenderName)
	if in.SenderName == "" {
		in.SenderName = DefaultSenderName
	}
	in.Theme = strings.TrimSpace(in.Theme)
	if in.Theme == "" {
		in.Theme = DefaultTheme
	}
	if in.Photo != nil && *in.Photo == "" {
		in.Photo = nil
	}
	return in
}

// Validate checks the mandatory fields, call it on a normalized input.
func (in InvitationInput) Validate() error {
	if in.RecipientName == "" {
		return &ValidationError{Field: "name", Reason: "recipient name is required"}
	}
	if in.Message == "" {
		return &ValidationError{Field: "message", Reason: "message is required"}
	}
	return nil
}

// IsKnownTheme reports whether the viewer has dedicated styling for theme.
// Unknown themes are still stored as submitted.
func IsKnownTheme(theme string) bool {
	for _, t := range Themes {
		if t == theme {
			return true
		}
	}
	return false
}

func newInvitationID() string {
	return uuid.NewString()[:idLength]
}
