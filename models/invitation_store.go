package models

import (
	"context"
	"errors"

	"valentine/logging"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InvitationStore struct {
	db    *gorm.DB
	cache *InvitationCache
}

// NewInvitationStore wraps an open database. cache may be nil.
func NewInvitationStore(db *gorm.DB, cache *InvitationCache) *InvitationStore {
	return &InvitationStore{db: db, cache: cache}
}

// Create validates the input, applies defaults and inserts a new invitation
// in a single transaction. It returns the generated ID.
func (s *InvitationStore) Create(ctx context.Context, in InvitationInput) (string, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return "", err
	}
	inv := Invitation{
		ID:            newInvitationID(),
		RecipientName: in.RecipientName,
		SenderName:    in.SenderName,
		Message:       in.Message,
		Theme:         in.Theme,
		Photo:         in.Photo,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&inv).Error
	})
	if err != nil {
		logging.Log.Error("Cannot create invitation", zap.String("id", inv.ID), zap.Error(err))
		return "", &StorageError{Op: "create invitation", Err: err}
	}
	logging.Log.Info("Invitation created", zap.String("id", inv.ID), zap.String("theme", inv.Theme), zap.Bool("photo", inv.Photo != nil))
	return inv.ID, nil
}

// Get returns the invitation with the exact id or ErrNotFound.
func (s *InvitationStore) Get(ctx context.Context, id string) (*Invitation, error) {
	if inv, ok := s.cache.Get(id); ok {
		return &inv, nil
	}
	var inv Invitation
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "get invitation", Err: err}
	}
	s.cache.Add(inv)
	return &inv, nil
}
