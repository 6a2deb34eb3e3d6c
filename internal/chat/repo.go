package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) InsertMessage(ctx context.Context, m *ChatMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListMessages returns the full history in ASC id order (oldest -> newest).
func (r *Repo) ListMessages(ctx context.Context) ([]ChatMessage, error) {
	var msgs []ChatMessage
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// Clear deletes the whole history. Feedback rows go in the same
// transaction so nothing is left referencing a deleted message id.
func (r *Repo) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Feedback{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&ChatMessage{}).Error
	})
}

// UpsertFeedback overwrites the existing feedback row for a message, or
// inserts one when none exists. This is a read-modify-write sequence; two
// processes sharing the database file could race on the same message id.
func (r *Repo) UpsertFeedback(ctx context.Context, chatMessageID uint64, isPositive bool, comment string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fb Feedback
		err := tx.Where("chat_message_id = ?", chatMessageID).First(&fb).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&Feedback{
				ChatMessageID: chatMessageID,
				IsPositive:    isPositive,
				Comment:       comment,
			}).Error
		}
		if err != nil {
			return err
		}
		fb.IsPositive = isPositive
		fb.Comment = comment
		return tx.Save(&fb).Error
	})
}

func (r *Repo) FeedbackFor(ctx context.Context, chatMessageID uint64) (*Feedback, error) {
	var fb Feedback
	if err := r.db.WithContext(ctx).
		Where("chat_message_id = ?", chatMessageID).
		First(&fb).Error; err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *Repo) MessageByID(ctx context.Context, id uint64) (*ChatMessage, error) {
	var m ChatMessage
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
