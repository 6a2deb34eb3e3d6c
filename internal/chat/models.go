package chat

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type ChatMessage struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Role      string    `gorm:"type:varchar(16);not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	ModelID   string    `gorm:"type:varchar(64)" json:"model_id"`
}

func (ChatMessage) TableName() string { return "chat_history" }

type Feedback struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatMessageID uint64 `gorm:"index;not null" json:"chat_message_id"`
	IsPositive    bool   `json:"is_positive"`
	Comment       string `gorm:"type:text" json:"comment"`
}

func (Feedback) TableName() string { return "feedback" }
