package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/llamabot/llamabot/internal/chat"
	"gorm.io/gorm"
)

// Connect opens the local sqlite file and makes sure the schema exists.
// AutoMigrate is idempotent, so this is safe on every startup.
func Connect(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := gdb.AutoMigrate(&chat.ChatMessage{}, &chat.Feedback{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return gdb, nil
}
