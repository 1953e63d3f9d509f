package store

import (
	"errors"
	"fmt"

	"github.com/saravenpi/murmur/internal/models"
	"github.com/saravenpi/murmur/internal/seed"
)

var ErrChatNotFound = errors.New("chat not found")

// Store is the mock data store. Seed content is read-only; the only write
// is AppendMessage, which also refreshes the owning chat's preview.
type Store interface {
	Chats() ([]models.Chat, error)
	Chat(id int64) (models.Chat, error)
	Stories() ([]models.Story, error)
	Messages(chatID int64) ([]models.Message, error)
	AppendMessage(chatID int64, text, timeLabel string, fromMe bool) (models.Message, error)
	Close() error
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open builds a store of the given driver populated from data.
func Open(driver string, data *seed.Data) (Store, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemory(data), nil
	case DriverSQLite:
		return OpenSQLite(data)
	default:
		return nil, fmt.Errorf("unknown store driver: %q", driver)
	}
}
