package store

import (
	"sync"

	"github.com/saravenpi/murmur/internal/models"
	"github.com/saravenpi/murmur/internal/seed"
)

type Memory struct {
	mu       sync.RWMutex
	chats    []models.Chat
	index    map[int64]int
	stories  []models.Story
	messages map[int64][]models.Message
}

func NewMemory(data *seed.Data) *Memory {
	m := &Memory{
		chats:    append([]models.Chat(nil), data.Chats...),
		index:    make(map[int64]int, len(data.Chats)),
		stories:  append([]models.Story(nil), data.Stories...),
		messages: make(map[int64][]models.Message, len(data.Chats)),
	}
	for i, c := range m.chats {
		m.index[c.ID] = i
		m.messages[c.ID] = append([]models.Message(nil), data.Messages[c.ID]...)
	}
	return m
}

func (m *Memory) Chats() ([]models.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Chat(nil), m.chats...), nil
}

func (m *Memory) Chat(id int64) (models.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.index[id]
	if !ok {
		return models.Chat{}, ErrChatNotFound
	}
	return m.chats[i], nil
}

func (m *Memory) Stories() ([]models.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Story(nil), m.stories...), nil
}

func (m *Memory) Messages(chatID int64) ([]models.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.index[chatID]; !ok {
		return nil, ErrChatNotFound
	}
	return append([]models.Message(nil), m.messages[chatID]...), nil
}

func (m *Memory) AppendMessage(chatID int64, text, timeLabel string, fromMe bool) (models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[chatID]
	if !ok {
		return models.Message{}, ErrChatNotFound
	}

	msg := models.Message{
		ID:     len(m.messages[chatID]) + 1,
		Text:   text,
		Time:   timeLabel,
		FromMe: fromMe,
	}
	m.messages[chatID] = append(m.messages[chatID], msg)
	m.chats[i].LastMessage = text
	m.chats[i].Time = timeLabel
	return msg, nil
}

func (m *Memory) Close() error {
	return nil
}
