package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/saravenpi/murmur/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultSeed []byte

// ErrInvalidSeed is returned when seed data breaks a data model invariant.
var ErrInvalidSeed = errors.New("invalid seed")

type storyEntry struct {
	ID     int64  `yaml:"id"`
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
	Viewed bool   `yaml:"viewed,omitempty"`
}

type messageEntry struct {
	Text   string `yaml:"text"`
	Time   string `yaml:"time"`
	FromMe bool   `yaml:"from_me,omitempty"`
}

type chatEntry struct {
	ID          int64          `yaml:"id"`
	Name        string         `yaml:"name"`
	Avatar      string         `yaml:"avatar"`
	LastMessage string         `yaml:"last_message"`
	Time        string         `yaml:"time"`
	Unread      *int           `yaml:"unread,omitempty"`
	Online      *bool          `yaml:"online,omitempty"`
	Messages    []messageEntry `yaml:"messages,omitempty"`
}

type document struct {
	Stories []storyEntry `yaml:"stories"`
	Chats   []chatEntry  `yaml:"chats"`
}

// Data is the startup content of the mock data store. Chats keep their
// seed order; Messages is keyed by chat ID.
type Data struct {
	Stories  []models.Story
	Chats    []models.Chat
	Messages map[int64][]models.Message
}

// Default returns the built-in seed.
func Default() (*Data, error) {
	return Parse(defaultSeed)
}

// LoadFile reads a seed from a YAML file.
func LoadFile(path string) (*Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("seed file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Load returns the seed at path, or the built-in seed when path is empty.
func Load(path string) (*Data, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes and validates a YAML seed document. Message IDs are
// assigned from each message's position in its chat, starting at 1.
func Parse(raw []byte) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}

	d := &Data{
		Stories:  make([]models.Story, 0, len(doc.Stories)),
		Chats:    make([]models.Chat, 0, len(doc.Chats)),
		Messages: make(map[int64][]models.Message, len(doc.Chats)),
	}

	storyIDs := make(map[int64]bool)
	for _, s := range doc.Stories {
		if storyIDs[s.ID] {
			return nil, fmt.Errorf("%w: duplicate story id %d", ErrInvalidSeed, s.ID)
		}
		storyIDs[s.ID] = true
		d.Stories = append(d.Stories, models.Story{
			ID:     s.ID,
			Name:   s.Name,
			Avatar: s.Avatar,
			Viewed: s.Viewed,
		})
	}

	for _, c := range doc.Chats {
		if _, dup := d.Messages[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate chat id %d", ErrInvalidSeed, c.ID)
		}
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("%w: chat %d has no name", ErrInvalidSeed, c.ID)
		}

		chat := models.Chat{
			ID:          c.ID,
			Name:        c.Name,
			Avatar:      c.Avatar,
			LastMessage: c.LastMessage,
			Time:        c.Time,
		}
		if c.Unread != nil {
			if *c.Unread <= 0 {
				return nil, fmt.Errorf("%w: chat %d unread must be positive, got %d", ErrInvalidSeed, c.ID, *c.Unread)
			}
			chat.Unread = models.Some(*c.Unread)
		}
		if c.Online != nil {
			chat.Online = models.Some(*c.Online)
		}
		d.Chats = append(d.Chats, chat)

		messages := make([]models.Message, 0, len(c.Messages))
		for i, m := range c.Messages {
			messages = append(messages, models.Message{
				ID:     i + 1,
				Text:   m.Text,
				Time:   m.Time,
				FromMe: m.FromMe,
			})
		}
		d.Messages[c.ID] = messages
	}

	return d, nil
}
