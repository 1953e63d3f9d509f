// Package app holds the client state: which section is active, which chat
// is open, the draft and search buffers, and the theme flag. The view layer
// shares one *State by reference and mutates it only through these methods.
package app

import (
	"errors"
	"strings"
	"time"

	"github.com/saravenpi/murmur/internal/models"
	"github.com/saravenpi/murmur/internal/store"
)

// TimeLayout formats the time label of sent messages (hour:minute, 24h).
const TimeLayout = "15:04"

var ErrChatsInactive = errors.New("chats section is not active")

type Panel int

const (
	PanelChatList Panel = iota
	PanelConversation
	PanelSettings
	PanelPlaceholder
)

func (p Panel) String() string {
	switch p {
	case PanelChatList:
		return "chat-list"
	case PanelConversation:
		return "conversation"
	case PanelSettings:
		return "settings"
	default:
		return "placeholder"
	}
}

type EventKind int

const (
	EventSectionChanged EventKind = iota
	EventChatSelected
	EventChatCleared
	EventDraftChanged
	EventMessageSent
	EventSearchChanged
	EventThemeToggled
)

func (k EventKind) String() string {
	switch k {
	case EventSectionChanged:
		return "section-changed"
	case EventChatSelected:
		return "chat-selected"
	case EventChatCleared:
		return "chat-cleared"
	case EventDraftChanged:
		return "draft-changed"
	case EventMessageSent:
		return "message-sent"
	case EventSearchChanged:
		return "search-changed"
	case EventThemeToggled:
		return "theme-toggled"
	default:
		return "unknown"
	}
}

// Event describes one state transition. Fields not relevant to Kind are zero.
type Event struct {
	Kind      EventKind
	Section   models.Section
	ChatID    int64
	MessageID int
	Dark      bool
}

type listener struct {
	id int
	fn func(Event)
}

type State struct {
	store     store.Store
	section   models.Section
	selected  models.Optional[int64]
	draft     string
	query     string
	dark      bool
	listeners []listener
	nextID    int
}

func NewState(s store.Store, dark bool) *State {
	return &State{
		store:   s,
		section: models.SectionChats,
		dark:    dark,
	}
}

// Subscribe registers fn for every subsequent event. Listeners run
// synchronously, in registration order. The returned func removes fn.
func (s *State) Subscribe(fn func(Event)) func() {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *State) emit(e Event) {
	for _, l := range s.listeners {
		l.fn(e)
	}
}

func (s *State) Section() models.Section {
	return s.section
}

func (s *State) SelectedChat() (int64, bool) {
	return s.selected.Get()
}

func (s *State) Draft() string {
	return s.draft
}

func (s *State) SearchQuery() string {
	return s.query
}

func (s *State) Dark() bool {
	return s.dark
}

// ActivePanel resolves what the view should render. An open chat wins over
// the section's own panel.
func (s *State) ActivePanel() Panel {
	if s.selected.IsSet() {
		return PanelConversation
	}
	switch s.section {
	case models.SectionChats:
		return PanelChatList
	case models.SectionSettings:
		return PanelSettings
	default:
		return PanelPlaceholder
	}
}

// SelectSection activates section and closes any open chat. Values outside
// the fixed section set are ignored.
func (s *State) SelectSection(section models.Section) {
	if !section.Valid() {
		return
	}
	s.clearSelection()
	s.section = section
	s.emit(Event{Kind: EventSectionChanged, Section: section})
}

// SelectChat opens the chat with the given id. The chats section must be
// active and the chat must exist.
func (s *State) SelectChat(id int64) error {
	if s.section != models.SectionChats {
		return ErrChatsInactive
	}
	if _, err := s.store.Chat(id); err != nil {
		return err
	}
	if cur, ok := s.selected.Get(); ok && cur == id {
		return nil
	}
	s.draft = ""
	s.selected = models.Some(id)
	s.emit(Event{Kind: EventChatSelected, Section: s.section, ChatID: id})
	return nil
}

// Back closes the open chat and leaves the section unchanged.
func (s *State) Back() {
	s.clearSelection()
}

func (s *State) clearSelection() {
	id, ok := s.selected.Get()
	if !ok {
		return
	}
	s.selected = models.None[int64]()
	s.draft = ""
	s.emit(Event{Kind: EventChatCleared, Section: s.section, ChatID: id})
}

func (s *State) SetDraft(text string) {
	if text == s.draft {
		return
	}
	s.draft = text
	s.emit(Event{Kind: EventDraftChanged, ChatID: s.selected.OrElse(0)})
}

// SendMessage appends the draft to the open chat as a self-sent message and
// clears the draft. A blank draft or no open chat is silently ignored and
// reports sent == false. On a store error the draft is kept.
func (s *State) SendMessage(now time.Time) (msg models.Message, sent bool, err error) {
	id, ok := s.selected.Get()
	if !ok || strings.TrimSpace(s.draft) == "" {
		return models.Message{}, false, nil
	}

	msg, err = s.store.AppendMessage(id, s.draft, now.Format(TimeLayout), true)
	if err != nil {
		return models.Message{}, false, err
	}

	s.draft = ""
	s.emit(Event{Kind: EventMessageSent, Section: s.section, ChatID: id, MessageID: msg.ID})
	return msg, true, nil
}

func (s *State) SetSearchQuery(q string) {
	if q == s.query {
		return
	}
	s.query = q
	s.emit(Event{Kind: EventSearchChanged, Section: s.section})
}

func (s *State) ToggleTheme() {
	s.dark = !s.dark
	s.emit(Event{Kind: EventThemeToggled, Dark: s.dark})
}

func (s *State) Chats() ([]models.Chat, error) {
	return s.store.Chats()
}

// FilteredChats applies the current search query to the chat list.
func (s *State) FilteredChats() ([]models.Chat, error) {
	chats, err := s.store.Chats()
	if err != nil {
		return nil, err
	}
	return FilterChats(chats, s.query), nil
}

func (s *State) Stories() ([]models.Story, error) {
	return s.store.Stories()
}

// Conversation returns the open chat and its history. ok is false when no
// chat is open.
func (s *State) Conversation() (chat models.Chat, messages []models.Message, ok bool, err error) {
	id, selected := s.selected.Get()
	if !selected {
		return models.Chat{}, nil, false, nil
	}
	chat, err = s.store.Chat(id)
	if err != nil {
		return models.Chat{}, nil, true, err
	}
	messages, err = s.store.Messages(id)
	if err != nil {
		return chat, nil, true, err
	}
	return chat, messages, true, nil
}
