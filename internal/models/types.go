package models

import "fmt"

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

type Chat struct {
	ID          int64
	Name        string
	Avatar      string
	LastMessage string
	Time        string
	Unread      Optional[int]
	Online      Optional[bool]
}

// IsOnline reports whether the chat is explicitly marked online.
func (c Chat) IsOnline() bool {
	return c.Online.OrElse(false)
}

type Message struct {
	ID     int
	Text   string
	Time   string
	FromMe bool
}

type Story struct {
	ID     int64
	Name   string
	Avatar string
	Viewed bool
}

type Section int

const (
	SectionChats Section = iota
	SectionContacts
	SectionCalls
	SectionChannels
	SectionGroups
	SectionSettings
)

// Sections lists every section in navigation order.
var Sections = []Section{
	SectionChats,
	SectionContacts,
	SectionCalls,
	SectionChannels,
	SectionGroups,
	SectionSettings,
}

var sectionIDs = map[Section]string{
	SectionChats:    "chats",
	SectionContacts: "contacts",
	SectionCalls:    "calls",
	SectionChannels: "channels",
	SectionGroups:   "groups",
	SectionSettings: "settings",
}

var sectionLabels = map[Section]string{
	SectionChats:    "Chats",
	SectionContacts: "Contacts",
	SectionCalls:    "Calls",
	SectionChannels: "Channels",
	SectionGroups:   "Groups",
	SectionSettings: "Settings",
}

var sectionIcons = map[Section]string{
	SectionChats:    "💬",
	SectionContacts: "👥",
	SectionCalls:    "📞",
	SectionChannels: "📻",
	SectionGroups:   "🫂",
	SectionSettings: "⚙️",
}

// String returns the section identifier, e.g. "chats".
func (s Section) String() string {
	if id, ok := sectionIDs[s]; ok {
		return id
	}
	return fmt.Sprintf("section(%d)", int(s))
}

func (s Section) Label() string {
	if label, ok := sectionLabels[s]; ok {
		return label
	}
	return s.String()
}

func (s Section) Icon() string {
	if icon, ok := sectionIcons[s]; ok {
		return icon
	}
	return "💬"
}

func (s Section) Valid() bool {
	_, ok := sectionIDs[s]
	return ok
}

// ParseSection maps an identifier such as "calls" to its Section.
func ParseSection(id string) (Section, error) {
	for _, s := range Sections {
		if sectionIDs[s] == id {
			return s, nil
		}
	}
	return SectionChats, fmt.Errorf("unknown section: %q", id)
}
