package store

import (
	"errors"
	"testing"

	"github.com/saravenpi/murmur/internal/seed"
)

func newTestSeed(t *testing.T) *seed.Data {
	t.Helper()
	d, err := seed.Default()
	if err != nil {
		t.Fatalf("seed.Default() error = %v", err)
	}
	return d
}

func forEachDriver(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	for _, driver := range []string{DriverMemory, DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			s, err := Open(driver, newTestSeed(t))
			if err != nil {
				t.Fatalf("Open(%q) error = %v", driver, err)
			}
			t.Cleanup(func() {
				_ = s.Close()
			})
			fn(t, s)
		})
	}
}

func TestChatsKeepSeedOrder(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s Store) {
		chats, err := s.Chats()
		if err != nil {
			t.Fatalf("Chats() error = %v", err)
		}
		if len(chats) != 7 {
			t.Fatalf("len(Chats()) = %d, want 7", len(chats))
		}
		for i, c := range chats {
			if c.ID != int64(i+1) {
				t.Errorf("Chats()[%d].ID = %d, want %d", i, c.ID, i+1)
			}
		}

		if n, ok := chats[1].Unread.Get(); !ok || n != 5 {
			t.Errorf("Chats()[1].Unread = (%d, %v), want (5, true)", n, ok)
		}
		if chats[3].Unread.IsSet() || chats[3].Online.IsSet() {
			t.Errorf("Chats()[3] optional fields should be absent, got %+v", chats[3])
		}
		if !chats[2].IsOnline() {
			t.Error("Chats()[2] should be online")
		}
	})
}

func TestStories(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s Store) {
		stories, err := s.Stories()
		if err != nil {
			t.Fatalf("Stories() error = %v", err)
		}
		if len(stories) != 5 {
			t.Fatalf("len(Stories()) = %d, want 5", len(stories))
		}
		if stories[0].Viewed || !stories[2].Viewed {
			t.Errorf("unexpected viewed flags: %+v", stories)
		}
	})
}

func TestAppendMessage(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s Store) {
		before, err := s.Messages(1)
		if err != nil {
			t.Fatalf("Messages() error = %v", err)
		}

		msg, err := s.AppendMessage(1, "Привет", "15:04", true)
		if err != nil {
			t.Fatalf("AppendMessage() error = %v", err)
		}
		if msg.ID != len(before)+1 {
			t.Errorf("msg.ID = %d, want %d", msg.ID, len(before)+1)
		}
		if !msg.FromMe {
			t.Error("msg.FromMe = false, want true")
		}

		after, err := s.Messages(1)
		if err != nil {
			t.Fatalf("Messages() error = %v", err)
		}
		if len(after) != len(before)+1 {
			t.Fatalf("len(Messages()) = %d, want %d", len(after), len(before)+1)
		}
		if after[len(after)-1] != msg {
			t.Errorf("last message = %+v, want %+v", after[len(after)-1], msg)
		}

		chat, err := s.Chat(1)
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if chat.LastMessage != "Привет" || chat.Time != "15:04" {
			t.Errorf("chat preview = (%q, %q), want (%q, %q)", chat.LastMessage, chat.Time, "Привет", "15:04")
		}

		other, err := s.Messages(2)
		if err != nil {
			t.Fatalf("Messages(2) error = %v", err)
		}
		if len(other) != 2 {
			t.Errorf("len(Messages(2)) = %d, want 2", len(other))
		}
	})
}

func TestMessageIDsAreSequentialPerChat(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s Store) {
		for i := 0; i < 3; i++ {
			if _, err := s.AppendMessage(4, "x", "10:00", true); err != nil {
				t.Fatalf("AppendMessage() error = %v", err)
			}
		}
		msgs, err := s.Messages(4)
		if err != nil {
			t.Fatalf("Messages() error = %v", err)
		}
		for i, m := range msgs {
			if m.ID != i+1 {
				t.Errorf("Messages()[%d].ID = %d, want %d", i, m.ID, i+1)
			}
		}
	})
}

func TestUnknownChat(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s Store) {
		if _, err := s.Chat(99); !errors.Is(err, ErrChatNotFound) {
			t.Errorf("Chat(99) error = %v, want ErrChatNotFound", err)
		}
		if _, err := s.Messages(99); !errors.Is(err, ErrChatNotFound) {
			t.Errorf("Messages(99) error = %v, want ErrChatNotFound", err)
		}
		if _, err := s.AppendMessage(99, "x", "10:00", true); !errors.Is(err, ErrChatNotFound) {
			t.Errorf("AppendMessage(99) error = %v, want ErrChatNotFound", err)
		}
	})
}

func TestStoresAreIndependentOfSeed(t *testing.T) {
	d := newTestSeed(t)
	s := NewMemory(d)
	if _, err := s.AppendMessage(1, "x", "10:00", true); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	if len(d.Messages[1]) != 4 {
		t.Errorf("seed mutated: len(Messages[1]) = %d, want 4", len(d.Messages[1]))
	}
	if d.Chats[0].LastMessage != "Привет! Как дела?" {
		t.Errorf("seed preview mutated: %q", d.Chats[0].LastMessage)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("postgres", newTestSeed(t)); err == nil {
		t.Fatal("Open(\"postgres\") expected error")
	}
}
