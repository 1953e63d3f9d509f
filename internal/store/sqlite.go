package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/saravenpi/murmur/internal/models"
	"github.com/saravenpi/murmur/internal/seed"
)

const schema = `
	CREATE TABLE chat (
		id           INTEGER PRIMARY KEY,
		position     INTEGER NOT NULL,
		name         TEXT NOT NULL,
		avatar       TEXT NOT NULL,
		last_message TEXT NOT NULL,
		time         TEXT NOT NULL,
		unread       INTEGER,
		online       INTEGER
	);
	CREATE TABLE message (
		chat_id    INTEGER NOT NULL REFERENCES chat(id),
		id         INTEGER NOT NULL,
		text       TEXT NOT NULL,
		time       TEXT NOT NULL,
		is_from_me INTEGER NOT NULL,
		PRIMARY KEY (chat_id, id)
	);
	CREATE TABLE story (
		id       INTEGER PRIMARY KEY,
		position INTEGER NOT NULL,
		name     TEXT NOT NULL,
		avatar   TEXT NOT NULL,
		viewed   INTEGER NOT NULL
	);
`

// SQLite keeps the mock data in a private in-memory SQLite database. It is
// rebuilt from the seed on every open.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(data *seed.Data) (*SQLite, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.load(data); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) load(data *seed.Data) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for i, st := range data.Stories {
		_, err := tx.Exec(`INSERT INTO story (id, position, name, avatar, viewed) VALUES (?, ?, ?, ?, ?)`,
			st.ID, i, st.Name, st.Avatar, st.Viewed)
		if err != nil {
			return fmt.Errorf("failed to seed story %d: %w", st.ID, err)
		}
	}

	for i, c := range data.Chats {
		var unread sql.NullInt64
		if n, ok := c.Unread.Get(); ok {
			unread = sql.NullInt64{Int64: int64(n), Valid: true}
		}
		var online sql.NullBool
		if v, ok := c.Online.Get(); ok {
			online = sql.NullBool{Bool: v, Valid: true}
		}

		_, err := tx.Exec(`INSERT INTO chat (id, position, name, avatar, last_message, time, unread, online) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, i, c.Name, c.Avatar, c.LastMessage, c.Time, unread, online)
		if err != nil {
			return fmt.Errorf("failed to seed chat %d: %w", c.ID, err)
		}

		for _, m := range data.Messages[c.ID] {
			_, err := tx.Exec(`INSERT INTO message (chat_id, id, text, time, is_from_me) VALUES (?, ?, ?, ?, ?)`,
				c.ID, m.ID, m.Text, m.Time, m.FromMe)
			if err != nil {
				return fmt.Errorf("failed to seed message %d/%d: %w", c.ID, m.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChat(row rowScanner) (models.Chat, error) {
	var chat models.Chat
	var unread sql.NullInt64
	var online sql.NullBool
	if err := row.Scan(&chat.ID, &chat.Name, &chat.Avatar, &chat.LastMessage, &chat.Time, &unread, &online); err != nil {
		return models.Chat{}, err
	}
	if unread.Valid {
		chat.Unread = models.Some(int(unread.Int64))
	}
	if online.Valid {
		chat.Online = models.Some(online.Bool)
	}
	return chat, nil
}

const chatColumns = `id, name, avatar, last_message, time, unread, online`

func (s *SQLite) Chats() ([]models.Chat, error) {
	rows, err := s.db.Query(`SELECT ` + chatColumns + ` FROM chat ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

func (s *SQLite) Chat(id int64) (models.Chat, error) {
	row := s.db.QueryRow(`SELECT `+chatColumns+` FROM chat WHERE id = ?`, id)
	chat, err := scanChat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, ErrChatNotFound
	}
	if err != nil {
		return models.Chat{}, fmt.Errorf("failed to query chat %d: %w", id, err)
	}
	return chat, nil
}

func (s *SQLite) Stories() ([]models.Story, error) {
	rows, err := s.db.Query(`SELECT id, name, avatar, viewed FROM story ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}
	defer rows.Close()

	var stories []models.Story
	for rows.Next() {
		var st models.Story
		if err := rows.Scan(&st.ID, &st.Name, &st.Avatar, &st.Viewed); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, st)
	}
	return stories, rows.Err()
}

func (s *SQLite) Messages(chatID int64) ([]models.Message, error) {
	if _, err := s.Chat(chatID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, text, time, is_from_me
		FROM message
		WHERE chat_id = ?
		ORDER BY id ASC
	`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.Text, &msg.Time, &msg.FromMe); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (s *SQLite) AppendMessage(chatID int64, text, timeLabel string, fromMe bool) (models.Message, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to begin append: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE chat SET last_message = ?, time = ? WHERE id = ?`, text, timeLabel, chatID)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to update chat preview: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Message{}, ErrChatNotFound
	}

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM message WHERE chat_id = ?`, chatID).Scan(&count); err != nil {
		return models.Message{}, fmt.Errorf("failed to count messages: %w", err)
	}

	msg := models.Message{
		ID:     count + 1,
		Text:   text,
		Time:   timeLabel,
		FromMe: fromMe,
	}
	_, err = tx.Exec(`INSERT INTO message (chat_id, id, text, time, is_from_me) VALUES (?, ?, ?, ?, ?)`,
		chatID, msg.ID, msg.Text, msg.Time, msg.FromMe)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Message{}, fmt.Errorf("failed to commit message: %w", err)
	}
	return msg, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
