package app

import (
	"strings"

	"github.com/saravenpi/murmur/internal/models"
	"golang.org/x/text/cases"
)

// FilterChats returns the chats whose name contains query, ignoring case,
// in their original order. An empty query matches every chat. Both sides
// are case folded, so context-dependent lower case forms such as the Greek
// final sigma still match.
func FilterChats(chats []models.Chat, query string) []models.Chat {
	fold := cases.Fold()
	needle := fold.String(query)
	filtered := make([]models.Chat, 0, len(chats))
	for _, c := range chats {
		if strings.Contains(fold.String(c.Name), needle) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
