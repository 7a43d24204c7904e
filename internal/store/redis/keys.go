package redis

import "fmt"

const (
	// KeyPrefixLink is the prefix for link record keys
	KeyPrefixLink = "linkshelf:link:"
	// KeyLinksByCreated is the sorted set of link ids scored by creation time
	KeyLinksByCreated = "linkshelf:links:by_created"
	// KeyFavoriteLinks is the set of favorite link ids
	KeyFavoriteLinks = "linkshelf:links:favorites"
	// KeyPendingQueue is the share-extension inbox of raw URLs
	KeyPendingQueue = "linkshelf:share:pending"
	// KeyWidgetLinks is the denormalized widget list blob
	KeyWidgetLinks = "linkshelf:widget:links"
	// KeyRemindersByFire is the sorted set of link ids scored by reminder fire time
	KeyRemindersByFire = "linkshelf:reminders:by_fire"
	// KeyPrefixReminder is the prefix for reminder payload keys
	KeyPrefixReminder = "linkshelf:reminder:"
)

// LinkKey returns the Redis key for a link by id
func LinkKey(id string) string {
	return KeyPrefixLink + id
}

// ReminderKey returns the Redis key for a reminder payload by link id
func ReminderKey(linkID string) string {
	return KeyPrefixReminder + linkID
}

// ExtractLinkID extracts the link id from a Redis key
func ExtractLinkID(key string) (string, error) {
	if len(key) <= len(KeyPrefixLink) {
		return "", fmt.Errorf("invalid link key: %s", key)
	}
	return key[len(KeyPrefixLink):], nil
}
