// conversation.go - In-memory projection of the conversation for rendering.

package chat

import (
	"time"

	"urdugpt/src/models"
)

// Conversation holds the ordered message list the UI renders, plus
// ephemeral flags that never persist.
type Conversation struct {
	Messages    []models.Message
	IsLoading   bool
	ErrorBanner string
}

// Replace overwrites the list from a loaded history, but only when the
// loaded sequence is non-empty: a cold start keeps whatever the UI seeded
// (the conversation-starter screen) instead of clobbering it with an empty
// record.
func (c *Conversation) Replace(msgs []models.Message) {
	if len(msgs) == 0 {
		return
	}
	c.Messages = append([]models.Message(nil), msgs...)
}

// Append adds a message to the end of the list.
func (c *Conversation) Append(msg models.Message) {
	c.Messages = append(c.Messages, msg)
}

// SetStatus updates the in-memory status of the user message with the given
// id. Unknown ids are ignored.
func (c *Conversation) SetStatus(id string, status models.Status) {
	for i := range c.Messages {
		if c.Messages[i].ID == id && c.Messages[i].Sender == models.SenderUser {
			c.Messages[i].Status = status
		}
	}
}

// Clear empties the list.
func (c *Conversation) Clear() {
	c.Messages = nil
}

// DateGroup is one sidebar section: a calendar date and its messages in
// insertion order.
type DateGroup struct {
	Date     string
	Messages []models.Message
}

// dateLabel renders a timestamp as a local calendar date, matching the
// locale date format the web front end used.
func dateLabel(tsMillis int64) string {
	return time.UnixMilli(tsMillis).Local().Format("1/2/2006")
}

// GroupByDate buckets messages by local calendar date. Groups appear in
// first-seen date order and keep insertion order within each date.
func GroupByDate(msgs []models.Message) []DateGroup {
	var groups []DateGroup
	index := make(map[string]int)
	for _, m := range msgs {
		date := dateLabel(m.Timestamp)
		i, seen := index[date]
		if !seen {
			i = len(groups)
			index[date] = i
			groups = append(groups, DateGroup{Date: date})
		}
		groups[i].Messages = append(groups[i].Messages, m)
	}
	return groups
}
