package chatclient

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageAt(id string, at time.Time) Message {
	return Message{ID: id, Body: "m-" + id, CreatedAt: at}
}

func TestGroupMessagesByDate(t *testing.T) {
	now := time.Date(2026, time.August, 29, 15, 0, 0, 0, time.UTC)

	messages := []Message{
		messageAt("1", time.Date(2025, time.December, 31, 23, 50, 0, 0, time.UTC)),
		messageAt("2", time.Date(2026, time.August, 27, 9, 0, 0, 0, time.UTC)),
		messageAt("3", time.Date(2026, time.August, 28, 8, 0, 0, 0, time.UTC)),
		messageAt("4", time.Date(2026, time.August, 28, 19, 30, 0, 0, time.UTC)),
		messageAt("5", time.Date(2026, time.August, 29, 10, 15, 0, 0, time.UTC)),
	}

	groups := GroupMessagesByDate(messages, now)
	require.Len(t, groups, 4)

	assert.Equal(t, "Dec 31, 2025", groups[0].Label)
	assert.Equal(t, "Aug 27", groups[1].Label)
	assert.Equal(t, "Yesterday", groups[2].Label)
	assert.Equal(t, "Today", groups[3].Label)

	require.Len(t, groups[2].Messages, 2)
	assert.Equal(t, "3", groups[2].Messages[0].ID)
	assert.Equal(t, "4", groups[2].Messages[1].ID)
}

func TestGroupingFlattensBackToOriginalOrder(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

	var messages []Message
	at := now.AddDate(0, 0, -5)
	for i := 0; i < 12; i++ {
		messages = append(messages, messageAt(fmt.Sprintf("%d", i), at))
		at = at.Add(11 * time.Hour)
	}

	var flattened []Message
	for _, group := range GroupMessagesByDate(messages, now) {
		flattened = append(flattened, group.Messages...)
	}

	require.Len(t, flattened, len(messages))
	for i := range messages {
		assert.Equal(t, messages[i].ID, flattened[i].ID)
	}
}

func TestGroupMessagesByDateEmpty(t *testing.T) {
	assert.Empty(t, GroupMessagesByDate(nil, time.Now()))
}

func TestDateLabelUsesViewerZone(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2026, time.August, 29, 1, 0, 0, 0, loc)

	// 17:30 UTC the previous day is already "today" at UTC+9.
	sent := time.Date(2026, time.August, 28, 17, 30, 0, 0, time.UTC)
	assert.Equal(t, "Today", DateLabel(sent, now))
}
