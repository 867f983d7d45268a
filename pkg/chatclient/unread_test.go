package chatclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeUnread(t *testing.T) {
	// The last group's unreadCount is absent on the wire and must count as 0.
	payload := `{"chats": [
		{"_id": "c1", "isSeller": false, "unreadCount": 3},
		{"_id": "c2", "isSeller": true,  "unreadCount": 0},
		{"_id": "c3", "isSeller": true,  "unreadCount": 5},
		{"_id": "c4", "isSeller": false}
	]}`

	var out struct {
		Chats []ChatGroup `json:"chats"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &out))

	summary := SummarizeUnread(out.Chats)
	assert.Equal(t, 8, summary.TotalUnread)
	assert.Equal(t, 4, summary.All)
	assert.Equal(t, 2, summary.Selling)
	assert.Equal(t, 2, summary.Buying)
}

func TestSummarizeUnreadEmpty(t *testing.T) {
	assert.Equal(t, UnreadSummary{}, SummarizeUnread(nil))
	assert.Equal(t, UnreadSummary{}, SummarizeUnread([]ChatGroup{}))
}

func TestFilterChats(t *testing.T) {
	chats := []ChatGroup{
		{ID: "c1", IsSeller: false},
		{ID: "c2", IsSeller: true},
		{ID: "c3", IsSeller: false},
	}

	buying := FilterChats(chats, "buying")
	require.Len(t, buying, 2)
	assert.Equal(t, "c1", buying[0].ID)
	assert.Equal(t, "c3", buying[1].ID)

	selling := FilterChats(chats, "selling")
	require.Len(t, selling, 1)
	assert.Equal(t, "c2", selling[0].ID)

	assert.Len(t, FilterChats(chats, "all"), 3)
}
