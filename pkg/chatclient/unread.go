package chatclient

// UnreadSummary is the pure aggregation the list screen and the badge widget
// derive from a chat summary poll. It is recomputed wholesale on every tick;
// nothing here retains state between polls.
type UnreadSummary struct {
	TotalUnread int
	All         int
	Buying      int
	Selling     int
}

// SummarizeUnread folds a chat summary list into total unread plus per-filter
// group counts. A group missing its unread count simply contributes zero.
func SummarizeUnread(chats []ChatGroup) UnreadSummary {
	var s UnreadSummary
	for _, chat := range chats {
		s.All++
		if chat.IsSeller {
			s.Selling++
		} else {
			s.Buying++
		}
		if chat.UnreadCount > 0 {
			s.TotalUnread += chat.UnreadCount
		}
	}
	return s
}

// FilterChats returns the groups matching a list-screen tab: "buying",
// "selling", or anything else for all.
func FilterChats(chats []ChatGroup, filter string) []ChatGroup {
	switch filter {
	case "buying":
		out := make([]ChatGroup, 0, len(chats))
		for _, chat := range chats {
			if !chat.IsSeller {
				out = append(out, chat)
			}
		}
		return out
	case "selling":
		out := make([]ChatGroup, 0, len(chats))
		for _, chat := range chats {
			if chat.IsSeller {
				out = append(out, chat)
			}
		}
		return out
	default:
		return chats
	}
}
