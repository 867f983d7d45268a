package chatclient

import "time"

// DateGroup is one calendar day's slice of a conversation, in the order the
// server returned it.
type DateGroup struct {
	Key      string // local calendar date, YYYY-MM-DD
	Label    string // "Today", "Yesterday", "Jan 2" or "Jan 2, 2006"
	Messages []Message
}

// GroupMessagesByDate buckets an ascending message list by the local calendar
// date of each message's createdAt. Relative order inside a bucket and the
// first-occurrence order of the buckets both follow the input, so flattening
// the groups back in order reproduces the original sequence.
func GroupMessagesByDate(messages []Message, now time.Time) []DateGroup {
	loc := now.Location()

	var groups []DateGroup
	index := make(map[string]int)

	for _, message := range messages {
		day := message.CreatedAt.In(loc)
		key := day.Format("2006-01-02")

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{
				Key:   key,
				Label: DateLabel(day, now),
			})
		}
		groups[i].Messages = append(groups[i].Messages, message)
	}

	return groups
}

// DateLabel renders a calendar date the way the conversation view shows its
// dividers: Today, Yesterday, then a short month/day with the year appended
// only when it differs from the current one.
func DateLabel(day, now time.Time) string {
	day = day.In(now.Location())

	if sameDate(day, now) {
		return "Today"
	}
	if sameDate(day, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	if day.Year() != now.Year() {
		return day.Format("Jan 2, 2006")
	}
	return day.Format("Jan 2")
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
