package chatclient

import (
	"context"
	"sync"
	"time"

	"voltbay/pkg/logger"
)

// Polling cadence used by the original consumers: the open conversation,
// the chat list screen, and the badge-only widget.
const (
	DefaultMessageInterval  = 3 * time.Second
	DefaultChatListInterval = 5 * time.Second
	DefaultBadgeInterval    = 10 * time.Second
)

// MessagePoller re-fetches one conversation on a fixed interval and replaces
// its snapshot wholesale on every successful tick. Failures are logged and
// absorbed; the previous snapshot stays put and the next tick is the retry.
//
// Every fetch is stamped with a monotonically increasing sequence number and
// a response older than the last applied one is discarded, so a slow in-flight
// reply can never overwrite newer data.
type MessagePoller struct {
	client   *Client
	chatID   string
	interval time.Duration
	onUpdate func([]Message)

	mu       sync.Mutex
	seq      uint64
	applied  uint64
	snapshot []Message
}

// NewMessagePoller builds a poller for chatID. onUpdate, if non-nil, runs on
// every applied snapshot; it must be quick and must not call back into the
// poller. Pass DefaultMessageInterval unless a test needs a faster clock.
func NewMessagePoller(client *Client, chatID string, interval time.Duration, onUpdate func([]Message)) *MessagePoller {
	if interval <= 0 {
		interval = DefaultMessageInterval
	}
	return &MessagePoller{
		client:   client,
		chatID:   chatID,
		interval: interval,
		onUpdate: onUpdate,
	}
}

// Run fetches immediately, then on every tick until ctx is cancelled.
// Cancellation stops the timer deterministically; a fetch already in flight
// is not aborted, but its late completion only touches the snapshot if it is
// still the newest applied response.
func (p *MessagePoller) Run(ctx context.Context) {
	go p.poll(ctx, p.nextSeq())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.poll(ctx, p.nextSeq())
		}
	}
}

// Snapshot returns the last successfully fetched message list.
func (p *MessagePoller) Snapshot() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

func (p *MessagePoller) nextSeq() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	return p.seq
}

func (p *MessagePoller) poll(ctx context.Context, seq uint64) {
	messages, err := p.client.Messages(ctx, p.chatID)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error("Error fetching messages for chat %s: %v", p.chatID, err)
		}
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq <= p.applied {
		// A newer response already landed.
		return
	}
	p.applied = seq
	p.snapshot = messages
	if p.onUpdate != nil {
		p.onUpdate(messages)
	}
}

// ChatListPoller re-fetches the viewer's full chat summary list on a fixed
// interval. The list screen and the badge widget each run their own instance
// with their own cadence; they share nothing but the endpoint.
type ChatListPoller struct {
	client   *Client
	interval time.Duration
	onUpdate func([]ChatGroup)

	mu       sync.Mutex
	seq      uint64
	applied  uint64
	snapshot []ChatGroup
}

func NewChatListPoller(client *Client, interval time.Duration, onUpdate func([]ChatGroup)) *ChatListPoller {
	if interval <= 0 {
		interval = DefaultChatListInterval
	}
	return &ChatListPoller{
		client:   client,
		interval: interval,
		onUpdate: onUpdate,
	}
}

// Run fetches immediately, then on every tick until ctx is cancelled.
func (p *ChatListPoller) Run(ctx context.Context) {
	go p.poll(ctx, p.nextSeq())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.poll(ctx, p.nextSeq())
		}
	}
}

// Snapshot returns the last successfully fetched chat list.
func (p *ChatListPoller) Snapshot() []ChatGroup {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Unread summarizes the current snapshot.
func (p *ChatListPoller) Unread() UnreadSummary {
	return SummarizeUnread(p.Snapshot())
}

func (p *ChatListPoller) nextSeq() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	return p.seq
}

func (p *ChatListPoller) poll(ctx context.Context, seq uint64) {
	chats, err := p.client.MyChats(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error("Error fetching chat list: %v", err)
		}
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq <= p.applied {
		return
	}
	p.applied = seq
	p.snapshot = chats
	if p.onUpdate != nil {
		p.onUpdate(chats)
	}
}
