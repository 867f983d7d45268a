// Package chatclient consumes the voltbay chat endpoints the way the web
// client does: request/response only, periodic polling in place of push.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoResponse marks a request that was dispatched but never answered.
// Everything failing before dispatch surfaces as a plain error instead.
var ErrNoResponse = errors.New("no response from server")

const (
	connectivityMessage = "No response from server. Please check your connection."
	genericMessage      = "An error occurred"
)

// APIError is a server-rejected request (non-2xx). Message carries the
// server's human-readable text verbatim and is meant to be shown as-is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// UserRef is an account embedded in a chat group or message.
type UserRef struct {
	ID              string `json:"_id"`
	UserName        string `json:"userName"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// ChatGroup is one buyer-seller-product conversation as the server renders it
// for the requesting viewer.
type ChatGroup struct {
	ID               string    `json:"_id"`
	ProductID        string    `json:"productId"`
	ProductName      string    `json:"productName"`
	Seller           UserRef   `json:"sellerId"`
	IsSeller         bool      `json:"isSeller"`
	ParticipantCount int       `json:"participantCount"`
	LastMessage      string    `json:"lastMessage"`
	LastMessageAt    time.Time `json:"lastMessageAt"`
	UnreadCount      int       `json:"unreadCount"`
	IsClosed         bool      `json:"isClosed"`
}

type Message struct {
	ID          string    `json:"_id"`
	ChatGroupID string    `json:"chatGroupId"`
	Sender      UserRef   `json:"senderId"`
	Body        string    `json:"message"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCreateGroup opens or reuses the chat group for productID and the
// authenticated viewer. Safe to retry: the server enforces one group per
// (product, buyer) pair.
func (c *Client) GetOrCreateGroup(ctx context.Context, productID string) (*ChatGroup, error) {
	var out struct {
		Success   bool       `json:"success"`
		ChatGroup *ChatGroup `json:"chatGroup"`
	}
	err := c.do(ctx, http.MethodPost, "/chat/get-or-create-group", map[string]string{
		"productId": productID,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.ChatGroup == nil {
		return nil, fmt.Errorf("get-or-create-group: %s", genericMessage)
	}
	return out.ChatGroup, nil
}

// MyChats fetches the viewer's full chat summary list. A missing array in the
// response decodes to an empty slice, never nil.
func (c *Client) MyChats(ctx context.Context) ([]ChatGroup, error) {
	var out struct {
		Chats []ChatGroup `json:"chats"`
	}
	if err := c.do(ctx, http.MethodGet, "/chat/my-chats", nil, &out); err != nil {
		return nil, err
	}
	if out.Chats == nil {
		out.Chats = []ChatGroup{}
	}
	return out.Chats, nil
}

// ChatInfo fetches one chat group's metadata.
func (c *Client) ChatInfo(ctx context.Context, chatID string) (*ChatGroup, error) {
	var out struct {
		ChatInfo *ChatGroup `json:"chatInfo"`
	}
	if err := c.do(ctx, http.MethodGet, "/chat/chat-info/"+chatID, nil, &out); err != nil {
		return nil, err
	}
	if out.ChatInfo == nil {
		return nil, fmt.Errorf("chat-info: %s", genericMessage)
	}
	return out.ChatInfo, nil
}

// Messages fetches the ordered message list for chatID. The server returns
// ascending createdAt order; the client does not re-sort.
func (c *Client) Messages(ctx context.Context, chatID string) ([]Message, error) {
	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/chat/messages/"+chatID, nil, &out); err != nil {
		return nil, err
	}
	if out.Messages == nil {
		out.Messages = []Message{}
	}
	return out.Messages, nil
}

// SendMessage posts one trimmed, non-empty message. The caller keeps its
// input on failure so the user can retry.
func (c *Client) SendMessage(ctx context.Context, chatGroupID, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return errors.New("message cannot be empty")
	}

	var out struct {
		Success bool `json:"success"`
	}
	return c.do(ctx, http.MethodPost, "/chat/send-message", map[string]string{
		"chatGroupId": chatGroupID,
		"message":     body,
	}, &out)
}

// CloseGroup permanently closes a conversation. Seller only.
func (c *Client) CloseGroup(ctx context.Context, chatID string) error {
	var out struct {
		Success bool `json:"success"`
	}
	return c.do(ctx, http.MethodPost, "/chat/close-group/"+chatID, nil, &out)
}

// CanContactSeller reports whether the contact control should be offered at
// all. The product's own seller never sees it.
func CanContactSeller(viewerID, sellerID string) bool {
	return viewerID != "" && sellerID != "" && viewerID != sellerID
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var reqBody io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoResponse, connectivityMessage)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: genericMessage}
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
			apiErr.Message = body.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
