// chatwatch tails a voltbay conversation or watches the unread badge from a
// terminal, using the same polling cadence as the web client.
//
// Usage:
//
//	chatwatch -base http://localhost:8080 -token <id-token>              # unread badge
//	chatwatch -base http://localhost:8080 -token <id-token> -chat <id>   # tail one chat
//
// In chat mode, lines typed on stdin are sent as messages.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"voltbay/pkg/chatclient"
	"voltbay/pkg/config"
)

func main() {
	baseURL := flag.String("base", "http://localhost:8080", "server base URL")
	token := flag.String("token", os.Getenv("VOLTBAY_TOKEN"), "bearer token")
	chatID := flag.String("chat", "", "chat group id to tail (badge mode when empty)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := chatclient.NewClient(*baseURL, chatclient.WithToken(*token))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *chatID == "" {
		watchBadge(ctx, client, cfg.BadgePollInterval)
		return
	}
	watchChat(ctx, client, *chatID, cfg.MessagePollInterval)
}

func watchBadge(ctx context.Context, client *chatclient.Client, interval time.Duration) {
	var last chatclient.UnreadSummary

	poller := chatclient.NewChatListPoller(client, interval, func(chats []chatclient.ChatGroup) {
		summary := chatclient.SummarizeUnread(chats)
		if summary == last {
			return
		}
		last = summary
		fmt.Printf("%d unread (%d chats: %d buying, %d selling)\n",
			summary.TotalUnread, summary.All, summary.Buying, summary.Selling)
	})

	poller.Run(ctx)
}

func watchChat(ctx context.Context, client *chatclient.Client, chatID string, interval time.Duration) {
	info, err := client.ChatInfo(ctx, chatID)
	if err != nil {
		log.Fatalf("Failed to load chat: %v", err)
	}

	fmt.Printf("-- %s --\n", info.ProductName)
	if info.IsSeller {
		fmt.Printf("Selling to %d buyer(s)\n", info.ParticipantCount)
	} else {
		fmt.Printf("Buying from %s\n", info.Seller.UserName)
	}
	if info.IsClosed {
		fmt.Println("This chat has been closed by the seller")
	}

	seen := 0
	lastLabel := ""
	poller := chatclient.NewMessagePoller(client, chatID, interval, func(messages []chatclient.Message) {
		if len(messages) <= seen {
			return
		}
		now := time.Now()
		for _, group := range chatclient.GroupMessagesByDate(messages[seen:], now) {
			if group.Label != lastLabel {
				fmt.Printf("---- %s ----\n", group.Label)
				lastLabel = group.Label
			}
			for _, m := range group.Messages {
				fmt.Printf("[%s] %s: %s\n", m.CreatedAt.Local().Format("15:04"), m.Sender.UserName, m.Body)
			}
		}
		seen = len(messages)
	})

	go poller.Run(ctx)

	if !info.IsClosed {
		go sendLoop(ctx, client, chatID)
	}

	<-ctx.Done()
}

// sendLoop posts each stdin line as a message. Failures are shown and the
// user just types again; the next poll renders whatever actually landed.
func sendLoop(ctx context.Context, client *chatclient.Client, chatID string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Text()
		if err := client.SendMessage(ctx, chatID, line); err != nil {
			var apiErr *chatclient.APIError
			switch {
			case errors.As(err, &apiErr):
				fmt.Printf("Error: %s\n", apiErr.Message)
			case errors.Is(err, chatclient.ErrNoResponse):
				fmt.Println("Error: No response from server. Please check your connection.")
			default:
				fmt.Printf("Error: %v\n", err)
			}
		}
	}
}
