package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-tracker/internal/service"
)

// maxMessageLen is Telegram's limit for a single text message.
const maxMessageLen = 4096

// Sender is the part of the Telegram API the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier delivers the reminder digest to one Telegram chat.
type Notifier struct {
	api         Sender
	chatID      int64
	reminderSvc *service.ReminderService
}

// New authorizes against the Telegram API with token.
func New(token string, chatID int64, reminderSvc *service.ReminderService) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return NewWithSender(api, chatID, reminderSvc), nil
}

func NewWithSender(api Sender, chatID int64, reminderSvc *service.ReminderService) *Notifier {
	return &Notifier{api: api, chatID: chatID, reminderSvc: reminderSvc}
}

// SendDailyDigest builds the digest for now and sends it. Nothing is sent
// when the digest is empty.
func (n *Notifier) SendDailyDigest(ctx context.Context) error {
	text, err := n.reminderSvc.DailySummary(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("build digest: %w", err)
	}
	if text == "" {
		return nil
	}
	return n.SendText(ctx, text)
}

// SendText sends HTML text, split on line boundaries to fit the message
// size limit.
func (n *Notifier) SendText(ctx context.Context, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLen) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		msg := tgbotapi.NewMessage(n.chatID, chunk)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := n.api.Send(msg); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

// splitMessage cuts text into chunks of at most limit bytes, breaking after
// a newline where possible.
func splitMessage(text string, limit int) []string {
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		} else {
			cut++
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
