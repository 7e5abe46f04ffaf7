package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"snapsentinel/internal/utils"
)

// TelegramNotifier mirrors alert banners into a Telegram chat.
type TelegramNotifier struct {
	token   string
	chatID  int64
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewTelegramNotifier builds a rate-limited Telegram notifier.
func NewTelegramNotifier(token string, chatID int64, ratePerSecond int, logger *logrus.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		token:   token,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(float64(ratePerSecond)), ratePerSecond),
		logger:  logger,
	}
}

// Notify sends the banner text, retrying transient failures.
func (n *TelegramNotifier) Notify(ctx context.Context, title, body string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limit exceeded: %w", err)
	}

	text := fmt.Sprintf("*%s*\n%s", title, body)

	return utils.Retry(n.logger, 3, time.Second, func() error {
		b, err := bot.New(n.token)
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram bot: %w", err)
		}

		params := &bot.SendMessageParams{
			ChatID:    n.chatID,
			Text:      text,
			ParseMode: "Markdown",
		}
		if _, err := b.SendMessage(ctx, params); err != nil {
			return fmt.Errorf("failed to send Telegram message to chat_id %d: %w", n.chatID, err)
		}
		return nil
	})
}
