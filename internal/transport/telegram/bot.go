package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// Dispatcher routes a request envelope to a domain handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *core.Request) (core.Response, error)
}

// Bot serves the chat domain over Telegram. Each chat is its own session.
type Bot struct {
	bot    *tele.Bot
	cfg    *config.TelegramConfig
	router Dispatcher
	sender *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	router Dispatcher,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		cfg:    cfg,
		router: router,
		sender: newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Chat() == nil || !cfg.Allowed(c.Chat().ID) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleMessage)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	_ = c.Notify(tele.Typing)

	reply := answer(ctx, b.router, c.Chat().ID, c.Text())
	return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
}

// SessionID names the conversation of a Telegram chat.
func SessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

// answer runs a chat turn and always returns something to send back.
func answer(ctx context.Context, router Dispatcher, chatID int64, text string) string {
	logger := log.FromCtx(ctx)

	if text == "/start" {
		text = "start"
	}
	resp, err := router.Dispatch(ctx, &core.Request{
		Domain: string(core.DomainChat),
		Data:   &core.RequestData{SessionID: SessionID(chatID), Question: text},
	})
	if err != nil {
		if ie, ok := core.AsInputError(err); ok {
			return ie.Message
		}
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("chat turn failed")
		return "Xin lỗi, đã có lỗi xảy ra. Vui lòng thử lại sau."
	}

	if a, ok := resp.Answer.(core.ChatAnswer); ok {
		return a.Reply
	}
	return fmt.Sprint(resp.Answer)
}
