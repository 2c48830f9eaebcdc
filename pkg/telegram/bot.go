package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vmkteam/embedlog"

	"github.com/abinig29/expense-bot/pkg/services"
	"github.com/abinig29/expense-bot/pkg/spend"
)

type Bot struct {
	api          *bot.Bot
	logger       embedlog.Logger
	spend        *spend.Manager
	cfg          Config
	stateManager *StateManager
	advisor      services.Advisor
}

type Config struct {
	Token             string
	Debug             bool
	SendConfirmations bool
	AllowedChatIDs    []int64
	AllowedTopicIDs   []int64
	GeminiKey         string
}

// New creates a new Telegram bot instance
func New(ctx context.Context, cfg Config, manager *spend.Manager, logger embedlog.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram token is required")
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(defaultHandler(logger)),
	}

	if cfg.Debug {
		opts = append(opts, bot.WithDebug())
	}

	api, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		api:          api,
		logger:       logger,
		spend:        manager,
		cfg:          cfg,
		stateManager: NewStateManager(),
		advisor:      services.NewGemini(cfg.GeminiKey, logger),
	}

	// Register command handlers
	b.registerHandlers()

	return b, nil
}

// Start starts the bot with long polling
func (b *Bot) Start(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot info: %w", err)
	}

	b.logger.Print(ctx, "telegram bot started", "username", me.Username, "id", me.ID)
	b.api.Start(ctx)

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop(ctx context.Context) {
	b.logger.Print(ctx, "stopping telegram bot")
}

// registerHandlers registers all command handlers
func (b *Bot) registerHandlers() {
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, b.handleStart)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, b.handleHelp)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, b.handleCancel)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/summary", bot.MatchTypePrefix, b.handleSummary)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypeExact, b.handleStats)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/categories", bot.MatchTypeExact, b.handleCategories)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/clear", bot.MatchTypePrefix, b.handleClear)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/settings", bot.MatchTypeExact, b.handleSettings)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/debug", bot.MatchTypeExact, b.handleDebug)

	// Free-text handler: expense messages, pending confirmations, AI chat.
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, b.handleMessage)
}

// allowed applies chat and topic allowlists; empty lists allow everything.
func (b *Bot) allowed(msg *models.Message) bool {
	if len(b.cfg.AllowedChatIDs) > 0 {
		found := false
		for _, id := range b.cfg.AllowedChatIDs {
			if id == msg.Chat.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if msg.MessageThreadID != 0 && len(b.cfg.AllowedTopicIDs) > 0 {
		for _, id := range b.cfg.AllowedTopicIDs {
			if id == int64(msg.MessageThreadID) {
				return true
			}
		}
		return false
	}

	return true
}

// reply sends text back into the message's chat and topic.
func (b *Bot) reply(ctx context.Context, msg *models.Message, text string) {
	_, err := b.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		MessageThreadID: msg.MessageThreadID,
		Text:            text,
		ParseMode:       models.ParseModeMarkdown,
	})
	if err != nil {
		errorsTotal.WithLabelValues("send").Inc()
		b.logger.Error(ctx, "failed to send message", "err", err)
	}
}

// defaultHandler handles non-text updates.
func defaultHandler(logger embedlog.Logger) bot.HandlerFunc {
	return func(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		logger.Print(ctx, "unsupported message", "chat_id", update.Message.Chat.ID)
		_, err := botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "I only understand text messages. Use /help for instructions.",
		})
		if err != nil {
			logger.Error(ctx, "failed to send message", "err", err)
		}
	}
}
