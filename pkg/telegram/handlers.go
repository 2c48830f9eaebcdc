package telegram

import (
	"context"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/abinig29/expense-bot/pkg/services"
	"github.com/abinig29/expense-bot/pkg/spend"
)

// handleStart handles /start command
func (b *Bot) handleStart(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("start").Inc()
	if update.Message == nil || update.Message.From == nil || !b.allowed(update.Message) {
		return
	}

	b.stateManager.Clear(update.Message.From.ID)

	welcome := "🎉 *Welcome to Expense Tracker Bot!*\n\n" +
		"I can help you track your daily expenses. " +
		"Send me expense messages in the specified format or use /help for instructions.\n\n" +
		"💡 You can also just ask me questions about your spending."

	b.logger.Print(ctx, "user started bot",
		"telegram_user_id", update.Message.From.ID, "username", update.Message.From.Username)

	b.reply(ctx, update.Message, welcome)
}

// handleHelp handles /help command
func (b *Bot) handleHelp(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("help").Inc()
	if update.Message == nil || !b.allowed(update.Message) {
		return
	}

	b.reply(ctx, update.Message, formatHelp())
}

// handleCancel handles /cancel command - drops any pending confirmation
func (b *Bot) handleCancel(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("cancel").Inc()
	if update.Message == nil || update.Message.From == nil || !b.allowed(update.Message) {
		return
	}

	b.stateManager.Clear(update.Message.From.ID)
	b.reply(ctx, update.Message, "✅ Pending action cancelled.")
}

// handleSummary handles /summary [YYYY-MM-DD]
func (b *Bot) handleSummary(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("summary").Inc()
	if update.Message == nil || !b.allowed(update.Message) {
		return
	}

	arg := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/summary"))

	date := time.Now()
	if arg != "" {
		parsed, err := parseCommandDate(arg)
		if err != nil {
			b.reply(ctx, update.Message, formatError("Invalid date format. Use YYYY-MM-DD or leave empty for today."))
			return
		}
		date = parsed
	}

	summary, err := b.spend.DailySummary(ctx, date)
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to build daily summary", "err", err)
		b.reply(ctx, update.Message, formatError("An error occurred while generating the summary."))
		return
	}

	b.reply(ctx, update.Message, formatDailySummary(summary))
}

// handleStats handles /stats command
func (b *Bot) handleStats(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("stats").Inc()
	if update.Message == nil || !b.allowed(update.Message) {
		return
	}

	stats, err := b.spend.OverallStats(ctx)
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to build stats", "err", err)
		b.reply(ctx, update.Message, formatError("An error occurred while generating statistics."))
		return
	}

	if stats.EntryCount == 0 {
		b.reply(ctx, update.Message, "📊 *Statistics*\n\nNo expenses recorded yet.")
		return
	}

	b.reply(ctx, update.Message, formatStats(stats))
}

// handleCategories handles /categories command
func (b *Bot) handleCategories(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("categories").Inc()
	if update.Message == nil || !b.allowed(update.Message) {
		return
	}

	usage, err := b.spend.CategoryUsage(ctx)
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to get category usage", "err", err)
		b.reply(ctx, update.Message, formatError("An error occurred while fetching categories."))
		return
	}

	b.reply(ctx, update.Message, formatCategoryUsage(usage))
}

// handleClear handles /clear [date [date]] - asks for confirmation first
func (b *Bot) handleClear(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("clear").Inc()
	if update.Message == nil || update.Message.From == nil || !b.allowed(update.Message) {
		return
	}

	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/clear")))

	var pending *PendingClear
	switch len(args) {
	case 0:
		pending = &PendingClear{Scope: ClearScopeAll}
	case 1:
		date, err := parseCommandDate(args[0])
		if err != nil {
			b.reply(ctx, update.Message, formatError("Invalid date format. Use YYYY-MM-DD"))
			return
		}
		pending = &PendingClear{Scope: ClearScopeDay, Date: date}
	case 2:
		start, err := parseCommandDate(args[0])
		if err != nil {
			b.reply(ctx, update.Message, formatError("Invalid date format. Use YYYY-MM-DD YYYY-MM-DD"))
			return
		}
		end, err := parseCommandDate(args[1])
		if err != nil {
			b.reply(ctx, update.Message, formatError("Invalid date format. Use YYYY-MM-DD YYYY-MM-DD"))
			return
		}
		pending = &PendingClear{Scope: ClearScopeRange, Start: start, End: dayEnd(end)}
	default:
		b.reply(ctx, update.Message, formatError("Invalid clear command. Use /clear, /clear YYYY-MM-DD, or /clear YYYY-MM-DD YYYY-MM-DD"))
		return
	}

	b.stateManager.SetPending(update.Message.From.ID, pending)
	b.reply(ctx, update.Message, formatClearPrompt(pending))
}

// handleSettings handles /settings command
func (b *Bot) handleSettings(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("settings").Inc()
	if update.Message == nil || !b.allowed(update.Message) {
		return
	}

	b.reply(ctx, update.Message, formatSettings(b.cfg))
}

// handleDebug handles /debug command
func (b *Bot) handleDebug(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("debug").Inc()
	if update.Message == nil || !b.allowed(update.Message) {
		return
	}

	count, err := b.spend.CountExpenses(ctx)
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to count expenses", "err", err)
		b.reply(ctx, update.Message, formatError("An error occurred while fetching debug information."))
		return
	}

	b.reply(ctx, update.Message, formatDebug(count, time.Now()))
}

// handleMessage handles free text: pending confirmations first, then expense
// messages, everything else goes to the AI advisor.
func (b *Bot) handleMessage(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || !b.allowed(update.Message) {
		return
	}

	msg := update.Message
	text := strings.TrimSpace(msg.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return
	}

	if pending := b.stateManager.Pending(msg.From.ID); pending != nil {
		b.handleConfirmation(ctx, msg, pending, text)
		return
	}

	if spend.LooksLikeExpense(text) {
		if spend.ContainsMultiple(text) {
			b.handleMultipleExpenses(ctx, msg, text)
		} else {
			b.handleSingleExpense(ctx, msg, text)
		}
		return
	}

	b.handleChat(ctx, msg, text)
}

func (b *Bot) meta(msg *models.Message) spend.Meta {
	meta := spend.Meta{
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		MessageID: int64(msg.ID),
	}
	if msg.MessageThreadID != 0 {
		topicID := int64(msg.MessageThreadID)
		meta.TopicID = &topicID
	}

	return meta
}

func (b *Bot) handleSingleExpense(ctx context.Context, msg *models.Message, text string) {
	messagesProcessed.WithLabelValues("expense").Inc()

	draft := spend.ParseOne(text)
	if draft == nil {
		errorsTotal.WithLabelValues("parse").Inc()
		b.reply(ctx, msg, formatError("Could not parse expense message. Please check the format."))
		return
	}

	expense, categoryCreated, err := b.spend.AddExpense(ctx, *draft, b.meta(msg))
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to add expense", "err", err)
		b.reply(ctx, msg, formatError("An error occurred while processing your expense."))
		return
	}

	expensesCreated.Inc()
	if categoryCreated {
		categoriesCreated.Inc()
	}

	if b.cfg.SendConfirmations {
		b.reply(ctx, msg, formatExpenseAdded(expense))
	}
}

func (b *Bot) handleMultipleExpenses(ctx context.Context, msg *models.Message, text string) {
	messagesProcessed.WithLabelValues("expense_multi").Inc()

	drafts, skipped := spend.ParseBlocks(text)
	if len(drafts) == 0 {
		errorsTotal.WithLabelValues("parse").Inc()
		b.reply(ctx, msg, formatError("Could not parse any expenses from the message. Please check the format."))
		return
	}

	expenses, newCategories, err := b.spend.AddExpenses(ctx, drafts, b.meta(msg))
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to add expenses", "err", err)
		b.reply(ctx, msg, formatError("An error occurred while processing your expenses."))
		return
	}

	expensesCreated.Add(float64(len(expenses)))
	categoriesCreated.Add(float64(newCategories))

	if b.cfg.SendConfirmations {
		b.reply(ctx, msg, formatExpensesAdded(expenses, skipped))
	}
}

// handleConfirmation resolves a pending /clear with the user's yes/no reply.
func (b *Bot) handleConfirmation(ctx context.Context, msg *models.Message, pending *PendingClear, response string) {
	messagesProcessed.WithLabelValues("confirmation").Inc()
	b.stateManager.Clear(msg.From.ID)

	answer := strings.ToLower(response)
	if answer != "yes" && answer != "y" {
		b.reply(ctx, msg, "❌ Clear action cancelled.")
		return
	}

	var (
		count int
		err   error
	)
	switch pending.Scope {
	case ClearScopeDay:
		count, err = b.spend.ClearForDate(ctx, pending.Date)
	case ClearScopeRange:
		count, err = b.spend.ClearForDateRange(ctx, pending.Start, pending.End)
	default:
		count, err = b.spend.ClearAll(ctx)
	}
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to clear expenses", "err", err)
		b.reply(ctx, msg, formatError("An error occurred while clearing expenses."))
		return
	}

	b.reply(ctx, msg, formatClearResult(count, pending))
}

// handleChat forwards non-expense text to the AI advisor with the user's
// 30-day context. Advisor failures degrade to a fixed fallback reply.
func (b *Bot) handleChat(ctx context.Context, msg *models.Message, text string) {
	messagesProcessed.WithLabelValues("chat").Inc()

	expenseContext, err := b.spend.ExpenseContext(ctx, msg.From.ID)
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to build expense context", "err", err)
		expenseContext = "Unable to retrieve user's expense data."
	}

	started := time.Now()
	advice, err := b.advisor.Advise(ctx, text, expenseContext)
	aiRequestDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		errorsTotal.WithLabelValues("ai").Inc()
		b.logger.Error(ctx, "advisor failed", "err", err)
		b.reply(ctx, msg, services.FallbackResponse())
		return
	}

	b.reply(ctx, msg, sanitizeAdvice(advice))
}
