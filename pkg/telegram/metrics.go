package telegram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abinig29/expense-bot/pkg/services"
)

// Bot metrics, auto-registered in the default Prometheus registry.
var (
	commandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expense_bot_commands_processed_total",
			Help: "Total number of processed commands by type",
		},
		[]string{"command"}, // start, help, summary, stats, clear, settings, categories, debug, cancel
	)

	messagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expense_bot_messages_processed_total",
			Help: "Total number of processed messages by type",
		},
		[]string{"type"}, // expense, expense_multi, chat, confirmation
	)

	expensesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "expense_bot_expenses_created_total",
			Help: "Total number of expenses created",
		},
	)

	categoriesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "expense_bot_categories_created_total",
			Help: "Total number of categories created",
		},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expense_bot_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // parse, database, ai, send
	)

	aiRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "expense_bot_ai_request_duration_seconds",
			Help:    "Duration of AI advisor requests in seconds",
			Buckets: []float64{0.5, 1.5, 2.5, 3.5, 5, 10},
		},
	)
)

// RestoreCounters re-applies counter values captured from Prometheus before
// the last restart, keeping dashboards monotonic across deploys.
func RestoreCounters(snapshot *services.MetricsSnapshot) {
	if snapshot == nil {
		return
	}

	for command, value := range snapshot.CommandsProcessed {
		commandsProcessed.WithLabelValues(command).Add(value)
	}
	for typ, value := range snapshot.MessagesProcessed {
		messagesProcessed.WithLabelValues(typ).Add(value)
	}
	for typ, value := range snapshot.ErrorsTotal {
		errorsTotal.WithLabelValues(typ).Add(value)
	}
	expensesCreated.Add(snapshot.ExpensesCreated)
	categoriesCreated.Add(snapshot.CategoriesCreated)
}
