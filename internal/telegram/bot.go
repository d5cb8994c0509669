// Package telegram exposes the trip planner over a Telegram webhook bot.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ai-trip-planner/internal/clipper"
	"ai-trip-planner/internal/config"
	"ai-trip-planner/internal/enrich"
	"ai-trip-planner/internal/itinerary"
	"ai-trip-planner/internal/ledger"
	"ai-trip-planner/internal/metrics"
	"ai-trip-planner/internal/share"
	"ai-trip-planner/internal/trip"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API, trip repository, AI coordinator, and clipper.
type Bot struct {
	api          *tgbotapi.BotAPI
	repo         *trip.Repository
	coordinator  *enrich.Coordinator
	clipper      *clipper.Clipper
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	repo *trip.Repository,
	coordinator *enrich.Coordinator,
	tripClipper *clipper.Clipper,
	metricsStore *metrics.Store,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		repo:         repo,
		coordinator:  coordinator,
		clipper:      tripClipper,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	cmd, arg := splitCommand(text)

	switch cmd {
	case "/start", "/help":
		b.reply(msg.Chat.ID, helpText)
	case "/trips":
		b.reply(msg.Chat.ID, formatTripsMarkdown(b.repo.Trips, b.repo.ActiveID))
	case "/new":
		b.handleNewTrip(msg.Chat.ID, arg)
	case "/switch":
		b.handleSwitchTrip(msg.Chat.ID, arg)
	case "/day":
		b.handleShowDay(msg.Chat.ID, arg)
	case "/addday":
		b.handleAddDay(msg.Chat.ID)
	case "/enrich":
		b.handleEnrich(msg.Chat.ID, arg)
	case "/reset":
		b.handleReset(msg.Chat.ID, arg)
	case "/pack":
		b.handlePacking(msg.Chat.ID)
	case "/venues":
		b.handleVenues(msg.Chat.ID, arg)
	case "/budget":
		b.handleBudget(msg.Chat.ID)
	case "/export":
		b.handleExport(msg.Chat.ID)
	case "/metrics":
		b.handleMetricsRequest(msg)
	default:
		if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
			b.handleClipperRequest(msg)
			return
		}
		// A long pasted blob is treated as a trip share code.
		if len(text) > 100 && !strings.ContainsAny(text, " \n") {
			b.handleImport(msg.Chat.ID, text)
			return
		}
		b.reply(msg.Chat.ID, helpText)
	}
}

const helpText = `🧳 *Trip Planner*

/trips - list your trips
/new <destination> - start a new trip
/switch <n> - switch active trip
/day <n> - show a day's plan
/addday - append a day to the itinerary
/enrich <n> - AI weather, tips and maps for a day
/reset <n> - undo the last enrichment of a day
/pack - AI packing checklist suggestions
/venues [location] - venue ideas near your last stop
/budget - spending summary
/export - share code for the active trip

Paste a share code to import a trip, or a travel article URL to clip its activities into day 1.`

func (b *Bot) handleNewTrip(chatID int64, destination string) {
	if destination == "" {
		b.reply(chatID, "Usage: /new <destination>")
		return
	}
	t, err := b.repo.CreateTrip(destination)
	if err != nil {
		b.replyError(chatID, "creating trip", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Created trip to *%s* and made it active.", t.Destination))
}

func (b *Bot) handleSwitchTrip(chatID int64, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(b.repo.Trips) {
		b.reply(chatID, "Usage: /switch <n> (see /trips for numbers)")
		return
	}
	t := b.repo.Trips[n-1]
	if err := b.repo.SetActiveTrip(t.ID); err != nil {
		b.replyError(chatID, "switching trip", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Active trip is now *%s*.", t.Destination))
}

func (b *Bot) handleShowDay(chatID int64, arg string) {
	day, ok := b.requireDay(chatID, arg)
	if !ok {
		return
	}
	b.reply(chatID, formatDayMarkdown(day))
}

func (b *Bot) handleAddDay(chatID int64) {
	editor := itinerary.NewEditor(b.repo.Active())
	day := editor.AddDay()
	if err := b.repo.Save(); err != nil {
		b.replyError(chatID, "saving trip", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Added *Day %d* (%s).", day.DayID, day.Date))
}

func (b *Bot) handleEnrich(chatID int64, arg string) {
	day, ok := b.requireDay(chatID, arg)
	if !ok {
		return
	}

	sentID := b.replyStatus(chatID, "🌤 *Enriching day...*\n(Fetching weather, tips and map links)")

	settings, _ := trip.LoadSettings(b.repo.Store())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	active := b.repo.Active()
	if err := b.coordinator.EnrichDay(ctx, day, active.Destination, settings.Language); err != nil {
		b.editError(chatID, sentID, "enriching day", err)
		return
	}
	if err := b.repo.Save(); err != nil {
		b.editError(chatID, sentID, "saving trip", err)
		return
	}
	b.edit(chatID, sentID, formatDayMarkdown(day))
}

func (b *Bot) handleReset(chatID int64, arg string) {
	day, ok := b.requireDay(chatID, arg)
	if !ok {
		return
	}
	if err := b.coordinator.ResetDay(day); err != nil {
		b.replyError(chatID, "resetting day", err)
		return
	}
	if err := b.repo.Save(); err != nil {
		b.replyError(chatID, "saving trip", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("↩️ Restored *Day %d* to its pre-enrichment items.", day.DayID))
}

func (b *Bot) handlePacking(chatID int64) {
	sentID := b.replyStatus(chatID, "🎒 *Thinking about what to pack...*")

	settings, _ := trip.LoadSettings(b.repo.Store())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	active := b.repo.Active()
	merged, err := b.coordinator.SuggestPacking(ctx, active.Destination, settings.Language, active.Checklist)
	if err != nil {
		b.editError(chatID, sentID, "suggesting packing list", err)
		return
	}
	active.Checklist = merged
	if err := b.repo.Save(); err != nil {
		b.editError(chatID, sentID, "saving trip", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("🎒 *Packing Checklist*\n\n")
	for _, item := range merged {
		mark := "☐"
		if item.Checked {
			mark = "☑"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, item.Text))
	}
	b.edit(chatID, sentID, sb.String())
}

func (b *Bot) handleVenues(chatID int64, location string) {
	if location == "" {
		location = b.repo.Active().LastLocation(b.repo.SelectedDay)
	}

	sentID := b.replyStatus(chatID, "📍 *Scouting venues...*")

	settings, _ := trip.LoadSettings(b.repo.Store())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	venues, err := b.coordinator.SuggestVenues(ctx, location, time.Now().Format("15:04"), settings.Language)
	if err != nil {
		b.editError(chatID, sentID, "scouting venues", err)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📍 *Near %s*\n\n", location))
	for _, v := range venues {
		sb.WriteString(fmt.Sprintf("• *%s* (%s)\n_%s_\n\n", v.Name, v.Type, v.Reason))
	}
	b.edit(chatID, sentID, sb.String())
}

func (b *Bot) handleBudget(chatID int64) {
	active := b.repo.Active()
	b.reply(chatID, formatBudgetMarkdown(active, ledger.DefaultRates))
}

func (b *Bot) handleExport(chatID int64) {
	code, err := share.EncodeTrip(b.repo.Active())
	if err != nil {
		b.replyError(chatID, "exporting trip", err)
		return
	}
	b.reply(chatID, "📤 *Share code* (paste it into another device):")
	// Sent unformatted so it survives copy-paste intact.
	b.api.Send(tgbotapi.NewMessage(chatID, code))
}

func (b *Bot) handleImport(chatID int64, code string) {
	t, err := share.DecodeTrip(code)
	if err != nil {
		b.replyError(chatID, "importing trip", err)
		return
	}
	if err := b.repo.ImportTrip(t); err != nil {
		b.replyError(chatID, "importing trip", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("📥 Imported trip to *%s* and made it active.", t.Destination))
}

func (b *Bot) handleClipperRequest(msg *tgbotapi.Message) {
	sentID := b.replyStatus(msg.Chat.ID, "✂️ *Clipping activities...*\n(Extracting places from the page)")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	plan, err := b.clipper.ClipURL(ctx, msg.Text)
	if err != nil {
		b.editError(msg.Chat.ID, sentID, "clipping page", err)
		return
	}

	active := b.repo.Active()
	day := active.Day(1)
	if day == nil {
		b.edit(msg.Chat.ID, sentID, "❌ The active trip has no days to clip into.")
		return
	}
	items := plan.ToItineraryItems()
	day.Items = append(day.Items, items...)
	if err := b.repo.Save(); err != nil {
		b.editError(msg.Chat.ID, sentID, "saving trip", err)
		return
	}

	b.edit(msg.Chat.ID, sentID, fmt.Sprintf("✅ Clipped *%s*: added %d activities to Day 1.", plan.Title, len(items)))
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.reply(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth(filepath.Dir(b.cfg.DatabasePath))

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	b.reply(chatID, sb.String())
}

// requireDay parses a day number argument against the active trip.
func (b *Bot) requireDay(chatID int64, arg string) (*trip.DayPlan, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		b.reply(chatID, "Please give a day number, e.g. `/day 2`.")
		return nil, false
	}
	day := b.repo.Active().Day(n)
	if day == nil {
		b.reply(chatID, fmt.Sprintf("Day %d does not exist in the active trip.", n))
		return nil, false
	}
	return day, true
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

func (b *Bot) replyStatus(chatID int64, text string) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) replyError(chatID int64, op string, err error) {
	log.Printf("Error %s: %v", op, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.reply(chatID, fmt.Sprintf("❌ *Error %s:*\n```\n%v\n```", op, safeErr))
}

func (b *Bot) editError(chatID int64, messageID int, op string, err error) {
	log.Printf("Error %s: %v", op, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.edit(chatID, messageID, fmt.Sprintf("❌ *Error %s:*\n```\n%v\n```", op, safeErr))
}

func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	parts := strings.SplitN(text, " ", 2)
	cmd := parts[0]
	arg := ""
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

func formatTripsMarkdown(trips []*trip.Trip, activeID string) string {
	var sb strings.Builder
	sb.WriteString("🧳 *Your Trips*\n\n")
	for i, t := range trips {
		marker := " "
		if t.ID == activeID {
			marker = "▶"
		}
		sb.WriteString(fmt.Sprintf("%s %d. *%s* (%d days)\n", marker, i+1, t.Destination, len(t.Itinerary)))
	}
	return sb.String()
}

func formatDayMarkdown(day *trip.DayPlan) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Day %d* (%s)\n", day.DayID, day.Date))
	if day.WeatherSummary != "" {
		sb.WriteString(fmt.Sprintf("🌤 %s\n", day.WeatherSummary))
	}
	if day.Pace != "" {
		sb.WriteString(fmt.Sprintf("🏃 Pace: %s\n", day.Pace))
	}
	if day.LogicWarning != "" {
		sb.WriteString(fmt.Sprintf("⚠️ %s\n", day.LogicWarning))
	}
	sb.WriteString("\n")

	if len(day.Items) == 0 {
		sb.WriteString("_No activities yet._\n")
	}
	for _, item := range day.Items {
		sb.WriteString(fmt.Sprintf("*%s* %s", item.Time, item.Title))
		if item.Location != "" {
			sb.WriteString(fmt.Sprintf(" @ %s", item.Location))
		}
		sb.WriteString("\n")
		for _, tip := range item.Tips {
			sb.WriteString(fmt.Sprintf("  💡 %s\n", tip))
		}
		if item.MapsURL != "" {
			sb.WriteString(fmt.Sprintf("  🗺 %s\n", item.MapsURL))
		}
	}
	return sb.String()
}

func formatBudgetMarkdown(t *trip.Trip, rates map[string]float64) string {
	total := ledger.Total(t.Budget, rates)
	remaining := ledger.Remaining(t.TotalBudget, total)

	var sb strings.Builder
	sb.WriteString("💰 *Budget*\n\n")
	for _, line := range t.Budget {
		sb.WriteString(fmt.Sprintf("• %s: %.2f %s (%s)\n", line.Item, line.Cost, line.Currency, line.Category))
	}
	sb.WriteString(fmt.Sprintf("\n*Spent:* %.2f HKD of %.2f\n", total, t.TotalBudget))
	if remaining < 0 {
		sb.WriteString(fmt.Sprintf("🔴 *Over budget by %.2f HKD*\n", -remaining))
	} else {
		sb.WriteString(fmt.Sprintf("🟢 *Remaining:* %.2f HKD\n", remaining))
	}
	return sb.String()
}
