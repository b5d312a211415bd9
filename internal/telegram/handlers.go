package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/config"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/promo"
)

// Bot wraps the telegram bot with handlers
type Bot struct {
	bot  *bot.Bot
	cfg  *config.Config
	flow *promo.Flow
	log  *slog.Logger
}

// New creates a new telegram bot
func New(cfg *config.Config, flow *promo.Flow, log *slog.Logger) (*Bot, error) {
	b := &Bot{
		cfg:  cfg,
		flow: flow,
		log:  log,
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(b.defaultHandler),
		bot.WithCallbackQueryDataHandler("", bot.MatchTypePrefix, b.callbackHandler),
	}

	tgBot, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	b.bot = tgBot

	tgBot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, b.startHandler)
	tgBot.RegisterHandler(bot.HandlerTypeMessageText, "/promos", bot.MatchTypeExact, b.promosHandler)

	return b, nil
}

// Start starts the bot polling
func (b *Bot) Start(ctx context.Context) {
	b.bot.Start(ctx)
}

// --- Handlers ---

func (b *Bot) startHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := "🔥 Pump-Fun Trending\n\n" +
		"Boost visibility for your token on PumpFun.\n" +
		"Fast activation • Manual control • Real visibility"

	b.sendMessage(ctx, update.Message.Chat.ID, text, StartKeyboard())
}

func (b *Bot) promosHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From.ID != b.cfg.AdminID {
		return
	}

	text := promoListText(b.flow.ActivePromotions(), time.Now())
	b.sendMessage(ctx, update.Message.Chat.ID, text, nil)
}

func (b *Bot) defaultHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	userID := update.Message.From.ID
	text := strings.TrimSpace(update.Message.Text)

	sess := b.flow.Session(userID)
	if sess == nil {
		return
	}

	switch sess.State {
	case promo.StateAwaitAddress:
		b.handleAddressInput(ctx, update.Message, text)
	case promo.StateAwaitPayment:
		b.handleTxIDInput(ctx, update.Message, text)
	}
}

func (b *Bot) handleAddressInput(ctx context.Context, msg *models.Message, text string) {
	sess, err := b.flow.SubmitAddress(ctx, msg.From.ID, text)

	switch {
	case errors.Is(err, promo.ErrInvalidAddress):
		b.sendMessage(ctx, msg.Chat.ID, "Invalid CA. Please try again.", nil)
		return
	case errors.Is(err, promo.ErrTokenNotFound):
		b.sendMessage(ctx, msg.Chat.ID, "Token not found on Dexscreener.", nil)
		return
	case errors.Is(err, promo.ErrLookupFailed):
		b.sendMessage(ctx, msg.Chat.ID, "Could not check the token right now. Please try again.", nil)
		return
	case err != nil:
		return
	}

	caption := tokenCard(sess)
	if sess.Token.ImageURL != "" {
		b.sendPhoto(ctx, msg.Chat.ID, sess.Token.ImageURL, caption, TokenConfirmKeyboard())
	} else {
		b.sendMessage(ctx, msg.Chat.ID, caption, TokenConfirmKeyboard())
	}
}

func (b *Bot) handleTxIDInput(ctx context.Context, msg *models.Message, text string) {
	p, err := b.flow.SubmitPayment(ctx, msg.From.ID, text)

	switch {
	case errors.Is(err, promo.ErrDuplicateTx):
		b.sendMessage(ctx, msg.Chat.ID, "TXID already used.", nil)
		return
	case errors.Is(err, promo.ErrPaymentPending):
		b.sendMessage(ctx, msg.Chat.ID,
			"Transaction not indexed yet.\nPlease wait 30 seconds and resend TXID.", nil)
		return
	case errors.Is(err, promo.ErrPaymentRejected):
		b.sendMessage(ctx, msg.Chat.ID, "Invalid TXID. Please try again.", nil)
		return
	case err != nil:
		return
	}

	b.sendMessage(ctx, b.cfg.AdminID, adminPendingText(p), ApproveKeyboard(p.Ref))
	b.sendMessage(ctx, msg.Chat.ID, "Payment received.\nPending activation.", nil)
}

func (b *Bot) callbackHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	cb := update.CallbackQuery
	userID := cb.From.ID
	data := cb.Data

	tgBot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
	})

	switch {
	case data == "start":
		b.handleStartTrending(ctx, cb)
	case data == "confirm":
		b.handleConfirmToken(ctx, cb)
	case strings.HasPrefix(data, "pkg:"):
		b.handlePackage(ctx, cb, strings.TrimPrefix(data, "pkg:"))
	case data == "pay":
		b.handlePay(ctx, cb)
	case strings.HasPrefix(data, "approve:"):
		b.handleApprove(ctx, cb, promo.Ref(strings.TrimPrefix(data, "approve:")))
	default:
		b.log.Warn("unknown callback", "data", data, "user_id", userID)
	}
}

func (b *Bot) handleStartTrending(ctx context.Context, cb *models.CallbackQuery) {
	b.flow.Begin(cb.From.ID)

	caption := "🟢 Please enter your token contract address (CA)"
	if b.cfg.PromptImageURL != "" {
		b.sendPhoto(ctx, cb.From.ID, b.cfg.PromptImageURL, caption, nil)
	} else {
		b.sendMessage(ctx, cb.From.ID, caption, nil)
	}
}

func (b *Bot) handleConfirmToken(ctx context.Context, cb *models.CallbackQuery) {
	sess := b.flow.Session(cb.From.ID)
	if sess == nil || sess.Token == nil {
		return
	}

	b.sendMessage(ctx, cb.From.ID, "Select trending duration:", PackagesKeyboard())
}

func (b *Bot) handlePackage(ctx context.Context, cb *models.CallbackQuery, packageID string) {
	_, err := b.flow.SelectPackage(cb.From.ID, packageID)
	if err != nil {
		b.log.Warn("select package", "user_id", cb.From.ID, "package", packageID, "error", err)
		return
	}

	sess := b.flow.Session(cb.From.ID)
	pkg, _ := promo.PackageByID(packageID)
	b.sendMessage(ctx, cb.From.ID, summaryCard(sess, pkg), SummaryKeyboard())
}

func (b *Bot) handlePay(ctx context.Context, cb *models.CallbackQuery) {
	sess := b.flow.Session(cb.From.ID)
	if sess == nil || sess.State != promo.StateAwaitPayment {
		return
	}

	pkg, _ := promo.PackageByID(sess.PackageID)
	inv := &promo.Invoice{Wallet: b.cfg.PayWallet, AmountSOL: sess.ExpectedSOL, Package: pkg}
	b.sendMessage(ctx, cb.From.ID, paymentInstructions(inv), nil)
}

func (b *Bot) handleApprove(ctx context.Context, cb *models.CallbackQuery, ref promo.Ref) {
	p, err := b.flow.Approve(cb.From.ID, ref)

	switch {
	case errors.Is(err, promo.ErrUnauthorized):
		// Nothing leaks to whoever guessed the callback.
		return
	case errors.Is(err, promo.ErrNotFound):
		b.editMessage(ctx, cb.Message, "Already processed.", nil)
		return
	case err != nil:
		return
	}

	b.sendMessage(ctx, b.cfg.ChannelID, trendingLiveText(p), nil)
	b.editMessage(ctx, cb.Message, "Trending activated.", nil)
}

// --- Helpers ---

func (b *Bot) sendMessage(ctx context.Context, chatID any, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := b.bot.SendMessage(ctx, params)
	if err != nil {
		b.log.Error("send message", "error", err)
	}
}

func (b *Bot) sendPhoto(ctx context.Context, chatID any, photoURL, caption string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileString{Data: photoURL},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := b.bot.SendPhoto(ctx, params)
	if err != nil {
		b.log.Error("send photo", "error", err)
	}
}

func (b *Bot) editMessage(ctx context.Context, msg models.MaybeInaccessibleMessage, text string, keyboard *models.InlineKeyboardMarkup) {
	if msg.Message == nil {
		return
	}

	params := &bot.EditMessageTextParams{
		ChatID:    msg.Message.Chat.ID,
		MessageID: msg.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := b.bot.EditMessageText(ctx, params)
	if err != nil {
		b.log.Error("edit message", "error", err)
	}
}

// SendAlert delivers a channel alert; it satisfies the alert dispatcher.
func (b *Bot) SendAlert(ctx context.Context, channelID, text string) error {
	disablePreview := true
	_, err := b.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    channelID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{
			IsDisabled: &disablePreview,
		},
	})
	return err
}
