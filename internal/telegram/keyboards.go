package telegram

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/promo"
)

// StartKeyboard returns the entry-point keyboard
func StartKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "🚀 Start Trending", CallbackData: "start"},
			},
		},
	}
}

// TokenConfirmKeyboard returns the keyboard shown under the token card
func TokenConfirmKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "Continue", CallbackData: "confirm"},
			},
			{
				{Text: "⬅️ Back", CallbackData: "start"},
			},
		},
	}
}

// PackagesKeyboard returns one row per purchasable package
func PackagesKeyboard() *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton

	for _, p := range promo.Packages {
		rows = append(rows, []models.InlineKeyboardButton{
			{
				Text:         fmt.Sprintf("%s — %.2f SOL", p.ID, p.PriceSOL),
				CallbackData: "pkg:" + p.ID,
			},
		})
	}

	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "⬅️ Back", CallbackData: "start"},
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// SummaryKeyboard returns the confirm-payment keyboard
func SummaryKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Confirm", CallbackData: "pay"},
			},
			{
				{Text: "⬅️ Back", CallbackData: "confirm"},
			},
		},
	}
}

// ApproveKeyboard returns the admin approval keyboard for a pending payment
func ApproveKeyboard(ref promo.Ref) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "▶️ START TRENDING", CallbackData: "approve:" + string(ref)},
			},
		},
	}
}
