// Package bot runs the Telegram bot: it provisions users on /start, answers
// quick balance and catalog queries, and is the outbound channel for
// best-effort notifications.
package bot

import (
	"fmt"
	"strings"

	authrepo "loyalty-backend/internal/auth/repository"
	authusecase "loyalty-backend/internal/auth/usecase"
	rewardrepo "loyalty-backend/internal/reward/repository"
	"loyalty-backend/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api         *tgbotapi.BotAPI
	authUsecase authusecase.AuthUsecase
	userRepo    authrepo.UserRepository
	rewardRepo  rewardrepo.RewardRepository
	webAppURL   string
}

func New(token, webAppURL string, authUsecase authusecase.AuthUsecase, userRepo authrepo.UserRepository, rewardRepo rewardrepo.RewardRepository) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Bot{
		api:         api,
		authUsecase: authUsecase,
		userRepo:    userRepo,
		rewardRepo:  rewardRepo,
		webAppURL:   webAppURL,
	}, nil
}

// Run long-polls Telegram for updates until Stop is called.
func (b *Bot) Run() {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	logger.Get().Info().Str("username", b.api.Self.UserName).Msg("telegram bot started")

	for update := range b.api.GetUpdatesChan(updateConfig) {
		switch {
		case update.Message != nil && update.Message.IsCommand():
			b.handleCommand(update.Message)
		case update.CallbackQuery != nil:
			b.handleCallback(update.CallbackQuery)
		}
	}
}

// Stop shuts down the update loop. In-flight handlers finish on their own.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// SendMessage implements the notification Sender interface.
func (b *Bot) SendMessage(telegramID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(telegramID, text))
	return err
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	if msg.Command() != "start" {
		return
	}

	from := msg.From
	if from == nil {
		return
	}

	if _, err := b.authUsecase.ResolveOrCreate(from.ID, from.FirstName, from.LastName, from.UserName); err != nil {
		logger.Get().Error().Err(err).Int64("telegram_id", from.ID).Msg("failed to provision user from /start")
		b.reply(msg.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.InlineKeyboardButton{
			Text:   "🚀 Открыть приложение",
			WebApp: &tgbotapi.WebAppInfo{URL: b.webAppURL},
		}),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("💰 Мой баланс", "balance")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🎁 Каталог наград", "rewards")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❓ Помощь", "help")),
	)

	text := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Добро пожаловать в программу лояльности по утилизации вейпов! 🌱\n\n"+
			"🔹 Получайте баллы за покупки\n"+
			"🔹 Зарабатывайте бонусы за сдачу устройств\n"+
			"🔹 Обменивайте баллы на награды\n\n"+
			"Нажмите кнопку ниже, чтобы открыть приложение:",
		from.FirstName,
	)

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyMarkup = keyboard
	if _, err := b.api.Send(reply); err != nil {
		logger.Get().Warn().Err(err).Msg("failed to send /start reply")
	}
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	// Message is absent for callbacks on messages too old for Telegram to
	// include them.
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	switch query.Data {
	case "balance":
		user, err := b.userRepo.FindByTelegramID(query.From.ID)
		if err == nil && user != nil {
			b.reply(chatID, fmt.Sprintf("💰 Ваш баланс: %d баллов", user.Points))
		}

	case "rewards":
		rewards, err := b.rewardRepo.ListActive("", 5)
		if err == nil {
			var sb strings.Builder
			sb.WriteString("🎁 Доступные награды:\n\n")
			for _, reward := range rewards {
				sb.WriteString(fmt.Sprintf("• %s - %d баллов\n", reward.Title, reward.PointsCost))
			}
			sb.WriteString("\n📱 Откройте приложение для подробностей")
			b.reply(chatID, sb.String())
		}

	case "help":
		b.reply(chatID,
			"❓ Как пользоваться:\n\n"+
				"1️⃣ Совершайте покупки и получайте баллы\n"+
				"2️⃣ Сдавайте старые устройства за дополнительные бонусы\n"+
				"3️⃣ Обменивайте баллы на призы в каталоге\n\n"+
				"📞 Поддержка: support@vape-loyalty.com")
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Get().Warn().Err(err).Msg("failed to answer callback query")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.Get().Warn().Err(err).Int64("chat_id", chatID).Msg("failed to send bot reply")
	}
}
