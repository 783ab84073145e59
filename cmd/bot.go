package main

import (
	"errors"

	"github.com/spf13/cobra"

	telegram "mask-detector/internal/api"
	"mask-detector/internal/container"
	"mask-detector/internal/infrastructure/storage"
)

func newBotCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot that checks photos for masks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.cfg.TelegramToken == "" {
				return errors.New("TELEGRAM_TOKEN is required")
			}

			cascades, err := e.loadCascades()
			if err != nil {
				return err
			}
			defer func() { _ = cascades.Close() }()

			// Создаём хранилище пользователей
			userRepo := storage.NewMemoryUserRepository()

			// Собираем сервисы приложения
			appContainer, err := container.New(userRepo, cascades.Detectors, cascades.Processor, e.options(nil))
			if err != nil {
				return err
			}

			// Создаём бота
			bot, err := telegram.NewBot(e.cfg.TelegramToken, appContainer, e.logger)
			if err != nil {
				return err
			}

			e.logger.Info("bot is running")
			return bot.Run(cmd.Context())
		},
	}
}
