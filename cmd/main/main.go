package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ttodoshi/weweather-dashboard/internal/adapters/handler"
	"github.com/ttodoshi/weweather-dashboard/internal/adapters/provider"
	"github.com/ttodoshi/weweather-dashboard/internal/adapters/repository"
	"github.com/ttodoshi/weweather-dashboard/internal/core/services/poller"
	"github.com/ttodoshi/weweather-dashboard/pkg/env"
	"github.com/ttodoshi/weweather-dashboard/pkg/logger"
	"go.uber.org/zap"
)

// Функция инициализации, которая загружает переменные окружения
func init() {
	env.LoadEnvVariables()
}

func main() {
	cfg, err := env.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logg, err := logger.New(cfg.LogLevel, cfg.LogOutput)
	if err != nil {
		log.Fatal(err)
	}
	defer logg.Sync()

	policy, err := poller.ParseStaleResponsePolicy(cfg.StaleResponses)
	if err != nil {
		logg.Fatal("invalid configuration", zap.Error(err))
	}

	// Создаем экземпляр бота с помощью токена из переменной окружения
	bot, err := tg.NewBotAPI(cfg.Token)
	if err != nil {
		logg.Fatal("cannot create bot", zap.Error(err))
	}

	// База страниц; по умолчанию в памяти
	db, err := repository.Open(cfg.DBDSN)
	if err != nil {
		logg.Fatal("cannot open database", zap.Error(err))
	}

	weatherProvider, err := provider.New(cfg, nil)
	if err != nil {
		logg.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Создаем экземпляр обработчика команд
	commandHandler := handler.NewCommandHandler(
		ctx,
		bot,
		repository.NewPageRepository(db),
		weatherProvider,
		logg,
		poller.WithInterval(cfg.PollingInterval),
		poller.WithStaleResponsePolicy(policy),
	)
	// При остановке бота автообновление останавливается во всех чатах
	defer commandHandler.Close()

	// Получаем канал обновлений (команд) от бота
	u := tg.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	logg.Info("bot started", zap.String("account", bot.Self.UserName))

	// Цикл обработки обновлений (комманд)
	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			logg.Info("bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go commandHandler.HandleCommand(update)
		}
	}
}
