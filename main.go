package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ttodoshi/weweather-dashboard/internal/adapters/display/terminal"
	"github.com/ttodoshi/weweather-dashboard/internal/adapters/provider"
	"github.com/ttodoshi/weweather-dashboard/internal/core/services/poller"
	"github.com/ttodoshi/weweather-dashboard/pkg/env"
	"github.com/ttodoshi/weweather-dashboard/pkg/logger"
	"go.uber.org/zap"
)

// Функция инициализации, которая загружает переменные окружения
func init() {
	env.LoadEnvVariables()
}

// Погода в терминале
func main() {
	cfg, err := env.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Логи в терминал мешали бы интерфейсу
	if cfg.LogOutput == "" {
		cfg.LogOutput = "weweather-dashboard.log"
	}
	logg, err := logger.New(cfg.LogLevel, cfg.LogOutput)
	if err != nil {
		log.Fatal(err)
	}
	defer logg.Sync()

	policy, err := poller.ParseStaleResponsePolicy(cfg.StaleResponses)
	if err != nil {
		log.Fatal(err)
	}
	weatherProvider, err := provider.New(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	display := terminal.NewDisplay()
	controller := poller.NewController(
		ctx,
		weatherProvider,
		display,
		poller.WithLogger(logg),
		poller.WithInterval(cfg.PollingInterval),
		poller.WithStaleResponsePolicy(policy),
	)
	// Закрытие страницы
	defer controller.Close()

	p := tea.NewProgram(terminal.NewModel(ctx, controller), tea.WithContext(ctx))
	display.Attach(p)

	if _, err := p.Run(); err != nil {
		logg.Error("terminal dashboard stopped", zap.Error(err))
	}
}
