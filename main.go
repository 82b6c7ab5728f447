// Package main provides the entry point for the Discord ad studio bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/Raikerian/go-adstudio/internal/app"
	"github.com/Raikerian/go-adstudio/internal/bot"
	"github.com/Raikerian/go-adstudio/internal/commands"
	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/discord"
	"github.com/Raikerian/go-adstudio/internal/infrastructure"
	"github.com/Raikerian/go-adstudio/internal/mastering"
	"github.com/Raikerian/go-adstudio/internal/metrics"
	"github.com/Raikerian/go-adstudio/internal/openai"
	"github.com/Raikerian/go-adstudio/internal/scripts"
	"github.com/Raikerian/go-adstudio/internal/server"
	"github.com/Raikerian/go-adstudio/internal/speech"
	"github.com/Raikerian/go-adstudio/internal/studio"
	"github.com/Raikerian/go-adstudio/internal/voice"
	pkginfra "github.com/Raikerian/go-adstudio/pkg/infrastructure"
)

func main() {
	configPath := "config.yaml"
	if p := os.Getenv("ADSTUDIO_CONFIG"); p != "" {
		configPath = p
	}

	application := app.New(options(configPath)...)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go application.Run()

	sig := <-sigCh
	fmt.Printf("Received signal: %s, initiating shutdown.\n", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := application.Stop(shutdownCtx)
	cancel()

	if err != nil {
		fmt.Printf("Error during shutdown: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Application has shut down gracefully.")
}

// options lists every module of the bot.
func options(configPath string) []fx.Option {
	return []fx.Option{
		// Core modules
		config.Module,
		infrastructure.LoggerModule,
		metrics.Module,
		server.Module,

		// External service modules
		discord.Module,
		openai.Module,

		// Application modules
		scripts.Module,
		speech.Module,
		mastering.Module,
		voice.Module,
		studio.Module,
		commands.Module,
		bot.Module,

		fx.Supply(configPath),
		fx.WithLogger(pkginfra.NewFxLoggerAdapter),
	}
}
