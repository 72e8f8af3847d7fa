package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/ttradingco/eventbot/internal/bot"
	"github.com/ttradingco/eventbot/internal/bot/config"
)

func main() {
	// Optional; production sets real environment variables.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := bot.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
