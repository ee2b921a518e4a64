package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell-app/inkwell-backend/api"
	"github.com/inkwell-app/inkwell-backend/auth"
	"github.com/inkwell-app/inkwell-backend/config"
	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/services"
	"github.com/inkwell-app/inkwell-backend/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, using existing environment")
	}

	cfg := config.New()

	// The signing secret and provider key are runtime-provided; refuse to
	// start without them instead of falling back to a baked-in value.
	secret := config.GetString(cfg, "JWT_SECRET", "")
	if secret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	apiKey := config.GetString(cfg, "FIREBASE_API_KEY", "")
	if apiKey == "" {
		log.Fatal().Msg("FIREBASE_API_KEY must be set")
	}

	codec, err := auth.NewCodec(secret)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token codec")
	}

	mongoURI := config.GetString(cfg, "MONGO_URI", "mongodb://localhost:27017")
	mongoDB := config.GetString(cfg, "MONGO_DB", "inkwell")

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to document store")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("document store did not answer ping")
	}

	db := database.New(client.Database(mongoDB))
	provider := services.NewFirebaseAuth(apiKey)
	images := storage.NewImageStore(config.GetString(cfg, "PUBLIC_DIR", "public"))

	server, err := api.NewServer(api.Deps{
		Database: db,
		Provider: provider,
		Codec:    codec,
		Images:   images,
		Config:   cfg,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	go server.Start(errChannel)
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Error().Err(fatalErr).Msg("closing server")

	server.ShutdownGracefully(30 * time.Second)

	disconnectCtx, cancelDisconnect := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelDisconnect()
	if err := client.Disconnect(disconnectCtx); err != nil {
		log.Error().Err(err).Msg("error disconnecting from document store")
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to
// the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("received signal %s", <-c)
}
