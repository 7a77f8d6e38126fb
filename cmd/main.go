package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"

	"rolebot/catalog"
	discordclient "rolebot/clients/discord"
	"rolebot/config"
	"rolebot/core/log"
	"rolebot/handlers"
	"rolebot/services/bindings"
	"rolebot/services/eventqueue"
	"rolebot/usecases/roles"
	"rolebot/utils"
)

type Options struct {
	EnvFile  string `long:"env-file" description:"Path to a .env file to load before reading the environment"`
	Catalog  string `long:"catalog" description:"Path to a YAML role catalog (overrides CATALOG_PATH)"`
	LogLevel string `long:"log-level" description:"Log level: debug, info, warn or error (overrides LOG_LEVEL)"`
	NoScan   bool   `long:"no-scan" description:"Skip reconnecting existing role messages on startup"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		log.Error("❌ Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	var envFiles []string
	if opts.EnvFile != "" {
		envFiles = append(envFiles, opts.EnvFile)
	}
	cfg, err := config.LoadConfig(envFiles...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	levelName := cfg.LogLevel
	if opts.LogLevel != "" {
		levelName = opts.LogLevel
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	catalogPath := cfg.CatalogPath
	if opts.Catalog != "" {
		catalogPath = opts.Catalog
	}
	roleCatalog, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	log.Info("✅ Role catalog loaded", "categories", len(roleCatalog.IDs()))

	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	discordClient := discordclient.NewDiscordClient(session)
	queue := eventqueue.New()
	rolesUseCase := roles.NewRolesUseCase(discordClient, roleCatalog, bindings.NewTable(), roles.Options{
		HistoryLimit:    cfg.Scan.HistoryLimit,
		ChannelKeywords: cfg.Scan.ChannelKeywords,
		RolePacing:      utils.Pacing{BatchSize: cfg.Pacing.RoleBatchSize, Delay: cfg.Pacing.RoleBatchDelay},
		ReactionPacing:  utils.Pacing{BatchSize: 1, Delay: cfg.Pacing.ReactionDelay},
	})

	commandsHandler := handlers.NewCommandsHandler(discordClient, rolesUseCase, roleCatalog, cfg.Prefix)
	eventsHandler := handlers.NewDiscordEventsHandler(
		session,
		discordClient,
		rolesUseCase,
		commandsHandler,
		queue,
		!opts.NoScan,
	)

	var server *http.Server
	if cfg.StatusEnabled() {
		router := mux.NewRouter()
		handlers.NewStatusHandler(rolesUseCase, queue).SetupRoutes(router)
		server = &http.Server{
			Addr:              ":" + cfg.StatusPort,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	if err := eventsHandler.StartBot(); err != nil {
		queue.Stop()
		return err
	}

	return handleGracefulShutdown(server, eventsHandler, queue)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func handleGracefulShutdown(
	server *http.Server,
	eventsHandler *handlers.DiscordEventsHandler,
	queue *eventqueue.Queue,
) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	if server != nil {
		go func() {
			log.Info("✅ Status endpoint listening", "addr", server.Addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("❌ Status server error", "error", err)
			}
		}()
	}

	<-stop
	log.Info("🛑 Shutdown signal received, cleaning up...")

	// Stop intake first so no new tasks arrive while the queue drains
	eventsHandler.StopBot()

	var shutdownErr error
	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("❌ Status server shutdown error", "error", err)
			shutdownErr = err
		}
	}

	queue.Stop()
	log.Info("✅ Bot stopped gracefully")
	return shutdownErr
}
