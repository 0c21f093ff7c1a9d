package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
	"github.com/opencctv/mediamtx-sync/app"
	"github.com/opencctv/mediamtx-sync/application"
	"github.com/opencctv/mediamtx-sync/common/directory"
	"github.com/opencctv/mediamtx-sync/common/gateway"
	"github.com/opencctv/mediamtx-sync/common/mediamtx"
	"github.com/opencctv/mediamtx-sync/common/messages"
	"github.com/opencctv/mediamtx-sync/common/workers"
)

var (
	manager   *application.SyncManager
	Tag       string //Git tag name, filled when generating binary
	CommitID  string //Git commit ID, filled when generating binary
	ReleaseAt string //Publish date, filled when generating binary
)

func init() {
	app.Bootstrap("./config", Tag, CommitID, ReleaseAt)
	application.InitServer()
}

func printVersion() {
	app.Logger.Info("============ Release Info ============")
	app.Logger.Info(fmt.Sprintf("Git Tag: %s", app.Info.Tag))
	app.Logger.Info(fmt.Sprintf("Git CommitID: %s", app.Info.CommitID))
	app.Logger.Info(fmt.Sprintf("Released At: %s", app.Info.ReleaseAt))
}

func newNotifier() messages.Notifier {
	mqConfig := app.AppConfig.MQ
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		mqConfig.KafkaBrokers = v
	}
	if mqConfig.KafkaBrokers != "" {
		notifier, err := messages.NewCloudEventNotifier(mqConfig, app.Logger)
		if err == nil {
			return notifier
		}
		app.Logger.Warn(fmt.Sprintf("failed to initialize cloudevent notifier, falling back to echo %v", err))
	}
	notifier, _ := messages.NewEchoNotifier(app.Logger)
	return notifier
}

func main() {
	printVersion()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := directory.NewHTTPClient(app.AppConfig.Directory, app.Logger)
	notifier := newNotifier()
	writer := mediamtx.NewFileWriter(app.Logger)
	reloader := gateway.NewReloader(app.AppConfig.Gateway, app.Logger)

	configPath := app.AppConfig.Sync.ConfigPath
	if v := os.Getenv("MEDIAMTX_CONFIG_PATH"); v != "" {
		configPath = v
	}
	syncer, err := workers.NewConfigSyncer(client, writer, reloader, configPath, app.Logger, notifier)
	if err != nil {
		app.Logger.Error(fmt.Sprintf("failed to initialize config syncer %v\n", err))
		os.Exit(1)
	}
	manager, err = application.NewSyncManager(ctx, app.AppConfig.Sync, app.Logger, client, syncer)
	if err != nil {
		app.Logger.Error(fmt.Sprintf("failed to initialize sync manager %v\n", err))
		os.Exit(1)
	}
	application.AddRoutes(application.InternalEngine(), syncer.Status, app.AppConfig.Gateway)

	listenSignals(cancel)

	//the internal server comes up first so /health answers while startup
	//authentication is still retrying
	go application.Run(app.AppConfig.ServerConfig)

	app.Logger.Info(fmt.Sprintf("directory service: %s", app.AppConfig.Directory.BaseURL))
	app.Logger.Info(fmt.Sprintf("config path: %s", configPath))
	if err := manager.Initialize(); err != nil {
		app.Logger.Error(fmt.Sprintf("failed to start sync manager %v", err))
		application.Close()
		os.Exit(1)
	}

	color.Info.Printf("============  Begin Running(PID: %d) ============\n", os.Getpid())
	manager.StartLoop()

	application.Close()
	notifier.Close()
	_ = app.Logger.Sync()
	color.Info.Println("\nGoodBye...")
}

// listenSignals Graceful start/stop server
func listenSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go handleSignals(sigChan, cancel)
}

// handleSignals handle process signal
func handleSignals(c chan os.Signal, cancel context.CancelFunc) {
	color.Info.Printf("Notice: System signal monitoring is enabled(watch: SIGINT,SIGTERM,SIGQUIT)\n")

	switch <-c {
	case syscall.SIGINT:
		color.Info.Printf("\nShutdown by Ctrl+C")
	case syscall.SIGTERM: // by kill
		color.Info.Printf("\nShutdown quickly")
	case syscall.SIGQUIT:
		color.Info.Printf("\nShutdown gracefully")
	}

	//stop the loop after the in-flight iteration completes
	cancel()
	if manager != nil {
		manager.Close()
	}
}
