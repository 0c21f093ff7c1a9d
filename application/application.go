package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opencctv/mediamtx-sync/app"
	"github.com/opencctv/mediamtx-sync/application/middleware"
	"github.com/opencctv/mediamtx-sync/common/config"
)

var internalEngine *gin.Engine
var internalHttpServer *http.Server

func InternalEngine() *gin.Engine {
	return internalEngine
}

func InitServer() {
	internalEngine = gin.New()
	internalEngine.Use(middleware.RequestLog())
	if app.EnvName == app.EnvDev {
		internalEngine.Use(gin.Recovery())
	}
}

func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if internalHttpServer != nil {
		if err := internalHttpServer.Shutdown(ctx); err != nil {
			app.Logger.Error(fmt.Sprintf("failed to close internal server %v", err))
		}
	}
}

func Run(config config.ServerConfig) {
	internalHttpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", config.InternalHttpPort),
		Handler:      InternalEngine(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	app.Logger.Info(fmt.Sprintf("internal server starts up with port %d", config.InternalHttpPort))
	if err := internalHttpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.Logger.Error(fmt.Sprintf("internal server stopped %v", err))
	}
}
