package application

import (
	"github.com/gin-gonic/gin"
	"github.com/opencctv/mediamtx-sync/application/controller"
	"github.com/opencctv/mediamtx-sync/common/config"
	"github.com/opencctv/mediamtx-sync/common/workers"
)

func AddRoutes(r *gin.Engine, status *workers.SyncStatus, gatewayConf config.Gateway) {
	// status
	r.GET("/health", controller.AppHealth)

	statusController := controller.NewStatusController(status, gatewayConf)
	r.GET("/status", statusController.SyncStatus)

	// not found routes
	r.NoRoute(func(c *gin.Context) {
		c.Data(404, "text/plain", []byte("not found"))
	})
}
