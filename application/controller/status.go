package controller

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opencctv/mediamtx-sync/app"
	"github.com/opencctv/mediamtx-sync/common/config"
	"github.com/opencctv/mediamtx-sync/common/workers"
)

func AppHealth(c *gin.Context) {
	data := map[string]interface{}{
		"status": "UP",
		"info":   app.Info,
	}
	c.JSON(200, data)
}

type StatusController struct {
	Status      *workers.SyncStatus
	GatewayConf config.Gateway
}

func NewStatusController(status *workers.SyncStatus, gatewayConf config.Gateway) *StatusController {
	return &StatusController{
		Status:      status,
		GatewayConf: gatewayConf,
	}
}

//SyncStatus reports the outcome of the last sync attempt and the playback
//endpoints of the cameras it rendered.
func (s *StatusController) SyncStatus(c *gin.Context) {
	cameras := s.Status.Cameras()
	cameraViews := make([]map[string]interface{}, 0, len(cameras))
	for _, camera := range cameras {
		cameraViews = append(cameraViews, map[string]interface{}{
			"id":            camera.ID,
			"name":          camera.Name,
			"mediamtx_path": camera.MediaMTXPath,
			"transcoding":   camera.TranscodingEnabled,
			"webrtc_url":    camera.WebRTCURL(s.GatewayConf.WebRTCBaseURL),
			"hls_url":       camera.HLSURL(s.GatewayConf.HLSBaseURL),
		})
	}
	c.JSON(200, map[string]interface{}{
		"lastAttempt":    formatUnix(s.Status.LastAttempt.Load()),
		"lastSuccess":    formatUnix(s.Status.LastSuccess.Load()),
		"lastError":      s.Status.LastError.Load(),
		"cameraCount":    s.Status.CameraCount.Load(),
		"fingerprint":    s.Status.Fingerprint.Load(),
		"configsApplied": s.Status.ConfigsApplied.Load(),
		"cameras":        cameraViews,
	})
}

func formatUnix(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04:05")
}
