package mediamtx

import (
	"fmt"

	"github.com/opencctv/mediamtx-sync/common/models"
	"go.uber.org/zap"
)

//internal RTSP listener, used for re-sourcing and for the transcoder output
const internalRTSPBase = "rtsp://localhost:8554"

const (
	rawPathSuffix = "-raw"
	catchAllPath  = "all_others"
)

func baseConfig() *Config {
	return &Config{
		LogLevel:        "info",
		LogDestinations: []string{"stdout"},
		API:             true,
		APIAddress:      ":9997",

		RTSPAddress:  ":8554",
		RTSPSAddress: ":8322",

		RTMPAddress:    ":1935",
		RTMPEncryption: "no",

		HLSAddress:         ":8888",
		HLSAlwaysRemux:     false,
		HLSVariant:         "lowLatency",
		HLSSegmentCount:    7,
		HLSSegmentDuration: "1s",
		HLSPartDuration:    "200ms",

		WebRTCAddress:               ":8889",
		WebRTCAllowOrigins:          []string{"*"},
		WebRTCLocalUDPAddress:       ":8189",
		WebRTCLocalTCPAddress:       ":8189",
		WebRTCIPsFromInterfaces:     true,
		WebRTCIPsFromInterfacesList: []string{},
		WebRTCICEServers2:           []interface{}{},
	}
}

//Render maps camera records onto a complete gateway configuration. It is
//pure and total: records failing validation (missing path or source url,
//path violating the slug invariant) are skipped with a warning, never
//failed. Duplicate paths keep the last record in input order.
func Render(cameras []models.Camera, logger *zap.Logger) *Config {
	cfg := baseConfig()

	for _, camera := range cameras {
		if err := camera.Validate(); err != nil {
			logger.Warn(fmt.Sprintf("skipping camera %d - %v", camera.ID, err))
			continue
		}
		rawPath := camera.MediaMTXPath + rawPathSuffix

		//raw ingest path, pulled from the camera only while a viewer is connected
		if cfg.AddPath(rawPath, &PathConf{
			Source:                     camera.RTSPURL,
			RTSPTransport:              "tcp",
			SourceOnDemand:             boolPtr(true),
			SourceOnDemandStartTimeout: "10s",
			SourceOnDemandCloseAfter:   "10s",
		}) {
			logger.Warn(fmt.Sprintf("duplicate mediamtx path %s, keeping camera %d", camera.MediaMTXPath, camera.ID))
		}

		if camera.TranscodingEnabled {
			//H.265 -> H.264 transcode path for browser compatibility
			bitrate := camera.NormalizedBitrate()
			cfg.AddPath(camera.MediaMTXPath, &PathConf{
				RunOnDemand:             transcodeCommand(rawPath, bitrate),
				RunOnDemandRestart:      true,
				RunOnDemandStartTimeout: "15s",
				RunOnDemandCloseAfter:   "10s",
			})
		} else {
			//no transcoding, just re-source the raw path
			cfg.AddPath(camera.MediaMTXPath, &PathConf{
				Source:         fmt.Sprintf("%s/%s", internalRTSPBase, rawPath),
				SourceOnDemand: boolPtr(true),
			})
		}

		logger.Info(fmt.Sprintf("added camera path %s (transcoding=%v)", camera.MediaMTXPath, camera.TranscodingEnabled))
	}

	//catch-all rejecting any path not explicitly defined
	cfg.AddPath(catchAllPath, &PathConf{
		SourceOnDemand: boolPtr(false),
	})
	return cfg
}

//transcodeCommand builds the on-demand ffmpeg invocation for a camera path.
//maxrate and bufsize derive from the target bitrate in integer kbps.
func transcodeCommand(rawPath string, bitrate int) string {
	return fmt.Sprintf("ffmpeg -rtsp_transport tcp "+
		"-i %s/%s "+
		"-map 0:v:0 "+
		"-c:v libx264 "+
		"-preset ultrafast "+
		"-tune zerolatency "+
		"-profile:v baseline "+
		"-level 3.1 "+
		"-pix_fmt yuv420p "+
		"-b:v %dk "+
		"-maxrate %dk "+
		"-bufsize %dk "+
		"-g 30 "+
		"-keyint_min 30 "+
		"-sc_threshold 0 "+
		"-an "+
		"-max_muxing_queue_size 1024 "+
		"-f rtsp "+
		"%s/$MTX_PATH",
		internalRTSPBase, rawPath, bitrate, bitrate*3/2, bitrate*2, internalRTSPBase)
}
