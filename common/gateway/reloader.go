package gateway

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/opencctv/mediamtx-sync/common/config"
	"go.uber.org/zap"
)

const (
	apiTimeout     = 10 * time.Second
	restartTimeout = 30 * time.Second
)

const (
	ReloadModeAPI     = "api"
	ReloadModeProcess = "process"
)

//Reloader asks the running gateway to pick up a new configuration. Reload is
//best effort: failures are logged and swallowed because the gateway watches
//its configuration file and reloads on its own.
type Reloader interface {
	Reload(ctx context.Context) bool
}

func NewReloader(conf config.Gateway, logger *zap.Logger) Reloader {
	if conf.ReloadMode == ReloadModeProcess {
		return NewProcessReloader(conf, logger)
	}
	return NewAPIReloader(conf, logger)
}

//APIReloader patches the gateway management API, which causes the gateway to
//re-read its configuration without a process restart.
type APIReloader struct {
	HTTP   *resty.Client
	Logger *zap.Logger
}

func NewAPIReloader(conf config.Gateway, logger *zap.Logger) *APIReloader {
	apiURL := conf.APIURL
	if v := os.Getenv("MEDIAMTX_API_URL"); v != "" {
		apiURL = v
	}
	r := resty.New()
	r.SetBaseURL(apiURL)
	r.SetTimeout(apiTimeout)
	return &APIReloader{
		HTTP:   r,
		Logger: logger,
	}
}

func (r *APIReloader) Reload(ctx context.Context) bool {
	resp, err := r.HTTP.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody("{}").
		Patch("/v3/config/global/patch")
	if err != nil {
		r.Logger.Warn(fmt.Sprintf("could not reach gateway api for reload: %v", err))
		return false
	}
	if resp.IsError() {
		r.Logger.Warn(fmt.Sprintf("gateway api reload returned status %d", resp.StatusCode()))
		return false
	}
	r.Logger.Info("gateway configuration reload requested via api")
	return true
}

//ProcessReloader restarts the gateway container through the container
//runtime, which is required when changed global settings cannot be applied
//at runtime.
type ProcessReloader struct {
	Container string
	Logger    *zap.Logger
}

func NewProcessReloader(conf config.Gateway, logger *zap.Logger) *ProcessReloader {
	container := conf.Container
	if container == "" {
		container = "mediamtx"
	}
	return &ProcessReloader{
		Container: container,
		Logger:    logger,
	}
}

func (r *ProcessReloader) Reload(ctx context.Context) bool {
	restartCtx, cancel := context.WithTimeout(ctx, restartTimeout)
	defer cancel()
	output, err := exec.CommandContext(restartCtx, "docker", "restart", r.Container).CombinedOutput()
	if restartCtx.Err() == context.DeadlineExceeded {
		r.Logger.Error(fmt.Sprintf("timeout while restarting gateway container %s", r.Container))
		return false
	}
	if err != nil {
		r.Logger.Warn(fmt.Sprintf("failed to restart gateway container %s: %v, output: %s", r.Container, err, string(output)))
		return false
	}
	r.Logger.Info(fmt.Sprintf("gateway container %s restarted", r.Container))
	return true
}
