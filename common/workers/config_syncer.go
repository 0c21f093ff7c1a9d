package workers

import (
	"context"
	"fmt"

	"github.com/opencctv/mediamtx-sync/common/directory"
	"github.com/opencctv/mediamtx-sync/common/gateway"
	"github.com/opencctv/mediamtx-sync/common/mediamtx"
	"github.com/opencctv/mediamtx-sync/common/messages"
	"github.com/opencctv/mediamtx-sync/common/models"
	"go.uber.org/zap"
)

const externalComponent = "mediamtx"

//ConfigSyncer performs one full synchronization pass:
//fetch -> render -> fingerprint compare -> write if changed -> reload.
type ConfigSyncer struct {
	Client     directory.Client
	Writer     mediamtx.Writer
	Reloader   gateway.Reloader
	Logger     *zap.Logger
	ConfigPath string
	Notifier   messages.Notifier
	Status     *SyncStatus
}

func NewConfigSyncer(client directory.Client, writer mediamtx.Writer, reloader gateway.Reloader, configPath string, logger *zap.Logger, notifier messages.Notifier) (*ConfigSyncer, error) {
	return &ConfigSyncer{
		Client:     client,
		Writer:     writer,
		Reloader:   reloader,
		Logger:     logger,
		ConfigPath: configPath,
		Notifier:   notifier,
		Status:     NewSyncStatus(),
	}, nil
}

func (r *ConfigSyncer) DoWork(ctx context.Context) error {
	r.Status.RecordAttempt()

	// 1. fetch active cameras from the directory service
	cameras, err := r.Client.FetchActiveCameras(ctx)
	if err != nil {
		if directory.KindOf(err) == directory.ErrUnreachable {
			r.Logger.Warn(fmt.Sprintf("directory service not reachable, will retry on next poll: %v", err))
		} else {
			r.Logger.Error(fmt.Sprintf("failed to fetch cameras from directory service: %v", err))
		}
		r.Status.RecordFailure(err)
		r.Notifier.NonBlockPush(string(models.SyncEventFailed), externalComponent, r.ConfigPath, map[string]interface{}{
			"detail": err.Error(),
		})
		return err
	}

	// 2. render and fingerprint the new document
	cfg := mediamtx.Render(cameras, r.Logger)
	newFingerprint, err := mediamtx.Fingerprint(cfg)
	if err != nil {
		r.Status.RecordFailure(err)
		return fmt.Errorf("failed to fingerprint rendered config: %w", err)
	}

	// 3. compare with what is currently on disk
	oldFingerprint := mediamtx.FingerprintFile(r.ConfigPath, r.Logger)
	if newFingerprint == oldFingerprint {
		r.Logger.Debug("configuration unchanged, skipping write")
		r.Status.RecordSuccess(cameras, newFingerprint, false)
		return nil
	}

	// 4. persist and trigger a reload
	r.Logger.Info(fmt.Sprintf("configuration changed (cameras: %d)", len(cameras)))
	if err := r.Writer.Write(cfg, r.ConfigPath); err != nil {
		r.Logger.Error(fmt.Sprintf("failed to write configuration: %v", err))
		r.Status.RecordFailure(err)
		r.Notifier.NonBlockPush(string(models.SyncEventFailed), externalComponent, r.ConfigPath, map[string]interface{}{
			"detail": err.Error(),
		})
		return err
	}
	if !r.Reloader.Reload(ctx) {
		//not escalated: the gateway watches its config file as a backstop
		r.Logger.Warn("gateway reload trigger failed, relying on the gateway's own file watch")
		r.Notifier.NonBlockPush(string(models.SyncEventReloadFailed), externalComponent, r.ConfigPath, map[string]interface{}{
			"fingerprint": newFingerprint,
		})
	}
	r.Status.RecordSuccess(cameras, newFingerprint, true)
	r.Notifier.NonBlockPush(string(models.SyncEventConfigApplied), externalComponent, r.ConfigPath, map[string]interface{}{
		"cameras":     len(cameras),
		"fingerprint": newFingerprint,
	})
	return nil
}

func (r *ConfigSyncer) Close() {
}
