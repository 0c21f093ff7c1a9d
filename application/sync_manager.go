package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/opencctv/mediamtx-sync/common/config"
	"github.com/opencctv/mediamtx-sync/common/directory"
	"github.com/opencctv/mediamtx-sync/common/workers"
	"go.uber.org/zap"
)

const (
	defaultPollInterval  = 30
	defaultRetryAttempts = 10
	defaultRetryInterval = 10
)

//SyncManager owns the sync loop: startup authentication with bounded
//retries, one immediate initial sync, then one sync attempt per poll
//interval until shutdown. Iterations never overlap and iteration errors
//never terminate the loop.
type SyncManager struct {
	Config  config.Sync
	Logger  *zap.Logger
	Auth    directory.Authenticator
	Context context.Context
	syncer  workers.Worker
	closeCh chan struct{}
}

func NewSyncManager(ctx context.Context, conf config.Sync, logger *zap.Logger, auth directory.Authenticator, syncer workers.Worker) (*SyncManager, error) {
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		if interval, err := strconv.Atoi(v); err == nil && interval > 0 {
			conf.PollInterval = interval
		}
	}
	if conf.PollInterval <= 0 {
		conf.PollInterval = defaultPollInterval
	}
	if conf.AuthRetries <= 0 {
		conf.AuthRetries = defaultRetryAttempts
	}
	if conf.AuthRetryInterval <= 0 {
		conf.AuthRetryInterval = defaultRetryInterval
	}
	if conf.InitialSyncRetries <= 0 {
		conf.InitialSyncRetries = defaultRetryAttempts
	}
	if conf.InitialSyncInterval <= 0 {
		conf.InitialSyncInterval = defaultRetryInterval
	}
	return &SyncManager{
		Config:  conf,
		Logger:  logger,
		Auth:    auth,
		Context: ctx,
		syncer:  syncer,
		closeCh: make(chan struct{}, 1),
	}, nil
}

//Initialize authenticates with the directory service when credentials are
//configured and performs the initial sync. Authentication exhaustion is
//fatal; initial sync exhaustion is not, the poll loop takes over regardless.
func (m *SyncManager) Initialize() error {
	if m.Auth != nil && m.Auth.RequiresAuth() {
		authenticated := false
		for attempt := 1; attempt <= m.Config.AuthRetries; attempt++ {
			err := m.Auth.Authenticate(m.Context)
			if err == nil {
				authenticated = true
				break
			}
			m.Logger.Warn(fmt.Sprintf("directory authentication failed (%d/%d): %v", attempt, m.Config.AuthRetries, err))
			if attempt < m.Config.AuthRetries {
				if !m.sleep(m.Config.AuthRetryInterval) {
					//a requested shutdown is not a startup failure
					m.Logger.Info("shutdown requested during authentication, skipping startup sync")
					return nil
				}
			}
		}
		if !authenticated {
			return errors.New("could not authenticate with directory service after max retries")
		}
	}

	m.Logger.Info("performing initial sync")
	for attempt := 1; attempt <= m.Config.InitialSyncRetries; attempt++ {
		err := m.syncer.DoWork(m.Context)
		if err == nil {
			return nil
		}
		m.Logger.Warn(fmt.Sprintf("initial sync failed (%d/%d): %v", attempt, m.Config.InitialSyncRetries, err))
		if attempt < m.Config.InitialSyncRetries {
			if !m.sleep(m.Config.InitialSyncInterval) {
				return nil
			}
		}
	}
	m.Logger.Warn("initial sync did not succeed, falling through to the polling loop")
	return nil
}

//StartLoop blocks until Close is called or the context is cancelled. An
//in-flight iteration always runs to completion.
func (m *SyncManager) StartLoop() {
	m.Logger.Info(fmt.Sprintf("starting polling loop (interval: %ds)", m.Config.PollInterval))
	syncTicker := time.NewTicker(time.Duration(m.Config.PollInterval) * time.Second)
	defer syncTicker.Stop()
	for {
		select {
		case <-syncTicker.C:
			err := m.syncer.DoWork(m.Context)
			if err != nil {
				m.Logger.Error(fmt.Sprintf("failed to perform sync attempt, %v", err))
			}
		case <-m.closeCh:
			m.Logger.Info("sync manager will quit")
			return
		case <-m.Context.Done():
			m.Logger.Info("sync manager context cancelled")
			return
		}
	}
}

func (m *SyncManager) Close() {
	close(m.closeCh)
}

//sleep waits for the given number of seconds, returning false when shutdown
//was requested while waiting.
func (m *SyncManager) sleep(seconds int) bool {
	select {
	case <-time.After(time.Duration(seconds) * time.Second):
		return true
	case <-m.closeCh:
		return false
	case <-m.Context.Done():
		return false
	}
}
