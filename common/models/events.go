package models

type SyncEventType string

const (
	SyncEventConfigApplied SyncEventType = "cctv.mediamtx_sync.config.applied"
	SyncEventReloadFailed  SyncEventType = "cctv.mediamtx_sync.reload.failed"
	SyncEventFailed        SyncEventType = "cctv.mediamtx_sync.sync.failed"
)
