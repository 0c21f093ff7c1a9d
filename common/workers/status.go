package workers

import (
	"time"

	"github.com/opencctv/mediamtx-sync/common/models"
	"go.uber.org/atomic"
)

//SyncStatus is a point-in-time view of the sync loop, shared with the
//internal status endpoint. All fields are atomics because the endpoint reads
//from a different goroutine than the loop.
type SyncStatus struct {
	LastAttempt    atomic.Int64
	LastSuccess    atomic.Int64
	LastError      atomic.String
	CameraCount    atomic.Int32
	Fingerprint    atomic.String
	ConfigsApplied atomic.Int64

	cameras atomic.Value // []models.Camera
}

func NewSyncStatus() *SyncStatus {
	status := &SyncStatus{}
	status.cameras.Store([]models.Camera{})
	return status
}

func (s *SyncStatus) RecordAttempt() {
	s.LastAttempt.Store(time.Now().Unix())
}

func (s *SyncStatus) RecordFailure(err error) {
	s.LastError.Store(err.Error())
}

func (s *SyncStatus) RecordSuccess(cameras []models.Camera, fingerprint string, applied bool) {
	s.LastSuccess.Store(time.Now().Unix())
	s.LastError.Store("")
	s.CameraCount.Store(int32(len(cameras)))
	s.Fingerprint.Store(fingerprint)
	if applied {
		s.ConfigsApplied.Inc()
	}
	snapshot := make([]models.Camera, len(cameras))
	copy(snapshot, cameras)
	s.cameras.Store(snapshot)
}

//Cameras returns the record list of the last successful sync.
func (s *SyncStatus) Cameras() []models.Camera {
	return s.cameras.Load().([]models.Camera)
}
