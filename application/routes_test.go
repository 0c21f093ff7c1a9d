package application

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/opencctv/mediamtx-sync/app"
	"github.com/opencctv/mediamtx-sync/common/config"
	"github.com/opencctv/mediamtx-sync/common/workers"
	"go.uber.org/zap"
)

//the internal server answers before the first sync completes, so the
//requests below run against a status object no sync has ever touched
func Test_Routes_AvailableBeforeFirstSync(t *testing.T) {
	app.Logger = zap.NewNop()
	gin.SetMode(gin.TestMode)
	InitServer()
	AddRoutes(InternalEngine(), workers.NewSyncStatus(), config.Gateway{})

	w := httptest.NewRecorder()
	InternalEngine().ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != 200 {
		t.Fatalf("health endpoint returned %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"UP"`) {
		t.Errorf("unexpected health body %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	InternalEngine().ServeHTTP(w, httptest.NewRequest("GET", "/status", nil))
	if w.Code != 200 {
		t.Fatalf("status endpoint returned %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"lastAttempt":""`) {
		t.Errorf("expected an empty last attempt before the first sync, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	InternalEngine().ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	if w.Code != 404 {
		t.Fatalf("unknown route returned %d", w.Code)
	}
}
