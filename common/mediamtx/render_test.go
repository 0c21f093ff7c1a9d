package mediamtx

import (
	"strings"
	"testing"

	"github.com/opencctv/mediamtx-sync/common/models"
	"go.uber.org/zap"
)

func Test_Render_TwoCameraScenario(t *testing.T) {
	cameras := []models.Camera{
		{ID: 1, Name: "Lobby", MediaMTXPath: "lobby", RTSPURL: "rtsp://192.168.1.10:554/ch1", TranscodingEnabled: true, TargetBitrate: 800},
		{ID: 2, Name: "Door", MediaMTXPath: "door", RTSPURL: "rtsp://192.168.1.11:554/ch1", TranscodingEnabled: false},
	}
	cfg := Render(cameras, zap.NewNop())

	expected := []string{"lobby-raw", "lobby", "door-raw", "door", "all_others"}
	names := cfg.PathNames()
	if len(names) != len(expected) {
		t.Fatalf("expected paths %v, got %v", expected, names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Fatalf("expected path %q at position %d, got %q", name, i, names[i])
		}
	}

	lobbyRaw := cfg.Path("lobby-raw")
	if lobbyRaw.Source != "rtsp://192.168.1.10:554/ch1" {
		t.Errorf("unexpected raw source %q", lobbyRaw.Source)
	}
	if lobbyRaw.SourceOnDemand == nil || !*lobbyRaw.SourceOnDemand {
		t.Error("raw path must be on demand")
	}
	if lobbyRaw.SourceOnDemandStartTimeout != "10s" || lobbyRaw.SourceOnDemandCloseAfter != "10s" {
		t.Error("raw path must use 10s start and idle timeouts")
	}

	lobby := cfg.Path("lobby")
	if !strings.Contains(lobby.RunOnDemand, "-b:v 800k") ||
		!strings.Contains(lobby.RunOnDemand, "-maxrate 1200k") ||
		!strings.Contains(lobby.RunOnDemand, "-bufsize 1600k") {
		t.Errorf("unexpected transcode bitrate parameters in %q", lobby.RunOnDemand)
	}
	if !strings.Contains(lobby.RunOnDemand, "rtsp://localhost:8554/lobby-raw") {
		t.Errorf("transcode input must be the local raw path, got %q", lobby.RunOnDemand)
	}
	if !lobby.RunOnDemandRestart || lobby.RunOnDemandStartTimeout != "15s" || lobby.RunOnDemandCloseAfter != "10s" {
		t.Error("transcode path must restart on demand with 15s/10s timeouts")
	}

	door := cfg.Path("door")
	if door.RunOnDemand != "" {
		t.Error("passthrough path must not invoke a command")
	}
	if door.Source != "rtsp://localhost:8554/door-raw" {
		t.Errorf("passthrough path must re-source the raw path, got %q", door.Source)
	}

	catchAll := cfg.Path("all_others")
	if catchAll.SourceOnDemand == nil || *catchAll.SourceOnDemand {
		t.Error("catch-all path must have sourceOnDemand disabled")
	}
}

func Test_Render_BitrateDerivation(t *testing.T) {
	cameras := []models.Camera{
		{ID: 1, MediaMTXPath: "cam", RTSPURL: "rtsp://a", TranscodingEnabled: true, TargetBitrate: 1000},
	}
	cfg := Render(cameras, zap.NewNop())
	cmd := cfg.Path("cam").RunOnDemand
	for _, fragment := range []string{"-b:v 1000k", "-maxrate 1500k", "-bufsize 2000k", "-g 30", "-an"} {
		if !strings.Contains(cmd, fragment) {
			t.Errorf("transcode command missing %q: %s", fragment, cmd)
		}
	}
}

func Test_Render_DefaultBitrate(t *testing.T) {
	cameras := []models.Camera{
		{ID: 1, MediaMTXPath: "cam", RTSPURL: "rtsp://a", TranscodingEnabled: true},
	}
	cfg := Render(cameras, zap.NewNop())
	if cmd := cfg.Path("cam").RunOnDemand; !strings.Contains(cmd, "-b:v 1000k") {
		t.Errorf("absent bitrate should default to 1000, got %s", cmd)
	}
}

func Test_Render_SkipsInvalidRecords(t *testing.T) {
	cameras := []models.Camera{
		{ID: 1, Name: "No URL", MediaMTXPath: "nourl"},
		{ID: 2, Name: "No Path", RTSPURL: "rtsp://a"},
		{ID: 3, Name: "Bad Path", MediaMTXPath: "Bad Path", RTSPURL: "rtsp://c"},
		{ID: 4, MediaMTXPath: "ok", RTSPURL: "rtsp://b"},
	}
	cfg := Render(cameras, zap.NewNop())
	for _, name := range cfg.PathNames() {
		if strings.HasPrefix(name, "nourl") || strings.HasPrefix(name, "Bad Path") {
			t.Errorf("invalid record leaked into paths: %s", name)
		}
	}
	if cfg.Path("ok-raw") == nil || cfg.Path("ok") == nil {
		t.Error("valid record missing from paths")
	}
	if len(cfg.PathNames()) != 3 {
		t.Errorf("expected ok-raw, ok and all_others only, got %v", cfg.PathNames())
	}
}

func Test_Render_ZeroCameras(t *testing.T) {
	cfg := Render(nil, zap.NewNop())
	if cfg.Path("all_others") == nil {
		t.Fatal("catch-all path must exist with zero cameras")
	}
	if cfg.RTSPAddress != ":8554" || cfg.HLSAddress != ":8888" || cfg.WebRTCAddress != ":8889" {
		t.Error("fixed listener settings missing")
	}
	if !cfg.API || cfg.APIAddress != ":9997" {
		t.Error("management api settings missing")
	}
	if cfg.HLSVariant != "lowLatency" || cfg.HLSSegmentCount != 7 {
		t.Error("hls settings missing")
	}
}

func Test_Render_DuplicatePathKeepsLast(t *testing.T) {
	cameras := []models.Camera{
		{ID: 1, MediaMTXPath: "gate", RTSPURL: "rtsp://first", TranscodingEnabled: false},
		{ID: 2, MediaMTXPath: "gate", RTSPURL: "rtsp://second", TranscodingEnabled: false},
	}
	cfg := Render(cameras, zap.NewNop())
	if got := cfg.Path("gate-raw").Source; got != "rtsp://second" {
		t.Errorf("duplicate path should keep the last record, got source %q", got)
	}
	//gate-raw, gate, all_others - no duplicated entries
	if len(cfg.PathNames()) != 3 {
		t.Errorf("duplicate records must not add extra paths, got %v", cfg.PathNames())
	}
}
