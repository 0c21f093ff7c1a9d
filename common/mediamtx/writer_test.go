package mediamtx

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

func Test_FileWriter_CreatesParentFolders(t *testing.T) {
	logger := zap.NewNop()
	path := filepath.Join(t.TempDir(), "nested", "deeper", "mediamtx.yml")
	if err := NewFileWriter(logger).Write(Render(nil, logger), path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("written config is not valid yaml: %v", err)
	}
	if doc["rtspAddress"] != ":8554" {
		t.Errorf("unexpected rtspAddress %v", doc["rtspAddress"])
	}
}

func Test_FileWriter_NoTempFileLeftBehind(t *testing.T) {
	logger := zap.NewNop()
	dir := t.TempDir()
	path := filepath.Join(dir, "mediamtx.yml")
	if err := NewFileWriter(logger).Write(Render(testCameras(), logger), path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.Name() != "mediamtx.yml" {
			t.Errorf("unexpected leftover file %s", entry.Name())
		}
	}
}

func Test_FileWriter_PreservesOperatorKeyOrder(t *testing.T) {
	logger := zap.NewNop()
	path := filepath.Join(t.TempDir(), "mediamtx.yml")
	if err := NewFileWriter(logger).Write(Render(testCameras(), logger), path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(raw)
	//globals lead the document, camera paths stay in record order
	if !strings.HasPrefix(content, "logLevel:") {
		t.Errorf("document should start with logLevel, got %q", content[:40])
	}
	lobbyIdx := strings.Index(content, "  lobby-raw:")
	doorIdx := strings.Index(content, "  door-raw:")
	catchAllIdx := strings.Index(content, "  all_others:")
	if lobbyIdx == -1 || doorIdx == -1 || catchAllIdx == -1 {
		t.Fatalf("expected path entries missing:\n%s", content)
	}
	if !(lobbyIdx < doorIdx && doorIdx < catchAllIdx) {
		t.Error("paths must keep record order, catch-all last")
	}
}

func Test_FileWriter_OverwritesExisting(t *testing.T) {
	logger := zap.NewNop()
	path := filepath.Join(t.TempDir(), "mediamtx.yml")
	if err := ioutil.WriteFile(path, []byte("stale content"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := NewFileWriter(logger).Write(Render(nil, logger), path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw, _ := ioutil.ReadFile(path)
	if strings.Contains(string(raw), "stale content") {
		t.Error("existing file content should be replaced")
	}
}
