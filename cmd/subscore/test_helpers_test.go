package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	reportDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	reportDir := filepath.Join(base, "reports")
	logDir := filepath.Join(base, "logs")

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nreport_dir = %q\nlog_dir = %q\n\n[logging]\nlevel = \"error\"\n",
		filepath.Join(base, "data"), reportDir, logDir,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath, reportDir: reportDir}
}

func (env *cliTestEnv) writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(env.baseDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

func (env *cliTestEnv) writeDataFixture(t *testing.T, name, content string) {
	t.Helper()
	dataDir := filepath.Join(env.baseDir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("create data dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write data fixture %s: %v", name, err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

const scriptFixture = `{
	"episode": 7,
	"scenes": [
		{"sceneId": "s1", "lines": [
			{"lineId": "s1-l1", "speaker": "ミナミ", "text": "軌道変更を開始します。"},
			{"lineId": "s1-l2", "text": "（警報音）", "isDirection": true},
			{"lineId": "s1-l3", "speaker": "ハヤト", "text": "了解。"}
		]}
	]
}`

const srtFixture = `1
00:00:01,000 --> 00:00:02,000
軌道変更を

2
00:00:02,100 --> 00:00:03,000
開始します。

3
00:00:04,500 --> 00:00:05,500
了解。
`

const whisperFixture = `{
	"segments": [
		{"text": "軌道変更を開始します", "start": 1.0, "end": 3.0},
		{"text": "了解", "start": 4.5, "end": 5.5}
	]
}`
