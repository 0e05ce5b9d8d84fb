package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
name: flowreport
environment: production
logging:
  level: error
  format: json
`

const approvalCSV = "Sequence;ID;Activity;Description;Role;Process\n1;Task_A;A;;R1;Approval\n"

func init() {
	gin.SetMode(gin.TestMode)
}

// syncBuffer is written by server goroutines while the test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(baseConfig+extra), 0o644))
	return path
}

func storageConfig(t *testing.T) (cfgPath, baseDir string) {
	t.Helper()
	baseDir = t.TempDir()
	return writeConfig(t, fmt.Sprintf("storage:\n  enabled: true\n  provider: local\n  base_path: %s\n", baseDir)), baseDir
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr syncBuffer
	code := execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestAnalyze_File(t *testing.T) {
	cfg := writeConfig(t, "")
	code, out, errOut := runCLI(t, "", "analyze", "--config", cfg, "testdata/approval.bpmn")

	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, approvalCSV, out)
}

func TestAnalyze_StdinJSON(t *testing.T) {
	def, err := os.ReadFile("testdata/approval.bpmn")
	require.NoError(t, err)

	cfg := writeConfig(t, "")
	code, out, errOut := runCLI(t, string(def), "analyze", "--config", cfg, "--format", "json", "-")

	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, `"id": "Task_A"`)
	assert.Contains(t, out, `"role": "R1"`)
	assert.NotContains(t, out, `"visits"`)
}

func TestAnalyze_Trace(t *testing.T) {
	cfg := writeConfig(t, "")
	code, out, errOut := runCLI(t, "", "analyze", "--config", cfg, "-f", "yaml", "--trace", "testdata/approval.bpmn")

	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "visits:")
	assert.Contains(t, out, "Start_1")
}

func TestAnalyze_ConfigFormatAndEnv(t *testing.T) {
	cfg := writeConfig(t, "export:\n  format: csv\n  delimiter: \",\"\n")
	t.Setenv("FLOWREPORT_EXPORT_BOM", "true")

	code, out, errOut := runCLI(t, "", "analyze", "--config", cfg, "testdata/approval.bpmn")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "\uFEFFSequence,ID,Activity,Description,Role,Process\n1,Task_A,A,,R1,Approval\n", out)
}

func TestAnalyze_Output(t *testing.T) {
	cfg := writeConfig(t, "")
	target := filepath.Join(t.TempDir(), "report.csv")

	code, out, errOut := runCLI(t, "", "analyze", "--config", cfg, "-o", target, "testdata/approval.bpmn")
	require.Equal(t, exitOK, code, errOut)
	assert.Empty(t, out)

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, approvalCSV, string(written))
}

func TestAnalyze_EmptyResult(t *testing.T) {
	cfg := writeConfig(t, "")
	code, out, errOut := runCLI(t, "", "analyze", "--config", cfg, "testdata/no_tasks.bpmn")

	assert.Equal(t, exitEmpty, code)
	assert.Equal(t, "Sequence;ID;Activity;Description;Role;Process\n", out)
	assert.Contains(t, errOut, "nothing to report")
}

func TestAnalyze_Failures(t *testing.T) {
	cfg := writeConfig(t, "")
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"malformed", "<definitions><process></definitions>", []string{"-"}, "PARSE_ERROR"},
		{"missing file", "", []string{"testdata/missing.bpmn"}, "read definition"},
		{"unknown format", "", []string{"--format", "xlsx", "testdata/approval.bpmn"}, "INVALID_INPUT"},
		{"storage disabled", "", []string{"--from-storage", "in/approval.bpmn"}, "storage is not enabled"},
		{"upload disabled", "", []string{"--upload", "out.csv", "testdata/approval.bpmn"}, "storage is not enabled"},
		{"too many args", "", []string{"a.bpmn", "b.bpmn"}, "accepts at most 1 arg"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"analyze", "--config", cfg}, tc.args...)
			code, _, errOut := runCLI(t, tc.stdin, args...)
			assert.Equal(t, exitFailure, code)
			assert.Contains(t, errOut, tc.want)
		})
	}
}

func TestAnalyze_InvalidConfig(t *testing.T) {
	cfg := writeConfig(t, "storage:\n  enabled: true\n  provider: ftp\n")
	code, _, errOut := runCLI(t, "", "analyze", "--config", cfg, "testdata/approval.bpmn")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "config.storage")
}

func TestAnalyze_MissingConfigFile(t *testing.T) {
	code, _, errOut := runCLI(t, "", "analyze", "--config", "/nonexistent/flowreport.yml", "testdata/approval.bpmn")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "not found")
}

func TestAnalyze_StorageRoundTrip(t *testing.T) {
	cfg, dir := storageConfig(t)

	def, err := os.ReadFile("testdata/approval.bpmn")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "in"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in", "approval.bpmn"), def, 0o644))

	code, out, errOut := runCLI(t, "", "analyze", "--config", cfg,
		"--from-storage", "in/approval.bpmn", "--upload", "out/approval.csv")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, approvalCSV, out)

	stored, err := os.ReadFile(filepath.Join(dir, "out", "approval.csv"))
	require.NoError(t, err)
	assert.Equal(t, approvalCSV, string(stored))
}

func TestAnalyze_FromStorageMissingKey(t *testing.T) {
	cfg, _ := storageConfig(t)
	code, _, errOut := runCLI(t, "", "analyze", "--config", cfg, "--from-storage", "in/nope.bpmn")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "NOT_FOUND")
}

func TestAnalyze_FromStorageWithFileArg(t *testing.T) {
	cfg, _ := storageConfig(t)
	code, _, errOut := runCLI(t, "", "analyze", "--config", cfg, "--from-storage", "in/a.bpmn", "testdata/approval.bpmn")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "cannot be combined")
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "", "version")
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(out, "flowreport "), out)

	code, out, _ = runCLI(t, "", "version", "--json")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, `"go_version"`)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestServe(t *testing.T) {
	port := freePort(t)
	cfg, _ := storageConfig(t)
	cfgBody, err := os.ReadFile(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg, append(cfgBody, []byte("server:\n  host: 127.0.0.1\n")...), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- execute(ctx, []string{"serve", "--config", cfg, "--port", fmt.Sprint(port)}, strings.NewReader(""), &stdout, &stderr)
	}()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	client := &http.Client{Timeout: time.Second}
	require.Eventually(t, func() bool {
		resp, err := client.Get(base + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond, stderr.String())

	def, err := os.Open("testdata/approval.bpmn")
	require.NoError(t, err)
	defer def.Close()
	resp, err := client.Post(base+"/v1/reports?format=csv&store=true", "application/xml", def)
	require.NoError(t, err)
	var body bytes.Buffer
	_, _ = body.ReadFrom(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, body.String())
	assert.Equal(t, approvalCSV, body.String())
	assert.True(t, strings.HasPrefix(resp.Header.Get("X-Report-Key"), "reports/"))

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, exitOK, code, stderr.String())
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
	assert.Contains(t, stderr.String(), "Routes")
	assert.Contains(t, stderr.String(), "/v1/reports")
}
