package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rbright/rutranscript/internal/cli"
	"github.com/rbright/rutranscript/internal/config"
	"github.com/rbright/rutranscript/internal/ipc"
	"github.com/rbright/rutranscript/internal/pipeline"
	"github.com/rbright/rutranscript/internal/rpc"
	"github.com/rbright/rutranscript/internal/text"
)

func TestExecuteHelp(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	exitCode := Execute(context.Background(), []string{"--help"}, nil, &stdout, &stderr)
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdout.String(), "Usage:")
	require.Empty(t, stderr.String())
}

func TestExecuteVersion(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	exitCode := Execute(context.Background(), []string{"version"}, nil, &stdout, &stderr)
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdout.String(), "rutranscript")
	require.Empty(t, stderr.String())
}

func TestExecuteUnknownFlag(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	exitCode := Execute(context.Background(), []string{"--definitely-not-a-flag"}, nil, &stdout, &stderr)
	require.Equal(t, 2, exitCode)
	require.Contains(t, stderr.String(), "unknown flag")
	require.Contains(t, stderr.String(), "Usage:")
}

func TestRunnerTranscribesArguments(t *testing.T) {
	paths := setupRunnerEnv(t, "")
	stdout, stderr, exitCode := runRunner(t, "", "--config", paths.configPath, "--stressed", "Мы+шка, ко+шка", "Мышка,", "кошка")

	require.Equal(t, 0, exitCode, stderr)
	require.Equal(t, "mˠ ɨ ʂ k ʌ kʷ o ʂ k ʌ\n", stdout)
	require.Empty(t, stderr)
}

func TestRunnerReadsStdin(t *testing.T) {
	paths := setupRunnerEnv(t, "")
	stdout, _, exitCode := runRunner(t, "Как получить транскрипцию?", "--config", paths.configPath, "stressed")

	require.Equal(t, 0, exitCode)
	require.Equal(t, "ка+к получи+ть транскри+пцию\n", stdout)
}

func TestRunnerNoInputFails(t *testing.T) {
	paths := setupRunnerEnv(t, "")
	_, stderr, exitCode := runRunner(t, "  \n", "--config", paths.configPath, "transcribe")

	require.Equal(t, 1, exitCode)
	require.Contains(t, stderr, "no input text")
}

func TestRunnerPhonemesUsesConfig(t *testing.T) {
	paths := setupRunnerEnv(t, `{
  // keep pauses and stresses
  "output": { "save_pauses": true, "save_stresses": true },
  "stress": { "symbol": "'" },
}`)
	stdout, stderr, exitCode := runRunner(t, "", "--config", paths.configPath, "phonemes", "--stressed", "Но+с.", "Нос.")

	require.Equal(t, 0, exitCode, stderr)
	require.Equal(t, "n o ' s ||\n", stdout)
}

func TestRunnerJSONOutput(t *testing.T) {
	paths := setupRunnerEnv(t, "")
	stdout, _, exitCode := runRunner(t, "", "--config", paths.configPath, "--format", "json", "--stressed", "но+с", "нос")
	require.Equal(t, 0, exitCode)

	var got report
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Equal(t, report{Allophones: []string{"nʷ", "o", "s"}}, got)
}

func TestRunnerYAMLOutput(t *testing.T) {
	paths := setupRunnerEnv(t, "")
	stdout, _, exitCode := runRunner(t, "", "--config", paths.configPath, "stressed", "--format", "yaml", "нос")
	require.Equal(t, 0, exitCode)

	var got report
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	require.Equal(t, report{StressedText: "но+с"}, got)
}

func TestRunnerSectionErrorsExitNonZero(t *testing.T) {
	paths := setupRunnerEnv(t, "")
	stdout, stderr, exitCode := runRunner(t, "", "--config", paths.configPath, "--stressed", "До+м7. Но+с", "Дом7.", "Нос")

	require.Equal(t, 1, exitCode)
	require.Equal(t, "nʷ o s\n", stdout)
	require.Contains(t, stderr, "section 0")
}

func TestRunnerRejectsBadFormatFlag(t *testing.T) {
	paths := setupRunnerEnv(t, "")
	_, stderr, exitCode := runRunner(t, "", "--config", paths.configPath, "--format", "xml", "нос")

	require.Equal(t, 2, exitCode)
	require.Contains(t, stderr, "unsupported format")
}

func TestRunnerConfigErrorFails(t *testing.T) {
	paths := setupRunnerEnv(t, `{"stress": {"place": "middle"}}`)
	_, stderr, exitCode := runRunner(t, "", "--config", paths.configPath, "нос")

	require.Equal(t, 1, exitCode)
	require.Contains(t, stderr, "stress.place")
}

func TestRunnerLoadsUserLexicons(t *testing.T) {
	dir := t.TempDir()
	stressPath := filepath.Join(dir, "stresses.txt")
	require.NoError(t, os.WriteFile(stressPath, []byte("# user words\nсоба+ка\n"), 0o600))

	paths := setupRunnerEnv(t, `{"lexicon": {"stresses_path": "`+stressPath+`"}}`)
	stdout, stderr, exitCode := runRunner(t, "", "--config", paths.configPath, "stressed", "собака")

	require.Equal(t, 0, exitCode, stderr)
	require.Equal(t, "соба+ка\n", stdout)
}

func TestRunnerMissingLexiconFails(t *testing.T) {
	paths := setupRunnerEnv(t, `{"lexicon": {"irregular_path": "/definitely/missing.tsv"}}`)
	_, stderr, exitCode := runRunner(t, "", "--config", paths.configPath, "нос")

	require.Equal(t, 1, exitCode)
	require.Contains(t, stderr, "load irregular lexicon")
}

func TestRunnerDoctorCommandDispatchesAndPrintsReport(t *testing.T) {
	paths := setupRunnerEnv(t, "")
	stdout, _, exitCode := runRunner(t, "", "--config", paths.configPath, "doctor")

	require.Equal(t, 0, exitCode, stdout)
	require.Contains(t, stdout, "[OK] config")
	require.Contains(t, stdout, "translit.symbols")
	require.Contains(t, stdout, "[WARN] ipc.socket")
}

func TestRunnerRemoteTranscribe(t *testing.T) {
	paths := setupRunnerEnv(t, "")

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	tr := pipeline.NewTranscriber(pipeline.Options{}, nil)
	go func() { done <- rpc.Serve(ctx, lis, rpc.NewServer(tr, pipeline.Query{}, nil)) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	stdout, stderr, exitCode := runRunner(t, "", "--config", paths.configPath,
		"--remote", lis.Addr().String(), "--stressed", "ё+лка", "ёлка")
	require.Equal(t, 0, exitCode, stderr)
	require.Equal(t, "ʝᶣ ɵ l k ʌ\n", stdout)
}

func TestRunnerRemoteSendsConfigReplacements(t *testing.T) {
	paths := setupRunnerEnv(t, `{"replacements": {"tts": "но+с"}}`)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	tr := pipeline.NewTranscriber(pipeline.Options{}, nil)
	go func() { done <- rpc.Serve(ctx, lis, rpc.NewServer(tr, pipeline.Query{}, nil)) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	local, stderr, exitCode := runRunner(t, "", "--config", paths.configPath, "tts")
	require.Equal(t, 0, exitCode, stderr)
	remote, stderr, exitCode := runRunner(t, "", "--config", paths.configPath, "--remote", lis.Addr().String(), "tts")
	require.Equal(t, 0, exitCode, stderr)
	require.Equal(t, "nʷ o s\n", remote)
	require.Equal(t, local, remote)
}

func TestRunnerRemoteDialFailure(t *testing.T) {
	paths := setupRunnerEnv(t, "")
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var stdout, stderr bytes.Buffer
	runner := Runner{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stderr, Logger: discardLogger()}
	exitCode := runner.Execute(ctx, []string{"--config", paths.configPath, "--remote", addr, "нос"})
	require.Equal(t, 1, exitCode)
	require.Contains(t, stderr.String(), "readiness")
}

func TestRunnerServeAnswersIPCUntilCancelled(t *testing.T) {
	paths := setupRunnerEnv(t, `{"server": {"grpc": "127.0.0.1:0"}}`)
	socketPath := filepath.Join(paths.runtimeDir, "rutranscript.sock")

	ctx, cancel := context.WithCancel(context.Background())
	var stdout, stderr syncBuffer
	runner := Runner{Stdout: &stdout, Stderr: &stderr, Logger: discardLogger()}

	done := make(chan int, 1)
	go func() { done <- runner.Execute(ctx, []string{"--config", paths.configPath, "serve"}) }()

	require.Eventually(t, func() bool {
		alive, err := ipc.Probe(context.Background(), socketPath, 100*time.Millisecond)
		return err == nil && alive
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := ipc.Send(context.Background(), socketPath, ipc.Request{
		Command:      ipc.CommandTranscribe,
		Text:         "нос",
		StressedText: "но+с",
	}, time.Second)
	require.NoError(t, err)
	require.True(t, resp.OK, resp.Error)
	require.Equal(t, []string{"nʷ", "o", "s"}, resp.Allophones)

	cancel()
	select {
	case code := <-done:
		require.Equal(t, 0, code, stderr.String())
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
	require.Contains(t, stdout.String(), "serving grpc=127.0.0.1:")

	_, statErr := os.Stat(socketPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	err := applyFlags(&cfg, cli.Parsed{
		StressPlace:  "before",
		StressSymbol: "ˈ",
		Format:       "YAML",
		SavePauses:   true,
	})
	require.NoError(t, err)
	require.Equal(t, text.StressBefore, cfg.Stress.Place)
	require.Equal(t, "ˈ", cfg.Stress.Symbol)
	require.Equal(t, formatYAML, cfg.Output.Format)
	require.True(t, cfg.Output.SavePauses)
	require.False(t, cfg.Output.SaveStresses)

	require.Error(t, applyFlags(&cfg, cli.Parsed{StressPlace: "middle"}))
}

func TestDefaultQuery(t *testing.T) {
	cfg := config.Default()
	cfg.Stress.Place = text.StressBefore
	cfg.Output.SaveSpaces = true
	cfg.Replacements = map[string]string{"тчк": "точка"}

	q := defaultQuery(cfg)
	require.Equal(t, text.StressBefore, q.StressPlace)
	require.Equal(t, text.StressBefore, q.Render.StressPlace)
	require.Equal(t, "+", q.Render.StressSymbol)
	require.True(t, q.Render.SaveSpaces)
	require.Equal(t, "точка", q.Replacements["тчк"])
}

type runnerPaths struct {
	configPath string
	runtimeDir string
}

func setupRunnerEnv(t *testing.T, content string) runnerPaths {
	t.Helper()

	xdgStateHome := t.TempDir()
	runtimeDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", xdgStateHome)
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)

	configPath := filepath.Join(t.TempDir(), "config.jsonc")
	require.NoError(t, os.WriteFile(configPath, []byte(content+"\n"), 0o600))

	return runnerPaths{configPath: configPath, runtimeDir: runtimeDir}
}

func runRunner(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	runner := Runner{Stdin: strings.NewReader(stdin), Stdout: &stdout, Stderr: &stderr, Logger: discardLogger()}
	exitCode := runner.Execute(context.Background(), args)
	return stdout.String(), stderr.String(), exitCode
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
}
