// Package doctor runs readiness diagnostics for config, tables, lexicons, and the serving surfaces.
package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rbright/rutranscript/internal/config"
	"github.com/rbright/rutranscript/internal/ipc"
	"github.com/rbright/rutranscript/internal/pipeline"
	"github.com/rbright/rutranscript/internal/rpc"
	"github.com/rbright/rutranscript/internal/translit"
)

const probeTimeout = 500 * time.Millisecond

// Check is one doctor assertion result. A warning never fails the report.
type Check struct {
	Name    string
	Pass    bool
	Warn    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		switch {
		case !check.Pass:
			status = "FAIL"
		case check.Warn:
			status = "WARN"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes config, table, lexicon, and surface checks.
func Run(ctx context.Context, cfg config.Loaded, tr *pipeline.Transcriber) Report {
	checks := []Check{checkConfig(cfg)}

	stats := tr.Stats()
	checks = append(checks, Check{
		Name:    "phonetics.table",
		Pass:    stats.Symbols > 0,
		Message: fmt.Sprintf("%d symbols", stats.Symbols),
	})
	checks = append(checks, checkTransliteration(tr))
	checks = append(checks, Check{
		Name:    "lexicon.irregular",
		Pass:    stats.Irregular > 0,
		Message: fmt.Sprintf("%d entries (%d user files)", stats.Irregular, len(cfg.Config.Lexicon.IrregularPaths)),
	})
	checks = append(checks, Check{
		Name:    "lexicon.stresses",
		Pass:    stats.Stresses > 0,
		Message: fmt.Sprintf("%d entries (%d user files)", stats.Stresses, len(cfg.Config.Lexicon.StressPaths)),
	})
	checks = append(checks, checkGRPC(ctx, cfg.Config.Server.GRPC))
	checks = append(checks, checkSocket(ctx, cfg.Config.Server.Socket))

	return Report{Checks: checks}
}

func checkConfig(cfg config.Loaded) Check {
	if !cfg.Exists {
		return Check{Name: "config", Pass: true, Warn: true, Message: fmt.Sprintf("%q not found; using defaults", cfg.Path)}
	}
	return Check{Name: "config", Pass: true, Message: fmt.Sprintf("loaded %q", cfg.Path)}
}

// checkTransliteration asserts that every broad symbol resolves in the table.
func checkTransliteration(tr *pipeline.Transcriber) Check {
	var missing []string
	symbols := translit.Symbols()
	for _, symbol := range symbols {
		if !tr.Table().Has(symbol) {
			missing = append(missing, symbol)
		}
	}
	if len(missing) > 0 {
		return Check{Name: "translit.symbols", Pass: false, Message: "missing from table: " + strings.Join(missing, " ")}
	}
	return Check{Name: "translit.symbols", Pass: true, Message: fmt.Sprintf("%d symbols resolve", len(symbols))}
}

// checkGRPC dials the configured endpoint. A missing server is only a warning.
func checkGRPC(ctx context.Context, endpoint string) Check {
	if strings.TrimSpace(endpoint) == "" {
		return Check{Name: "grpc.ready", Pass: false, Message: "server.grpc is empty"}
	}
	if err := rpc.Ready(ctx, endpoint, probeTimeout); err != nil {
		return Check{Name: "grpc.ready", Pass: true, Warn: true, Message: fmt.Sprintf("not serving at %s", endpoint)}
	}
	return Check{Name: "grpc.ready", Pass: true, Message: fmt.Sprintf("ready at %s", endpoint)}
}

// checkSocket probes the IPC socket. A missing server is only a warning.
func checkSocket(ctx context.Context, configured string) Check {
	path, err := ipc.SocketPath(configured)
	if err != nil {
		return Check{Name: "ipc.socket", Pass: true, Warn: true, Message: err.Error()}
	}
	alive, err := ipc.Probe(ctx, path, probeTimeout)
	if err != nil {
		return Check{Name: "ipc.socket", Pass: false, Message: err.Error()}
	}
	if !alive {
		return Check{Name: "ipc.socket", Pass: true, Warn: true, Message: fmt.Sprintf("not serving at %s", path)}
	}
	return Check{Name: "ipc.socket", Pass: true, Message: fmt.Sprintf("serving at %s", path)}
}
