package host

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
	"github.com/pokesdk/poke-sdk/hostfuncs"
	"github.com/pokesdk/poke-sdk/internal/testutil"
	"github.com/pokesdk/poke-sdk/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyModule is the smallest valid WebAssembly binary: magic and version.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func TestNewExecutor(t *testing.T) {
	ctx := context.Background()
	e, err := NewExecutor(ctx)
	require.NoError(t, err)
	require.NotNil(t, e)

	mod := e.runtime.Module(ModuleName)
	require.NotNil(t, mod, "host module should be instantiated")

	assert.NoError(t, e.Close(ctx))
}

func TestNewExecutor_ExportsHostFunctions(t *testing.T) {
	ctx := context.Background()
	e, err := NewExecutor(ctx)
	require.NoError(t, err)
	defer func() { _ = e.Close(ctx) }()

	defs := e.runtime.Module(ModuleName).ExportedFunctionDefinitions()
	assert.Contains(t, defs, "http_request")
	assert.Contains(t, defs, "log_message")
}

func TestNewExecutor_CustomRegistry(t *testing.T) {
	ctx := context.Background()
	reg, err := hostfuncs.NewRegistry(
		hostfuncs.WithHandler("http_request", hostfuncs.HTTPHandler(hostfuncs.WithHTTPRequestTimeout(time.Second))),
		hostfuncs.WithHandler("clock", func(context.Context, []byte) ([]byte, error) { return []byte(`{}`), nil }),
	)
	require.NoError(t, err)

	e, err := NewExecutor(ctx, WithHostFunctions(reg), WithMemoryLimitPages(512))
	require.NoError(t, err)
	defer func() { _ = e.Close(ctx) }()

	defs := e.runtime.Module(ModuleName).ExportedFunctionDefinitions()
	assert.Contains(t, defs, "clock")
}

func TestNewExecutor_RegistryValidation(t *testing.T) {
	ctx := context.Background()
	noop := func(context.Context, []byte) ([]byte, error) { return []byte(`{}`), nil }

	missing, err := hostfuncs.NewRegistry(hostfuncs.WithHandler("clock", noop))
	require.NoError(t, err)
	_, err = NewExecutor(ctx, WithHostFunctions(missing))
	assert.ErrorContains(t, err, "http_request")

	reserved, err := hostfuncs.NewRegistry(
		hostfuncs.WithHandler("http_request", noop),
		hostfuncs.WithHandler("log_message", noop),
	)
	require.NoError(t, err)
	_, err = NewExecutor(ctx, WithHostFunctions(reserved))
	assert.ErrorContains(t, err, "log_message")
}

func TestLoad_InvalidModule(t *testing.T) {
	ctx := context.Background()
	e, err := NewExecutor(ctx)
	require.NoError(t, err)
	defer func() { _ = e.Close(ctx) }()

	_, err = e.Load(ctx, []byte("not wasm"))
	assert.Error(t, err)
}

func TestInstance_MissingExport(t *testing.T) {
	ctx := context.Background()
	e, err := NewExecutor(ctx, WithEnv("POKESDK_LOG_LEVEL", "debug"))
	require.NoError(t, err)
	defer func() { _ = e.Close(ctx) }()

	inst, err := e.Load(ctx, emptyModule)
	require.NoError(t, err)
	defer func() { _ = inst.Close(ctx) }()

	_, err = inst.GetPokemonJSON(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, sdkerrors.KindInternal, sdkerrors.KindOf(err))
	assert.Contains(t, err.Error(), "get_pokemon_json")

	_, err = inst.GetPokemon(ctx, 1)
	assert.Error(t, err)
}

func TestLoad_AnonymousModulesCanRepeat(t *testing.T) {
	ctx := context.Background()
	e, err := NewExecutor(ctx)
	require.NoError(t, err)
	defer func() { _ = e.Close(ctx) }()

	first, err := e.Load(ctx, emptyModule)
	require.NoError(t, err)
	second, err := e.Load(ctx, emptyModule)
	require.NoError(t, err)

	assert.NoError(t, first.Close(ctx))
	assert.NoError(t, second.Close(ctx))
}

func TestReplayLog(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()
	e, err := NewExecutor(ctx, WithLogger(log.New(slog.LevelDebug, &buf)))
	require.NoError(t, err)
	defer func() { _ = e.Close(ctx) }()

	payload, err := json.Marshal(log.LogMessageWire{
		Level:   "INFO",
		Message: "requesting pokemon",
		Attrs:   []log.LogAttrWire{{Key: "url", Type: "string", Value: "https://pokeapi.co/api/v2/pokemon/1"}},
	})
	require.NoError(t, err)

	e.replayLog(ctx, payload)
	e.replayLog(ctx, []byte("garbage"))

	out := buf.String()
	assert.Contains(t, out, `msg="requesting pokemon"`)
	assert.Contains(t, out, "source=wasm")
	assert.Contains(t, out, "unparsable guest log record")
}

func TestModuleConfigEnv(t *testing.T) {
	ctx := context.Background()
	e, err := NewExecutor(ctx,
		WithEnv("POKESDK_BASE_URL", "http://127.0.0.1:8080/api/v2"),
		WithEnv("POKESDK_TIMEOUT", "5s"))
	require.NoError(t, err)
	defer func() { _ = e.Close(ctx) }()

	assert.Equal(t, map[string]string{
		"POKESDK_BASE_URL": "http://127.0.0.1:8080/api/v2",
		"POKESDK_TIMEOUT":  "5s",
	}, e.env)
	assert.NotNil(t, e.moduleConfig())
}

// buildGuest compiles the wasip1 reactor, skipping the test when no Go
// toolchain able to target wasip1 is available.
func buildGuest(t *testing.T) []byte {
	t.Helper()
	if testing.Short() {
		t.Skip("builds a wasip1 module")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not found")
	}

	out := filepath.Join(t.TempDir(), "pokesdk.wasm")
	cmd := exec.Command(goBin, "build", "-buildmode=c-shared", "-o", out, "./cmd/pokesdk-wasi")
	cmd.Dir = ".."
	cmd.Env = append(os.Environ(), "GOOS=wasip1", "GOARCH=wasm", "CGO_ENABLED=0")
	if msg, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("cannot build wasip1 guest: %v\n%s", err, msg)
	}

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	return data
}

func TestInstance_GuestRoundTrip(t *testing.T) {
	wasmBytes := buildGuest(t)
	upstream := testutil.NewUpstream(t, testutil.Bulbasaur())

	var buf bytes.Buffer
	ctx := context.Background()
	e, err := NewExecutor(ctx,
		WithLogger(log.New(slog.LevelDebug, &buf)),
		WithEnv("POKESDK_BASE_URL", upstream.BaseURL()),
		WithEnv("POKESDK_TIMEOUT", "5s"),
		WithEnv("POKESDK_LOG_LEVEL", "debug"))
	require.NoError(t, err)
	defer func() { _ = e.Close(ctx) }()

	inst, err := e.Load(ctx, wasmBytes)
	require.NoError(t, err)
	defer func() { _ = inst.Close(ctx) }()

	env, err := inst.GetPokemon(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, testutil.Bulbasaur(), testutil.RequireSuccess(t, env))

	env, err = inst.GetPokemon(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "pokemon 2 not found", testutil.RequireFailure(t, env))

	raw, err := inst.GetPokemonJSON(ctx, 1)
	require.NoError(t, err)
	testutil.AssertWireKeys(t, raw)

	assert.Equal(t, 3, upstream.Hits())
	assert.Contains(t, buf.String(), "source=wasm")
	assert.Contains(t, buf.String(), "host function completed")
}
