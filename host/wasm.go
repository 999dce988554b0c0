package host

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pokesdk/poke-sdk/internal/abi"
	"github.com/pokesdk/poke-sdk/log"
	"github.com/tetratelabs/wazero/api"
)

func (e *Executor) registerHostFunctions(ctx context.Context) error {
	builder := e.runtime.NewHostModuleBuilder(ModuleName)

	for _, name := range e.registry.Names() {
		builder.NewFunctionBuilder().
			WithFunc(func(ctx context.Context, m api.Module, packed uint64) uint64 {
				return e.callHandler(ctx, m, name, packed)
			}).
			Export(name)
	}

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, packed uint64) {
			payload, ok := readPacked(m, packed)
			if !ok {
				return
			}
			e.replayLog(ctx, payload)
		}).
		Export("log_message")

	_, err := builder.Instantiate(ctx)
	return err
}

// callHandler runs a registry function on a request in guest memory and
// writes the response into a fresh guest allocation. It returns 0 when the
// exchange cannot complete.
func (e *Executor) callHandler(ctx context.Context, m api.Module, name string, packed uint64) uint64 {
	payload, ok := readPacked(m, packed)
	if !ok {
		e.logger.WarnContext(ctx, "host function request out of bounds", slog.String("function", name))
		return 0
	}

	resp, err := e.registry.Invoke(ctx, name, payload)
	if err != nil {
		e.logger.WarnContext(ctx, "host function failed", slog.String("function", name), slog.Any("error", err))
		return 0
	}
	if len(resp) == 0 {
		return 0
	}

	allocate := m.ExportedFunction("allocate")
	if allocate == nil {
		e.logger.WarnContext(ctx, "guest does not export allocate")
		return 0
	}
	results, err := allocate.Call(ctx, uint64(len(resp)))
	if err != nil || len(results) == 0 || uint32(results[0]) == 0 {
		e.logger.WarnContext(ctx, "guest allocation failed", slog.Int("size", len(resp)), slog.Any("error", err))
		return 0
	}
	ptr := uint32(results[0])
	if !m.Memory().Write(ptr, resp) {
		return 0
	}

	out, err := abi.PackPtrLen(ptr, uint32(len(resp)))
	if err != nil {
		return 0
	}
	return out
}

// replayLog re-emits a guest log record through the host logger.
func (e *Executor) replayLog(ctx context.Context, payload []byte) {
	var msg log.LogMessageWire
	if err := json.Unmarshal(payload, &msg); err != nil {
		e.logger.WarnContext(ctx, "unparsable guest log record", slog.String("payload", string(payload)))
		return
	}
	msg.Replay(ctx, e.logger, slog.String("source", "wasm"))
}

// readPacked copies the bytes a packed reference points at.
func readPacked(m api.Module, packed uint64) ([]byte, bool) {
	ptr, length, err := abi.UnpackPtrLen(packed)
	if err != nil {
		return nil, false
	}
	if length == 0 {
		return nil, true
	}
	data, ok := m.Memory().Read(ptr, length)
	if !ok {
		return nil, false
	}
	out := make([]byte, length)
	copy(out, data)
	return out, true
}
