package wasmview

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/layout"
)

// Config bounds the runtime a Guest runs in.
type Config struct {
	// MemoryLimitPages caps linear memory in 64KiB pages. Zero keeps the
	// wazero default.
	MemoryLimitPages uint32
}

// Guest is an instantiated core module with its own runtime.
type Guest struct {
	runtime wazero.Runtime
	module  api.Module
}

// Instantiate compiles and instantiates a core module. The module must
// not import anything.
func Instantiate(ctx context.Context, wasm []byte, cfg *Config) (*Guest, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	mod, err := rt.InstantiateWithConfig(ctx, wasm, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Load("instantiate guest", err)
	}
	return &Guest{runtime: rt, module: mod}, nil
}

// Memory returns the module's exported memory.
func (g *Guest) Memory() (api.Memory, error) {
	mem := g.module.Memory()
	if mem == nil {
		return nil, errors.Unsupported(errors.PhaseLoad, "guest exports no memory")
	}
	return mem, nil
}

// Close releases the module and its runtime.
func (g *Guest) Close(ctx context.Context) error {
	return g.runtime.Close(ctx)
}

// ReadListOffset copies length+1 offsets from ptr and wraps content in
// a ListOffsetArray. The result is validated.
func ReadListOffset(mem Memory, ptr, length uint32, width index.Width, content layout.Content) (*layout.ListOffsetArray, error) {
	offsets, err := ReadIndex(mem, ptr, length+1, width)
	if err != nil {
		return nil, err
	}
	list, err := layout.NewListOffset(offsets, content)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(list); err != nil {
		return nil, err
	}
	return list, nil
}

// ReadJagged reads a list of length rows laid out as length+1 offsets at
// offsetsPtr and a buffer of dt values at dataPtr. The last offset gives
// the number of values read.
func ReadJagged(mem Memory, offsetsPtr, length uint32, width index.Width, dataPtr uint32, dt layout.DType) (*layout.ListOffsetArray, error) {
	offsets, err := ReadIndex(mem, offsetsPtr, length+1, width)
	if err != nil {
		return nil, err
	}
	last := offsets.Get(int64(length))
	if last < 0 || last > math.MaxUint32 {
		return nil, errors.InvalidData(errors.PhaseLoad, layout.KindListOffset.String(),
			fmt.Sprintf("last offset %d is not a valid value count", last))
	}
	content, err := ReadPrimitive(mem, dataPtr, uint32(last), dt)
	if err != nil {
		return nil, err
	}
	return ReadListOffset(mem, offsetsPtr, length, width, content)
}
