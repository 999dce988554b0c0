package hostfuncs

import (
	"context"
	"fmt"
	"sort"
)

type functionNameKey struct{}

// FunctionName returns the name of the host function being invoked, or
// "unknown" outside of Invoke.
func FunctionName(ctx context.Context) string {
	if name, ok := ctx.Value(functionNameKey{}).(string); ok {
		return name
	}
	return "unknown"
}

// HandlerRegistry is an immutable set of named host functions. It is safe
// for concurrent use.
type HandlerRegistry struct {
	handlers map[string]ByteHandler
	names    []string
}

// RegistryOption configures NewRegistry.
type RegistryOption func(*registryBuilder)

type registryBuilder struct {
	handlers   map[string]ByteHandler
	middleware []Middleware
	errs       []error
}

// NewRegistry builds a registry. Middleware is applied to every handler.
// Registering an empty or duplicate name is an error.
//
//	registry, err := hostfuncs.NewRegistry(
//	    hostfuncs.WithMiddleware(hostfuncs.PanicRecoveryMiddleware()),
//	    hostfuncs.WithHandler("http_request", hostfuncs.HTTPHandler()),
//	)
func NewRegistry(opts ...RegistryOption) (*HandlerRegistry, error) {
	b := &registryBuilder{handlers: make(map[string]ByteHandler)}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	r := &HandlerRegistry{
		handlers: make(map[string]ByteHandler, len(b.handlers)),
		names:    make([]string, 0, len(b.handlers)),
	}
	for name, h := range b.handlers {
		for i := len(b.middleware) - 1; i >= 0; i-- {
			h = b.middleware[i](h)
		}
		r.handlers[name] = h
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// WithHandler registers h under name.
func WithHandler(name string, h ByteHandler) RegistryOption {
	return func(b *registryBuilder) {
		switch {
		case name == "":
			b.errs = append(b.errs, fmt.Errorf("handler name cannot be empty"))
		case h == nil:
			b.errs = append(b.errs, fmt.Errorf("handler %q is nil", name))
		default:
			if _, exists := b.handlers[name]; exists {
				b.errs = append(b.errs, fmt.Errorf("duplicate handler name: %q", name))
				return
			}
			b.handlers[name] = h
		}
	}
}

// WithMiddleware appends middleware to the chain.
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// Invoke calls the handler registered under name. An unknown name yields a
// NOT_FOUND response, not an error.
func (r *HandlerRegistry) Invoke(ctx context.Context, name string, payload []byte) ([]byte, error) {
	h, ok := r.handlers[name]
	if !ok {
		return NewNotFoundError(name).ToJSON(), nil
	}
	return h(context.WithValue(ctx, functionNameKey{}, name), payload)
}

// Has reports whether name is registered.
func (r *HandlerRegistry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *HandlerRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
