package registry

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/vomix/internal/ctxlog"
	"github.com/vk/vomix/internal/model"
	"github.com/zclconf/go-cty/cty"
)

type fakeModule struct{ def *model.ModuleDef }

func (m fakeModule) Register(r *Registry) { r.RegisterModule(m.def) }

func newTestRegistry() *Registry {
	r := New()
	fakeModule{model.NewModuleDef("assembly", "Assemble reads.", model.String("assembler", ""))}.Register(r)
	fakeModule{model.NewModuleDef("viral-host", "Predict hosts.", model.Int("iphop-cutoff", 90, ""))}.Register(r)
	return r
}

func TestLookup(t *testing.T) {
	r := newTestRegistry()

	def, err := r.Lookup("assembly")
	require.NoError(t, err)
	assert.Equal(t, "assembly", def.Name)

	_, err = r.Lookup("bogus")
	require.ErrorIs(t, err, ErrUnknownModule)
	assert.Contains(t, err.Error(), `"bogus"`)
}

func TestNames_RegistrationOrder(t *testing.T) {
	r := newTestRegistry()
	assert.Equal(t, []string{"assembly", "viral-host"}, r.Names())
}

func TestNewSpec(t *testing.T) {
	r := newTestRegistry()

	spec, err := r.NewSpec("viral-host", map[string]cty.Value{"iphop-cutoff": cty.NumberIntVal(80)})
	require.NoError(t, err)
	assert.Equal(t, "80", spec.StringValue("iphop-cutoff"))

	_, err = r.NewSpec("bogus", nil)
	require.ErrorIs(t, err, ErrUnknownModule)
}

func TestRegisterModule_PanicsOnDuplicate(t *testing.T) {
	r := newTestRegistry()
	require.Panics(t, func() {
		r.RegisterModule(model.NewModuleDef("assembly", ""))
	})
}

func TestRegisterModule_PanicsOnInvalidDefinition(t *testing.T) {
	r := New()
	require.Panics(t, func() {
		r.RegisterModule(model.NewModuleDef("broken", "", model.String("x", ""), model.String("x", "")))
	})
}

func TestValidateRegistry_ReservedClash(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), slog.Default())
	r := newTestRegistry()

	require.NoError(t, r.ValidateRegistry(ctx, []string{"jobs", "latency-wait"}))

	err := r.ValidateRegistry(ctx, []string{"assembler"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'assembler' clashes")
}
