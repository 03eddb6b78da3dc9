package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/semcore/internal/astyaml"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/typesystem"
)

// TestFixtures analyzes every module under testdata and compares the
// diagnostic codes, in position order, with the fixture's "expect" list.
func TestFixtures(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			data, err := os.ReadFile(path)
			require.NoError(t, err)

			var header struct {
				Expect []string `yaml:"expect"`
			}
			require.NoError(t, yaml.Unmarshal(data, &header))

			mod, err := astyaml.DecodeFile(path)
			require.NoError(t, err)

			types := typesystem.NewTable()
			a := New(types, symbols.NewTable(types))
			errs := a.AnalyzeModule(mod)

			got := make([]string, 0, len(errs))
			for _, e := range errs {
				got = append(got, string(e.Code))
				assert.Equal(t, mod.File, e.File)
			}
			assert.Equal(t, normalize(header.Expect), got, "diagnostics:\n%s", formatErrors(errs))
		})
	}
}

func normalize(codes []string) []string {
	if codes == nil {
		return []string{}
	}
	return codes
}

func TestFixtures_StrictReportsFirst(t *testing.T) {
	mod, err := astyaml.DecodeFile(filepath.Join("testdata", "cycles.yaml"))
	require.NoError(t, err)

	types := typesystem.NewTable()
	a := New(types, symbols.NewTable(types))
	a.SetStrict(true)
	errs := a.AnalyzeModule(mod)
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.ErrCyclicReference, errs[0].Code)
}
