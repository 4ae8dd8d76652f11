package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/actgen-go/core/config"
	"github.com/codewandler/actgen-go/core/gen"
	"github.com/codewandler/actgen-go/core/model"
	"github.com/codewandler/actgen-go/core/protocol"
	"github.com/codewandler/actgen-go/internal/fingerprint"
)

// TestGeneratedArtifactsAreFresh regenerates every committed actor file from
// its source and go:generate options and requires a byte-for-byte match,
// fingerprint header included. A failure means the source or the generator
// changed without rerunning go generate.
func TestGeneratedArtifactsAreFresh(t *testing.T) {
	cases := []struct {
		dir      string
		artifact string
		cfg      config.Config
	}{
		{
			dir:      ".",
			artifact: "counter_actor.go",
			cfg:      config.Config{Type: "Counter", Source: "counter.go", Identity: true},
		},
		{
			dir:      ".",
			artifact: "recorder_actor.go",
			cfg:      config.Config{Type: "Recorder", Source: "recorder.go", Capacity: 8, Overrides: []string{"Record"}},
		},
		{
			dir:      filepath.Join("..", "examples", "counter"),
			artifact: "counter_actor.go",
			cfg:      config.Config{Type: "Counter", Source: "counter.go", Capacity: 128},
		},
	}

	for _, tc := range cases {
		t.Run(tc.dir+"/"+tc.artifact, func(t *testing.T) {
			tc.cfg.Normalize()

			src, err := os.ReadFile(filepath.Join(tc.dir, tc.cfg.Source))
			require.NoError(t, err)
			committed, err := os.ReadFile(filepath.Join(tc.dir, tc.artifact))
			require.NoError(t, err)

			fp := fingerprint.Sum(src, []byte(tc.cfg.Canonical()))
			header, ok := fingerprint.FromHeader(committed)
			require.True(t, ok, "artifact carries no fingerprint header")
			require.Equal(t, fp, header, "fingerprint does not cover the current source and options")

			iface, err := model.ParseSource(tc.cfg.Source, src, tc.cfg.Type)
			require.NoError(t, err)
			p, err := protocol.Build(iface, tc.cfg)
			require.NoError(t, err)
			out, err := gen.Generate(p, tc.cfg, fp)
			require.NoError(t, err)

			require.Equal(t, string(out), string(committed), "stale artifact: rerun go generate")
		})
	}
}
