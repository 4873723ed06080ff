package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings_Valid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, DefaultPageSize, s.PageSize)
	assert.True(t, s.Paginated)
	assert.Equal(t, "michael jackson", s.Term)
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings().PageSize, s.PageSize)
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "term: abba\npage_size: 25\ncache:\n  ttl_seconds: 60\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abba", s.Term)
	assert.Equal(t, 25, s.PageSize)
	assert.Equal(t, time.Minute, s.CacheTTL())
	assert.True(t, s.Cache.Enabled, "unspecified keys keep defaults")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: [nope"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	s := DefaultSettings()
	s.Term = "prince"
	s.FuzzyFilter = true
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvTerm:         "queen",
		EnvPageSize:     "5",
		EnvCacheEnabled: "false",
		EnvLogLevel:     "debug",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	s := DefaultSettings()
	require.NoError(t, s.ApplyEnv(lookup))
	assert.Equal(t, "queen", s.Term)
	assert.Equal(t, 5, s.PageSize)
	assert.False(t, s.Cache.Enabled)
	assert.Equal(t, "debug", s.Log.Level)
}

func TestApplyEnv_Invalid(t *testing.T) {
	s := DefaultSettings()
	err := s.ApplyEnv(func(k string) (string, bool) {
		if k == EnvPageSize {
			return "ten", true
		}
		return "", false
	})
	assert.ErrorContains(t, err, EnvPageSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr error
	}{
		{name: "zero page size", mutate: func(s *Settings) { s.PageSize = 0 }, wantErr: ErrInvalidPageSize},
		{name: "huge page size", mutate: func(s *Settings) { s.PageSize = MaxPageSize + 1 }, wantErr: ErrInvalidPageSize},
		{name: "negative limit", mutate: func(s *Settings) { s.Limit = -1 }, wantErr: ErrInvalidLimit},
		{name: "zero ttl", mutate: func(s *Settings) { s.Cache.TTLSeconds = 0 }, wantErr: ErrInvalidTTL},
		{name: "no concurrency", mutate: func(s *Settings) { s.Artwork.MaxConcurrent = 0 }, wantErr: ErrInvalidConcurrent},
		{name: "bad export", mutate: func(s *Settings) { s.Export.Format = "xml" }, wantErr: ErrInvalidExport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			assert.ErrorIs(t, s.Validate(), tt.wantErr)
		})
	}
}

func TestArtworkSettings_RetryDelay(t *testing.T) {
	a := ArtworkSettings{RetryCooldown: 0.25}
	assert.Equal(t, 250*time.Millisecond, a.RetryDelay())
}
