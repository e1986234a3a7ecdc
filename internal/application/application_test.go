package application

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestResolveConfigDir(t *testing.T) {
	userDir := func() (string, error) { return filepath.Join("home", "ana", ".config"), nil }
	noUserDir := func() (string, error) { return "", errors.New("$HOME is not defined") }

	tests := []struct {
		name    string
		env     map[string]string
		userDir func() (string, error)
		want    string
		wantErr bool
	}{
		{"user config dir", nil, userDir, filepath.Join("home", "ana", ".config", "fuelog"), false},
		{"override", map[string]string{EnvHome: "/srv/fuelog/"}, userDir, filepath.Clean("/srv/fuelog"), false},
		{"override without home", map[string]string{EnvHome: "/srv/fuelog"}, noUserDir, filepath.Clean("/srv/fuelog"), false},
		{"no home", nil, noUserDir, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveConfigDir(env(tt.env), tt.userDir)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())

	dir, err := ConfigDir()
	require.NoError(t, err)

	path, err := ConfigFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), path)
}
