package configuration

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	read func(filenames ...string) (map[string]string, error)
}

func (f *fakeReader) Read(filenames ...string) (map[string]string, error) {
	return f.read(filenames...)
}

func TestMapKeyToString_Success(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&fakeReader{})
	envMap := map[string]string{"KEY": "value"}

	assert.Equal(t, "value", handler.MapKeyToString(envMap, "KEY"))
	assert.Empty(t, handler.MapKeyToString(envMap, "MISSING"))
}

func TestMapKeyToInt_Success(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&fakeReader{})
	envMap := map[string]string{
		"NUMBER":  "42",
		"GARBAGE": "forty-two",
	}

	assert.Equal(t, 42, handler.MapKeyToInt(envMap, "NUMBER"))
	assert.Equal(t, -1, handler.MapKeyToInt(envMap, "GARBAGE"))
	assert.Equal(t, -1, handler.MapKeyToInt(envMap, "MISSING"))
}

func TestMapKeyToBool_Success(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&fakeReader{})

	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "Yes", value: "yes", expected: true},
		{name: "True", value: "true", expected: true},
		{name: "One", value: "1", expected: true},
		{name: "MixedCase", value: "True", expected: true},
		{name: "No", value: "no", expected: false},
		{name: "Zero", value: "0", expected: false},
		{name: "Empty", value: "", expected: false},
		{name: "Garbage", value: "maybe", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			envMap := map[string]string{"KEY": tt.value}
			assert.Equal(t, tt.expected, handler.MapKeyToBool(envMap, "KEY"))
		})
	}
}

func TestLoadDefaults_Success(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&fakeReader{
		read: func(...string) (map[string]string, error) {
			return map[string]string{
				KeyWorkers:     "4",
				KeyOverwrite:   "yes",
				KeyInteractive: "no",
				KeyPreserve:    "true",
				KeyHidden:      "1",
				KeyVerbose:     "yes",
				KeyUI:          "yes",
			}, nil
		},
	})

	defaults, err := handler.LoadDefaults("settings.env")
	require.NoError(t, err)

	assert.Equal(t, 4, defaults.Workers)
	assert.True(t, defaults.Overwrite)
	assert.False(t, defaults.Interactive)
	assert.True(t, defaults.Preserve)
	assert.True(t, defaults.Hidden)
	assert.True(t, defaults.Verbose)
	assert.True(t, defaults.UI)
}

func TestLoadDefaults_Success_NoFiles(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&fakeReader{
		read: func(...string) (map[string]string, error) {
			t.Error("reader should not be consulted without filenames")

			return nil, nil
		},
	})

	defaults, err := handler.LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, NewDefaults(), defaults)
}

func TestLoadDefaults_Success_EmptyFile(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&fakeReader{
		read: func(...string) (map[string]string, error) {
			return map[string]string{}, nil
		},
	})

	defaults, err := handler.LoadDefaults("settings.env")
	require.NoError(t, err)

	assert.Equal(t, 0, defaults.Workers)
	assert.False(t, defaults.Overwrite)
	assert.False(t, defaults.Interactive)
	assert.False(t, defaults.Preserve)
	assert.False(t, defaults.Hidden)
	assert.False(t, defaults.Verbose)
}

func TestLoadDefaults_Success_InvalidWorkers(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&fakeReader{
		read: func(...string) (map[string]string, error) {
			return map[string]string{KeyWorkers: "-3"}, nil
		},
	})

	defaults, err := handler.LoadDefaults("settings.env")
	require.NoError(t, err)

	assert.Equal(t, 0, defaults.Workers)
}

func TestLoadDefaults_Error(t *testing.T) {
	t.Parallel()

	readErr := errors.New("read error")
	handler := NewHandler(&fakeReader{
		read: func(...string) (map[string]string, error) {
			return nil, readErr
		},
	})

	defaults, err := handler.LoadDefaults("settings.env")
	require.ErrorIs(t, err, readErr)
	assert.Nil(t, defaults)
}

func TestGodotenvRead_Success(t *testing.T) {
	t.Parallel()

	envFile := filepath.Join(t.TempDir(), EnvFileName)
	content := "FOPS_WORKERS=8\nFOPS_VERBOSE=yes\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	handler := NewHandler(&GodotenvProvider{})

	defaults, err := handler.LoadDefaults(envFile)
	require.NoError(t, err)

	assert.Equal(t, 8, defaults.Workers)
	assert.True(t, defaults.Verbose)
	assert.False(t, defaults.Preserve)
}

func TestGodotenvRead_Success_LaterFileWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	system := filepath.Join(dir, "system.env")
	require.NoError(t, os.WriteFile(system, []byte("FOPS_WORKERS=2\nFOPS_HIDDEN=yes\n"), 0o600))

	user := filepath.Join(dir, "user.env")
	require.NoError(t, os.WriteFile(user, []byte("FOPS_WORKERS=8\n"), 0o600))

	handler := NewHandler(&GodotenvProvider{})

	defaults, err := handler.LoadDefaults(system, user)
	require.NoError(t, err)

	assert.Equal(t, 8, defaults.Workers)
	assert.True(t, defaults.Hidden)
}

func TestGodotenvRead_Error_MissingFile(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&GodotenvProvider{})

	defaults, err := handler.LoadDefaults(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Nil(t, defaults)
}
