package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testConfig struct {
	StringField   string        `env:"STRING"`
	IntField      int           `env:"INT"`
	Int64Field    int64         `env:"INT64"`
	UintField     uint32        `env:"UINT"`
	FloatField    float64       `env:"FLOAT"`
	BoolField     bool          `env:"BOOL"`
	DurationField time.Duration `env:"DURATION,default:5s"`
	ListField     []string      `env:"LIST,default:a, b,c"`
	DefaultField  string        `env:"DEFAULT,default:defaultValue"`
	NoTagField    string
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected testConfig
		wantErr  bool
	}{
		{
			name: "all fields set from environment",
			envVars: map[string]string{
				"TEST_STRING":   "hello",
				"TEST_INT":      "42",
				"TEST_INT64":    "9223372036854775807",
				"TEST_UINT":     "7",
				"TEST_FLOAT":    "3.5",
				"TEST_BOOL":     "true",
				"TEST_DURATION": "1m",
				"TEST_LIST":     "x",
			},
			expected: testConfig{
				StringField:   "hello",
				IntField:      42,
				Int64Field:    9223372036854775807,
				UintField:     7,
				FloatField:    3.5,
				BoolField:     true,
				DurationField: time.Minute,
				ListField:     []string{"x"},
				DefaultField:  "defaultValue",
			},
		},
		{
			name:    "defaults used when env not set",
			envVars: map[string]string{},
			expected: testConfig{
				DurationField: 5 * time.Second,
				ListField:     []string{"a", "b", "c"},
				DefaultField:  "defaultValue",
			},
		},
		{
			name:    "override default value",
			envVars: map[string]string{"TEST_DEFAULT": "overridden"},
			expected: testConfig{
				DurationField: 5 * time.Second,
				ListField:     []string{"a", "b", "c"},
				DefaultField:  "overridden",
			},
		},
		{name: "invalid int value", envVars: map[string]string{"TEST_INT": "not-a-number"}, wantErr: true},
		{name: "invalid bool value", envVars: map[string]string{"TEST_BOOL": "not-a-bool"}, wantErr: true},
		{name: "negative uint", envVars: map[string]string{"TEST_UINT": "-1"}, wantErr: true},
		{name: "invalid duration", envVars: map[string]string{"TEST_DURATION": "soon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := &testConfig{}
			err := Load(cfg, LoadOptions{Prefix: "TEST_"})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *cfg)
		})
	}
}

func TestLoadDefaultPrefix(t *testing.T) {
	t.Setenv("HASHKIT_STRING", "prefixed")
	t.Setenv("STRING", "bare")

	cfg := &testConfig{}
	require.NoError(t, Load(cfg))
	assert.Equal(t, "prefixed", cfg.StringField)
}

func TestLoadRequired(t *testing.T) {
	type required struct {
		Secret string `env:"SECRET,required"`
	}

	err := Load(&required{}, LoadOptions{Prefix: "REQTEST_"})
	assert.ErrorIs(t, err, ErrRequired)
	assert.Contains(t, err.Error(), "REQTEST_SECRET")

	t.Setenv("REQTEST_SECRET", "s3cret")
	cfg := &required{}
	require.NoError(t, Load(cfg, LoadOptions{Prefix: "REQTEST_"}))
	assert.Equal(t, "s3cret", cfg.Secret)
}

func TestLoadRejectsNonPointer(t *testing.T) {
	assert.ErrorIs(t, Load(testConfig{}), ErrNotStructPointer)
	assert.ErrorIs(t, Load((*testConfig)(nil)), ErrNotStructPointer)

	n := 3
	assert.ErrorIs(t, Load(&n), ErrNotStructPointer)
}

func TestLoadFromDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DOTENVTEST_STRING=from-file\nDOTENVTEST_INT=9\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DOTENVTEST_STRING")
		os.Unsetenv("DOTENVTEST_INT")
	})

	// The process environment wins over the file.
	t.Setenv("DOTENVTEST_INT", "11")

	cfg := &testConfig{}
	require.NoError(t, Load(cfg, LoadOptions{Prefix: "DOTENVTEST_", Files: []string{path, filepath.Join(dir, "missing.env")}}))
	assert.Equal(t, "from-file", cfg.StringField)
	assert.Equal(t, 11, cfg.IntField)
}

func TestLoadWithDebug(t *testing.T) {
	type secretConfig struct {
		SecretKey string `env:"SECRET_KEY"`
		Name      string `env:"NAME"`
	}

	t.Setenv("DBGTEST_SECRET_KEY", "hunter2")
	t.Setenv("DBGTEST_NAME", "debug-test")

	core, logs := observer.New(zap.DebugLevel)
	cfg := &secretConfig{}
	require.NoError(t, Load(cfg, LoadOptions{Prefix: "DBGTEST_", Debug: true, Logger: zap.New(core)}))
	assert.Equal(t, "hunter2", cfg.SecretKey)

	entries := logs.FilterMessage("config variable resolved").All()
	require.Len(t, entries, 2)

	values := map[string]string{}
	for _, e := range entries {
		ctx := e.ContextMap()
		values[ctx["name"].(string)] = ctx["value"].(string)
	}
	assert.Equal(t, "****", values["DBGTEST_SECRET_KEY"])
	assert.Equal(t, "debug-test", values["DBGTEST_NAME"])
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag  string
		want envTag
	}{
		{tag: "NAME", want: envTag{name: "NAME"}},
		{tag: "NAME,default:value1", want: envTag{name: "NAME", def: "value1"}},
		{tag: "NAME,something,default:value3", want: envTag{name: "NAME", def: "value3"}},
		{tag: "NAME,required", want: envTag{name: "NAME", required: true}},
		{tag: "NAME,required,default:x", want: envTag{name: "NAME", def: "x", required: true}},
		{tag: "NAME,default:a,b", want: envTag{name: "NAME", def: "a,b"}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTag(tt.tag))
		})
	}
}

func TestSetFieldValueUnsupportedKind(t *testing.T) {
	cfg := &struct{ Field map[string]string }{}
	field := reflect.ValueOf(cfg).Elem().Field(0)

	assert.NoError(t, setFieldValue(field, "a=b"))
	assert.Nil(t, cfg.Field)
}
