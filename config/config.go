package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultPrefix is prepended to every variable name unless LoadOptions
// overrides it.
const DefaultPrefix = "HASHKIT_"

// Standard errors for the config package
var (
	ErrNotStructPointer = errors.New("config: target must be a non-nil pointer to a struct")
	ErrRequired         = errors.New("config: required variable not set")
	ErrInvalidValue     = errors.New("config: invalid value")
)

// LoadOptions defines options for loading configuration from environment variables.
type LoadOptions struct {
	Prefix string      // Prefix to prepend to variable names (default: "HASHKIT_")
	Files  []string    // .env files to read first; ".env" when empty
	Debug  bool        // Log every resolved variable
	Logger *zap.Logger // Receives debug output; nothing is logged when nil
}

// Load populates a struct from .env files and environment variables using
// reflection.
//
// Struct field tags name the variables:
//   - `env:"VAR_NAME"` maps the field to PREFIX+VAR_NAME
//   - `env:"VAR_NAME,required"` fails with ErrRequired when unset
//   - `env:"VAR_NAME,default:value"` supplies a fallback; the default runs to
//     the end of the tag so it may itself contain commas
//
// Values already present in the environment win over .env files. Missing
// .env files are ignored.
//
// Example:
//
//	type Config struct {
//	    SecretKey string        `env:"SECRET_KEY,required"`
//	    Timeout   time.Duration `env:"TIMEOUT,default:10s"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.LoadOptions{Prefix: "MYAPP_"})
//	// Will look for MYAPP_SECRET_KEY and MYAPP_TIMEOUT
func Load(cfg interface{}, opts ...LoadOptions) error {
	options := LoadOptions{Prefix: DefaultPrefix}
	if len(opts) > 0 {
		options = opts[0]
	}

	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	files := options.Files
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// Silently skip missing files
		_ = godotenv.Load(f)
	}

	debug := options.Debug || os.Getenv(DefaultPrefix+"CONFIG_DEBUG") == "true"
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	v := rv.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" || !field.IsExported() {
			continue
		}

		tag := parseTag(envTag)
		fullEnvName := options.Prefix + tag.name
		value, ok := os.LookupEnv(fullEnvName)
		if !ok || value == "" {
			value = tag.def
		}

		if debug {
			logger.Debug("config variable resolved",
				zap.String("name", fullEnvName),
				zap.String("value", redact(tag.name, value)))
		}

		if value == "" {
			if tag.required {
				return fmt.Errorf("%w: %s", ErrRequired, fullEnvName)
			}
			continue
		}
		if err := setFieldValue(v.Field(i), value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, fullEnvName, err)
		}
	}

	return nil
}

type envTag struct {
	name     string
	def      string
	required bool
}

func parseTag(tag string) envTag {
	parts := strings.Split(tag, ",")
	out := envTag{name: parts[0]}
	for i, part := range parts[1:] {
		if strings.HasPrefix(part, "default:") {
			out.def = strings.TrimPrefix(strings.Join(parts[i+1:], ","), "default:")
			break
		}
		if part == "required" {
			out.required = true
		}
	}
	return out
}

var sensitive = []string{"SECRET", "KEY", "PASSWORD", "TOKEN"}

func redact(name, value string) string {
	if value == "" {
		return value
	}
	upper := strings.ToUpper(name)
	for _, s := range sensitive {
		if strings.Contains(upper, s) {
			return "****"
		}
	}
	return value
}

var durationType = reflect.TypeOf(time.Duration(0))

// setFieldValue converts value to the field's type.
//
// Supported types: string, bool, signed and unsigned integers, floats,
// time.Duration and []string (comma separated, trimmed). Other kinds are
// left untouched.
func setFieldValue(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return nil
		}
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		field.Set(reflect.ValueOf(out))
	}
	return nil
}
