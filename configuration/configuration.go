// Package configuration loads configuration structs from the environment.
//
// Values come from, in increasing priority: defaults registered with
// SetDefault, a .env file in the working directory, and the process
// environment. Fields are bound with `env` tags and checked with `validate`
// tags.
package configuration

import (
	"os"
	"strings"
	"sync"

	"github.com/thanhminhmr/go-errchain/errors"
	"github.com/thanhminhmr/go-errchain/internal"

	"github.com/go-viper/mapstructure/v2"
)

const (
	errDecoder  = errors.String("configuration: failed to create decoder")
	errDecode   = errors.String("configuration: failed to decode environment")
	errValidate = errors.String("configuration: invalid configuration")
)

var (
	lock               sync.RWMutex
	globalDefaults     = make(map[string]string)
	globalEnvironments = make(map[string]string)
)

func init() {
	// .env file have higher priority than defaults
	bytes, err := os.ReadFile(".env")
	if err == nil {
		saveEnvironments(strings.Split(string(bytes), "\n"))
	}

	// os.Environ() have the highest priority
	saveEnvironments(os.Environ())
}

func saveEnvironments(lines []string) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		globalEnvironments[strings.TrimSpace(key)] = value
	}
}

// SetDefault registers the value used when key is set nowhere else. It is
// meant to be called from init functions next to the configuration struct.
func SetDefault(key string, value string) {
	lock.Lock()
	defer lock.Unlock()
	globalDefaults[key] = value
}

// Load fills config from the environment. With prefixes, only keys starting
// with the prefixes joined by "_" are considered, with the prefix removed.
func Load[T any](config *T, prefixes ...string) error {
	prefix := ""
	if len(prefixes) > 0 {
		prefix = strings.Join(prefixes, "_") + "_"
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "env",
		DecodeHook:       internal.EnvironmentDecodeHookFunc,
		ZeroFields:       true,
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return errDecoder.AddCause(err)
	}
	if err := decoder.Decode(getEnvironment(prefix)); err != nil {
		return errDecode.AddCause(err)
	}
	if err := internal.Validator.Struct(config); err != nil {
		return errValidate.AddCause(err)
	}
	return nil
}

// Loader returns a constructor for config, suitable for fx.Provide.
func Loader[T any](config *T, prefixes ...string) func() (*T, error) {
	return func() (*T, error) {
		err := Load(config, prefixes...)
		return config, err
	}
}

func getEnvironment(prefix string) map[string]string {
	lock.RLock()
	defer lock.RUnlock()
	environments := make(map[string]string)
	for key, value := range globalDefaults {
		if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
			environments[fixedKey] = value
		}
	}
	for key, value := range globalEnvironments {
		if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
			environments[fixedKey] = value
		}
	}
	return environments
}
