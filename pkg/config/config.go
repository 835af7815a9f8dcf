package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/forest33/srun/pkg/structs"
)

const (
	tagDefault = "default"

	// EnvConfigPath overrides the config file location
	EnvConfigPath = "SRUN_CONFIG"
)

// ErrRequiredParameter a field without default tag is left empty
var ErrRequiredParameter = errors.New("required configuration parameter is not specified")

type Config struct {
	path string
	data interface{}
}

// New loads configFileName from configFileDir (or the executable directory) into cfg.
// A missing file is not an error, defaults and required fields are checked anyway.
func New(configFileName, configFileDir string, cfg interface{}) (*Config, error) {
	path, err := Path(configFileName, configFileDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := Parse(cfg); err != nil {
		return nil, err
	}

	return &Config{
		path: path,
		data: cfg,
	}, nil
}

// Path returns the location of the config file
func Path(configFileName, configFileDir string) (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}
	if configFileDir != "" {
		return filepath.Join(configFileDir, configFileName), nil
	}
	ex, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(ex), configFileName), nil
}

func (c *Config) GetPath() string {
	return c.path
}

// Parse applies default tags and reports empty required fields of target
func Parse(target interface{}) error {
	ref := reflect.Indirect(reflect.ValueOf(target))
	for i := 0; i < ref.Type().NumField(); i++ {
		structField := ref.Type().Field(i)
		fieldValue := ref.Field(i)

		if !structField.IsExported() || isSet(structField, &fieldValue) {
			continue
		}

		defaultTagValue, defaultTagExists := structField.Tag.Lookup(tagDefault)

		if defaultTagExists {
			if err := setValue(structField, &fieldValue, defaultTagValue); err != nil {
				return err
			}
			continue
		}

		if fieldValue.IsZero() && structField.Type.Kind() != reflect.Bool && structField.Type.Kind() != reflect.Ptr {
			return fmt.Errorf("%w - %s.%s", ErrRequiredParameter, ref.Type().Name(), structField.Name)
		}

		if structField.Type.Kind() == reflect.Ptr {
			if err := setValue(structField, &fieldValue, ""); err != nil {
				return err
			}
		}
	}

	return nil
}

func isSet(structField reflect.StructField, field *reflect.Value) bool {
	if structField.Type.Kind() == reflect.Ptr && structField.Type.String() == "*bool" && !field.IsNil() {
		return true
	}
	if structField.Type.Kind() != reflect.Ptr && !field.IsZero() {
		return true
	}
	return false
}

func setValue(structField reflect.StructField, field *reflect.Value, value string) error {
	switch structField.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(value, 10, int(structField.Type.Size()*8))
		if err != nil {
			return err
		}
		field.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(value, 10, int(structField.Type.Size()*8))
		if err != nil {
			return err
		}
		field.SetUint(v)
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		field.SetBool(strings.ToLower(value) == "true")
	case reflect.Ptr:
		if structField.Type.String() == "*bool" {
			field.Set(reflect.ValueOf(structs.Ref(strings.ToLower(value) == "true")))
			return nil
		}
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return Parse(field.Interface())
	}
	return nil
}
