package common

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamConfig defines the configuration for a single parameter of a job.
// Parameters are supplied on the command line as name=value pairs and are
// available to the job's command template, its file-path templates and its
// constraints.
type ParamConfig struct {
	// Type specifies the parameter data type. Valid values: "string" (default), "number"/"integer", "boolean"
	Type string `yaml:"type,omitempty"`

	// Description provides information about the parameter's purpose
	Description string `yaml:"description"`

	// Required indicates whether the parameter must be provided
	Required bool `yaml:"required,omitempty"`

	// Default is the value used when the parameter is not provided
	Default interface{} `yaml:"default,omitempty"`
}

// ConvertStringToType converts a raw string value from the command line into
// the Go value matching the declared parameter type.
func ConvertStringToType(value string, paramType string) (interface{}, error) {
	switch paramType {
	case "", "string":
		return value, nil
	case "number":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", value, err)
		}
		return f, nil
	case "integer":
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", value, err)
		}
		return i, nil
	case "boolean":
		switch strings.ToLower(value) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q: %w", value, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", paramType)
	}
}
