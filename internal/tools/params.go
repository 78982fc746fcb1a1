package tools

import (
	"fmt"
	"math"
)

// floatParam извлекает число; отсутствующий необязательный параметр дает defaultValue
func floatParam(params map[string]interface{}, name string, required bool, defaultValue float64) (float64, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		if required {
			return 0, fmt.Errorf("invalid parameter: %s", name)
		}
		return defaultValue, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("invalid parameter: %s", name)
	}
}

// intParam извлекает целое число; JSON передает числа как float64
func intParam(params map[string]interface{}, name string, required bool, defaultValue int) (int, error) {
	v, err := floatParam(params, name, required, float64(defaultValue))
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("invalid parameter: %s must be an integer", name)
	}
	return int(v), nil
}

func boolParam(params map[string]interface{}, name string) (bool, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return false, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("invalid parameter: %s", name)
	}
	return v, nil
}

func stringParam(params map[string]interface{}, name string, required bool) (string, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		if required {
			return "", fmt.Errorf("invalid parameter: %s", name)
		}
		return "", nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("invalid parameter: %s", name)
	}
	return v, nil
}
