package fa

import "fmt"

// NumericalError is returned when a computation produces a value that
// is not finite, such as an overflowing Exp transform. Values are never
// clamped.
type NumericalError struct {
	Op    string
	Value float64
}

func (n *NumericalError) Error() string {
	return fmt.Sprintf("%v: non-finite value %v", n.Op, n.Value)
}

// ConfigurationError is returned when a component is constructed with
// an invalid configuration
type ConfigurationError struct {
	Component string
	Reason    string
}

func (c *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: invalid configuration: %v", c.Component, c.Reason)
}

// NewConfigurationError returns a ConfigurationError for component with
// a formatted reason
func NewConfigurationError(component, format string,
	args ...interface{}) *ConfigurationError {
	return &ConfigurationError{component, fmt.Sprintf(format, args...)}
}
