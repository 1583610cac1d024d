package registry

import "fmt"

// Constant is a condition that always yields Value.
type Constant struct {
	Value bool `mapstructure:"value"`
}

func (c *Constant) Evaluate() bool { return c.Value }
func (c *Constant) Settings() any  { return c }

// Every is a condition that is true on every Period-th evaluation.
// A Period of 0 or 1 makes it always true.
type Every struct {
	Period int `mapstructure:"period"`
	count  int
}

func (e *Every) Evaluate() bool {
	e.count++
	if e.Period <= 1 {
		return true
	}
	return e.count%e.Period == 0
}

func (e *Every) Settings() any { return e }

func (e *Every) Validate() error {
	if e.Period < 0 {
		return fmt.Errorf("period must be >= 0, got %d", e.Period)
	}
	return nil
}
