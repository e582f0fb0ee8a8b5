package robot

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Inputter implements platform.Inputter using robotgo synthetic input.
type Inputter struct{}

// NewInputter returns a new Inputter instance.
func NewInputter() *Inputter {
	return &Inputter{}
}

// Click moves the cursor and performs a single left click.
func (i *Inputter) Click(x, y int) error {
	robotgo.Move(x, y)
	robotgo.Click("left", false)
	return nil
}

// DoubleClick moves the cursor and performs a double left click.
func (i *Inputter) DoubleClick(x, y int) error {
	robotgo.Move(x, y)
	robotgo.Click("left", true)
	return nil
}

// KeyTap presses a key with optional modifiers.
func (i *Inputter) KeyTap(key string, mods ...string) error {
	args := make([]interface{}, len(mods))
	for n, m := range mods {
		args[n] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("key tap %q: %w", key, err)
	}
	return nil
}
