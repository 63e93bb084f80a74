package calc

import (
	"time"

	"github.com/dop251/goja"
)

// newInterruptTimer arms a goja interrupt that fires at the deadline.
func newInterruptTimer(vm *goja.Runtime, deadline time.Time) *time.Timer {
	return time.AfterFunc(time.Until(deadline), func() {
		vm.Interrupt("deadline exceeded")
	})
}
