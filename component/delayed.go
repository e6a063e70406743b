package component

// DelayedAction is a single deadline checked once per frame. It replaces a
// coroutine: scheduling again moves the deadline, Cancel drops it.
type DelayedAction struct {
	Deadline float64
	Pending  bool
}

// Schedule arms the action to fire delay seconds after now.
func (d *DelayedAction) Schedule(now, delay float64) {
	if d == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	d.Deadline = now + delay
	d.Pending = true
}

// Cancel disarms the action.
func (d *DelayedAction) Cancel() {
	if d == nil {
		return
	}
	d.Pending = false
	d.Deadline = 0
}

// Due reports whether the deadline has passed at now. It disarms the action
// when it returns true.
func (d *DelayedAction) Due(now float64) bool {
	if d == nil || !d.Pending || now < d.Deadline {
		return false
	}
	d.Cancel()
	return true
}
