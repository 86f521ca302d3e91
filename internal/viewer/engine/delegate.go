package engine

// Delegate receives the engine's outbound signals. Calls happen
// synchronously inside Dispatch, after the state has been updated.
type Delegate interface {
	// OnDismiss is called when the viewer should close.
	OnDismiss()

	// OnPageChanged is called after the current page changed.
	OnPageChanged(index int)
}

// DelegateFuncs adapts plain functions to the Delegate interface. Nil
// fields are ignored.
type DelegateFuncs struct {
	Dismiss     func()
	PageChanged func(index int)
}

// OnDismiss calls d.Dismiss.
func (d DelegateFuncs) OnDismiss() {
	if d.Dismiss != nil {
		d.Dismiss()
	}
}

// OnPageChanged calls d.PageChanged.
func (d DelegateFuncs) OnPageChanged(index int) {
	if d.PageChanged != nil {
		d.PageChanged(index)
	}
}
