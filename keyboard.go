package textedit

// KeyboardController decides when the platform's on-screen keyboard should
// be shown and with which layout, based on the focused target's advertised
// preferences. The platform hooks are invoked only on actual transitions,
// so show/hide animations aren't retriggered by redundant refreshes.
type KeyboardController struct {
	target  Target
	visible bool
	layout  VirtualKeyboardType

	onShow func(VirtualKeyboardType)
	onHide func()
}

// NewKeyboardController returns a controller wired to platform callbacks.
// onShow receives the layout to present; either callback may be nil.
func NewKeyboardController(onShow func(VirtualKeyboardType), onHide func()) *KeyboardController {
	return &KeyboardController{onShow: onShow, onHide: onHide}
}

// SetTarget focuses the controller on a new target, or nil when no
// editable widget holds focus. The keyboard state is re-evaluated.
func (kc *KeyboardController) SetTarget(t Target) {
	kc.target = t
	kc.Refresh()
}

// Refresh re-evaluates keyboard visibility and layout against the current
// target. Call after the target's input-active state or keyboard
// preference may have changed (e.g. a field toggling read-only mode).
func (kc *KeyboardController) Refresh() {
	if kc.target == nil || !kc.target.TextInputActive() {
		if kc.visible {
			kc.visible = false
			if kc.onHide != nil {
				kc.onHide()
			}
		}
		return
	}

	layout := kc.target.KeyboardType()
	if kc.visible && layout == kc.layout {
		return
	}
	kc.visible = true
	kc.layout = layout
	if kc.onShow != nil {
		kc.onShow(layout)
	}
}

// Visible returns whether the on-screen keyboard is currently requested.
func (kc *KeyboardController) Visible() bool {
	return kc.visible
}

// Layout returns the layout last presented. Only meaningful while Visible.
func (kc *KeyboardController) Layout() VirtualKeyboardType {
	return kc.layout
}
