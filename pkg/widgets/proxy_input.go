package widgets

import (
	"github.com/go-drift/caret/pkg/errors"
	"github.com/go-drift/caret/pkg/focus"
	"github.com/go-drift/caret/pkg/platform"
	"github.com/go-drift/caret/pkg/rendering"
	"github.com/go-drift/caret/pkg/textedit"
)

// proxyInput owns the hidden native text field that raises the soft
// keyboard on touch devices, and mirrors its value into the model.
type proxyInput struct {
	registry *platform.PlatformViewRegistry
	view     *platform.TextInputView
	device   platform.DeviceInfo
	model    *textedit.Model
	focus    *focus.Controller
	scope    *focus.Scope
	onEdit   func()
	onSubmit func(string)

	// applyingExternalSync is set while the model's value is written to the
	// native field, so the field's change event is not applied back.
	applyingExternalSync bool

	// pendingEchoes holds values written to the native field whose change
	// events have not arrived yet. Only used when the registry defers
	// native events, since the guard is released before they run.
	pendingEchoes []string
}

// attach creates the native field. If the platform cannot create it the
// failure is reported and the widget works from key events alone.
func (p *proxyInput) attach(host Host, config platform.TextInputViewConfig, bounds rendering.Rect) {
	p.registry = host.Views()
	p.device = host.Device()
	p.scope = host.FocusScope()
	if p.registry == nil {
		return
	}

	view, err := platform.CreateTextInputView(p.registry, config)
	if err != nil {
		errors.Report(&errors.Error{
			Op:      "widgets.TextInputBox.createProxy",
			Kind:    errors.KindPlatform,
			Channel: platform.ViewsChannel,
			Err:     err,
		})
		return
	}
	p.view = view
	view.SetClient(p)
	view.SetGeometry(rendering.RectFromLTWH(bounds.Left, bounds.Top, 1, 1))
}

// push writes the model's value to the native field.
func (p *proxyInput) push() {
	if p.view == nil {
		return
	}
	value := p.model.Value()
	if p.view.Text() == value {
		return
	}
	if p.registry.DefersEvents() {
		p.pendingEchoes = append(p.pendingEchoes, value)
	}
	p.applyingExternalSync = true
	defer func() { p.applyingExternalSync = false }()
	p.view.SetText(value)
}

// consumeEcho reports whether text is the change event for a value this
// channel wrote. Events that skip past pending values drop them too, and an
// event matching none of them means the field has moved on.
func (p *proxyInput) consumeEcho(text string) bool {
	for i, pending := range p.pendingEchoes {
		if pending == text {
			p.pendingEchoes = p.pendingEchoes[i+1:]
			return true
		}
	}
	p.pendingEchoes = nil
	return false
}

// focusField focuses the native field, raising the soft keyboard.
func (p *proxyInput) focusField() {
	if p.view != nil {
		p.view.Focus()
	}
}

// blurField releases the native field, dismissing the soft keyboard.
func (p *proxyInput) blurField() {
	if p.view != nil {
		p.view.Blur()
	}
}

// dispose destroys the native field. It is safe to call more than once.
func (p *proxyInput) dispose() {
	if p.view == nil {
		return
	}
	p.view.SetClient(nil)
	p.registry.Dispose(p.view.ViewID())
	p.view = nil
	p.pendingEchoes = nil
}

// OnTextChanged implements platform.TextInputViewClient.
func (p *proxyInput) OnTextChanged(text string) {
	if len(p.pendingEchoes) > 0 && p.consumeEcho(text) {
		return
	}
	if p.applyingExternalSync {
		return
	}
	// Desktop edits come from key events; the field only hosts the soft
	// keyboard on touch devices.
	if p.device == nil || !p.device.IsTouchDevice() {
		return
	}
	if text == p.model.Value() {
		return
	}
	p.model.SetValue(text)
	if p.onEdit != nil {
		p.onEdit()
	}
}

// OnFocusChanged implements platform.TextInputViewClient.
func (p *proxyInput) OnFocusChanged(focused bool) {
	if focused {
		p.focus.Focus()
		return
	}
	p.focus.Blur()
}

// OnAction implements platform.TextInputViewClient.
func (p *proxyInput) OnAction(action platform.TextInputAction) {
	switch action {
	case platform.TextInputActionDone, platform.TextInputActionGo,
		platform.TextInputActionSearch, platform.TextInputActionSend:
		if p.onSubmit != nil {
			p.onSubmit(p.model.Value())
		}
		p.focus.Blur()
	case platform.TextInputActionNext:
		if p.scope == nil || !p.scope.MoveFocus(1) {
			p.focus.Blur()
		}
	}
}
