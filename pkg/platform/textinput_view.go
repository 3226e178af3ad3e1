package platform

import (
	"sync"

	"github.com/go-drift/caret/pkg/errors"
	"github.com/go-drift/caret/pkg/rendering"
)

// TextInputViewType is the platform view type of the hidden text field.
const TextInputViewType = "textinput"

// KeyboardType specifies the type of keyboard to show.
type KeyboardType int

const (
	KeyboardTypeText KeyboardType = iota
	KeyboardTypeNumber
	KeyboardTypeEmail
	KeyboardTypeURL
)

// TextInputAction specifies the action button on the keyboard.
type TextInputAction int

const (
	TextInputActionNone TextInputAction = iota
	TextInputActionDone
	TextInputActionGo
	TextInputActionSearch
	TextInputActionSend
	TextInputActionNext
)

// TextCapitalization specifies text capitalization behavior.
type TextCapitalization int

const (
	TextCapitalizationNone TextCapitalization = iota
	TextCapitalizationCharacters
	TextCapitalizationWords
	TextCapitalizationSentences
)

// TextInputViewConfig describes the native field. The field is invisible
// and ignores pointers; it exists so touch platforms raise a soft keyboard.
type TextInputViewConfig struct {
	FontFamily     string
	FontSize       float64
	MaxLength      int
	Placeholder    string
	KeyboardType   KeyboardType
	InputAction    TextInputAction
	Capitalization TextCapitalization
	Autocorrect    bool
}

// Params encodes the config as platform view creation parameters.
func (c TextInputViewConfig) Params() map[string]any {
	return map[string]any{
		"fontFamily":     c.FontFamily,
		"fontSize":       c.FontSize,
		"maxLength":      c.MaxLength,
		"placeholder":    c.Placeholder,
		"keyboardType":   int(c.KeyboardType),
		"inputAction":    int(c.InputAction),
		"capitalization": int(c.Capitalization),
		"autocorrect":    c.Autocorrect,
		"opacity":        0.0,
		"pointerEvents":  false,
	}
}

// TextInputViewClient receives callbacks from the native text field.
type TextInputViewClient interface {
	// OnTextChanged is called when the native field's text changes.
	OnTextChanged(text string)

	// OnAction is called when the keyboard action button is pressed.
	OnAction(action TextInputAction)

	// OnFocusChanged is called when the native field gains or loses focus.
	OnFocusChanged(focused bool)
}

// TextInputView is the Go side of a hidden native text field.
type TextInputView struct {
	basePlatformView
	config  TextInputViewConfig
	client  TextInputViewClient
	text    string
	focused bool
	mu      sync.RWMutex
}

// CreateTextInputView asks the registry for a new hidden text field.
func CreateTextInputView(r *PlatformViewRegistry, config TextInputViewConfig) (*TextInputView, error) {
	view, err := r.Create(TextInputViewType, config.Params())
	if err != nil {
		return nil, err
	}
	return view.(*TextInputView), nil
}

// Config returns the configuration the view was created with.
func (v *TextInputView) Config() TextInputViewConfig {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.config
}

// SetClient sets the callback client for this view.
func (v *TextInputView) SetClient(client TextInputViewClient) {
	v.mu.Lock()
	v.client = client
	v.mu.Unlock()
}

// Dispose drops the client so late native events go nowhere.
func (v *TextInputView) Dispose() {
	v.SetClient(nil)
}

// SetText replaces the native field's text.
func (v *TextInputView) SetText(text string) {
	v.mu.Lock()
	v.text = text
	v.mu.Unlock()
	v.invoke("setText", map[string]any{"text": text})
}

// Text returns the last text sent to or received from native code.
func (v *TextInputView) Text() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.text
}

// Focus asks native code to focus the field, raising the soft keyboard.
func (v *TextInputView) Focus() {
	v.invoke("focus", nil)
}

// Blur asks native code to drop focus, dismissing the soft keyboard.
func (v *TextInputView) Blur() {
	v.invoke("blur", nil)
}

// IsFocused reports the focus state last reported by native code.
func (v *TextInputView) IsFocused() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.focused
}

// SetGeometry positions the field over bounds.
func (v *TextInputView) SetGeometry(bounds rendering.Rect) {
	if err := v.registry.SetViewGeometry(v.viewID, bounds); err != nil {
		v.report("setGeometry", err)
	}
}

func (v *TextInputView) currentClient() TextInputViewClient {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.client
}

func (v *TextInputView) handleNativeEvent(method string, args map[string]any) error {
	switch method {
	case "onTextChanged":
		text, ok := args["text"].(string)
		if !ok {
			return &errors.ParseError{Channel: ViewsChannel, DataType: "text", Got: args["text"]}
		}
		v.handleTextChanged(text)
	case "onFocusChanged":
		focused, ok := args["focused"].(bool)
		if !ok {
			return &errors.ParseError{Channel: ViewsChannel, DataType: "focused", Got: args["focused"]}
		}
		v.handleFocusChanged(focused)
	case "onAction":
		action, ok := toInt(args["action"])
		if !ok {
			return &errors.ParseError{Channel: ViewsChannel, DataType: "action", Got: args["action"]}
		}
		v.handleAction(TextInputAction(action))
	default:
		return ErrMethodNotFound
	}
	return nil
}

func (v *TextInputView) handleTextChanged(text string) {
	v.mu.Lock()
	v.text = text
	v.mu.Unlock()

	if client := v.currentClient(); client != nil {
		client.OnTextChanged(text)
	}
}

func (v *TextInputView) handleFocusChanged(focused bool) {
	v.mu.Lock()
	v.focused = focused
	v.mu.Unlock()

	if client := v.currentClient(); client != nil {
		client.OnFocusChanged(focused)
	}
}

func (v *TextInputView) handleAction(action TextInputAction) {
	if client := v.currentClient(); client != nil {
		client.OnAction(action)
	}
}

// textInputViewFactory creates text input platform views.
type textInputViewFactory struct{}

func (textInputViewFactory) ViewType() string {
	return TextInputViewType
}

func (textInputViewFactory) Create(r *PlatformViewRegistry, viewID int64, params map[string]any) (PlatformView, error) {
	config := TextInputViewConfig{}
	if v, ok := params["fontFamily"].(string); ok {
		config.FontFamily = v
	}
	if v, ok := toFloat64(params["fontSize"]); ok {
		config.FontSize = v
	}
	if v, ok := toInt(params["maxLength"]); ok {
		config.MaxLength = v
	}
	if v, ok := params["placeholder"].(string); ok {
		config.Placeholder = v
	}
	if v, ok := toInt(params["keyboardType"]); ok {
		config.KeyboardType = KeyboardType(v)
	}
	if v, ok := toInt(params["inputAction"]); ok {
		config.InputAction = TextInputAction(v)
	}
	if v, ok := toInt(params["capitalization"]); ok {
		config.Capitalization = TextCapitalization(v)
	}
	if v, ok := params["autocorrect"].(bool); ok {
		config.Autocorrect = v
	}

	return &TextInputView{
		basePlatformView: basePlatformView{
			registry: r,
			viewID:   viewID,
			viewType: TextInputViewType,
		},
		config: config,
	}, nil
}
