// Package widgets provides the objects placed in a caret scene: the
// single-line TextInputBox, a hoverable Button and a styled Label.
//
// Widgets draw through the scene's retained rendering.Surface and subscribe
// to its pointer and key streams. Each widget owns its state; there is no
// process-wide focus or timer state.
//
//	box := widgets.NewTextInputBox(sc, widgets.TextInputConfig{
//	    X: 400, Y: 300,
//	    MaxLength:   20,
//	    Placeholder: "Your name",
//	})
//	defer box.Destroy()
//
// # Text entry on touch devices
//
// A rendered scene has no native caret, so TextInputBox edits a
// textedit.Model from two channels. Key events from a physical keyboard go
// straight to the model. On touch devices a hidden native text field is
// focused to raise the soft keyboard, and its value is mirrored into the
// model. Writes from the model to the hidden field are made with a guard set
// so the field's change event does not come back as a second edit.
package widgets
