package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/sportshub/internal/shared"
)

type fieldSpec struct {
	key    string
	label  string
	secret bool
}

type field struct {
	fieldSpec
	input textinput.Model
}

// form is a vertical stack of text inputs keyed by the JSON names used in
// [shared.ValidationError].
type form struct {
	fields    []field
	focus     int
	errs      map[string]string
	submitErr string
	success   string
	busy      bool
}

func newForm(specs ...fieldSpec) form {
	f := form{errs: map[string]string{}}
	for _, spec := range specs {
		in := textinput.New()
		in.Placeholder = strings.ToLower(spec.label)
		in.CharLimit = 128
		in.Prompt = ""
		if spec.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.fields = append(f.fields, field{fieldSpec: spec, input: in})
	}
	return f
}

// Focus focuses the current field.
func (f *form) Focus() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.focus].input.Focus()
}

func (f *form) move(delta int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].input.Focus()
}

// Update handles a key press. It reports submit when enter is pressed and the form is idle.
func (f *form) Update(msg tea.KeyMsg) (submit bool, cmd tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return false, f.move(1)
	case "shift+tab", "up":
		return false, f.move(-1)
	case "enter":
		return !f.busy, nil
	}
	if len(f.fields) == 0 {
		return false, nil
	}

	in := &f.fields[f.focus]
	in.input, cmd = in.input.Update(msg)
	delete(f.errs, in.key)
	return false, cmd
}

// Value returns the field's current text.
func (f *form) Value(key string) string {
	for _, fl := range f.fields {
		if fl.key == key {
			return fl.input.Value()
		}
	}
	return ""
}

// SetValue replaces the field's text.
func (f *form) SetValue(key, value string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].input.SetValue(value)
		}
	}
}

// Reset clears every field and error and refocuses the first field.
func (f *form) Reset() tea.Cmd {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
		f.fields[i].input.Blur()
	}
	f.focus = 0
	f.errs = map[string]string{}
	f.submitErr = ""
	return f.Focus()
}

// Fail records err on the form. Validation errors are attached to their fields.
func (f *form) Fail(err error, fallback string) {
	f.busy = false
	f.success = ""
	if ve, ok := shared.AsValidationError(err); ok {
		f.errs = make(map[string]string, len(ve.Fields))
		for k, v := range ve.Fields {
			f.errs[k] = v
		}
		f.submitErr = ""
		return
	}
	f.submitErr = shared.UserMessage(err, fallback)
}

// Submitting marks the form busy and clears previous messages.
func (f *form) Submitting() {
	f.busy = true
	f.errs = map[string]string{}
	f.submitErr = ""
	f.success = ""
}

func (f form) View() string {
	var b strings.Builder
	for i, fl := range f.fields {
		label := styles.muted.Render(fl.label)
		if i == f.focus {
			label = styles.ok.Render("> " + fl.label)
		}
		b.WriteString(label + "\n  " + fl.input.View() + "\n")
		if msg := f.errs[fl.key]; msg != "" {
			b.WriteString("  " + styles.err.Render(msg) + "\n")
		}
	}
	if f.busy {
		b.WriteString("\n" + styles.warn.Render("Submitting...") + "\n")
	}
	if f.submitErr != "" {
		b.WriteString("\n" + styles.err.Render(f.submitErr) + "\n")
	}
	if f.success != "" {
		b.WriteString("\n" + styles.ok.Render(f.success) + "\n")
	}
	return b.String()
}
