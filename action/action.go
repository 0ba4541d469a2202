package action

import "fmt"

// Kind is the closed set of action kinds. Dispatch switches over it
// exhaustively, so a new kind is a compile-time-checked addition.
type Kind int

const (
	// PasteText places the payload on the clipboard and pastes it.
	PasteText Kind = iota
	// OpenApp launches the application at the payload path.
	OpenApp
	// OpenFile opens the file at the payload path with its default handler.
	OpenFile
	// RunShell runs the payload in a visible, detached shell.
	RunShell
	// ShowTemplateMenu requests a menu of text templates from the UI.
	ShowTemplateMenu
	// ShowLinkMenu requests a menu of file/app links from the UI.
	ShowLinkMenu
	// ClickSequence replays a recorded, timed sequence of pointer clicks.
	ClickSequence
)

func (k Kind) String() string {
	switch k {
	case PasteText:
		return "paste_text"
	case OpenApp:
		return "open_app"
	case OpenFile:
		return "open_file"
	case RunShell:
		return "run_shell"
	case ShowTemplateMenu:
		return "template_menu"
	case ShowLinkMenu:
		return "link_menu"
	case ClickSequence:
		return "click_sequence"
	}
	return "unknown"
}

// ParseKind converts the stored string form back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "paste_text":
		return PasteText, nil
	case "open_app":
		return OpenApp, nil
	case "open_file":
		return OpenFile, nil
	case "run_shell":
		return RunShell, nil
	case "template_menu":
		return ShowTemplateMenu, nil
	case "link_menu":
		return ShowLinkMenu, nil
	case "click_sequence":
		return ClickSequence, nil
	}
	return 0, fmt.Errorf("unknown action kind %q", s)
}

// Action is one executable action definition, bound to exactly one
// shortcut by the collaborator.
type Action struct {
	Kind    Kind
	Payload string
}
