// Package termhost hosts modals inside a bubbletea program.
//
// A Model wraps the program's own model. Open modals are drawn as rounded
// lipgloss boxes centered on a dimmed screen (or appended below the
// background view before the window size is known); while one is open, key
// presses go to the top-most modal and Esc closes it.
//
//	m := termhost.New(app, termhost.Config{})
//	p := tea.NewProgram(m)
//	defer m.Watch(p.Send)()
//
//	// anywhere, e.g. from a tea.Cmd or another goroutine
//	modal.GetModal().ShowModal(termhost.Text, modal.Props{
//	    "title": "Saved",
//	    "text":  "All changes written.",
//	})
//
// Terminals have no exit animation, so closing a modal reports exit
// completion right away.
package termhost
