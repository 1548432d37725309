package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Back    key.Binding

	Next      key.Binding
	Prev      key.Binding
	Jump      key.Binding
	Pause     key.Binding
	Rules     key.Binding
	Settings  key.Binding
	History   key.Binding
	Victory   key.Binding
	Defeat    key.Binding
	Reset     key.Binding
	NextField key.Binding
	PrevField key.Binding

	Delete key.Binding
	Export key.Binding
	Import key.Binding
	Copy   key.Binding
	Recap  key.Binding

	Help key.Binding
	Quit key.Binding
}

// newKeyMap builds the bindings with help text from tr.
func newKeyMap(t func(string) string) keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "")),
		Left:    key.NewBinding(key.WithKeys("left", "h")),
		Right:   key.NewBinding(key.WithKeys("right", "l")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", t("keys.toggle"))),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", t("keys.confirm"))),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", t("keys.back"))),

		Next:      key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/n", t("keys.next"))),
		Prev:      key.NewBinding(key.WithKeys("left", "h", "b"), key.WithHelp("←/b", t("keys.prev"))),
		Jump:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", t("keys.jump"))),
		Pause:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", t("keys.pause"))),
		Rules:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", t("keys.rules"))),
		Settings:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", t("keys.settings"))),
		History:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", t("keys.history"))),
		Victory:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", t("keys.end_victory"))),
		Defeat:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", t("keys.end_defeat"))),
		Reset:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", t("keys.reset"))),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "")),

		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", t("keys.delete"))),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", t("keys.export"))),
		Import: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", t("keys.import"))),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", t("keys.copy"))),
		Recap:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", t("keys.recap"))),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", t("keys.help"))),
		Quit: key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", t("keys.quit"))),
	}
}
