package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading           *lipgloss.Style
	Item              *lipgloss.Style
	ItemIndicator     *lipgloss.Style
	CursorItem        *lipgloss.Style
	SelectedItem      *lipgloss.Style
	SelectedMarker    *lipgloss.Style
	ColumnHeader      *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Header            *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
	PanelBorder       *lipgloss.Style
	PanelTitle        *lipgloss.Style
	PanelBody         *lipgloss.Style
	PanelPlaceholder  *lipgloss.Style
	PanelError        *lipgloss.Style
	FormLabel         *lipgloss.Style
	FormFocusedLabel  *lipgloss.Style
	FormFieldError    *lipgloss.Style
	SubmitIdle        *lipgloss.Style
	SubmitBusy        *lipgloss.Style
	Notices           map[string]*lipgloss.Style
}

var defaultStyles = Styles{
	Loading:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true)),
	Item:          ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
	ItemIndicator: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))),
	CursorItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("24")).Bold(true),
	),
	SelectedMarker: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)),
	ColumnHeader:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true)),
	Error:          ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)),
	Info:           ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
	Header:         ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)),
	Footer:         ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))),
	Filter:         ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
	FilterPrompt:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33"))),
	PanelBorder:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))),
	PanelTitle:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)),
	PanelBody:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("250"))),
	PanelPlaceholder: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)),
	PanelError:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)),
	FormLabel:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245"))),
	FormFocusedLabel: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)),
	FormFieldError:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("203"))),
	SubmitIdle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Padding(0, 1),
	),
	SubmitBusy: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("237")).Padding(0, 1),
	),
	Notices: map[string]*lipgloss.Style{
		"success": ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("35")).Padding(0, 1)),
		"warning": ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("178")).Padding(0, 1)),
		"danger":  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("160")).Padding(0, 1)),
		"info":    ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Padding(0, 1)),
	},
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Notice returns the style for a notification kind, falling back to info.
func (s *Styles) Notice(kind string) *lipgloss.Style {
	if st, ok := s.Notices[kind]; ok {
		return st
	}
	return s.Notices["info"]
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
