// Package ui contains the Bubble Tea program behind the event desk.
// Model focuses on message orchestration while dedicated helpers own
// navigation, filter input, the detail panel, the create form and
// rendering.
//
// Message flow:
//   - While the create form is on screen, key presses go to the form first.
//     Everything else is routed through a typed handler registry so each
//     tea.Msg reaches one focused function.
//   - Activating a row selects it, moves the detail panel to loading and
//     starts a fetch through the command bus. Each fetch carries a ticket;
//     results for superseded tickets are dropped and their requests are
//     cancelled.
//   - Submitting the form disables the submit control until the result
//     arrives. The outcome is shown as a notice that dismisses itself.
//
// State ownership:
//   - The event table lives in internal/ui/state.Level, which tracks rows,
//     filtering, the single selected row and the viewport.
//   - The detail panel lives in internal/ui/state.Panel.
//   - The fetched event list lives in internal/state and is kept current by
//     the dispatcher, fed by the backend watcher and by manual reloads.
package ui
