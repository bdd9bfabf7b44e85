// Package viz is the terminal host for step playback.
//
// [App] lets the user pick a structure and an operation, then hands over to
// [Player], a Bubble Tea model that owns an experiment and drives its
// controller. Controller ticks are delivered with tea.Tick: the scheduler
// turns every requested token into a command, and the resulting message is
// passed back to Controller.Tick, which drops it if the session moved on.
//
// # Key Bindings
//
//	Space    - Play/Pause
//	Left/h   - Step backward
//	Right/l  - Step forward
//	Home/End - Jump to start/end
//	+/-      - Change speed
//	r        - New random example
//	t        - Cycle color themes
//	q        - Back / quit
package viz
