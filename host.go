package scottvm

// Host is the text-I/O collaborator the VM and game loop delegate all
// interaction to: two logical windows (a persistent status region and a
// scrolling transcript), line input, timers and the save/load file
// prompts. Exactly what a terminal, a GUI, or a test double looks like is
// outside this package's concern — only the contract is.
type Host interface {
	// Print writes text to the scrolling transcript window.
	Print(s string)
	// Status writes text to the persistent status window (room name,
	// score, whatever the layout mode reserves the top rows for).
	Status(s string)
	// ClearScreen clears both windows.
	ClearScreen()

	// ReadLine blocks for one line of player input. A window-resize
	// notification observed while waiting must trigger redraw(), then
	// continue waiting rather than returning.
	ReadLine(redraw func()) (string, bool)

	// Roll reports a percentage dice roll against pct, used for ambient
	// rows whose noun field is interpreted as a probability.
	Roll(pct int) bool

	// Delay pauses for approximately seconds seconds (opcode 88).
	Delay(seconds int)

	// SaveGame and LoadGame prompt for a destination/source and persist
	// or restore the given state; LoadGame reports ok=false if the
	// player cancels or the file can't be read.
	SaveGame(gd *GameData, ws *WorldState) error
	LoadGame(gd *GameData) (*WorldState, bool)

	// Diagnostic reports a non-fatal runtime anomaly (an unrecognized
	// opcode, for instance) to an error channel separate from Print.
	Diagnostic(s string)

	// EndGame signals that the game has reached a terminal state (won,
	// died, or quit) and no further turns should be run.
	EndGame()
	// Ended reports whether EndGame has been called.
	Ended() bool

	// YouAre reports whether second-person phrasing (-y) is active.
	YouAre() bool
}
