// Package scottvm interprets classic Scott Adams-style text adventure game
// databases: a compact binary image encoding rooms, items, a vocabulary, a
// table of condition/action rules and a corpus of 5-bit packed strings.
//
// The package is split into a loader (codec.go, gamedata.go, loader.go) that
// turns a raw byte image into an immutable GameData, mutable per-session
// state (worldstate.go, save.go), and a rule virtual machine (vm.go and
// friends) that drives a turn-based game loop (gameloop.go) against that
// state until the player wins, dies, or quits.
package scottvm
