package scottvm

import (
	"strconv"
	"strings"
)

// Loop drives the turn-based game to completion: ambient VM pass, render,
// prompt and parse, player VM pass, light tick — in that order, per turn,
// until the host reports end-of-game.
type Loop struct {
	gd   *GameData
	ws   *WorldState
	vm   *VM
	host Host
	opts Options

	ended bool
}

// NewLoop builds a Loop ready to run turns against a freshly loaded game.
func NewLoop(gd *GameData, ws *WorldState, host Host, opts Options) *Loop {
	return &Loop{
		gd:   gd,
		ws:   ws,
		vm:   NewVM(gd, ws, host),
		host: host,
		opts: opts,
	}
}

// Run executes turns until the host signals the game has ended.
func (l *Loop) Run() {
	for !l.ended {
		l.turn()
	}
}

func (l *Loop) turn() {
	l.vm.Run(0, 0)
	if l.host.Ended() {
		l.ended = true
		return
	}

	l.render()

	cmd, ok := l.prompt()
	if !ok {
		return
	}
	if cmd.Restore {
		if ws, ok := l.host.LoadGame(l.gd); ok {
			l.ws = ws
			l.vm = NewVM(l.gd, l.ws, l.host)
		}
		return
	}

	l.ws.NounText = strings.ToUpper(cmd.NounRaw)
	fl := l.vm.Run(cmd.Verb, cmd.Noun)
	if l.host.Ended() {
		l.ended = true
		return
	}
	switch fl {
	case FlNoMatch:
		l.host.Print("I don't understand your command.\n")
	case FlImpossible:
		l.host.Print("I can't do that yet.\n")
	}

	l.lightTick()
	if l.host.Ended() {
		l.ended = true
	}
}

// render prints the room description, exits and visible items, or a dark
// warning if the room is dark and no light is present.
func (l *Loop) render() {
	ws := l.ws
	gd := l.gd

	if ws.FlagSet(BitDark) && !ws.LightVisible() {
		l.host.Print("It is dark.\n")
		return
	}

	l.host.Print(gd.RoomDescription(ws.PlayerRoom, l.opts.YouAre) + "\n")

	var exits []string
	for i, name := range []string{"North", "South", "East", "West", "Up", "Down"} {
		if gd.Rooms[ws.PlayerRoom].Exits[i] != 0 {
			exits = append(exits, name)
		}
	}
	if len(exits) > 0 {
		l.host.Print("Obvious exits: " + strings.Join(exits, ", ") + ".\n")
	}

	l.renderItems()
	if l.opts.TRS80 {
		l.host.Print(TRS80Divider)
	}
}

func (l *Loop) renderItems() {
	sep := " - "
	if l.opts.TRS80 {
		sep = ". "
	}

	var names []string
	for i, loc := range l.ws.ItemLocation {
		if loc == l.ws.PlayerRoom {
			names = append(names, l.gd.Items[i].Text)
		}
	}
	if len(names) == 0 {
		return
	}

	if l.opts.YouAre {
		l.host.Print("You can also see: ")
	} else {
		l.host.Print("I can also see: ")
	}

	width := l.opts.Width - 10
	if width <= 0 {
		width = 70
	}
	lineLen := 0
	for i, n := range names {
		chunk := n
		if i > 0 {
			chunk = sep + n
		}
		if lineLen+len(chunk) > width {
			l.host.Print("\n")
			lineLen = 0
			chunk = n
		}
		l.host.Print(chunk)
		lineLen += len(chunk)
	}
	l.host.Print("\n")
}

func (l *Loop) prompt() (ParsedCommand, bool) {
	for {
		line, ok := l.host.ReadLine(func() { l.render() })
		if !ok {
			l.ended = true
			return ParsedCommand{}, false
		}
		cmd, matched := ParseInput(l.gd, line)
		if !matched {
			l.host.Print("You use word(s) I don't know!\n")
			continue
		}
		return cmd, true
	}
}

// lightTick decrements the light source's remaining turns (if it is not
// already destroyed and isn't unlimited), announcing exhaustion and
// low-fuel warnings the way the original engine does.
func (l *Loop) lightTick() {
	ws := l.ws
	gd := l.gd

	if ws.ItemLocation[LightSource] == Destroyed || ws.LightTime == -1 {
		return
	}

	ws.LightTime--

	if ws.LightTime == 0 {
		ws.SetFlag(BitLightOut)
		if ws.LightVisible() {
			l.host.Print("Your light has run out.\n")
		}
		if l.opts.PrehistoricLamp {
			ws.ItemLocation[LightSource] = Destroyed
		}
		return
	}

	if ws.LightTime >= 1 && ws.LightTime <= 24 && ws.LightVisible() {
		if l.opts.ScottLight {
			l.host.Print("Light runs out in ")
			l.host.Print(strconv.Itoa(ws.LightTime))
			l.host.Print(" turns.\n")
		} else if ws.LightTime%5 == 0 {
			l.host.Print("Your light is growing dim.\n")
		}
	}
}
