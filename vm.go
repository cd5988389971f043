package scottvm

import "fmt"

// Run-final fl values, per the row-selection loop.
const (
	FlNoMatch     = -1 // no row qualified: unknown command
	FlImpossible  = -2 // rows qualified but none passed conditions
	FlFired       = 0  // at least one row fired
)

const numRooms6Exits = 6

// System verb codes the VM gives special handling once no action row
// claims the command.
const (
	verbGo   = 1
	verbTake = 10
	verbDrop = 18
)

// VM interprets a GameData's action table against a WorldState. It holds
// no state of its own beyond the recursion depth used to stop TAKE/DROP
// ALL iteration from re-entering itself.
type VM struct {
	gd   *GameData
	ws   *WorldState
	host Host

	allDepth int
}

// NewVM builds a VM over gd and ws, rendering through host.
func NewVM(gd *GameData, ws *WorldState, host Host) *VM {
	return &VM{gd: gd, ws: ws, host: host}
}

// rowOutcome is returned internally by runRow to tell Run whether opcode 73
// (continuation) or 63 (end-of-game) fired, without overloading the fl
// return value.
type rowOutcome struct {
	fired        bool
	continuation bool
	ended        bool
}

// Run executes one VM pass for the given verb/noun, or (0, 0) for the
// ambient pass. It returns the final fl value described in the rule VM
// design: 0 if some row fired, -1 if nothing qualified, -2 if rows
// qualified but every one failed its conditions.
func (vm *VM) Run(verb, noun int) int {
	fl := -1
	doagain := false

	for i := 0; i <= vm.gd.NumActions; i++ {
		action := &vm.gd.Actions[i]

		isPlayerPass := verb != 0
		if isPlayerPass && doagain && action.Vocab != 0 {
			break
		}
		if isPlayerPass && !doagain && fl == 0 {
			break
		}

		qualifies := vm.rowQualifies(action, verb, noun, doagain)

		if qualifies {
			if fl == -1 {
				fl = -2
			}
			if vm.conditionsPass(action) {
				fl = 0
				outcome := vm.runRow(action)
				if outcome.ended {
					return fl
				}
				doagain = outcome.continuation
				if isPlayerPass && !outcome.continuation {
					return fl
				}
			}
		}

		if i+1 <= vm.gd.NumActions && vm.gd.Actions[i+1].Vocab != 0 {
			doagain = false
		}
	}

	if fl != 0 {
		vm.runSystemVerb(verb, noun)
	}

	return fl
}

// rowQualifies implements the vocab gate: exact verb/noun match, noun
// wildcard (0), ambient probability roll on a noun-as-percent row, and the
// unconditional vocab==0 continuation row during doagain.
func (vm *VM) rowQualifies(a *Action, verb, noun int, doagain bool) bool {
	if doagain && a.Vocab == 0 {
		return true
	}
	if verb == 0 {
		if a.Verb == 0 {
			return vm.host.Roll(a.Noun)
		}
		return false
	}
	return a.Verb == verb && (a.Noun == noun || a.Noun == 0)
}

func (vm *VM) conditionsPass(a *Action) bool {
	for _, c := range a.Conditions {
		if !vm.evalCondition(c) {
			return false
		}
	}
	return true
}

func (vm *VM) evalCondition(c Condition) bool {
	ws := vm.ws
	switch c.Op {
	case CondParam:
		return true
	case CondItemCarried:
		return ws.ItemCarried(c.Arg)
	case CondItemHere:
		return ws.ItemHere(c.Arg)
	case CondItemCarriedOrHere:
		return ws.ItemCarried(c.Arg) || ws.ItemHere(c.Arg)
	case CondPlayerInRoom:
		return ws.PlayerRoom == c.Arg
	case CondItemNotHere:
		return !ws.ItemHere(c.Arg)
	case CondItemNotCarried:
		return !ws.ItemCarried(c.Arg)
	case CondPlayerNotInRoom:
		return ws.PlayerRoom != c.Arg
	case CondFlagSet:
		return ws.FlagSet(c.Arg)
	case CondFlagClear:
		return !ws.FlagSet(c.Arg)
	case CondSomethingCarried:
		return ws.CountCarried() > 0
	case CondNothingCarried:
		return ws.CountCarried() == 0
	case CondItemNotCarriedOrHere:
		return !ws.ItemCarried(c.Arg) && !ws.ItemHere(c.Arg)
	case CondItemNotDestroyed:
		return ws.ItemLocation[c.Arg] != Destroyed
	case CondItemDestroyed:
		return ws.ItemLocation[c.Arg] == Destroyed
	case CondCounterGT:
		return ws.CurrentCounter > c.Arg
	case CondCounterLE:
		return ws.CurrentCounter <= c.Arg
	case CondItemMoved:
		return ws.ItemLocation[c.Arg] != vm.gd.Items[c.Arg].InitialLocation
	case CondItemAtInitial:
		return ws.ItemLocation[c.Arg] == vm.gd.Items[c.Arg].InitialLocation
	case CondCounterEQ:
		return ws.CurrentCounter == c.Arg
	default:
		return false
	}
}

// paramQueue collects the op-0 condition args of a row in encounter order,
// to be consumed left-to-right by parameter-taking opcodes.
func (vm *VM) paramQueue(a *Action) []int {
	var params []int
	for _, c := range a.Conditions {
		if c.Op == CondParam {
			params = append(params, c.Arg)
		}
	}
	return params
}

// runRow executes a qualifying, condition-passing row's opcodes
// left-to-right, reporting whether opcode 73 (continuation) or 63
// (end-of-game) fired.
func (vm *VM) runRow(a *Action) rowOutcome {
	params := vm.paramQueue(a)
	next := func() int {
		if len(params) == 0 {
			return 0
		}
		p := params[0]
		params = params[1:]
		return p
	}

	var outcome rowOutcome
	for _, op := range a.Opcodes {
		if vm.execOpcode(op, next) {
			outcome.continuation = true
		}
		if op == 63 {
			outcome.ended = true
			return outcome
		}
	}
	return outcome
}

// execOpcode runs a single action opcode, returning true iff it was the
// continuation opcode (73).
func (vm *VM) execOpcode(op int, next func() int) bool {
	ws := vm.ws
	gd := vm.gd

	switch {
	case op == 0:
		return false
	case op >= 1 && op <= 51:
		vm.host.Print(vm.message(op))
		vm.host.Print("\n")
		return false
	case op >= 102 && op <= 149:
		vm.host.Print(vm.message(op - 50))
		vm.host.Print("\n")
		return false
	}

	switch op {
	case 52:
		item := next()
		if ws.CountCarried() >= gd.MaxCarry {
			vm.host.Print(vm.tooMuchToCarry())
		} else {
			ws.ItemLocation[item] = Carried
		}
	case 53:
		item := next()
		ws.ItemLocation[item] = ws.PlayerRoom
	case 54:
		ws.PlayerRoom = next()
	case 55, 59:
		item := next()
		ws.ItemLocation[item] = Destroyed
	case 56:
		ws.SetFlag(BitDark)
	case 57:
		ws.ClearFlag(BitDark)
	case 58:
		ws.SetFlag(next())
	case 60:
		ws.ClearFlag(next())
	case 61:
		ws.ClearFlag(BitDark)
		ws.PlayerRoom = gd.NumRooms
	case 62:
		item := next()
		room := next()
		ws.ItemLocation[item] = room
	case 63:
		vm.host.Print("The game is now over.\n")
		vm.host.EndGame()
	case 64, 76:
		// historical nops
	case 65:
		vm.score()
	case 66:
		vm.printInventory()
	case 67:
		ws.SetFlag(0)
	case 68:
		ws.ClearFlag(0)
	case 69:
		ws.LightTime = gd.LightTimeInitial
		ws.ItemLocation[LightSource] = Carried
		ws.ClearFlag(BitLightOut)
	case 70:
		vm.host.ClearScreen()
	case 71:
		if err := vm.host.SaveGame(vm.gd, vm.ws); err != nil {
			vm.host.Diagnostic(err.Error())
		}
	case 72:
		a1, a2 := next(), next()
		ws.ItemLocation[a1], ws.ItemLocation[a2] = ws.ItemLocation[a2], ws.ItemLocation[a1]
	case 73:
		return true
	case 74:
		item := next()
		ws.ItemLocation[item] = Carried
	case 75:
		a1, a2 := next(), next()
		ws.ItemLocation[a1] = ws.ItemLocation[a2]
	case 77:
		if ws.CurrentCounter >= 0 {
			ws.CurrentCounter--
		}
	case 78:
		vm.host.Print(fmt.Sprintf("%d", ws.CurrentCounter))
	case 79:
		ws.CurrentCounter = next()
	case 80:
		ws.PlayerRoom, ws.SavedRoom = ws.SavedRoom, ws.PlayerRoom
	case 81:
		idx := next()
		ws.CurrentCounter, ws.Counters[idx] = ws.Counters[idx], ws.CurrentCounter
	case 82:
		ws.CurrentCounter += next()
	case 83:
		ws.CurrentCounter -= next()
		if ws.CurrentCounter < -1 {
			ws.CurrentCounter = -1
		}
	case 84:
		vm.host.Print(ws.NounText)
	case 85:
		vm.host.Print(ws.NounText)
		vm.host.Print("\n")
	case 86:
		vm.host.Print("\n")
	case 87:
		idx := next()
		ws.PlayerRoom, ws.RoomSaved[idx] = ws.RoomSaved[idx], ws.PlayerRoom
	case 88:
		vm.host.Delay(2)
	case 89:
		next()
	default:
		vm.host.Diagnostic(fmt.Sprintf("unrecognized action opcode %d, treated as nop", op))
	}
	return false
}

func (vm *VM) message(i int) string {
	if i < 0 || i >= len(vm.gd.Messages) {
		return ""
	}
	return vm.gd.Messages[i]
}

func (vm *VM) tooMuchToCarry() string {
	if vm.host.YouAre() {
		return "You are carrying too much.\n"
	}
	return "I've too much to carry.\n"
}

// score counts treasures already in the treasure room and reports the
// ratio; ending the game if every known treasure has been stored.
func (vm *VM) score() {
	stored := 0
	for i, item := range vm.gd.Items {
		if vm.ws.ItemLocation[i] == vm.gd.TreasureRoom && len(item.Text) > 0 && item.Text[0] == '*' {
			stored++
		}
	}
	total := vm.gd.TotalTreasures
	if total == 0 {
		total = 1
	}
	pct := stored * 100 / total
	if vm.host.YouAre() {
		vm.host.Print(fmt.Sprintf("You have stored %d treasures. On a scale of 0 to 100, that rates %d.\n", stored, pct))
	} else {
		vm.host.Print(fmt.Sprintf("I've stored %d treasures. On a scale of 0 to 100, that rates %d.\n", stored, pct))
	}
	if stored >= vm.gd.TotalTreasures {
		vm.host.Print("Well done.\n")
		vm.host.EndGame()
	}
}

func (vm *VM) printInventory() {
	if vm.host.YouAre() {
		vm.host.Print("You are carrying:\n")
	} else {
		vm.host.Print("I'm carrying:\n")
	}
	any := false
	for i, loc := range vm.ws.ItemLocation {
		if loc == Carried {
			vm.host.Print(" - " + vm.gd.Items[i].Text + "\n")
			any = true
		}
	}
	if !any {
		vm.host.Print(" - nothing\n")
	}
}

// runSystemVerb applies the GO/TAKE/DROP defaults once no action row has
// claimed the command, per the row-selection loop's final fl contract.
func (vm *VM) runSystemVerb(verb, noun int) {
	switch verb {
	case verbGo:
		vm.systemGo(noun)
	case verbTake:
		vm.systemTakeDrop(noun, true)
	case verbDrop:
		vm.systemTakeDrop(noun, false)
	}
}

func (vm *VM) systemGo(noun int) {
	if noun == 0 {
		vm.host.Print("Give me a direction too.\n")
		return
	}
	if noun < 1 || noun > numRooms6Exits {
		vm.host.Print("I don't know how to go that way.\n")
		return
	}

	ws := vm.ws
	dark := ws.FlagSet(BitDark) && !ws.LightVisible()
	if dark {
		vm.host.Print("Dangerous to move in the dark!\n")
	}

	exit := vm.gd.Rooms[ws.PlayerRoom].Exits[noun-1]
	if exit != 0 {
		ws.PlayerRoom = exit
		return
	}
	if dark {
		if vm.host.YouAre() {
			vm.host.Print("You fell down and broke your neck.\n")
		} else {
			vm.host.Print("I fell down and broke my neck.\n")
		}
		vm.host.EndGame()
		return
	}
	if vm.host.YouAre() {
		vm.host.Print("You can't go in that direction.\n")
	} else {
		vm.host.Print("I can't go in that direction.\n")
	}
}

// systemTakeDrop implements system verbs TAKE and DROP, including the ALL
// iteration with a recursion lock so per-item action rows triggered while
// iterating cannot recurse back into ALL handling.
func (vm *VM) systemTakeDrop(noun int, take bool) {
	ws := vm.ws
	gd := vm.gd

	if ws.NounText == "ALL" || ws.NounText == "all" {
		if vm.allDepth > 0 {
			return
		}
		vm.allDepth++
		defer func() { vm.allDepth-- }()

		found := false
		for i, item := range gd.Items {
			if item.AutoWord == "" || item.AutoWord[0] == '*' {
				continue
			}
			if take && !ws.ItemHere(i) {
				continue
			}
			if !take && !ws.ItemCarried(i) {
				continue
			}
			found = true
			vm.Run(boolToVerb(take), i)
			vm.moveTakenOrDropped(i, take)
		}
		if !found {
			if take {
				vm.host.Print("Nothing taken.\n")
			} else {
				vm.host.Print("Nothing dropped.\n")
			}
		}
		return
	}

	for i, item := range gd.Items {
		if item.AutoWord == "" {
			continue
		}
		if !matchAutoWord(item.AutoWord, ws.NounText) {
			continue
		}
		if take && ws.ItemHere(i) {
			vm.moveTakenOrDropped(i, true)
			return
		}
		if !take && ws.ItemCarried(i) {
			vm.moveTakenOrDropped(i, false)
			return
		}
	}

	if take {
		if vm.host.YouAre() {
			vm.host.Print("It is beyond your power to do that.\n")
		} else {
			vm.host.Print("It's beyond my power to do that.\n")
		}
	} else {
		vm.host.Print("It's not here.\n")
	}
}

func matchAutoWord(autoWord, typed string) bool {
	w := autoWord
	if len(w) > 0 && w[0] == '*' {
		w = w[1:]
	}
	return w == typed
}

func (vm *VM) moveTakenOrDropped(item int, take bool) {
	ws := vm.ws
	if take {
		if ws.CountCarried() >= vm.gd.MaxCarry {
			vm.host.Print(vm.tooMuchToCarry())
			return
		}
		ws.ItemLocation[item] = Carried
	} else {
		ws.ItemLocation[item] = ws.PlayerRoom
	}
}

func boolToVerb(take bool) int {
	if take {
		return verbTake
	}
	return verbDrop
}
