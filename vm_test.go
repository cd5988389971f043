package scottvm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost is a minimal in-memory Host for VM tests: it records printed
// text and never actually blocks on input, timers or files.
type fakeHost struct {
	out       strings.Builder
	diags     []string
	ended     bool
	youAre    bool
	rollAlwaysTrue bool
}

func (h *fakeHost) Print(s string)   { h.out.WriteString(s) }
func (h *fakeHost) Status(s string)  { h.out.WriteString(s) }
func (h *fakeHost) ClearScreen()     {}
func (h *fakeHost) ReadLine(redraw func()) (string, bool) { return "", false }
func (h *fakeHost) Roll(pct int) bool { return h.rollAlwaysTrue }
func (h *fakeHost) Delay(seconds int) {}
func (h *fakeHost) SaveGame(gd *GameData, ws *WorldState) error { return nil }
func (h *fakeHost) LoadGame(gd *GameData) (*WorldState, bool)   { return nil, false }
func (h *fakeHost) Diagnostic(s string) { h.diags = append(h.diags, s) }
func (h *fakeHost) EndGame()  { h.ended = true }
func (h *fakeHost) Ended() bool { return h.ended }
func (h *fakeHost) YouAre() bool { return h.youAre }

func testVMGameData() *GameData {
	gd := testGameData()
	gd.Messages = []string{"zero", "you see nothing special", "too dark to see"}
	gd.TreasureRoom = 4
	gd.TotalTreasures = 1
	gd.Items[1].Text = "*treasure"
	return gd
}

func TestConditionEvaluation(t *testing.T) {
	gd := testVMGameData()
	ws := NewWorldState(gd)
	host := &fakeHost{}
	vm := NewVM(gd, ws, host)

	ws.PlayerRoom = 1
	ws.ItemLocation[1] = 1

	assert.True(t, vm.evalCondition(Condition{Op: CondItemHere, Arg: 1}))
	assert.False(t, vm.evalCondition(Condition{Op: CondItemCarried, Arg: 1}))
	assert.True(t, vm.evalCondition(Condition{Op: CondPlayerInRoom, Arg: 1}))
	assert.False(t, vm.evalCondition(Condition{Op: CondPlayerNotInRoom, Arg: 1}))

	ws.CurrentCounter = 5
	assert.True(t, vm.evalCondition(Condition{Op: CondCounterGT, Arg: 3}))
	assert.False(t, vm.evalCondition(Condition{Op: CondCounterLE, Arg: 3}))
	assert.True(t, vm.evalCondition(Condition{Op: CondCounterEQ, Arg: 5}))
}

func TestRunNoMatchingRow(t *testing.T) {
	gd := testVMGameData()
	gd.Actions = []Action{{Vocab: 0}}
	gd.NumActions = len(gd.Actions) - 1
	ws := NewWorldState(gd)
	host := &fakeHost{}
	vm := NewVM(gd, ws, host)

	fl := vm.Run(99, 99)
	assert.Equal(t, FlNoMatch, fl)
}

func TestRunConditionsFail(t *testing.T) {
	gd := testVMGameData()
	// verb 5, noun 1, with a condition (player in room 99) that never holds.
	gd.Actions = []Action{
		{Vocab: 0},
		{
			Vocab:      5*150 + 1,
			Verb:       5,
			Noun:       1,
			Conditions: []Condition{{Op: CondPlayerInRoom, Arg: 99}},
			Opcodes:    []int{1},
		},
	}
	gd.NumActions = len(gd.Actions) - 1
	ws := NewWorldState(gd)
	ws.PlayerRoom = 1
	host := &fakeHost{}
	vm := NewVM(gd, ws, host)

	fl := vm.Run(5, 1)
	assert.Equal(t, FlImpossible, fl)
}

func TestRunFiresMessageOpcode(t *testing.T) {
	gd := testVMGameData()
	gd.Actions = []Action{
		{Vocab: 0},
		{
			Vocab:   5*150 + 1,
			Verb:    5,
			Noun:    1,
			Opcodes: []int{1},
		},
	}
	gd.NumActions = len(gd.Actions) - 1
	ws := NewWorldState(gd)
	host := &fakeHost{}
	vm := NewVM(gd, ws, host)

	fl := vm.Run(5, 1)
	assert.Equal(t, FlFired, fl)
	assert.Contains(t, host.out.String(), gd.Messages[1])
}

func TestContinuationChaining(t *testing.T) {
	gd := testVMGameData()
	gd.Actions = []Action{
		{Vocab: 0},
		{Vocab: 5*150 + 1, Verb: 5, Noun: 1, Opcodes: []int{73}},
		{Vocab: 0, Opcodes: []int{1}},
		{Vocab: 6 * 150, Verb: 6, Noun: 0, Opcodes: []int{2}},
	}
	gd.NumActions = len(gd.Actions) - 1
	ws := NewWorldState(gd)
	host := &fakeHost{}
	vm := NewVM(gd, ws, host)

	vm.Run(5, 1)
	assert.Contains(t, host.out.String(), gd.Messages[1])
	assert.NotContains(t, host.out.String(), gd.Messages[2])
}

func TestParamQueueOrdering(t *testing.T) {
	gd := testVMGameData()
	a := Action{
		Conditions: []Condition{
			{Op: CondParam, Arg: 3},
			{Op: CondPlayerInRoom, Arg: 1},
			{Op: CondParam, Arg: 7},
		},
	}
	ws := NewWorldState(gd)
	ws.PlayerRoom = 1
	vm := NewVM(gd, ws, &fakeHost{})

	assert.Equal(t, []int{3, 7}, vm.paramQueue(&a))
}

func TestOpcode83FloorsAtMinusOne(t *testing.T) {
	gd := testVMGameData()
	ws := NewWorldState(gd)
	ws.CurrentCounter = 2
	vm := NewVM(gd, ws, &fakeHost{})

	a := Action{
		Conditions: []Condition{{Op: CondParam, Arg: 10}},
		Opcodes:    []int{83},
	}
	vm.runRow(&a)
	assert.Equal(t, -1, ws.CurrentCounter)
}

func TestOpcode69RefillsLight(t *testing.T) {
	gd := testVMGameData()
	gd.LightTimeInitial = 250
	ws := NewWorldState(gd)
	ws.LightTime = 0
	ws.SetFlag(BitLightOut)
	ws.ItemLocation[LightSource] = Destroyed
	vm := NewVM(gd, ws, &fakeHost{})

	a := Action{Opcodes: []int{69}}
	vm.runRow(&a)

	assert.Equal(t, Carried, ws.ItemLocation[LightSource])
	assert.Equal(t, gd.LightTimeInitial, ws.LightTime)
	assert.False(t, ws.FlagSet(BitLightOut))
}

func TestOpcode87RoomSwap(t *testing.T) {
	gd := testVMGameData()
	ws := NewWorldState(gd)
	ws.PlayerRoom = 1
	ws.RoomSaved[3] = 2
	vm := NewVM(gd, ws, &fakeHost{})

	a := Action{
		Conditions: []Condition{{Op: CondParam, Arg: 3}},
		Opcodes:    []int{87},
	}
	vm.runRow(&a)

	assert.Equal(t, 2, ws.PlayerRoom)
	assert.Equal(t, 1, ws.RoomSaved[3])
}

func TestScoreEndsGameWhenComplete(t *testing.T) {
	gd := testVMGameData()
	ws := NewWorldState(gd)
	ws.ItemLocation[1] = gd.TreasureRoom
	host := &fakeHost{}
	vm := NewVM(gd, ws, host)

	a := Action{Opcodes: []int{65}}
	vm.runRow(&a)

	assert.True(t, host.ended)
}

func TestSystemGoMovesPlayer(t *testing.T) {
	gd := testVMGameData()
	gd.Rooms = []Room{{}, {Exits: [6]int{2, 0, 0, 0, 0, 0}}, {}}
	gd.NumRooms = 2
	ws := NewWorldState(gd)
	ws.PlayerRoom = 1
	host := &fakeHost{}
	vm := NewVM(gd, ws, host)

	vm.Run(verbGo, 1) // verb=GO, noun=1 (north)

	assert.Equal(t, 2, ws.PlayerRoom)
}

func TestSystemGoDiesInDarkAgainstWall(t *testing.T) {
	gd := testVMGameData()
	gd.Rooms = []Room{{}, {Exits: [6]int{0, 0, 0, 0, 0, 0}}, {}}
	gd.NumRooms = 2
	ws := NewWorldState(gd)
	ws.PlayerRoom = 1
	ws.SetFlag(BitDark)
	ws.ItemLocation[LightSource] = 999 // not carried, not here
	host := &fakeHost{}
	vm := NewVM(gd, ws, host)

	vm.Run(verbGo, 1)

	require.True(t, host.ended)
}

func TestSystemTakeAllNothingHere(t *testing.T) {
	gd := testVMGameData()
	ws := NewWorldState(gd)
	host := &fakeHost{}
	vm := NewVM(gd, ws, host)

	ws.NounText = "ALL"
	vm.Run(verbTake, 0)

	assert.Contains(t, host.out.String(), "Nothing taken.")
}
