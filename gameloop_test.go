package scottvm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedHost is a fakeHost that feeds ReadLine from a fixed queue of
// lines, reporting EOF once the queue is drained.
type scriptedHost struct {
	fakeHost
	lines []string
}

func (h *scriptedHost) ReadLine(redraw func()) (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	line := h.lines[0]
	h.lines = h.lines[1:]
	return line, true
}

func testLoopGameData() *GameData {
	gd := testVMGameData()
	gd.Rooms = []Room{
		{},
		{Exits: [6]int{2, 0, 0, 0, 0, 0}, Description: "a dusty cellar"},
		{Description: "a bright hall"},
	}
	gd.NumRooms = 2
	gd.WordLength = 4
	gd.Verbs = []string{"GO", "TAKE", "DROP"}
	gd.Nouns = []string{"ALL", "NORTH", "SOUTH", "EAST", "WEST", "UP", "DOWN"}
	return gd
}

func TestRenderShowsRoomExitsAndItems(t *testing.T) {
	gd := testLoopGameData()
	ws := NewWorldState(gd)
	ws.PlayerRoom = 1
	ws.ItemLocation[1] = 1
	host := &scriptedHost{}
	loop := NewLoop(gd, ws, host, NewOptions())

	loop.render()

	out := host.out.String()
	assert.Contains(t, out, "a dusty cellar")
	assert.Contains(t, out, "Obvious exits: North.")
	assert.Contains(t, out, "I can also see: ")
	assert.Contains(t, out, gd.Items[1].Text)
}

func TestRenderDarkRoomHidesDescription(t *testing.T) {
	gd := testLoopGameData()
	ws := NewWorldState(gd)
	ws.PlayerRoom = 1
	ws.SetFlag(BitDark)
	ws.ItemLocation[LightSource] = 999
	host := &scriptedHost{}
	loop := NewLoop(gd, ws, host, NewOptions())

	loop.render()

	out := host.out.String()
	assert.Contains(t, out, "It is dark.")
	assert.NotContains(t, out, "a dusty cellar")
}

func TestRenderItemsWrapsLongLines(t *testing.T) {
	gd := testLoopGameData()
	gd.Items = make([]Item, 3)
	gd.Items[1] = Item{Text: "a very long winded description of a sword"}
	gd.Items[2] = Item{Text: "a very long winded description of a shield"}
	gd.NumItems = 2
	ws := NewWorldState(gd)
	ws.PlayerRoom = 1
	ws.ItemLocation[1] = 1
	ws.ItemLocation[2] = 1
	host := &scriptedHost{}
	opts := NewOptions()
	opts.Width = 30
	loop := NewLoop(gd, ws, host, opts)

	loop.renderItems()

	out := host.out.String()
	assert.Contains(t, out, "a very long winded description of a sword")
	assert.Contains(t, out, "a very long winded description of a shield")
	assert.Greater(t, len(strings.Split(out, "\n")), 2)
}

func TestLightTickExpiresAndDestroysPrehistoricLamp(t *testing.T) {
	gd := testLoopGameData()
	ws := NewWorldState(gd)
	ws.PlayerRoom = 1
	ws.LightTime = 1
	ws.ItemLocation[LightSource] = Carried
	host := &scriptedHost{}
	opts := NewOptions()
	opts.PrehistoricLamp = true
	loop := NewLoop(gd, ws, host, opts)

	loop.lightTick()

	assert.Equal(t, 0, ws.LightTime)
	assert.True(t, ws.FlagSet(BitLightOut))
	assert.Equal(t, Destroyed, ws.ItemLocation[LightSource])
	assert.Contains(t, host.out.String(), "Your light has run out.")
}

func TestLightTickScottLightCountdown(t *testing.T) {
	gd := testLoopGameData()
	ws := NewWorldState(gd)
	ws.PlayerRoom = 1
	ws.LightTime = 10
	ws.ItemLocation[LightSource] = Carried
	host := &scriptedHost{}
	opts := NewOptions()
	opts.ScottLight = true
	loop := NewLoop(gd, ws, host, opts)

	loop.lightTick()

	assert.Equal(t, 9, ws.LightTime)
	assert.Contains(t, host.out.String(), "Light runs out in 9 turns.")
}

func TestPromptRejectsUnknownWords(t *testing.T) {
	gd := testLoopGameData()
	ws := NewWorldState(gd)
	host := &scriptedHost{lines: []string{"FROBNICATE", "NORTH"}}
	loop := NewLoop(gd, ws, host, NewOptions())

	cmd, ok := loop.prompt()
	require.True(t, ok)
	assert.Equal(t, 1, cmd.Verb)
	assert.Contains(t, host.out.String(), "You use word(s) I don't know!")
}

func TestPromptEOFEndsLoop(t *testing.T) {
	gd := testLoopGameData()
	ws := NewWorldState(gd)
	host := &scriptedHost{}
	loop := NewLoop(gd, ws, host, NewOptions())

	_, ok := loop.prompt()
	assert.False(t, ok)
	assert.True(t, loop.ended)
}
