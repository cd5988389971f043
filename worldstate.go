package scottvm

// Item location sentinel. DESTROYED is conventionally room 0; CARRIED is
// out of the room-index range entirely so it can never collide with a
// valid room.
const Carried = -1

// Bitflag indices with engine-level meaning. Every other bit is
// game-defined and only ever touched by opcodes 58/60/67/68.
const (
	BitDark     = 15
	BitLightOut = 16
)

// WorldState is the mutable per-session record the VM and game loop act
// on. Beyond initialization it only offers flag and location helpers; the
// VM and the game loop's light tick make all transitions.
type WorldState struct {
	PlayerRoom int

	ItemLocation []int

	BitFlags uint64

	CurrentCounter int
	Counters       [16]int

	SavedRoom int
	RoomSaved [16]int

	LightTime int

	NounText string
}

// NewWorldState builds the initial mutable state for a freshly loaded
// game: items sit at their declared initial locations, all registers are
// zeroed, and the player starts in the database's starting room with a
// full light allowance.
func NewWorldState(gd *GameData) *WorldState {
	ws := &WorldState{
		PlayerRoom: gd.StartingRoom,
		LightTime:  gd.LightTimeInitial,
	}
	ws.ItemLocation = make([]int, gd.NumItems+1)
	for i, item := range gd.Items {
		ws.ItemLocation[i] = item.InitialLocation
	}
	return ws
}

// FlagSet reports whether bit i of BitFlags is set.
func (ws *WorldState) FlagSet(i int) bool {
	return ws.BitFlags&(1<<uint(i)) != 0
}

// SetFlag sets bit i of BitFlags.
func (ws *WorldState) SetFlag(i int) {
	ws.BitFlags |= 1 << uint(i)
}

// ClearFlag clears bit i of BitFlags.
func (ws *WorldState) ClearFlag(i int) {
	ws.BitFlags &^= 1 << uint(i)
}

// CountCarried returns the number of items currently at Carried, including
// item 0 (scott.c's CountCarried counts the full 0..NumItems range).
func (ws *WorldState) CountCarried() int {
	n := 0
	for _, loc := range ws.ItemLocation {
		if loc == Carried {
			n++
		}
	}
	return n
}

// ItemHere reports whether item i is in the player's current room.
func (ws *WorldState) ItemHere(i int) bool {
	return ws.ItemLocation[i] == ws.PlayerRoom
}

// ItemCarried reports whether item i is carried.
func (ws *WorldState) ItemCarried(i int) bool {
	return ws.ItemLocation[i] == Carried
}

// LightVisible reports whether the light source is either carried or in
// the player's current room — the condition under which light-related
// messages are shown to the player.
func (ws *WorldState) LightVisible() bool {
	return ws.ItemCarried(LightSource) || ws.ItemHere(LightSource)
}
