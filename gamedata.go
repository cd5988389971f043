package scottvm

// LightSource is the hardcoded item index that carries the light, a
// convention of this game family rather than something the database
// declares.
const LightSource = 9

// Location sentinels for WorldState.ItemLocation.
const (
	Destroyed = 0
)

// ConditionOp is the opcode half of a packed condition word (code = op*20 +
// arg).
type ConditionOp int

const (
	CondParam           ConditionOp = 0 // push arg onto the row's parameter queue
	CondItemCarried     ConditionOp = 1
	CondItemHere        ConditionOp = 2
	CondItemCarriedOrHere ConditionOp = 3
	CondPlayerInRoom    ConditionOp = 4
	CondItemNotHere     ConditionOp = 5
	CondItemNotCarried  ConditionOp = 6
	CondPlayerNotInRoom ConditionOp = 7
	CondFlagSet         ConditionOp = 8
	CondFlagClear       ConditionOp = 9
	CondSomethingCarried ConditionOp = 10
	CondNothingCarried  ConditionOp = 11
	CondItemNotCarriedOrHere ConditionOp = 12
	CondItemNotDestroyed ConditionOp = 13
	CondItemDestroyed   ConditionOp = 14
	CondCounterGT       ConditionOp = 15
	CondCounterLE       ConditionOp = 16
	CondItemMoved       ConditionOp = 17
	CondItemAtInitial   ConditionOp = 18
	CondCounterEQ       ConditionOp = 19
)

// Condition is one decoded condition slot of an action row.
type Condition struct {
	Op  ConditionOp
	Arg int
}

// Action is one row of the rule table: a vocab gate, up to five conditions
// and up to four opcodes.
type Action struct {
	Vocab      int
	Verb       int
	Noun       int
	Conditions []Condition
	Opcodes    []int
}

// Room is a single location: six directional exits (N,S,E,W,U,D, 0 = no
// exit) and a description, which may carry a literal-text marker.
type Room struct {
	Exits       [6]int
	Description string
}

// Item is an object in the game: display text (with any /XYZ/ auto-word
// marker already stripped), initial location, an unused image index, and
// the extracted auto-word used by TAKE/DROP/ALL matching.
type Item struct {
	Text            string
	InitialLocation int
	Image           int
	AutoWord        string
}

// GameData is the immutable result of loading a database image. It is built
// once by Load and never mutated afterwards.
type GameData struct {
	NumItems    int
	NumActions  int
	NumWords    int
	NumRooms    int
	NumMessages int

	WordLength       int
	MaxCarry         int
	StartingRoom     int
	TreasureRoom     int
	TotalTreasures   int
	LightTimeInitial int

	// HeaderWords holds the 36 raw header words verbatim, including the
	// slots (12-35) this implementation does not otherwise interpret.
	HeaderWords [36]uint16

	Verbs []string
	Nouns []string

	Rooms    []Room
	Items    []Item
	Actions  []Action
	Messages []string
}

// RoomDescription renders a room's description the way the original prints
// it: a description prefixed with '*' is literal; otherwise it is
// introduced with "I'm in a " (or "You are in a " under YOUARE mode).
func (gd *GameData) RoomDescription(room int, youAre bool) string {
	desc := gd.Rooms[room].Description
	if len(desc) > 0 && desc[0] == '*' {
		return desc[1:]
	}
	if youAre {
		return "You are in a " + desc
	}
	return "I'm in a " + desc
}
