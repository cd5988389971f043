package scottvm

// Nominal offsets of the header and of each section. The baseline delta
// computed from the header scan is added to every section offset. The
// fingerprinted sections (item flags, item images, actions, room
// connections, item locations) then retry one byte further on each failed
// check; the dictionary and the packed-string sections are read once at
// their shifted offset, with no retry.
const (
	nominalHeaderOffset   = 0x3b5a
	nominalHeaderBaseline = 0x494d

	nominalItemFlags       = 0x4961
	nominalItemImages      = 0x46CC
	nominalActions         = 0x4A5D
	nominalRoomConnections = 23627
	nominalItemLocations   = 0x5e3d
	nominalDictionary      = 0x591B
	nominalMessages        = 0x9ea0
	nominalRoomDescs       = 42928
	nominalItemDescs       = 44229

	headerWordCount = 36
)

// LoadOptions tunes the loader; currently only debug tracing is exposed,
// surfaced to disasm.go's report rather than consumed here directly.
type LoadOptions struct {
	Debug bool
}

// LoadReport records the offset at which each section was resolved, in
// discovery order, so -d can render the loader's scanning work as a
// table instead of leaving it invisible.
type LoadReport struct {
	Sections []string
	Offsets  []int
}

type loadTrace = LoadReport

func newLoadTrace() *loadTrace {
	return &loadTrace{}
}

func (t *loadTrace) note(section string, offset int) {
	t.Sections = append(t.Sections, section)
	t.Offsets = append(t.Offsets, offset)
}

func readWordLE(image []byte, pos int) int {
	return int(image[pos]) + 256*int(image[pos+1])
}

func readHeader(image []byte, pos int) ([headerWordCount]uint16, bool) {
	var words [headerWordCount]uint16
	if pos+headerWordCount*2 > len(image) {
		return words, false
	}
	for i := 0; i < headerWordCount; i++ {
		words[i] = uint16(readWordLE(image, pos+i*2))
	}
	return words, true
}

func sanityCheckHeader(words [headerWordCount]uint16) bool {
	inRange := func(v uint16, lo, hi int) bool {
		return int(v) >= lo && int(v) <= hi
	}
	return inRange(words[1], 10, 500) &&
		inRange(words[2], 100, 500) &&
		inRange(words[3], 50, 200) &&
		inRange(words[4], 10, 100) &&
		inRange(words[5], 10, 255)
}

// Load parses a raw database image into an immutable GameData, scanning
// for the header and every section per the heuristics described in the
// loader design: offsets drift between dumps, but relative layout and the
// per-section fingerprints are stable across the known corpus.
func Load(image []byte, opts LoadOptions) (*GameData, *LoadReport, error) {
	trace := newLoadTrace()

	headerPos, words, err := findHeader(image)
	if err != nil {
		return nil, nil, err
	}
	trace.note("header", headerPos)

	baseline := headerPos - nominalHeaderBaseline

	gd := &GameData{
		NumItems:    int(words[1]),
		NumActions:  int(words[2]),
		NumWords:    int(words[3]),
		NumRooms:    int(words[4]),
		NumMessages: int(words[5]),

		WordLength:       int(words[6]),
		MaxCarry:         int(words[7]),
		StartingRoom:     int(words[8]),
		TreasureRoom:     int(words[9]),
		LightTimeInitial: int(int16(words[10])),
		TotalTreasures:   int(words[11]),
		HeaderWords:      words,
	}

	gd.Items = make([]Item, gd.NumItems+1)
	gd.Actions = make([]Action, gd.NumActions+1)
	gd.Rooms = make([]Room, gd.NumRooms+1)
	gd.Messages = make([]string, gd.NumMessages+1)
	gd.Verbs = make([]string, gd.NumWords+1)
	gd.Nouns = make([]string, gd.NumWords+1)

	if err := loadItemFlags(image, gd, baseline, trace); err != nil {
		return nil, nil, err
	}
	if err := loadItemImages(image, gd, baseline, trace); err != nil {
		return nil, nil, err
	}
	if err := loadActions(image, gd, baseline, trace); err != nil {
		return nil, nil, err
	}
	if err := loadDictionary(image, gd, baseline, trace); err != nil {
		return nil, nil, err
	}
	if err := loadRoomConnections(image, gd, baseline, trace); err != nil {
		return nil, nil, err
	}
	if err := loadItemLocations(image, gd, baseline, trace); err != nil {
		return nil, nil, err
	}
	if err := loadMessages(image, gd, baseline, trace); err != nil {
		return nil, nil, err
	}
	if err := loadRoomDescriptions(image, gd, baseline, trace); err != nil {
		return nil, nil, err
	}
	if err := loadItemDescriptions(image, gd, baseline, trace); err != nil {
		return nil, nil, err
	}

	return gd, trace, nil
}

func findHeader(image []byte) (int, [headerWordCount]uint16, error) {
	if words, ok := readHeader(image, nominalHeaderOffset); ok && sanityCheckHeader(words) {
		return nominalHeaderOffset, words, nil
	}

	limit := len(image) - headerWordCount*2
	for pos := 0; pos < limit; pos++ {
		words, ok := readHeader(image, pos)
		if !ok {
			break
		}
		if sanityCheckHeader(words) {
			return pos, words, nil
		}
	}
	var zero [headerWordCount]uint16
	return 0, zero, newLoadError("found no valid header in database image")
}

// itemFlagsByte unused fields are dropped: core opcodes never consult the
// per-item flag byte directly, only item locations and auto-words, so it
// is read purely to anchor the fingerprint.
func loadItemFlags(image []byte, gd *GameData, baseline int, trace *loadTrace) error {
	offset := nominalItemFlags + baseline
	for {
		if offset < 0 || offset+gd.NumItems+1 > len(image) {
			return newLoadError("item flags section: ran off the end of the image")
		}
		ok := true
		for i := 0; i <= gd.NumItems; i++ {
			flag := image[offset+i]
			if i == 17 && flag&0x7f != 1 {
				ok = false
				break
			}
		}
		if ok {
			trace.note("item-flags", offset)
			return nil
		}
		offset++
	}
}

func loadItemImages(image []byte, gd *GameData, baseline int, trace *loadTrace) error {
	offset := nominalItemImages + baseline
	for {
		if offset < 0 || offset+gd.NumItems+1 > len(image) {
			return newLoadError("item images section: ran off the end of the image")
		}
		ok := true
		for i := 0; i <= gd.NumItems; i++ {
			img := image[offset+i]
			if (i == 17 && img != 138) || (img > 138 && img != 255) {
				ok = false
				break
			}
		}
		if ok {
			for i := range gd.Items {
				gd.Items[i].Image = int(image[offset+i])
			}
			trace.note("item-images", offset)
			return nil
		}
		offset++
	}
}

func loadActions(image []byte, gd *GameData, baseline int, trace *loadTrace) error {
	offset := nominalActions + baseline
	for {
		pos := offset
		actions := make([]Action, gd.NumActions+1)
		ok := true
	rows:
		for i := 0; i <= gd.NumActions; i++ {
			if pos+3 > len(image) {
				return newLoadError("actions section: ran off the end of the image")
			}
			vocab := readWordLE(image, pos)
			pos += 2
			verb := vocab / 150
			noun := vocab % 150
			if noun < 0 || noun > gd.NumWords || verb < 0 || verb > gd.NumWords {
				ok = false
				break rows
			}

			flags := int(image[pos])
			pos++
			condCount := flags & 0x1f
			commCount := (flags & 0xe0) >> 5

			conds := make([]int, 5)
			for j := 0; j < 5; j++ {
				if j < condCount {
					if pos+2 > len(image) {
						return newLoadError("actions section: ran off the end of the image")
					}
					conds[j] = readWordLE(image, pos)
					pos += 2
				}
			}
			comms := make([]int, 2)
			for j := 0; j < 2; j++ {
				if j < commCount {
					if pos+2 > len(image) {
						return newLoadError("actions section: ran off the end of the image")
					}
					comms[j] = readWordLE(image, pos)
					pos += 2
				}
			}

			actions[i] = decodeAction(vocab, conds, comms)
		}
		if ok {
			gd.Actions = actions
			trace.note("actions", offset)
			return nil
		}
		offset++
	}
}

// decodeAction unpacks a raw vocab word, five raw condition words and two
// raw action words into the tagged-variant form the VM consumes.
func decodeAction(vocab int, conds, comms []int) Action {
	a := Action{
		Vocab: vocab,
		Verb:  vocab / 150,
		Noun:  vocab % 150,
	}
	for _, c := range conds {
		a.Conditions = append(a.Conditions, Condition{
			Op:  ConditionOp(c / 20),
			Arg: c % 20,
		})
	}
	for _, w := range comms {
		a.Opcodes = append(a.Opcodes, w/150, w%150)
	}
	return a
}

func loadDictionary(image []byte, gd *GameData, baseline int, trace *loadTrace) error {
	const totalWords = 204
	const verbWords = 69

	offset := nominalDictionary + baseline
	if offset < 0 || offset+totalWords*4 > len(image) {
		return newLoadError("dictionary section: ran off the end of the image")
	}

	for w := 0; w < totalWords; w++ {
		pos := offset + w*4
		var sb [5]byte
		n := 0
		for i := 0; i < 4; i++ {
			c := image[pos+i]
			if i == 0 {
				if c >= 'a' {
					c = upperByte(c)
				} else {
					sb[n] = '*'
					n++
				}
			}
			sb[n] = c
			n++
		}
		word := string(sb[:n])
		if w < verbWords {
			if w < len(gd.Verbs) {
				gd.Verbs[w] = word
			}
		} else {
			idx := w - verbWords
			if idx < len(gd.Nouns) {
				gd.Nouns[idx] = word
			}
		}
	}
	trace.note("dictionary", offset)
	return nil
}

func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func loadRoomConnections(image []byte, gd *GameData, baseline int, trace *loadTrace) error {
	offset := nominalRoomConnections + baseline
	for {
		if offset < 0 || offset+gd.NumRooms*6 > len(image) {
			return newLoadError("room connections section: ran off the end of the image")
		}
		ok := true
		rooms := make([]Room, gd.NumRooms+1)
	rows:
		for i := 0; i < gd.NumRooms; i++ {
			for j := 0; j < 6; j++ {
				exit := int(image[offset+i*6+j])
				if exit < 0 || exit > gd.NumRooms ||
					(i == 11 && j == 4 && exit != 1) ||
					(i == 1 && j == 5 && exit != 11) {
					ok = false
					break rows
				}
				rooms[i].Exits[j] = exit
			}
		}
		if ok {
			for i := range rooms {
				gd.Rooms[i].Exits = rooms[i].Exits
			}
			trace.note("room-connections", offset)
			return nil
		}
		offset++
	}
}

func loadItemLocations(image []byte, gd *GameData, baseline int, trace *loadTrace) error {
	offset := nominalItemLocations + baseline
	for {
		if offset < 0 || offset+gd.NumItems+1 > len(image) {
			return newLoadError("item locations section: ran off the end of the image")
		}
		ok := true
		for i := 0; i <= gd.NumItems; i++ {
			loc := int(image[offset+i])
			if (i == 41 && loc != 11) || (i == 123 && loc != 11) {
				ok = false
				break
			}
		}
		if ok {
			for i := range gd.Items {
				gd.Items[i].InitialLocation = int(image[offset+i])
			}
			trace.note("item-locations", offset)
			return nil
		}
		offset++
	}
}

func loadMessages(image []byte, gd *GameData, baseline int, trace *loadTrace) error {
	offset := nominalMessages + baseline
	for i := 0; i <= gd.NumMessages; i++ {
		s, err := DecodeString(image, offset, i)
		if err != nil {
			return wrapLoadError(err, "messages section")
		}
		gd.Messages[i] = s
	}
	trace.note("messages", offset)
	return nil
}

func loadRoomDescriptions(image []byte, gd *GameData, baseline int, trace *loadTrace) error {
	offset := nominalRoomDescs + baseline
	for i := 0; i < gd.NumRooms; i++ {
		s, err := DecodeString(image, offset, i)
		if err != nil {
			return wrapLoadError(err, "room descriptions section")
		}
		if len(s) > 0 {
			s = string(lowerByte(s[0])) + s[1:]
		}
		gd.Rooms[i].Description = s
	}
	trace.note("room-descriptions", offset)
	return nil
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

func loadItemDescriptions(image []byte, gd *GameData, baseline int, trace *loadTrace) error {
	offset := nominalItemDescs + baseline
	for i := 0; i <= gd.NumItems; i++ {
		s, err := DecodeString(image, offset, i)
		if err != nil {
			return wrapLoadError(err, "item descriptions section")
		}
		text, auto := splitAutoWord(s)
		gd.Items[i].Text = text
		gd.Items[i].AutoWord = auto
	}
	trace.note("item-descriptions", offset)
	return nil
}

// splitAutoWord extracts a trailing /XYZ/ marker from an item's decoded
// text, returning the display text with the marker removed and the
// uppercased auto-word (empty if no marker is present).
func splitAutoWord(s string) (string, string) {
	first := -1
	second := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			if first < 0 {
				first = i
			} else {
				second = i
				break
			}
		}
	}
	if first < 0 || second < 0 {
		return s, ""
	}
	word := s[first+1 : second]
	upper := make([]byte, len(word))
	for i := 0; i < len(word); i++ {
		upper[i] = upperByte(word[i])
	}
	text := s[:first] + s[second+1:]
	return text, string(upper)
}
