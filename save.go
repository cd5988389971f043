package scottvm

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// WriteSave serializes ws to the plain-text, line-oriented save format: 16
// counter/room_saved pairs, one combined status line, then one location
// per item. dark_flag mirrors bit 15 of bitflags so files written before
// that bit existed can still be read back (see ReadSave).
func WriteSave(w io.Writer, gd *GameData, ws *WorldState) error {
	bw := bufio.NewWriter(w)

	for i := 0; i < 16; i++ {
		if _, err := bw.WriteString(strconv.Itoa(ws.Counters[i]) + " " + strconv.Itoa(ws.RoomSaved[i]) + "\n"); err != nil {
			return errors.Wrap(err, "writing save file")
		}
	}

	darkFlag := 0
	if ws.FlagSet(BitDark) {
		darkFlag = 1
	}
	status := strings.Join([]string{
		strconv.FormatUint(ws.BitFlags, 10),
		strconv.Itoa(darkFlag),
		strconv.Itoa(ws.PlayerRoom),
		strconv.Itoa(ws.CurrentCounter),
		strconv.Itoa(ws.SavedRoom),
		strconv.Itoa(ws.LightTime),
	}, " ")
	if _, err := bw.WriteString(status + "\n"); err != nil {
		return errors.Wrap(err, "writing save file")
	}

	for i := 0; i <= gd.NumItems; i++ {
		if _, err := bw.WriteString(strconv.Itoa(ws.ItemLocation[i]) + "\n"); err != nil {
			return errors.Wrap(err, "writing save file")
		}
	}

	return bw.Flush()
}

// ReadSave parses a save file written by WriteSave back into a WorldState.
// Bit 15 (DARK) is OR-ed back into bitflags when dark_flag == 1, so saves
// from before bit 15 was folded into bitflags still restore correctly.
func ReadSave(r io.Reader, gd *GameData) (*WorldState, error) {
	scanner := bufio.NewScanner(r)
	readLine := func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", errors.Wrap(err, "reading save file")
			}
			return "", errors.New("save file ended unexpectedly")
		}
		return scanner.Text(), nil
	}

	ws := &WorldState{}
	for i := 0; i < 16; i++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.Newf("malformed counter/room_saved line %d: %q", i, line)
		}
		ws.Counters[i], err = strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrap(err, "parsing counter")
		}
		ws.RoomSaved[i], err = strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrap(err, "parsing room_saved")
		}
	}

	statusLine, err := readLine()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(statusLine)
	if len(fields) != 6 {
		return nil, errors.Newf("malformed status line: %q", statusLine)
	}
	bitflags, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parsing bitflags")
	}
	darkFlag, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, errors.Wrap(err, "parsing dark_flag")
	}
	ws.BitFlags = bitflags
	if darkFlag == 1 {
		ws.SetFlag(BitDark)
	}
	if ws.PlayerRoom, err = strconv.Atoi(fields[2]); err != nil {
		return nil, errors.Wrap(err, "parsing player_room")
	}
	if ws.CurrentCounter, err = strconv.Atoi(fields[3]); err != nil {
		return nil, errors.Wrap(err, "parsing current_counter")
	}
	if ws.SavedRoom, err = strconv.Atoi(fields[4]); err != nil {
		return nil, errors.Wrap(err, "parsing saved_room")
	}
	if ws.LightTime, err = strconv.Atoi(fields[5]); err != nil {
		return nil, errors.Wrap(err, "parsing light_time")
	}

	ws.ItemLocation = make([]int, gd.NumItems+1)
	for i := 0; i <= gd.NumItems; i++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		loc, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing location for item %d", i)
		}
		ws.ItemLocation[i] = loc
	}

	return ws, nil
}
