package main

import (
	"bufio"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/pflag"

	scottvm "github.com/textadv/scottvm"
)

func main() {
	var (
		youAre          = pflag.BoolP("youare", "y", false, "second-person phrasing")
		iAm             = pflag.BoolP("iam", "i", false, "first-person phrasing (default)")
		debug           = pflag.BoolP("debug", "d", false, "enable debug tracing during load")
		scottLight      = pflag.BoolP("scott-light", "s", false, "Scott Adams light warning phrasing")
		trs80           = pflag.BoolP("trs80", "t", false, "TRS-80 layout")
		prehistoricLamp = pflag.BoolP("prehistoric-lamp", "p", false, "destroy light source on exhaustion")
		noSplitWindow   = pflag.BoolP("no-split-window", "w", false, "no split window")
	)
	pflag.Parse()

	if pflag.NArg() != 1 {
		log.Fatalf("usage: scottvm [-y -i -d -s -t -p -w] <game-file>")
	}
	path := pflag.Arg(0)

	image, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("can't read game file %s: %s", path, err)
	}

	opts := scottvm.NewOptions()
	opts.YouAre = *youAre && !*iAm
	opts.Debug = *debug
	opts.ScottLight = *scottLight
	opts.PrehistoricLamp = *prehistoricLamp
	opts.NoSplitWindow = *noSplitWindow
	if *trs80 {
		opts.ApplyTRS80()
	}

	gd, report, err := scottvm.Load(image, scottvm.LoadOptions{Debug: *debug})
	if err != nil {
		log.Fatalf("can't load %s: %s", path, err)
	}
	if *debug {
		scottvm.PrintLoadReport(os.Stderr, report)
		scottvm.PrintHeaderSummary(os.Stderr, gd)
		for i, a := range gd.Actions {
			scottvm.DisassembleAction(os.Stderr, i, a)
		}
	}

	ws := scottvm.NewWorldState(gd)
	host := newTerminalHost(opts, path)
	loop := scottvm.NewLoop(gd, ws, host, opts)
	loop.Run()
}

// terminalHost is the minimal concrete Host this CLI drives the engine
// with: a single scrolling stdout stream, line input from stdin, and
// save/load against sibling .sav files next to the game image.
type terminalHost struct {
	opts     scottvm.Options
	gamePath string
	reader   *bufio.Reader
	ended    bool
}

func newTerminalHost(opts scottvm.Options, gamePath string) *terminalHost {
	return &terminalHost{
		opts:     opts,
		gamePath: gamePath,
		reader:   bufio.NewReader(os.Stdin),
	}
}

func (h *terminalHost) Print(s string) {
	fmt.Print(s)
}

func (h *terminalHost) Status(s string) {
	fmt.Print(s)
}

func (h *terminalHost) ClearScreen() {
	fmt.Print("\033[2J\033[H")
}

func (h *terminalHost) ReadLine(redraw func()) (string, bool) {
	if h.ended {
		return "", false
	}
	fmt.Print("\nTell me what to do ? ")
	line, err := h.reader.ReadString('\n')
	if err != nil {
		return "", false
	}
	return line, true
}

func (h *terminalHost) Roll(pct int) bool {
	return rand.Intn(100) < pct
}

func (h *terminalHost) Delay(seconds int) {
	time.Sleep(time.Duration(seconds) * time.Second)
}

func (h *terminalHost) SaveGame(gd *scottvm.GameData, ws *scottvm.WorldState) error {
	f, err := os.Create(h.gamePath + ".sav")
	if err != nil {
		return err
	}
	defer f.Close()
	return scottvm.WriteSave(f, gd, ws)
}

func (h *terminalHost) LoadGame(gd *scottvm.GameData) (*scottvm.WorldState, bool) {
	f, err := os.Open(h.gamePath + ".sav")
	if err != nil {
		return nil, false
	}
	defer f.Close()
	ws, err := scottvm.ReadSave(f, gd)
	if err != nil {
		return nil, false
	}
	return ws, true
}

func (h *terminalHost) Diagnostic(s string) {
	fmt.Fprintln(os.Stderr, s)
}

func (h *terminalHost) EndGame() {
	h.ended = true
}

func (h *terminalHost) Ended() bool {
	return h.ended
}

func (h *terminalHost) YouAre() bool {
	return h.opts.YouAre
}
