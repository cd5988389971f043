package scottvm

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
	"github.com/olekukonko/tablewriter"

	"github.com/textadv/scottvm/internal/ascii"
)

// PrintLoadReport renders the offsets the loader resolved for each
// section as a table, for -d.
func PrintLoadReport(w io.Writer, report *LoadReport) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Section", "Offset"})
	for i, section := range report.Sections {
		table.Append([]string{section, fmt.Sprintf("0x%x", report.Offsets[i])})
	}
	table.Render()
}

// PrintHeaderSummary dumps the interpreted header counts, for -d.
func PrintHeaderSummary(w io.Writer, gd *GameData) {
	fmt.Fprintf(w, "%# v\n", pretty.Formatter(struct {
		NumItems, NumActions, NumWords, NumRooms, NumMessages int
		WordLength, MaxCarry                                  int
		StartingRoom, TreasureRoom, TotalTreasures             int
		LightTimeInitial                                       int
	}{
		gd.NumItems, gd.NumActions, gd.NumWords, gd.NumRooms, gd.NumMessages,
		gd.WordLength, gd.MaxCarry,
		gd.StartingRoom, gd.TreasureRoom, gd.TotalTreasures,
		gd.LightTimeInitial,
	}))
}

// DisassembleAction renders one action row with opcodes color-highlighted
// by category, the way a grammar printer highlights operators vs literals.
func DisassembleAction(w io.Writer, i int, a Action) {
	fmt.Fprintf(w, ascii.Color(ascii.DefaultTheme.Label, "action %d", i)+" vocab=%s\n",
		ascii.Color(ascii.DefaultTheme.Operand, "%d/%d", a.Verb, a.Noun))

	for _, c := range a.Conditions {
		fmt.Fprintf(w, "  "+ascii.Color(ascii.DefaultTheme.Operator, "cond")+" op=%d arg=%d\n", c.Op, c.Arg)
	}
	for _, op := range a.Opcodes {
		fmt.Fprintf(w, "  "+ascii.Color(ascii.DefaultTheme.Literal, "op")+" %d\n", op)
	}
}
