package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/util"
	"github.com/jsphweid/voicelead/voicelead"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Width(8)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	topStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func keyName(key int) string {
	return fmt.Sprintf("%s%d", model.PitchClassNames[util.Mod(key, 12)], key/12-1)
}

func symbolOf(set model.PitchClassSet) string {
	if sym, ok := chord.Identify(set); ok {
		return sym.Name
	}
	return set.String()
}

func printVoicing(w io.Writer, time float64, set model.PitchClassSet, v model.Voicing, pinned bool) {
	keys := make([]string, 0, len(v))
	for i, key := range v {
		if pinned && i == len(v)-1 {
			keys = append(keys, topStyle.Render(keyName(key)))
			continue
		}
		keys = append(keys, keyStyle.Render(keyName(key)))
	}
	fmt.Fprintf(w, "%s  %s %s\n",
		timeStyle.Render(fmt.Sprintf("%7.2f", time)),
		nameStyle.Render(symbolOf(set)),
		strings.Join(keys, " "))
}

func printResolution(w io.Writer, res *voicelead.Resolution) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d chords, %d notes, ends at %.2f", len(res.Chords), len(res.Notes), res.End)))
	for _, c := range res.Chords {
		printVoicing(w, c.Event.Time, c.Event.Set, c.Voicing, c.Event.HasTop())
	}
	for _, r := range res.Relaxations {
		fmt.Fprintln(w, warnStyle.Render(r.String()))
	}
}
