package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/imodel/internal/modes"
	"github.com/abhisek/imodel/internal/scenario"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often each I-Mode is missing across the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := resolveCatalog(cmd)
		if err != nil {
			return err
		}
		writeStats(cmd.OutOrStdout(), catalogStats(cat))
		return nil
	},
}

// modeStat counts the scenarios in which a mode is missing or present.
type modeStat struct {
	Mode    modes.Name
	Missing int
	Present int
}

type stats struct {
	Scenarios    int
	FullyPresent int
	Modes        []modeStat
}

func catalogStats(cat *scenario.Catalog) stats {
	u := cat.Universe()
	st := stats{Scenarios: cat.Len(), Modes: make([]modeStat, len(u))}
	for i, m := range u {
		st.Modes[i].Mode = m
	}
	for _, s := range cat.All() {
		if s.CorrectModes.Empty() {
			st.FullyPresent++
		}
		for i, m := range u {
			if s.CorrectModes.Has(m) {
				st.Modes[i].Missing++
			}
			if s.PresentModes.Has(m) {
				st.Modes[i].Present++
			}
		}
	}
	return st
}

func writeStats(w io.Writer, st stats) {
	fmt.Fprintf(w, "Scenarios:      %d\n", st.Scenarios)
	fmt.Fprintf(w, "Fully present:  %d\n\n", st.FullyPresent)
	fmt.Fprintf(w, "%-16s  %-7s  %s\n", "I-Mode", "Missing", "Present")
	fmt.Fprintln(w, strings.Repeat("─", 36))
	for _, m := range st.Modes {
		fmt.Fprintf(w, "%-16s  %-7d  %d\n", m.Mode, m.Missing, m.Present)
	}
}
