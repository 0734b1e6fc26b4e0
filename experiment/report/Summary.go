package report

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the outcome of a run
type Summary struct {
	Agent    string
	Steps    uint
	Returns  []float64
	Lengths  []float64
	LastN    int // episodes averaged over in the recent statistics
	Failures int
}

// recent returns the last LastN entries of data
func (s Summary) recent(data []float64) []float64 {
	if s.LastN > 0 && len(data) > s.LastN {
		return data[len(data)-s.LastN:]
	}
	return data
}

// Print writes the summary to w in colour
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, aurora.White("----------------------------------------"))
	fmt.Fprintf(w, "%v %v\n", aurora.White("agent:   "), aurora.Blue(s.Agent))
	fmt.Fprintf(w, "%v %v\n", aurora.White("steps:   "), aurora.Blue(s.Steps))
	fmt.Fprintf(w, "%v %v\n", aurora.White("episodes:"),
		aurora.Blue(len(s.Returns)))

	if len(s.Returns) == 0 {
		fmt.Fprintln(w, aurora.Red("no episode finished"))
		return
	}

	recent := s.recent(s.Returns)
	fmt.Fprintf(w, "%v %v\n", aurora.White("return:  "),
		aurora.Green(fmt.Sprintf("%.2f (last %d), best %.2f",
			stat.Mean(recent, nil), len(recent), floats.Max(s.Returns))))
	if len(s.Lengths) > 0 {
		lengths := s.recent(s.Lengths)
		fmt.Fprintf(w, "%v %v\n", aurora.White("length:  "),
			aurora.Green(fmt.Sprintf("%.1f (last %d)", stat.Mean(lengths, nil),
				len(lengths))))
	}
	if s.Failures > 0 {
		fmt.Fprintf(w, "%v %v\n", aurora.White("errors:  "),
			aurora.Red(s.Failures))
	}
}
