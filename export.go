package simbal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/markphelps/optional"
	"github.com/montanaflynn/stats"
)

// Everything in here is a projection of the query surface. Rounding to two
// decimals happens at this edge and nowhere else.

func WriteHistoryCSV(out io.Writer, history []Metrics) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"tick", "avgLoad", "variance", "migrations"}); err != nil {
		return err
	}
	for _, m := range history {
		row := []string{
			strconv.Itoa(int(m.Tick)),
			strconv.FormatFloat(roundToHundredth(m.AvgLoad), 'f', 2, 64),
			strconv.FormatFloat(roundToHundredth(m.Variance), 'f', 2, 64),
			strconv.Itoa(m.Migrations),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteRosterCSV(out io.Writer, procs []ProcSnapshot) error {
	cw := csv.NewWriter(out)
	header := []string{"id", "arrival", "burst", "remaining", "priority", "state", "processor", "start", "completion"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range procs {
		row := []string{
			strconv.Itoa(int(p.Id)),
			strconv.Itoa(int(p.Arrival)),
			strconv.Itoa(int(p.Burst)),
			strconv.Itoa(int(p.Remaining)),
			strconv.Itoa(p.Priority),
			p.State.String(),
			optionalField(p.Processor),
			optionalField(p.Start),
			optionalField(p.Completion),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteProcessorsCSV(out io.Writer, prs []ProcessorSnapshot) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"id", "load", "resident", "busyTicks", "utilization"}); err != nil {
		return err
	}
	for _, pr := range prs {
		row := []string{
			strconv.Itoa(int(pr.Id)),
			strconv.Itoa(int(pr.Load)),
			strconv.Itoa(len(pr.Residents)),
			strconv.Itoa(int(pr.BusyTicks)),
			strconv.FormatFloat(roundToHundredth(pr.Utilization*100), 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary prints the end-of-run rollup: counts, final metrics, the
// turnaround and waiting distributions over completed procs, and
// per-processor utilization.
func WriteSummary(out io.Writer, w *World) {
	procs := w.ProcSnapshots()
	turnarounds := make([]float64, 0)
	waitings := make([]float64, 0)
	for _, p := range procs {
		done, err := p.Completion.Get()
		if err != nil {
			continue
		}
		turn := float64(Ttick(done) + 1 - p.Arrival)
		turnarounds = append(turnarounds, turn)
		waitings = append(waitings, turn-float64(p.Burst))
	}
	m := w.Metrics()
	fmt.Fprintf(out, "ticks run: %s\n", humanize.Comma(int64(w.CurrTick()+1)))
	fmt.Fprintf(out, "procs: %s created, %s completed\n",
		humanize.Comma(int64(len(procs))), humanize.Comma(int64(len(turnarounds))))
	fmt.Fprintf(out, "policy %s: avg load %.2f, variance %.2f, %d migrations\n",
		w.PolicyName(), m.AvgLoad, m.Variance, m.Migrations)
	if len(turnarounds) > 0 {
		fmt.Fprintf(out, "turnaround: %s\n", percentileLine(turnarounds))
		fmt.Fprintf(out, "waiting:    %s\n", percentileLine(waitings))
	}
	for _, pr := range w.ProcessorSnapshots() {
		fmt.Fprintf(out, "processor %d: util %.1f%%, load %d, %d resident\n",
			pr.Id, pr.Utilization*100, pr.Load, len(pr.Residents))
	}
}

func percentileLine(vals []float64) string {
	mean, err := stats.Mean(vals)
	if err != nil {
		return "n/a"
	}
	p50, _ := stats.Percentile(vals, 50.0)
	p90, _ := stats.Percentile(vals, 90.0)
	p99, _ := stats.Percentile(vals, 99.0)
	return fmt.Sprintf("avg %.2f p50 %.2f p90 %.2f p99 %.2f", mean, p50, p90, p99)
}

// empty cell for "not set"
func optionalField(v optional.Int) string {
	n, err := v.Get()
	if err != nil {
		return ""
	}
	return strconv.Itoa(n)
}
