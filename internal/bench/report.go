package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
)

// ModeAverageTime is JMH's name for time-per-operation measurements.
const ModeAverageTime = "avgt"

// Result aggregates every measured sample of one benchmark across forks.
type Result struct {
	Benchmark string  `json:"benchmark"`
	Mode      string  `json:"mode"`
	Unit      string  `json:"unit"`
	Forks     int     `json:"forks"`
	Samples   int     `json:"samples"`
	Score     float64 `json:"score"`
	StdDev    float64 `json:"stddev"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Ops       int64   `json:"ops"`
}

type Report struct {
	Config    Config        `json:"config"`
	StartedAt time.Time     `json:"startedAt"`
	Elapsed   time.Duration `json:"elapsed"`
	Results   []Result      `json:"results"`
}

func aggregate(name string, cfg Config, trials []TrialResult) Result {
	res := Result{
		Benchmark: name,
		Mode:      ModeAverageTime,
		Unit:      cfg.Unit(),
		Forks:     len(trials),
	}

	var samples []float64
	for _, tr := range trials {
		samples = append(samples, tr.Samples...)
		res.Ops += tr.Ops
	}
	s := summarize(samples)
	res.Samples = len(samples)
	res.Score, res.StdDev, res.Min, res.Max = s.mean, s.stddev, s.min, s.max
	return res
}

// WriteText prints the report as a JMH-style table.
func WriteText(w io.Writer, report *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Benchmark\tMode\tCnt\tScore\t\tError\tUnits\t")
	for _, r := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.3f\t±\t%.3f\t%s\t\n",
			r.Benchmark, r.Mode, r.Samples, r.Score, r.StdDev, r.Unit)
	}
	return tw.Flush()
}

func WriteJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
