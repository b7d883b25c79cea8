package bench_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/kinbiko/jsonassert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dklassen/beanmorph/internal/bench"
)

func sampleReport() *bench.Report {
	return &bench.Report{
		Config:    bench.DefaultConfig(),
		StartedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Elapsed:   2 * time.Second,
		Results: []bench.Result{
			{Benchmark: "manual", Mode: "avgt", Unit: "us/op", Forks: 1, Samples: 5, Score: 0.012, StdDev: 0.001, Min: 0.011, Max: 0.014, Ops: 500000},
			{Benchmark: "copier", Mode: "avgt", Unit: "us/op", Forks: 1, Samples: 5, Score: 0.456, StdDev: 0.02, Min: 0.43, Max: 0.49, Ops: 500000},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bench.WriteJSON(&buf, sampleReport()))

	jsonassert.New(t).Assertf(buf.String(), `{
		"config": {
			"warmup": 5,
			"measurement": 5,
			"forks": 1,
			"opsPerIteration": 100000,
			"timeUnit": 1000
		},
		"startedAt": "2024-05-01T12:00:00Z",
		"elapsed": 2000000000,
		"results": [
			{"benchmark": "manual", "mode": "avgt", "unit": "us/op", "forks": 1, "samples": 5,
			 "score": 0.012, "stddev": 0.001, "min": 0.011, "max": 0.014, "ops": 500000},
			{"benchmark": "copier", "mode": "avgt", "unit": "us/op", "forks": 1, "samples": 5,
			 "score": 0.456, "stddev": 0.02, "min": 0.43, "max": 0.49, "ops": 500000}
		]
	}`)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bench.WriteText(&buf, sampleReport()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, []string{"Benchmark", "Mode", "Cnt", "Score", "Error", "Units"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"manual", "avgt", "5", "0.012", "±", "0.001", "us/op"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"copier", "avgt", "5", "0.456", "±", "0.020", "us/op"}, strings.Fields(lines[2]))
}
