package bench

import "math"

type summary struct {
	mean, stddev, min, max float64
}

// summarize uses the sample standard deviation; it is zero below two samples.
func summarize(samples []float64) summary {
	if len(samples) == 0 {
		return summary{}
	}

	s := summary{min: samples[0], max: samples[0]}
	var sum float64
	for _, v := range samples {
		sum += v
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
	s.mean = sum / float64(len(samples))

	if len(samples) > 1 {
		var sq float64
		for _, v := range samples {
			d := v - s.mean
			sq += d * d
		}
		s.stddev = math.Sqrt(sq / float64(len(samples)-1))
	}
	return s
}
