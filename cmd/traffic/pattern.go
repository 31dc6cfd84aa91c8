package main

import (
	"fmt"
	"math/rand"
)

// Pattern selects how the per-second request rate evolves over a run.
type Pattern string

const (
	PatternConstant  Pattern = "constant"
	PatternSpike     Pattern = "spike"
	PatternGradual   Pattern = "gradual"
	PatternRandom    Pattern = "random"
	PatternRealistic Pattern = "realistic"
)

func AsPattern(s string) (Pattern, error) {
	switch Pattern(s) {
	case PatternConstant, PatternSpike, PatternGradual, PatternRandom, PatternRealistic:
		return Pattern(s), nil
	default:
		return "", fmt.Errorf("unknown pattern: %s", s)
	}
}

// BuildSchedule expands a pattern into target request rates,
// one entry per second of the run.
//
// rnd is used for the stochastic patterns. When nil, the global source is used.
func BuildSchedule(p Pattern, duration int, base int, rnd *rand.Rand) ([]int, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration should be positive: %d", duration)
	}
	if base <= 0 {
		return nil, fmt.Errorf("base rps should be positive: %d", base)
	}

	switch p {
	case PatternConstant:
		return constantSchedule(duration, base), nil
	case PatternSpike:
		return spikeSchedule(duration, base, rnd), nil
	case PatternGradual:
		return gradualSchedule(duration, base), nil
	case PatternRandom:
		return randomSchedule(duration, base, rnd), nil
	case PatternRealistic:
		return realisticSchedule(duration, base, rnd), nil
	default:
		return nil, fmt.Errorf("unknown pattern: %s", p)
	}
}

func constantSchedule(duration, base int) []int {
	rates := make([]int, duration)
	for i := range rates {
		rates[i] = base
	}
	return rates
}

// spikeSchedule keeps the base rate and overlays short bursts,
// one burst of 5 seconds per 20 seconds of the run on average.
func spikeSchedule(duration, base int, rnd *rand.Rand) []int {
	rates := constantSchedule(duration, base)
	if duration <= 10 {
		return rates
	}
	for n := 0; n < duration/20; n++ {
		start := intn(rnd, duration-10)
		multiplier := 3 + uniform(rnd)*5
		for i := start; i < start+5 && i < duration; i++ {
			rates[i] = int(float64(base) * multiplier)
		}
	}
	return rates
}

// gradualSchedule ramps linearly up to 5x the base rate at the midpoint,
// then back down.
func gradualSchedule(duration, base int) []int {
	rates := make([]int, duration)
	peak := duration / 2
	if peak == 0 {
		rates[0] = base
		return rates
	}
	max := base * 5
	for i := range rates {
		var rate float64
		if i <= peak {
			rate = float64(base) + float64(max-base)*(float64(i)/float64(peak))
		} else {
			rate = float64(max) - float64(max-base)*(float64(i-peak)/float64(duration-peak))
		}
		rates[i] = int(rate)
	}
	return rates
}

func randomSchedule(duration, base int, rnd *rand.Rand) []int {
	rates := make([]int, duration)
	for i := range rates {
		multiplier := 0.1 + uniform(rnd)*4.9
		rates[i] = int(float64(base) * multiplier)
	}
	return rates
}

// realisticSchedule maps the run onto a 24-hour day.
// Business hours (9-17) run at 3x the base rate, evenings (18-22) at 2x
// and nights at 0.5x, with 20% jitter on top.
func realisticSchedule(duration, base int, rnd *rand.Rand) []int {
	rates := make([]int, duration)
	hoursPerSecond := 24.0 / float64(duration)
	for i := range rates {
		hour := float64(i) * hoursPerSecond
		for hour >= 24 {
			hour -= 24
		}

		var multiplier float64
		switch {
		case 9 <= hour && hour <= 17:
			multiplier = 3.0
		case 18 <= hour && hour <= 22:
			multiplier = 2.0
		default:
			multiplier = 0.5
		}

		noise := 0.8 + uniform(rnd)*0.4
		rate := int(float64(base) * multiplier * noise)
		if rate < 1 {
			rate = 1
		}
		rates[i] = rate
	}
	return rates
}

func intn(rnd *rand.Rand, n int) int {
	if rnd != nil {
		return rnd.Intn(n)
	}
	return rand.Intn(n)
}

func uniform(rnd *rand.Rand) float64 {
	if rnd != nil {
		return rnd.Float64()
	}
	return rand.Float64()
}
