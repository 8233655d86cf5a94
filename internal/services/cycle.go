package services

import (
	"time"

	"nodefit/internal/models"
)

// CycleLength is the fixed cycle length used for prediction, in days.
const CycleLength = 28

// CyclePhase names a phase of the menstrual cycle.
type CyclePhase string

const (
	PhaseNone       CyclePhase = "none"
	PhaseMenstrual  CyclePhase = "menstrual"
	PhaseFollicular CyclePhase = "follicular"
	PhaseOvulation  CyclePhase = "ovulation"
	PhaseLuteal     CyclePhase = "luteal"
	PhaseLateLuteal CyclePhase = "late_luteal"
)

var phaseTips = map[CyclePhase][]string{
	PhaseNone: {
		"Log the first day of your period to start getting predictions.",
	},
	PhaseMenstrual: {
		"Rest when you need to and favour gentle movement such as walking or yoga.",
		"Eat iron-rich foods like spinach, lentils and lean red meat.",
		"A warm compress can ease cramps.",
	},
	PhaseFollicular: {
		"Energy usually rises now, a good time for harder workouts.",
		"Try new activities or strength training sessions.",
		"Include fermented foods and fresh vegetables.",
	},
	PhaseOvulation: {
		"This is typically your peak energy window.",
		"Stay well hydrated during high-intensity exercise.",
		"Add fibre and antioxidants such as berries and leafy greens.",
	},
	PhaseLuteal: {
		"Shift towards moderate exercise like pilates or swimming.",
		"Complex carbohydrates and magnesium can help with cravings.",
		"Protect your sleep schedule as PMS symptoms may appear.",
	},
	PhaseLateLuteal: {
		"Your period is later than the usual 28 days.",
		"Stress, travel and sleep changes can shift your cycle.",
		"If it keeps happening, consider talking to a healthcare professional.",
	},
}

// PhaseTips returns the fixed tips for phase.
func PhaseTips(phase CyclePhase) []string {
	return append([]string(nil), phaseTips[phase]...)
}

// phaseForDay buckets the number of days elapsed since the cycle started.
func phaseForDay(day int) CyclePhase {
	switch {
	case day < 0:
		return PhaseNone
	case day <= 5:
		return PhaseMenstrual
	case day <= 13:
		return PhaseFollicular
	case day <= 16:
		return PhaseOvulation
	case day <= 28:
		return PhaseLuteal
	default:
		return PhaseLateLuteal
	}
}

// CyclePrediction is derived from the most recently started cycle.
type CyclePrediction struct {
	Phase          CyclePhase `json:"phase"`
	DaysSinceStart *int       `json:"days_since_start,omitempty"`
	NextStart      *time.Time `json:"next_start,omitempty"`
	DaysUntil      *int       `json:"days_until,omitempty"`
	Overdue        bool       `json:"overdue"`
	Tips           []string   `json:"tips"`
}

// PredictCycle computes the current phase and next predicted start from the
// cycle with the latest start date. With no cycles the phase is none and
// nothing is predicted.
func PredictCycle(cycles []models.Cycle, now time.Time) CyclePrediction {
	if len(cycles) == 0 {
		return CyclePrediction{Phase: PhaseNone, Tips: PhaseTips(PhaseNone)}
	}

	latest := cycles[0]
	for _, c := range cycles[1:] {
		if c.StartDate.After(latest.StartDate) {
			latest = c
		}
	}

	start := civilDay(latest.StartDate)
	next := start.AddDate(0, 0, CycleLength)
	elapsed := daysBetween(start, now)
	until := daysBetween(now, next)
	phase := phaseForDay(elapsed)

	p := CyclePrediction{
		Phase:     phase,
		NextStart: &next,
		DaysUntil: &until,
		Overdue:   until < 0,
		Tips:      PhaseTips(phase),
	}
	if elapsed >= 0 {
		p.DaysSinceStart = &elapsed
	}
	return p
}
