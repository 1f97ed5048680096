package pet

// PickAdultType maps a uniform draw in [0,1) onto the weight table using
// cumulative thresholds. With the default table, draws below 0.10 give a
// Phoenix, below 0.40 a Peacock, and everything else a Chicken.
func PickAdultType(draw float64, weights []AdultWeight) AdultType {
	if len(weights) == 0 {
		return AdultChicken
	}
	cumulative := 0.0
	for _, w := range weights {
		cumulative += w.Weight
		if draw < cumulative {
			return w.Type
		}
	}
	return weights[len(weights)-1].Type
}

// Evolve applies at most one stage transition given the current game time.
// Dead creatures and adults are returned unchanged.
func Evolve(r Record, gameSeconds float64, draw func() float64, rates Rates) (Record, bool) {
	if !r.IsAlive {
		return r, false
	}

	since := gameSeconds - r.LastEvolutionGameSeconds
	switch r.EvolutionStage {
	case StageEgg:
		if since < rates.EggToBabySeconds {
			return r, false
		}
		r.EvolutionStage = StageBaby
	case StageBaby:
		if since < rates.BabyToAdultSeconds {
			return r, false
		}
		d := 0.0
		if draw != nil {
			d = draw()
		}
		r.EvolutionStage = StageAdult
		r.AdultType = PickAdultType(d, rates.AdultWeights)
	default:
		return r, false
	}

	r.LastEvolutionGameSeconds = gameSeconds
	r.CurrentAppearance = Appearance(r.EvolutionStage, r.AdultType)
	return r, true
}
