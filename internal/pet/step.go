package pet

import (
	"math"
	"time"
)

// StepInput is everything one tick needs besides the record.
type StepInput struct {
	Elapsed     time.Duration  // wall time since the previous hunger update
	Speed       float64        // clock speed multiplier
	GameSeconds float64        // current game clock reading
	Paused      bool           // evolution is skipped while paused
	Draw        func() float64 // uniform source for the adult-type roll
}

// StepResult reports what one tick did.
type StepResult struct {
	Record      Record
	Died        bool // the creature died during this step
	Evolved     bool
	CoinsEarned int
}

// Step advances the record by one tick. It does not touch storage.
func Step(r Record, in StepInput, rates Rates) StepResult {
	if !r.IsAlive {
		r.Life = 0
		return StepResult{Record: r.Clamp(rates)}
	}

	minutes := in.Elapsed.Minutes()
	if minutes < 0 {
		minutes = 0
	}

	decay := rates.HungerDecayPerMin * in.Speed * minutes
	r.Hunger = math.Max(0, r.Hunger-decay)

	if r.Hunger < rates.HungerPenaltyThreshold {
		penalty := rates.LifePenaltyPerMin * in.Speed * minutes
		r.Life = math.Max(0, r.Life-penalty)
	}

	if r.Life <= 0 || r.Hunger <= 0 {
		r.Life = 0
		r.IsAlive = false
		return StepResult{Record: r.Clamp(rates), Died: true}
	}

	res := StepResult{}
	if !in.Paused {
		r, res.Evolved = Evolve(r, in.GameSeconds, in.Draw, rates)
	}

	r, res.CoinsEarned = accrueCoins(r, in.GameSeconds, rates)
	res.Record = r.Clamp(rates)
	return res
}

// accrueCoins grants one coin per full income interval of game time.
func accrueCoins(r Record, gameSeconds float64, rates Rates) (Record, int) {
	if rates.CoinIntervalSeconds <= 0 {
		return r, 0
	}
	if gameSeconds < r.LastCoinGameSeconds {
		// Clock was reset under an old record.
		r.LastCoinGameSeconds = gameSeconds
		return r, 0
	}
	n := int((gameSeconds - r.LastCoinGameSeconds) / rates.CoinIntervalSeconds)
	if n <= 0 {
		return r, 0
	}
	r.LastCoinGameSeconds += float64(n) * rates.CoinIntervalSeconds

	before := r.Coins
	r.Coins = clampI(r.Coins+n, 0, rates.MaxCoins)
	return r, r.Coins - before
}
