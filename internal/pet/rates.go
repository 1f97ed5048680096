package pet

// AdultWeight is one entry of the adult-type probability table.
type AdultWeight struct {
	Type   AdultType
	Weight float64
}

// Rates holds every tunable of the simulation.
type Rates struct {
	MaxHunger    float64
	MaxLife      float64
	MaxCoins     int
	InitialCoins int

	HungerDecayPerMin      float64
	LifePenaltyPerMin      float64
	HungerPenaltyThreshold float64

	FeedAmount float64
	FeedCost   int

	// CoinIntervalSeconds grants one coin per interval of game time; 0 disables income.
	CoinIntervalSeconds float64

	EggToBabySeconds   float64
	BabyToAdultSeconds float64

	// AdultWeights is checked in order against one cumulative draw.
	AdultWeights []AdultWeight
}

// DefaultRates returns the stock tuning.
func DefaultRates() Rates {
	return Rates{
		MaxHunger:              100,
		MaxLife:                100,
		MaxCoins:               9999,
		InitialCoins:           10,
		HungerDecayPerMin:      2,
		LifePenaltyPerMin:      1,
		HungerPenaltyThreshold: 50,
		FeedAmount:             5,
		FeedCost:               1,
		CoinIntervalSeconds:    300,
		EggToBabySeconds:       1800,
		BabyToAdultSeconds:     3600,
		AdultWeights: []AdultWeight{
			{Type: AdultPhoenix, Weight: 0.10},
			{Type: AdultPeacock, Weight: 0.30},
			{Type: AdultChicken, Weight: 0.60},
		},
	}
}
