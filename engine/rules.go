package engine

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	NumPlayers      uint8 // 2 or 3; 0 treated as 2
	TargetScore     int16 // points needed to win
	Heels           bool  // dealer scores 2 when the starter is a jack
	SkunkLine       int16 // loser below this is skunked
	DoubleSkunkLine int16
	TripleSkunkLine int16
}

// DefaultHouseRules returns standard two-player cribbage rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		NumPlayers:      2,
		TargetScore:     121,
		Heels:           true,
		SkunkLine:       90,
		DoubleSkunkLine: 60,
		TripleSkunkLine: 30,
	}
}

// numPlayers returns the effective number of players, treating 0 as 2.
func (r *HouseRules) numPlayers() uint8 {
	if r.NumPlayers == 0 {
		return 2
	}
	return r.NumPlayers
}

// HandSize is the number of cards dealt to each player.
func (r *HouseRules) HandSize() int {
	if r.numPlayers() == 3 {
		return 5
	}
	return 6
}

// DiscardCount is the number of cards each player gives to the crib.
func (r *HouseRules) DiscardCount() int {
	if r.numPlayers() == 3 {
		return 1
	}
	return 2
}

// Target returns the winning score, defaulting to 121.
func (r *HouseRules) Target() int {
	if r.TargetScore <= 0 {
		return 121
	}
	return int(r.TargetScore)
}
