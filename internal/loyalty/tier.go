// Package loyalty holds the star and tier rules. Everything here is pure.
package loyalty

import (
	"fmt"

	"github.com/sefazor/starclub-backend/internal/models"
)

// MaxTier is reported as the next tier once platinum is reached.
const MaxTier = "max"

// Inclusive lower bounds, in rank order.
var tierFloors = []struct {
	tier  models.Tier
	floor int
}{
	{models.TierBronze, 0},
	{models.TierSilver, 10},
	{models.TierGold, 25},
	{models.TierPlatinum, 50},
}

type Progress struct {
	Fraction       float64
	StarsRemaining int
	NextTier       string
}

// TierForStars maps a cumulative star count to its tier. A count that sits
// exactly on a boundary belongs to the higher tier.
func TierForStars(stars int) (models.Tier, error) {
	if stars < 0 {
		return "", fmt.Errorf("%w: negative star count %d", models.ErrInvalidInput, stars)
	}
	tier := models.TierBronze
	for _, tf := range tierFloors {
		if stars >= tf.floor {
			tier = tf.tier
		}
	}
	return tier, nil
}

// ProgressToNextTier measures how far stars have moved through the band of
// the current tier.
func ProgressToNextTier(stars int, current models.Tier) (Progress, error) {
	if stars < 0 {
		return Progress{}, fmt.Errorf("%w: negative star count %d", models.ErrInvalidInput, stars)
	}
	rank := Rank(current)
	if rank < 0 {
		return Progress{}, fmt.Errorf("%w: unknown tier %q", models.ErrInvalidInput, current)
	}
	if rank == len(tierFloors)-1 {
		return Progress{Fraction: 1, StarsRemaining: 0, NextTier: MaxTier}, nil
	}

	lower := tierFloors[rank].floor
	next := tierFloors[rank+1]
	fraction := float64(stars-lower) / float64(next.floor-lower)
	switch {
	case fraction < 0:
		fraction = 0
	case fraction > 1:
		fraction = 1
	}

	remaining := next.floor - stars
	if remaining < 0 {
		remaining = 0
	}

	return Progress{
		Fraction:       fraction,
		StarsRemaining: remaining,
		NextTier:       string(next.tier),
	}, nil
}

// Rank orders tiers bronze < silver < gold < platinum; -1 for anything else.
func Rank(t models.Tier) int {
	for i, tf := range tierFloors {
		if tf.tier == t {
			return i
		}
	}
	return -1
}

// Floor returns the inclusive lower star bound of a tier.
func Floor(t models.Tier) (int, error) {
	rank := Rank(t)
	if rank < 0 {
		return 0, fmt.Errorf("%w: unknown tier %q", models.ErrInvalidInput, t)
	}
	return tierFloors[rank].floor, nil
}

func ParseTier(s string) (models.Tier, error) {
	t := models.Tier(s)
	if Rank(t) < 0 {
		return "", fmt.Errorf("%w: unknown tier %q", models.ErrInvalidInput, s)
	}
	return t, nil
}

func Tiers() []models.Tier {
	out := make([]models.Tier, 0, len(tierFloors))
	for _, tf := range tierFloors {
		out = append(out, tf.tier)
	}
	return out
}

// Describe builds the API view of a user's standing.
func Describe(u *models.User) (models.TierProgress, error) {
	p, err := ProgressToNextTier(u.TotalStars, u.Tier)
	if err != nil {
		return models.TierProgress{}, err
	}
	return models.TierProgress{
		Tier:           u.Tier,
		TotalStars:     u.TotalStars,
		Fraction:       p.Fraction,
		StarsRemaining: p.StarsRemaining,
		NextTier:       p.NextTier,
	}, nil
}
