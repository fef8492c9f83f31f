package domain

import "xray-tracker/internal/tier"

const (
	PlaceholderDisplayName = "Unknown Player"
	PlaceholderIconID      = 29
)

// PlaceholderProfile stands in for a candidate whose profile could not be
// loaded. It keeps the candidate's puuid so the entry still links somewhere.
func PlaceholderProfile(puuid string) PlayerProfile {
	return PlayerProfile{
		Puuid:         puuid,
		DisplayName:   PlaceholderDisplayName,
		Tier:          tier.Emerald,
		Division:      tier.DivisionI,
		ProfileIconID: PlaceholderIconID,
		Placeholder:   true,
	}
}
