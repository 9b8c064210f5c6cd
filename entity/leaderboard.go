package entity

type LeaderboardEntry struct {
	Rank     int             `json:"rank"`
	School   School          `json:"school"`
	Count    int64           `json:"count"`
	Distance *DistanceRecord `json:"distance,omitempty"`
}

type Leaderboard struct {
	Mode             string             `json:"mode"`
	Source           string             `json:"source,omitempty"`
	LocationResolved bool               `json:"location_resolved"`
	Entries          []LeaderboardEntry `json:"entries"`
}
