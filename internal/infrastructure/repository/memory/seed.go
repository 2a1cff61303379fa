package memory

import (
	"time"

	"github.com/riskibarqy/survivor-pool/internal/domain/entry"
	"github.com/riskibarqy/survivor-pool/internal/domain/match"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/domain/team"
)

const SeasonID2025 = "nfl-2025"

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:          SeasonID2025,
			Year:        2025,
			Name:        "2025 NFL Season",
			IsActive:    true,
			CurrentWeek: 1,
			MaxWeeks:    18,
			StartDate:   time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "kc", Name: "Chiefs", City: "Kansas City", Abbreviation: "KC", Conference: "AFC", Division: "West"},
		{ID: "buf", Name: "Bills", City: "Buffalo", Abbreviation: "BUF", Conference: "AFC", Division: "East"},
		{ID: "bal", Name: "Ravens", City: "Baltimore", Abbreviation: "BAL", Conference: "AFC", Division: "North"},
		{ID: "cin", Name: "Bengals", City: "Cincinnati", Abbreviation: "CIN", Conference: "AFC", Division: "North"},
		{ID: "phi", Name: "Eagles", City: "Philadelphia", Abbreviation: "PHI", Conference: "NFC", Division: "East"},
		{ID: "dal", Name: "Cowboys", City: "Dallas", Abbreviation: "DAL", Conference: "NFC", Division: "East"},
		{ID: "sf", Name: "49ers", City: "San Francisco", Abbreviation: "SF", Conference: "NFC", Division: "West"},
		{ID: "det", Name: "Lions", City: "Detroit", Abbreviation: "DET", Conference: "NFC", Division: "North"},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:         "m-2025-w1-phi-dal",
			SeasonID:   SeasonID2025,
			Week:       1,
			HomeTeamID: "phi",
			AwayTeamID: "dal",
			KickoffAt:  time.Date(2025, 9, 4, 20, 20, 0, 0, time.UTC),
			Status:     match.StatusScheduled,
			GameType:   "regular",
		},
		{
			ID:         "m-2025-w1-kc-buf",
			SeasonID:   SeasonID2025,
			Week:       1,
			HomeTeamID: "kc",
			AwayTeamID: "buf",
			KickoffAt:  time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC),
			Status:     match.StatusScheduled,
			GameType:   "regular",
		},
		{
			ID:         "m-2025-w1-sf-det",
			SeasonID:   SeasonID2025,
			Week:       1,
			HomeTeamID: "sf",
			AwayTeamID: "det",
			KickoffAt:  time.Date(2025, 9, 8, 0, 20, 0, 0, time.UTC),
			Status:     match.StatusScheduled,
			GameType:   "regular",
		},
		{
			ID:         "m-2025-w2-bal-cin",
			SeasonID:   SeasonID2025,
			Week:       2,
			HomeTeamID: "bal",
			AwayTeamID: "cin",
			KickoffAt:  time.Date(2025, 9, 14, 17, 0, 0, 0, time.UTC),
			Status:     match.StatusScheduled,
			GameType:   "regular",
		},
	}
}

func SeedEntries() []entry.Entry {
	return []entry.Entry{
		{ID: "e-alpha", UserID: "u-001", SeasonID: SeasonID2025, Name: "Alpha Squad", Status: entry.StatusAlive, IsActive: true},
		{ID: "e-bravo", UserID: "u-002", SeasonID: SeasonID2025, Name: "Bravo Bunch", Status: entry.StatusAlive, IsActive: true},
		{ID: "e-charlie", UserID: "u-003", SeasonID: SeasonID2025, Name: "Charlie Crew", Status: entry.StatusAlive, IsActive: true},
	}
}
