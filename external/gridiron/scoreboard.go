package gridiron

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/survivor-pool/internal/usecase"
)

// Scoreboard payload as the feed ships it. Scores arrive as strings and
// kickoff timestamps use minute precision.
type scoreboardEnvelope struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Week   struct {
		Number int `json:"number"`
	} `json:"week"`
	Season struct {
		Year int `json:"year"`
		Type int `json:"type"`
	} `json:"season"`
	Status struct {
		Type struct {
			State     string `json:"state"`
			Completed bool   `json:"completed"`
		} `json:"type"`
	} `json:"status"`
	Competitions []scoreboardCompetition `json:"competitions"`
}

type scoreboardCompetition struct {
	Competitors []scoreboardCompetitor `json:"competitors"`
}

type scoreboardCompetitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     struct {
		DisplayName  string `json:"displayName"`
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}

func mapScoreboardEvent(item scoreboardEvent) (usecase.ExternalEvent, bool) {
	if item.ID == "" || len(item.Competitions) == 0 {
		return usecase.ExternalEvent{}, false
	}

	kickoff, err := parseScoreboardTime(item.Date)
	if err != nil {
		return usecase.ExternalEvent{}, false
	}

	competitors := make([]usecase.ExternalCompetitor, 0, len(item.Competitions[0].Competitors))
	for _, competitor := range item.Competitions[0].Competitors {
		competitors = append(competitors, usecase.ExternalCompetitor{
			HomeAway:     strings.ToLower(strings.TrimSpace(competitor.HomeAway)),
			TeamName:     competitor.Team.DisplayName,
			Abbreviation: competitor.Team.Abbreviation,
			Score:        parseScore(competitor.Score),
		})
	}

	return usecase.ExternalEvent{
		ExternalID:  item.ID,
		Week:        item.Week.Number,
		KickoffAt:   kickoff,
		Status:      mapEventStatus(item.Status.Type.State, item.Status.Type.Completed),
		GameType:    mapGameType(item.Season.Type),
		Competitors: competitors,
	}, true
}

func parseScoreboardTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if ts, err := time.Parse("2006-01-02T15:04Z", value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}

func parseScore(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func mapEventStatus(state string, completed bool) string {
	if completed {
		return "final"
	}
	return strings.ToLower(strings.TrimSpace(state))
}

func mapGameType(seasonType int) string {
	switch seasonType {
	case 1:
		return "preseason"
	case 3:
		return "postseason"
	default:
		return "regular"
	}
}
