package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/survivor-pool/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams []team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	out := make([]team.Team, len(teams))
	copy(out, teams)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Abbreviation < out[j].Abbreviation
	})

	return &TeamRepository{teams: out}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, len(r.teams))
	copy(out, r.teams)
	return out, nil
}
