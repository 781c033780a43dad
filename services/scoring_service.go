package services

import (
	"context"
	"fmt"
	"sort"

	"bracket-pool-go/bracket"
	"bracket-pool-go/logging"
	"bracket-pool-go/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// ScoringService computes entry scores and league standings against the
// official results bracket.
type ScoringService struct {
	leagueRepo  LeagueRepository
	bracketRepo BracketRepository
	userRepo    UserRepository
	logger      *logging.Logger
}

// NewScoringService creates a new scoring service.
func NewScoringService(leagueRepo LeagueRepository, bracketRepo BracketRepository, userRepo UserRepository) *ScoringService {
	return &ScoringService{
		leagueRepo:  leagueRepo,
		bracketRepo: bracketRepo,
		userRepo:    userRepo,
		logger:      logging.WithPrefix("ScoringService"),
	}
}

// ScoreEntry scores a single member's bracket against the league's official
// results using the league's scoring configuration.
func (s *ScoringService) ScoreEntry(ctx context.Context, leagueID primitive.ObjectID, userID int) (*models.ScoreResult, error) {
	league, err := s.leagueRepo.FindByID(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if league == nil {
		return nil, ErrLeagueNotFound
	}

	official, err := s.bracketRepo.FindOfficial(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if official == nil {
		return nil, fmt.Errorf("league %s has no official bracket", leagueID.Hex())
	}

	entry, err := s.bracketRepo.FindByLeagueAndUser(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrBracketNotFound
	}

	result := bracket.CalculateScore(entry.Bracket, official.Bracket, league.Scoring)
	return &result, nil
}

// LeagueStandings scores every entry in the league concurrently and returns
// them ranked. Ties on points share a rank; ordering within the table falls
// back to correct picks, then user name.
func (s *ScoringService) LeagueStandings(ctx context.Context, league *models.League) ([]models.Standing, error) {
	official, err := s.bracketRepo.FindOfficial(ctx, league.ID)
	if err != nil {
		return nil, err
	}
	if official == nil {
		return nil, fmt.Errorf("league %s has no official bracket", league.ID.Hex())
	}

	entries, err := s.bracketRepo.FindEntriesByLeague(ctx, league.ID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []models.Standing{}, nil
	}

	standings := make([]models.Standing, len(entries))
	g, _ := errgroup.WithContext(ctx)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			result := bracket.CalculateScore(entry.Bracket, official.Bracket, league.Scoring)
			standings[i] = models.Standing{
				UserID:       entry.UserID,
				UserName:     s.userName(entry.UserID),
				Points:       result.Points,
				BasePoints:   result.BasePoints,
				BonusPoints:  result.BonusPoints,
				CorrectPicks: result.CorrectPicks,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		if standings[i].CorrectPicks != standings[j].CorrectPicks {
			return standings[i].CorrectPicks > standings[j].CorrectPicks
		}
		return standings[i].UserName < standings[j].UserName
	})

	rank := 0
	for i := range standings {
		if i == 0 || standings[i].Points != standings[i-1].Points {
			rank = i + 1
		}
		standings[i].Rank = rank
	}

	return standings, nil
}

// userName resolves a display name, falling back to a placeholder so one
// missing user record never breaks the whole standings table.
func (s *ScoringService) userName(userID int) string {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		s.logger.Warnf("Could not resolve name for user %d: %v", userID, err)
		return fmt.Sprintf("User %d", userID)
	}
	return user.Name
}
