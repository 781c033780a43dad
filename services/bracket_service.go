package services

import (
	"context"

	"bracket-pool-go/bracket"
	"bracket-pool-go/logging"
	"bracket-pool-go/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BracketService handles pick selection and resets for both the official
// results bracket and member entries. All winner propagation goes through
// the bracket engine with the league's final four mapping.
type BracketService struct {
	leagueRepo  LeagueRepository
	bracketRepo BracketRepository
	logger      *logging.Logger
}

// NewBracketService creates a new bracket service.
func NewBracketService(leagueRepo LeagueRepository, bracketRepo BracketRepository) *BracketService {
	return &BracketService{
		leagueRepo:  leagueRepo,
		bracketRepo: bracketRepo,
		logger:      logging.WithPrefix("BracketService"),
	}
}

// GetOfficialBracket loads the league's official results bracket.
func (s *BracketService) GetOfficialBracket(ctx context.Context, leagueID primitive.ObjectID) (*models.BracketEntry, error) {
	official, err := s.bracketRepo.FindOfficial(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if official == nil {
		return nil, ErrBracketNotFound
	}
	return official, nil
}

// GetEntry loads a member's entry bracket.
func (s *BracketService) GetEntry(ctx context.Context, leagueID primitive.ObjectID, userID int) (*models.BracketEntry, error) {
	entry, err := s.bracketRepo.FindByLeagueAndUser(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrBracketNotFound
	}
	return entry, nil
}

// SelectOfficialWinner records a real game result on the official bracket.
// Admin only; locked rounds do not apply to official results.
func (s *BracketService) SelectOfficialWinner(ctx context.Context, leagueID primitive.ObjectID, actor *models.User, round models.Round, matchupIndex int, winnerName string, winnerSeed *int) (*models.BracketEntry, error) {
	league, err := s.loadLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !league.IsAdmin(actor.ID) {
		return nil, ErrNotLeagueAdmin
	}
	if league.IsEnded() {
		return nil, ErrLeagueEnded
	}

	official, err := s.GetOfficialBracket(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	updated, err := bracket.SelectWinner(official.Bracket, round, matchupIndex, winnerName, winnerSeed, league.FinalFour)
	if err != nil {
		return nil, err
	}
	official.Bracket = updated
	if err := s.bracketRepo.Update(ctx, official); err != nil {
		return nil, err
	}

	s.logger.Infof("Official result: %s wins %s[%d] in league %s", winnerName, round, matchupIndex, leagueID.Hex())
	return official, nil
}

// SelectEntryWinner records a member's pick on their entry bracket. Rejected
// when the league has ended or the round is locked.
func (s *BracketService) SelectEntryWinner(ctx context.Context, leagueID primitive.ObjectID, user *models.User, round models.Round, matchupIndex int, winnerName string, winnerSeed *int) (*models.BracketEntry, error) {
	league, err := s.loadLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if league.IsEnded() {
		return nil, ErrLeagueEnded
	}
	if league.IsRoundLocked(round) {
		return nil, ErrRoundLocked
	}

	entry, err := s.GetEntry(ctx, leagueID, user.ID)
	if err != nil {
		return nil, err
	}

	updated, err := bracket.SelectWinner(entry.Bracket, round, matchupIndex, winnerName, winnerSeed, league.FinalFour)
	if err != nil {
		return nil, err
	}
	entry.Bracket = updated
	if err := s.bracketRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Debugf("User %d picked %s in %s[%d], league %s", user.ID, winnerName, round, matchupIndex, leagueID.Hex())
	return entry, nil
}

// ResetOfficial clears all recorded results from the official bracket while
// keeping the first round team assignments. Admin only.
func (s *BracketService) ResetOfficial(ctx context.Context, leagueID primitive.ObjectID, actor *models.User) (*models.BracketEntry, error) {
	league, err := s.loadLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !league.IsAdmin(actor.ID) {
		return nil, ErrNotLeagueAdmin
	}
	if league.IsEnded() {
		return nil, ErrLeagueEnded
	}

	official, err := s.GetOfficialBracket(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	official.Bracket = bracket.ResetResults(official.Bracket)
	if err := s.bracketRepo.Update(ctx, official); err != nil {
		return nil, err
	}

	s.logger.Infof("Official bracket reset in league %s", leagueID.Hex())
	return official, nil
}

// ResetEntry clears all of a member's picks. Rejected once any round is
// locked, since locked picks are final.
func (s *BracketService) ResetEntry(ctx context.Context, leagueID primitive.ObjectID, user *models.User) (*models.BracketEntry, error) {
	league, err := s.loadLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if league.IsEnded() {
		return nil, ErrLeagueEnded
	}
	if league.HasLockedRounds() {
		return nil, ErrRoundLocked
	}

	entry, err := s.GetEntry(ctx, leagueID, user.ID)
	if err != nil {
		return nil, err
	}

	entry.Bracket = bracket.ResetResults(entry.Bracket)
	if err := s.bracketRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Infof("User %d reset their bracket in league %s", user.ID, leagueID.Hex())
	return entry, nil
}

func (s *BracketService) loadLeague(ctx context.Context, leagueID primitive.ObjectID) (*models.League, error) {
	league, err := s.leagueRepo.FindByID(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if league == nil {
		return nil, ErrLeagueNotFound
	}
	return league, nil
}
