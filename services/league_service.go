package services

import (
	"context"
	"fmt"

	"bracket-pool-go/bracket"
	"bracket-pool-go/logging"
	"bracket-pool-go/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeagueRepository interface for league data operations.
type LeagueRepository interface {
	Create(ctx context.Context, league *models.League) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.League, error)
	FindByInviteCode(ctx context.Context, code string) (*models.League, error)
	Update(ctx context.Context, league *models.League) error
}

// BracketRepository interface for bracket document operations.
type BracketRepository interface {
	Create(ctx context.Context, entry *models.BracketEntry) error
	FindOfficial(ctx context.Context, leagueID primitive.ObjectID) (*models.BracketEntry, error)
	FindByLeagueAndUser(ctx context.Context, leagueID primitive.ObjectID, userID int) (*models.BracketEntry, error)
	FindEntriesByLeague(ctx context.Context, leagueID primitive.ObjectID) ([]*models.BracketEntry, error)
	Update(ctx context.Context, entry *models.BracketEntry) error
}

// LeagueService manages league lifecycle: creation, membership, team and
// scoring configuration, round locks, and ending the league.
type LeagueService struct {
	leagueRepo  LeagueRepository
	bracketRepo BracketRepository
	scoring     *ScoringService
	logger      *logging.Logger
}

// NewLeagueService creates a new league service.
func NewLeagueService(leagueRepo LeagueRepository, bracketRepo BracketRepository, scoring *ScoringService) *LeagueService {
	return &LeagueService{
		leagueRepo:  leagueRepo,
		bracketRepo: bracketRepo,
		scoring:     scoring,
		logger:      logging.WithPrefix("LeagueService"),
	}
}

// CreateLeague creates a league administered by the given user, along with
// its official results bracket seeded from the team assignment.
func (s *LeagueService) CreateLeague(ctx context.Context, admin *models.User, name string, season int, teams models.TeamAssignment) (*models.League, error) {
	if name == "" {
		return nil, fmt.Errorf("league name is required")
	}
	if teams == nil {
		teams = models.EmptyTeams()
	}

	league := &models.League{
		Name:         name,
		Season:       season,
		AdminID:      admin.ID,
		InviteCode:   uuid.NewString(),
		Status:       models.LeagueOpen,
		Teams:        teams,
		FinalFour:    bracket.DefaultFinalFourConfig(),
		LockedRounds: make(map[models.Round]bool),
	}
	if err := s.leagueRepo.Create(ctx, league); err != nil {
		return nil, err
	}

	official := &models.BracketEntry{
		LeagueID: league.ID,
		UserID:   0,
		Role:     models.BracketRoleOfficial,
		Bracket:  bracket.CreateBracketFromTeams(teams),
	}
	if err := s.bracketRepo.Create(ctx, official); err != nil {
		return nil, fmt.Errorf("league created but official bracket failed: %w", err)
	}

	s.logger.Infof("User %d created league %q (%s) for season %d", admin.ID, name, league.ID.Hex(), season)
	return league, nil
}

// GetLeague loads a league by ID.
func (s *LeagueService) GetLeague(ctx context.Context, id primitive.ObjectID) (*models.League, error) {
	league, err := s.leagueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if league == nil {
		return nil, ErrLeagueNotFound
	}
	return league, nil
}

// JoinLeague adds a user to a league by invite code, creating their entry
// bracket from the league's team template. Joining twice returns the
// existing entry.
func (s *LeagueService) JoinLeague(ctx context.Context, user *models.User, inviteCode string) (*models.League, *models.BracketEntry, error) {
	league, err := s.leagueRepo.FindByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, nil, err
	}
	if league == nil {
		return nil, nil, ErrLeagueNotFound
	}
	if league.IsEnded() {
		return nil, nil, ErrLeagueEnded
	}

	existing, err := s.bracketRepo.FindByLeagueAndUser(ctx, league.ID, user.ID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		s.logger.Debugf("User %d already has an entry in league %s", user.ID, league.ID.Hex())
		return league, existing, nil
	}

	entry := &models.BracketEntry{
		LeagueID: league.ID,
		UserID:   user.ID,
		Role:     models.BracketRoleEntry,
		Bracket:  bracket.CreateBracketFromTeams(league.Teams),
	}
	if err := s.bracketRepo.Create(ctx, entry); err != nil {
		return nil, nil, err
	}

	s.logger.Infof("User %d joined league %q (%s)", user.ID, league.Name, league.ID.Hex())
	return league, entry, nil
}

// UpdateTeams replaces the league's team assignment and rebuilds every
// bracket from the new template. Rejected once any round is locked, since
// reseeding would silently discard recorded results and picks.
func (s *LeagueService) UpdateTeams(ctx context.Context, leagueID primitive.ObjectID, actor *models.User, teams models.TeamAssignment) (*models.League, error) {
	league, err := s.requireAdmin(ctx, leagueID, actor)
	if err != nil {
		return nil, err
	}
	if league.HasLockedRounds() {
		return nil, ErrRoundLocked
	}
	if teams == nil {
		teams = models.EmptyTeams()
	}

	league.Teams = teams
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return nil, err
	}

	rebuilt := 0
	official, err := s.bracketRepo.FindOfficial(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if official != nil {
		official.Bracket = bracket.CreateBracketFromTeams(teams)
		if err := s.bracketRepo.Update(ctx, official); err != nil {
			return nil, err
		}
		rebuilt++
	}

	entries, err := s.bracketRepo.FindEntriesByLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		entry.Bracket = bracket.CreateBracketFromTeams(teams)
		if err := s.bracketRepo.Update(ctx, entry); err != nil {
			s.logger.Errorf("Failed to rebuild bracket for user %d in league %s: %v", entry.UserID, leagueID.Hex(), err)
			continue
		}
		rebuilt++
	}

	s.logger.Infof("Teams updated for league %s, %d brackets rebuilt", leagueID.Hex(), rebuilt)
	return league, nil
}

// UpdateScoring replaces the league's scoring configuration.
func (s *LeagueService) UpdateScoring(ctx context.Context, leagueID primitive.ObjectID, actor *models.User, cfg models.ScoringConfig) (*models.League, error) {
	league, err := s.requireAdmin(ctx, leagueID, actor)
	if err != nil {
		return nil, err
	}

	league.Scoring = cfg
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return nil, err
	}

	s.logger.Infof("Scoring config updated for league %s", leagueID.Hex())
	return league, nil
}

// UpdateFinalFour replaces the league's region-to-semifinal mapping.
func (s *LeagueService) UpdateFinalFour(ctx context.Context, leagueID primitive.ObjectID, actor *models.User, cfg models.FinalFourConfig) (*models.League, error) {
	league, err := s.requireAdmin(ctx, leagueID, actor)
	if err != nil {
		return nil, err
	}

	league.FinalFour = cfg
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return nil, err
	}
	return league, nil
}

// SetRoundLock locks or unlocks a round for member pick changes.
func (s *LeagueService) SetRoundLock(ctx context.Context, leagueID primitive.ObjectID, actor *models.User, round models.Round, locked bool) (*models.League, error) {
	if !models.IsValidRound(round) {
		return nil, fmt.Errorf("unknown round %q", round)
	}

	league, err := s.requireAdmin(ctx, leagueID, actor)
	if err != nil {
		return nil, err
	}

	if league.LockedRounds == nil {
		league.LockedRounds = make(map[models.Round]bool)
	}
	league.LockedRounds[round] = locked
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return nil, err
	}

	s.logger.Infof("Round %s lock=%t in league %s", round, locked, leagueID.Hex())
	return league, nil
}

// EndLeague freezes the league, computes final standings, and records the
// winners. Tied entries at the top share the win.
func (s *LeagueService) EndLeague(ctx context.Context, leagueID primitive.ObjectID, actor *models.User) ([]models.Standing, error) {
	league, err := s.requireAdmin(ctx, leagueID, actor)
	if err != nil {
		return nil, err
	}

	standings, err := s.scoring.LeagueStandings(ctx, league)
	if err != nil {
		return nil, fmt.Errorf("failed to compute final standings: %w", err)
	}

	var winners []models.LeagueWinner
	for _, standing := range standings {
		if standing.Rank != 1 {
			break
		}
		winners = append(winners, models.LeagueWinner{
			UserID:       standing.UserID,
			UserName:     standing.UserName,
			Points:       standing.Points,
			CorrectPicks: standing.CorrectPicks,
		})
	}

	league.Status = models.LeagueEnded
	league.Winners = winners
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return nil, err
	}

	s.logger.Infof("League %q (%s) ended with %d winner(s)", league.Name, leagueID.Hex(), len(winners))
	return standings, nil
}

// requireAdmin loads a league and verifies the actor administers it and the
// league is still running. Ended leagues reject all administrative mutation,
// including a second EndLeague.
func (s *LeagueService) requireAdmin(ctx context.Context, leagueID primitive.ObjectID, actor *models.User) (*models.League, error) {
	league, err := s.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !league.IsAdmin(actor.ID) {
		return nil, ErrNotLeagueAdmin
	}
	if league.IsEnded() {
		return nil, ErrLeagueEnded
	}
	return league, nil
}
