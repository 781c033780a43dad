package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bracket-pool-go/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User)}
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *fakeUserRepo) GetUserByID(id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

func (r *fakeUserRepo) GetUserByResetToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != "" && u.ResetToken == token {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	r.users[user.ID] = user
	return nil
}

type fakeLeagueRepo struct {
	mu      sync.Mutex
	leagues map[primitive.ObjectID]*models.League
}

func newFakeLeagueRepo() *fakeLeagueRepo {
	return &fakeLeagueRepo{leagues: make(map[primitive.ObjectID]*models.League)}
}

func (r *fakeLeagueRepo) Create(ctx context.Context, league *models.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if league.ID.IsZero() {
		league.ID = primitive.NewObjectID()
	}
	r.leagues[league.ID] = league
	return nil
}

func (r *fakeLeagueRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leagues[id], nil
}

func (r *fakeLeagueRepo) FindByInviteCode(ctx context.Context, code string) (*models.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leagues {
		if l.InviteCode == code {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLeagueRepo) Update(ctx context.Context, league *models.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leagues[league.ID]; !ok {
		return errors.New("league not found")
	}
	r.leagues[league.ID] = league
	return nil
}

type fakeBracketRepo struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]*models.BracketEntry
}

func newFakeBracketRepo() *fakeBracketRepo {
	return &fakeBracketRepo{entries: make(map[primitive.ObjectID]*models.BracketEntry)}
}

func (r *fakeBracketRepo) Create(ctx context.Context, entry *models.BracketEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeBracketRepo) FindOfficial(ctx context.Context, leagueID primitive.ObjectID) (*models.BracketEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.LeagueID == leagueID && e.Role == models.BracketRoleOfficial {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeBracketRepo) FindByLeagueAndUser(ctx context.Context, leagueID primitive.ObjectID, userID int) (*models.BracketEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.LeagueID == leagueID && e.UserID == userID && e.Role == models.BracketRoleEntry {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeBracketRepo) FindEntriesByLeague(ctx context.Context, leagueID primitive.ObjectID) ([]*models.BracketEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.BracketEntry
	for _, e := range r.entries {
		if e.LeagueID == leagueID && e.Role == models.BracketRoleEntry {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeBracketRepo) Update(ctx context.Context, entry *models.BracketEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID]; !ok {
		return errors.New("bracket not found")
	}
	r.entries[entry.ID] = entry
	return nil
}

// testEnv wires the services over in-memory fakes.
type testEnv struct {
	userRepo    *fakeUserRepo
	leagueRepo  *fakeLeagueRepo
	bracketRepo *fakeBracketRepo
	auth        *AuthService
	scoring     *ScoringService
	leagues     *LeagueService
	brackets    *BracketService
}

func newTestEnv() *testEnv {
	userRepo := newFakeUserRepo()
	leagueRepo := newFakeLeagueRepo()
	bracketRepo := newFakeBracketRepo()

	scoring := NewScoringService(leagueRepo, bracketRepo, userRepo)
	return &testEnv{
		userRepo:    userRepo,
		leagueRepo:  leagueRepo,
		bracketRepo: bracketRepo,
		auth:        NewAuthService(userRepo, "test-secret"),
		scoring:     scoring,
		leagues:     NewLeagueService(leagueRepo, bracketRepo, scoring),
		brackets:    NewBracketService(leagueRepo, bracketRepo),
	}
}

func (e *testEnv) createUser(name, email string) *models.User {
	user := &models.User{Name: name, Email: email}
	if err := user.HashPassword("password123"); err != nil {
		panic(err)
	}
	if err := e.userRepo.CreateUser(user); err != nil {
		panic(err)
	}
	return user
}

// fullTeams builds a complete assignment with names like "east-01".
func fullTeams() models.TeamAssignment {
	teams := models.TeamAssignment{}
	for _, region := range models.RegionOrder {
		slots := make([]models.Team, models.SeedsPerRegion)
		for i := range slots {
			slots[i] = models.Team{
				Name: fmt.Sprintf("%s-%02d", region, i+1),
				Seed: i + 1,
			}
		}
		teams[region] = slots
	}
	return teams
}
