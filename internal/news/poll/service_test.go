// Copyright (c) 2026 TimesNews Media. All rights reserved.

package poll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
)

// # Test Doubles

type memoryRepository struct {
	polls map[string]*Poll
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{polls: make(map[string]*Poll)}
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*Poll, error) {
	if found, ok := repo.polls[id]; ok {
		return found, nil
	}
	return nil, apperr.NotFound("Poll")
}

func (repo *memoryRepository) ListActive(_ context.Context) ([]*Poll, error) {
	var active []*Poll
	for _, candidate := range repo.polls {
		if candidate.IsActive {
			active = append(active, candidate)
		}
	}
	return active, nil
}

func (repo *memoryRepository) ListAll(_ context.Context) ([]*Poll, error) {
	var all []*Poll
	for _, candidate := range repo.polls {
		all = append(all, candidate)
	}
	return all, nil
}

func (repo *memoryRepository) Create(_ context.Context, created *Poll) error {
	repo.polls[created.ID] = created
	return nil
}

func (repo *memoryRepository) SetActive(_ context.Context, id string, active bool) error {
	found, ok := repo.polls[id]
	if !ok {
		return apperr.NotFound("Poll")
	}
	found.IsActive = active
	return nil
}

func (repo *memoryRepository) IncrementVote(_ context.Context, pollID, optionID string) (bool, error) {
	found, ok := repo.polls[pollID]
	if !ok {
		return false, nil
	}
	for _, option := range found.Options {
		if option.ID == optionID {
			option.Votes++
			return true, nil
		}
	}
	return false, nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.polls[id]; !ok {
		return apperr.NotFound("Poll")
	}
	delete(repo.polls, id)
	return nil
}

// memoryVoterRegistry tracks voters per poll in plain sets.
type memoryVoterRegistry struct {
	voters map[string]map[string]bool
}

func newMemoryVoterRegistry() *memoryVoterRegistry {
	return &memoryVoterRegistry{voters: make(map[string]map[string]bool)}
}

func (registry *memoryVoterRegistry) Register(_ context.Context, pollID, voterKey string) (bool, error) {
	set, ok := registry.voters[pollID]
	if !ok {
		set = make(map[string]bool)
		registry.voters[pollID] = set
	}
	if set[voterKey] {
		return false, nil
	}
	set[voterKey] = true
	return true, nil
}

// # Test Helpers

func newTestService(t *testing.T) (*Service, *memoryRepository, *memoryVoterRegistry) {
	t.Helper()
	repository := newMemoryRepository()
	voters := newMemoryVoterRegistry()
	return NewService(repository, voters), repository, voters
}

func seedPoll(repository *memoryRepository, id string, active bool, optionIDs ...string) *Poll {
	seeded := &Poll{ID: id, Question: "Question " + id, IsActive: active}
	for position, optionID := range optionIDs {
		seeded.Options = append(seeded.Options, &Option{ID: optionID, Label: "Option " + optionID, Position: position})
	}
	repository.polls[id] = seeded
	return seeded
}

func principalWithRole(role sec.Role) *sec.Principal {
	return &sec.Principal{UserID: "user-" + string(role), Role: role}
}

func requireStatus(t *testing.T, err error, wantStatus int) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an application error, got %v", err)
	assert.Equal(t, wantStatus, appError.HTTPStatus)
}

// # Creation

func TestCreate_EditorOpensPoll(t *testing.T) {
	service, repository, _ := newTestService(t)

	created, err := service.Create(context.Background(), principalWithRole(sec.RoleEditor), CreateInput{
		Question: "Best section?",
		Options:  []string{"Politics", "Sports", "Culture"},
	})

	require.NoError(t, err)
	assert.True(t, created.IsActive)
	require.Len(t, created.Options, 3)
	assert.Equal(t, 2, created.Options[2].Position)
	assert.Contains(t, repository.polls, created.ID)
}

func TestCreate_ReporterForbidden(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Create(context.Background(), principalWithRole(sec.RoleReporter), CreateInput{
		Question: "Q", Options: []string{"A", "B"},
	})

	requireStatus(t, err, 403)
}

// # Voting

func TestVote_FirstVoteCounts(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedPoll(repository, "p1", true, "o1", "o2")

	results, err := service.Vote(context.Background(), "p1", "o1", "203.0.113.9")

	require.NoError(t, err)
	assert.Equal(t, int64(1), results.TotalVotes)
	assert.Equal(t, int64(1), results.Options[0].Votes)
	assert.Equal(t, 100.0, results.Options[0].Percentage)
}

func TestVote_DuplicateAddressConflict(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedPoll(repository, "p1", true, "o1", "o2")

	_, err := service.Vote(context.Background(), "p1", "o1", "203.0.113.9")
	require.NoError(t, err)
	_, err = service.Vote(context.Background(), "p1", "o2", "203.0.113.9")

	requireStatus(t, err, 409)
	assert.Equal(t, int64(1), repository.polls["p1"].TotalVotes())
}

func TestVote_SameAddressDifferentPolls(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedPoll(repository, "p1", true, "o1", "o2")
	seedPoll(repository, "p2", true, "o3", "o4")

	_, err := service.Vote(context.Background(), "p1", "o1", "203.0.113.9")
	require.NoError(t, err)
	_, err = service.Vote(context.Background(), "p2", "o3", "203.0.113.9")
	require.NoError(t, err)
}

func TestVote_ClosedPollRejected(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedPoll(repository, "p1", false, "o1", "o2")

	_, err := service.Vote(context.Background(), "p1", "o1", "203.0.113.9")

	requireStatus(t, err, 422)
}

func TestVote_ForeignOptionRejected(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedPoll(repository, "p1", true, "o1", "o2")
	seedPoll(repository, "p2", true, "o3", "o4")

	_, err := service.Vote(context.Background(), "p1", "o3", "203.0.113.9")

	requireStatus(t, err, 422)
}

func TestVote_RejectedOptionDoesNotBurnVoter(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedPoll(repository, "p1", true, "o1", "o2")

	// 1. A vote naming an option outside the poll is rejected
	_, err := service.Vote(context.Background(), "p1", "not-an-option", "203.0.113.9")
	requireStatus(t, err, 422)

	// 2. The same address can still cast its one valid vote
	results, err := service.Vote(context.Background(), "p1", "o1", "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, int64(1), results.TotalVotes)
}

func TestVote_MissingPollNotFound(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Vote(context.Background(), "ghost", "o1", "203.0.113.9")

	requireStatus(t, err, 404)
}

// # Results

func TestGetResults_Percentages(t *testing.T) {
	service, repository, _ := newTestService(t)
	seeded := seedPoll(repository, "p1", true, "o1", "o2", "o3")
	seeded.Options[0].Votes = 2
	seeded.Options[1].Votes = 1
	seeded.Options[2].Votes = 1

	results, err := service.GetResults(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, int64(4), results.TotalVotes)
	assert.Equal(t, 50.0, results.Options[0].Percentage)
	assert.Equal(t, 25.0, results.Options[1].Percentage)
}

func TestGetResults_NoVotesZeroPercent(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedPoll(repository, "p1", true, "o1", "o2")

	results, err := service.GetResults(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, int64(0), results.TotalVotes)
	assert.Equal(t, 0.0, results.Options[0].Percentage)
}

// # Lifecycle

func TestClose_EditorEndsVoting(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedPoll(repository, "p1", true, "o1", "o2")

	require.NoError(t, service.Close(context.Background(), principalWithRole(sec.RoleEditor), "p1"))

	assert.False(t, repository.polls["p1"].IsActive)
}

func TestClose_ReaderForbidden(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedPoll(repository, "p1", true, "o1", "o2")

	err := service.Close(context.Background(), principalWithRole(sec.RoleReader), "p1")

	requireStatus(t, err, 403)
}

func TestDelete_AdminRemovesPoll(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedPoll(repository, "p1", false, "o1", "o2")

	require.NoError(t, service.Delete(context.Background(), principalWithRole(sec.RoleAdmin), "p1"))

	assert.NotContains(t, repository.polls, "p1")
}

func TestListAll_StaffOnly(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedPoll(repository, "p1", false, "o1", "o2")

	_, err := service.ListAll(context.Background(), principalWithRole(sec.RoleReader))
	requireStatus(t, err, 403)

	polls, err := service.ListAll(context.Background(), principalWithRole(sec.RoleReporter))
	require.NoError(t, err)
	assert.Len(t, polls, 1)
}
