package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"skill-match/internal/domain/similarity"
	"skill-match/internal/repository"

	"github.com/google/uuid"
)

type mockSkillRepo struct {
	skills []repository.Skill
	err    error
}

func (m mockSkillRepo) GetAllSkills(context.Context) ([]repository.Skill, error) {
	return m.skills, m.err
}

func (m mockSkillRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	for _, s := range m.skills {
		if s.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m mockSkillRepo) CreateSkill(_ context.Context, name string) (repository.Skill, error) {
	return repository.Skill{ID: uuid.New(), Name: name}, nil
}

type mockUserRepo struct {
	profile repository.UserProfile
	peers   []repository.UserProfile
	err     error

	lastExcluded uuid.UUID
}

func (m *mockUserRepo) CreateUser(_ context.Context, u repository.User, _ []uuid.UUID) (repository.User, error) {
	return u, nil
}

func (m *mockUserRepo) GetUserByEmail(context.Context, string) (repository.User, error) {
	return repository.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) GetUserByID(context.Context, uuid.UUID) (repository.User, error) {
	return repository.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) GetUserWithSkills(_ context.Context, id uuid.UUID) (repository.UserProfile, error) {
	if m.err != nil {
		return repository.UserProfile{}, m.err
	}
	if m.profile.ID != id {
		return repository.UserProfile{}, repository.ErrUserNotFound
	}
	return m.profile, nil
}

func (m *mockUserRepo) ListUsersWithSkills(_ context.Context, excluding uuid.UUID) ([]repository.UserProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastExcluded = excluding
	return m.peers, nil
}

func (m *mockUserRepo) AddUserSkill(context.Context, uuid.UUID, uuid.UUID) error    { return nil }
func (m *mockUserRepo) RemoveUserSkill(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type mockJobRepo struct {
	jobs []repository.JobWithSkills
	err  error

	lastFilter []string
}

func (m *mockJobRepo) ListJobsWithSkills(_ context.Context, titleFilters []string) ([]repository.JobWithSkills, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastFilter = titleFilters
	if len(titleFilters) == 0 {
		return m.jobs, nil
	}

	out := make([]repository.JobWithSkills, 0, len(m.jobs))
	for _, j := range m.jobs {
		for _, f := range titleFilters {
			if strings.EqualFold(j.Title, f) {
				out = append(out, j)
				break
			}
		}
	}
	return out, nil
}

func (m *mockJobRepo) GetJobWithSkills(context.Context, uuid.UUID) (repository.JobWithSkills, error) {
	return repository.JobWithSkills{}, repository.ErrJobNotFound
}

func (m *mockJobRepo) CreateJob(context.Context, string, []uuid.UUID) (repository.JobWithSkills, error) {
	return repository.JobWithSkills{}, nil
}

type fakeCache struct {
	entries map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	for k := range c.entries {
		delete(c.entries, k)
	}
	return nil
}

type fixture struct {
	skillIDs map[string]uuid.UUID
	skills   []repository.Skill
}

func newFixture(names ...string) fixture {
	f := fixture{skillIDs: map[string]uuid.UUID{}}
	for _, n := range names {
		id := uuid.New()
		f.skillIDs[n] = id
		f.skills = append(f.skills, repository.Skill{ID: id, Name: n})
	}
	return f
}

func (f fixture) pick(names ...string) []repository.Skill {
	out := make([]repository.Skill, 0, len(names))
	for _, n := range names {
		out = append(out, repository.Skill{ID: f.skillIDs[n], Name: n})
	}
	return out
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTopJobMatch_NarrowsByTitleAndPicksBestLLR(t *testing.T) {
	f := newFixture("Go", "PostgreSQL", "Docker", "Redis", "Python")
	userID := uuid.New()

	users := &mockUserRepo{profile: repository.UserProfile{
		ID:       userID,
		Username: "alice",
		JobTitle: "Backend Engineer",
		Skills:   f.pick("Go", "PostgreSQL", "Docker"),
	}}
	backendJob := repository.JobWithSkills{ID: uuid.New(), Title: "Backend Developer", Skills: f.pick("Go", "PostgreSQL", "Redis")}
	dataJob := repository.JobWithSkills{ID: uuid.New(), Title: "Data Scientist", Skills: f.pick("Go", "PostgreSQL", "Docker")}
	jobs := &mockJobRepo{jobs: []repository.JobWithSkills{dataJob, backendJob}}

	uc := NewRecommendationUsecase(mockSkillRepo{skills: f.skills}, users, jobs, nil, DefaultRecommendationWeights())

	res, err := uc.TopJobMatch(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.Matched {
		t.Fatalf("expected a match")
	}
	if res.JobID != backendJob.ID {
		t.Fatalf("expected the backend job to win after title narrowing, got %s", res.Title)
	}
	if len(jobs.lastFilter) == 0 {
		t.Fatalf("expected title variations to be passed as catalog filter")
	}
	if len(res.MatchingSkills) != 2 {
		t.Fatalf("expected 2 matching skills, got %d", len(res.MatchingSkills))
	}
	if len(res.MissingSkills) != 1 || res.MissingSkills[0].SkillName != "Redis" {
		t.Fatalf("expected missing skills [Redis], got %+v", res.MissingSkills)
	}
}

func TestTopJobMatch_UnknownTitleFallsBackToFullCatalog(t *testing.T) {
	f := newFixture("Go", "PostgreSQL", "Docker")
	userID := uuid.New()

	users := &mockUserRepo{profile: repository.UserProfile{
		ID:       userID,
		JobTitle: "Astronaut",
		Skills:   f.pick("Go", "PostgreSQL"),
	}}
	job := repository.JobWithSkills{ID: uuid.New(), Title: "Data Scientist", Skills: f.pick("Go", "PostgreSQL")}
	jobs := &mockJobRepo{jobs: []repository.JobWithSkills{job}}

	uc := NewRecommendationUsecase(mockSkillRepo{skills: f.skills}, users, jobs, nil, DefaultRecommendationWeights())

	res, err := uc.TopJobMatch(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs.lastFilter) != 0 {
		t.Fatalf("expected no catalog filter for an unknown title, got %v", jobs.lastFilter)
	}
	if !res.Matched || res.JobID != job.ID {
		t.Fatalf("expected the only job to win, got %+v", res)
	}
}

func TestTopJobMatch_EmptyFilteredCatalogIsNoMatch(t *testing.T) {
	f := newFixture("Go")
	userID := uuid.New()

	users := &mockUserRepo{profile: repository.UserProfile{
		ID:       userID,
		JobTitle: "Backend Engineer",
		Skills:   f.pick("Go"),
	}}
	jobs := &mockJobRepo{jobs: []repository.JobWithSkills{
		{ID: uuid.New(), Title: "Data Scientist", Skills: f.pick("Go")},
	}}

	uc := NewRecommendationUsecase(mockSkillRepo{skills: f.skills}, users, jobs, nil, DefaultRecommendationWeights())

	res, err := uc.TopJobMatch(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected no-match result, not error: %v", err)
	}
	if res.Matched {
		t.Fatalf("expected no match, got %+v", res)
	}
	if res.Score != 0 || len(res.MatchingSkills) != 0 || len(res.MissingSkills) != 0 {
		t.Fatalf("expected zeroed no-match result, got %+v", res)
	}
}

func TestTopJobMatch_UserNotFound(t *testing.T) {
	uc := NewRecommendationUsecase(mockSkillRepo{}, &mockUserRepo{}, &mockJobRepo{}, nil, DefaultRecommendationWeights())

	_, err := uc.TopJobMatch(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTopJobMatch_RepoFailureIsDataUnavailable(t *testing.T) {
	userID := uuid.New()
	users := &mockUserRepo{err: errors.New("connection refused")}

	uc := NewRecommendationUsecase(mockSkillRepo{}, users, &mockJobRepo{}, nil, DefaultRecommendationWeights())

	_, err := uc.TopJobMatch(context.Background(), userID)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestTopJobMatch_UniverseMustCoverUserSkills(t *testing.T) {
	f := newFixture("Go", "PostgreSQL")
	userID := uuid.New()

	users := &mockUserRepo{profile: repository.UserProfile{
		ID:     userID,
		Skills: append(f.pick("Go"), repository.Skill{ID: uuid.New(), Name: "Unknown"}),
	}}
	jobs := &mockJobRepo{jobs: []repository.JobWithSkills{
		{ID: uuid.New(), Title: "Backend Developer", Skills: f.pick("Go")},
	}}

	uc := NewRecommendationUsecase(mockSkillRepo{skills: f.skills}, users, jobs, nil, DefaultRecommendationWeights())

	_, err := uc.TopJobMatch(context.Background(), userID)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for universe violation, got %v", err)
	}
}

func TestTopJobMatch_EmptySkillProfileDegradesGracefully(t *testing.T) {
	f := newFixture("Go", "PostgreSQL")
	userID := uuid.New()

	users := &mockUserRepo{profile: repository.UserProfile{ID: userID, JobTitle: ""}}
	job := repository.JobWithSkills{ID: uuid.New(), Title: "Backend Developer", Skills: f.pick("Go", "PostgreSQL")}
	jobs := &mockJobRepo{jobs: []repository.JobWithSkills{job}}

	uc := NewRecommendationUsecase(mockSkillRepo{skills: f.skills}, users, jobs, nil, DefaultRecommendationWeights())

	res, err := uc.TopJobMatch(context.Background(), userID)
	if err != nil {
		t.Fatalf("empty skill set must not error: %v", err)
	}
	if !res.Matched || res.Score != 0 {
		t.Fatalf("expected zero-score match, got %+v", res)
	}
	if len(res.MissingSkills) != len(job.Skills) {
		t.Fatalf("expected the whole target as gap, got %+v", res.MissingSkills)
	}
}

func TestJobRecommendations_ThreeIndependentlySortedLists(t *testing.T) {
	f := newFixture("Go", "PostgreSQL", "Docker", "Redis", "Python", "Kafka")
	userID := uuid.New()

	users := &mockUserRepo{profile: repository.UserProfile{
		ID:       userID,
		JobTitle: "Backend Engineer",
		Skills:   f.pick("Go", "PostgreSQL"),
	}}
	exact := repository.JobWithSkills{ID: uuid.New(), Title: "Backend Developer", Skills: f.pick("Go", "PostgreSQL")}
	broad := repository.JobWithSkills{ID: uuid.New(), Title: "Platform Engineer", Skills: f.pick("Go", "Docker", "Redis", "Kafka")}
	unrelated := repository.JobWithSkills{ID: uuid.New(), Title: "Data Scientist", Skills: f.pick("Python")}
	jobs := &mockJobRepo{jobs: []repository.JobWithSkills{unrelated, broad, exact}}

	uc := NewRecommendationUsecase(mockSkillRepo{skills: f.skills}, users, jobs, nil, DefaultRecommendationWeights())

	res, err := uc.JobRecommendations(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, list := range [][]ScoredJob{res.ByCosine, res.ByLLR, res.Blended} {
		if len(list) != 3 {
			t.Fatalf("expected 3 jobs per list, got %d", len(list))
		}
		for i := 1; i < len(list); i++ {
			if list[i].Score > list[i-1].Score {
				t.Fatalf("expected descending scores, got %v then %v", list[i-1].Score, list[i].Score)
			}
		}
	}
	if res.ByCosine[0].JobID != exact.ID {
		t.Fatalf("expected exact-overlap job to lead cosine list")
	}
	if res.ByLLR[0].JobID != exact.ID {
		t.Fatalf("expected exact-overlap job to lead llr list")
	}

	// the blend is recomputed per job, not assembled from the two top-N lists
	userSet := similarity.NewSet(f.skillIDs["Go"], f.skillIDs["PostgreSQL"])
	universe := similarity.NewSet()
	for _, s := range f.skills {
		universe.Add(s.ID)
	}
	for _, got := range res.Blended {
		for _, j := range jobs.jobs {
			if j.ID != got.JobID {
				continue
			}
			jobSet := similarity.NewSet()
			for _, s := range j.Skills {
				jobSet.Add(s.ID)
			}
			want := 0.6*similarity.Cosine(userSet, jobSet, universe) + 0.4*similarity.LLR(userSet, jobSet, universe)
			if !approxEq(got.Score, want) {
				t.Fatalf("job %s: expected blended score %v, got %v", j.Title, want, got.Score)
			}
		}
	}
}

func TestJobRecommendations_TruncatesToTopN(t *testing.T) {
	f := newFixture("Go", "PostgreSQL", "Docker")
	userID := uuid.New()

	users := &mockUserRepo{profile: repository.UserProfile{ID: userID, Skills: f.pick("Go")}}
	jobs := &mockJobRepo{jobs: []repository.JobWithSkills{
		{ID: uuid.New(), Title: "A", Skills: f.pick("Go")},
		{ID: uuid.New(), Title: "B", Skills: f.pick("Go", "PostgreSQL")},
		{ID: uuid.New(), Title: "C", Skills: f.pick("Docker")},
	}}

	uc := NewRecommendationUsecase(mockSkillRepo{skills: f.skills}, users, jobs, nil, DefaultRecommendationWeights())

	res, err := uc.JobRecommendations(context.Background(), userID, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.ByCosine) != 2 || len(res.ByLLR) != 2 || len(res.Blended) != 2 {
		t.Fatalf("expected top-2 truncation, got %d/%d/%d", len(res.ByCosine), len(res.ByLLR), len(res.Blended))
	}
}

func TestJobRecommendations_EmptyCatalogIsEmptyResult(t *testing.T) {
	f := newFixture("Go")
	userID := uuid.New()

	users := &mockUserRepo{profile: repository.UserProfile{ID: userID, Skills: f.pick("Go")}}
	uc := NewRecommendationUsecase(mockSkillRepo{skills: f.skills}, users, &mockJobRepo{}, nil, DefaultRecommendationWeights())

	res, err := uc.JobRecommendations(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("empty catalog must not error: %v", err)
	}
	if len(res.ByCosine) != 0 || len(res.ByLLR) != 0 || len(res.Blended) != 0 {
		t.Fatalf("expected empty lists, got %+v", res)
	}
}

func TestJobRecommendations_UniverseFetchFailureIsDataUnavailable(t *testing.T) {
	f := newFixture("Go")
	userID := uuid.New()

	users := &mockUserRepo{profile: repository.UserProfile{ID: userID, Skills: f.pick("Go")}}
	jobs := &mockJobRepo{jobs: []repository.JobWithSkills{{ID: uuid.New(), Title: "A", Skills: f.pick("Go")}}}

	uc := NewRecommendationUsecase(mockSkillRepo{err: errors.New("timeout")}, users, jobs, nil, DefaultRecommendationWeights())

	_, err := uc.JobRecommendations(context.Background(), userID, 10)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestSimilarPeers_BlendAndOrdering(t *testing.T) {
	f := newFixture("Go", "PostgreSQL", "Python")
	userID := uuid.New()

	twin := repository.UserProfile{ID: uuid.New(), Username: "bob", JobTitle: "Backend Engineer", Skills: f.pick("Go", "PostgreSQL")}
	distant := repository.UserProfile{ID: uuid.New(), Username: "carol", JobTitle: "Data Scientist", Skills: f.pick("Go", "Python")}

	users := &mockUserRepo{
		profile: repository.UserProfile{ID: userID, Username: "alice", JobTitle: "Backend Engineer", Skills: f.pick("Go", "PostgreSQL")},
		peers:   []repository.UserProfile{distant, twin},
	}

	uc := NewRecommendationUsecase(mockSkillRepo{skills: f.skills}, users, &mockJobRepo{}, nil, DefaultRecommendationWeights())

	out, err := uc.SimilarPeers(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if users.lastExcluded != userID {
		t.Fatalf("expected requester to be excluded from the peer scan")
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 peers, got %d", len(out))
	}
	if out[0].UserID != twin.ID {
		t.Fatalf("expected identical peer first, got %s", out[0].Username)
	}
	if !approxEq(out[0].Score, 1.0) {
		t.Fatalf("expected identical peer to score 1.0, got %v", out[0].Score)
	}

	// 0.4·Jaccard + 0.3·title overlap + 0.3·match percent
	wantDistant := 0.4*(1.0/3.0) + 0.3*0 + 0.3*0.5
	if !approxEq(out[1].Score, wantDistant) {
		t.Fatalf("expected distant peer score %v, got %v", wantDistant, out[1].Score)
	}
	if len(out[1].MatchingSkills) != 1 || out[1].MatchingSkills[0].SkillName != "Go" {
		t.Fatalf("expected matching skills [Go], got %+v", out[1].MatchingSkills)
	}
	if len(out[1].AdditionalSkills) != 1 || out[1].AdditionalSkills[0].SkillName != "Python" {
		t.Fatalf("expected additional skills [Python], got %+v", out[1].AdditionalSkills)
	}
}

func TestSimilarPeers_EmptyRequesterSkills(t *testing.T) {
	f := newFixture("Go")
	userID := uuid.New()

	peer := repository.UserProfile{ID: uuid.New(), Username: "bob", JobTitle: "Backend Engineer", Skills: f.pick("Go")}
	users := &mockUserRepo{
		profile: repository.UserProfile{ID: userID, Username: "alice"},
		peers:   []repository.UserProfile{peer},
	}

	uc := NewRecommendationUsecase(mockSkillRepo{skills: f.skills}, users, &mockJobRepo{}, nil, DefaultRecommendationWeights())

	out, err := uc.SimilarPeers(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out[0].Score != 0 {
		t.Fatalf("expected zero score for empty requester profile, got %v", out[0].Score)
	}
	if len(out[0].AdditionalSkills) != 1 {
		t.Fatalf("expected the peer's whole set as additional skills")
	}
}

func TestTopJobMatch_ServesFromCache(t *testing.T) {
	f := newFixture("Go", "PostgreSQL")
	userID := uuid.New()

	users := &mockUserRepo{profile: repository.UserProfile{
		ID:       userID,
		JobTitle: "Backend Engineer",
		Skills:   f.pick("Go"),
	}}
	job := repository.JobWithSkills{ID: uuid.New(), Title: "Backend Developer", Skills: f.pick("Go", "PostgreSQL")}
	jobs := &mockJobRepo{jobs: []repository.JobWithSkills{job}}

	cache := newFakeCache()
	uc := NewRecommendationUsecase(mockSkillRepo{skills: f.skills}, users, jobs, nil, DefaultRecommendationWeights()).
		WithCache(cache, time.Minute)

	first, err := uc.TopJobMatch(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// catalog changes behind the cache; the cached result is still served
	// until a mutation invalidates it
	jobs.jobs = nil
	second, err := uc.TopJobMatch(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.JobID != first.JobID || !second.Matched {
		t.Fatalf("expected cached result, got %+v", second)
	}

	if err := cache.DeleteByPattern(context.Background(), "rec:*"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	third, err := uc.TopJobMatch(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if third.Matched {
		t.Fatalf("expected recompute after invalidation to see the empty catalog, got %+v", third)
	}
}
