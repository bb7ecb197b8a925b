package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"skill-match/internal/domain/jobtitle"
	"skill-match/internal/domain/recommend"
	"skill-match/internal/domain/similarity"
	"skill-match/internal/repository"

	"github.com/google/uuid"
)

// RecommendationWeights is the scoring policy for the blended rankings. The
// defaults are the last-observed weighting; callers may override them but the
// blend is applied uniformly to every candidate.
type RecommendationWeights struct {
	Cosine       float64
	LLR          float64
	PeerSkill    float64
	PeerTitle    float64
	PeerMatchPct float64
}

func DefaultRecommendationWeights() RecommendationWeights {
	return RecommendationWeights{
		Cosine:       0.6,
		LLR:          0.4,
		PeerSkill:    0.4,
		PeerTitle:    0.3,
		PeerMatchPct: 0.3,
	}
}

type RecommendationSkill struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
}

type TopJobMatchResult struct {
	Matched        bool                  `json:"matched"`
	JobID          uuid.UUID             `json:"job_id,omitempty"`
	Title          string                `json:"title,omitempty"`
	Score          float64               `json:"score"`
	MatchingSkills []RecommendationSkill `json:"matching_skills"`
	MissingSkills  []RecommendationSkill `json:"missing_skills"`
}

type ScoredJob struct {
	JobID          uuid.UUID             `json:"job_id"`
	Title          string                `json:"title"`
	Score          float64               `json:"score"`
	MatchingSkills []RecommendationSkill `json:"matching_skills"`
	MissingSkills  []RecommendationSkill `json:"missing_skills"`
}

type JobRecommendationsResult struct {
	ByCosine []ScoredJob `json:"by_cosine"`
	ByLLR    []ScoredJob `json:"by_llr"`
	Blended  []ScoredJob `json:"blended"`
}

type SimilarPeer struct {
	UserID           uuid.UUID             `json:"user_id"`
	Username         string                `json:"username"`
	JobTitle         string                `json:"job_title"`
	Score            float64               `json:"score"`
	MatchingSkills   []RecommendationSkill `json:"matching_skills"`
	AdditionalSkills []RecommendationSkill `json:"additional_skills"`
}

type RecommendationUsecase interface {
	TopJobMatch(ctx context.Context, userID uuid.UUID) (TopJobMatchResult, error)
	JobRecommendations(ctx context.Context, userID uuid.UUID, topN int) (JobRecommendationsResult, error)
	SimilarPeers(ctx context.Context, userID uuid.UUID, topN int) ([]SimilarPeer, error)
}

type Recommendation struct {
	skills  repository.SkillRepository
	users   repository.UserRepository
	jobs    repository.JobRepository
	titles  *jobtitle.Canonicalizer
	weights RecommendationWeights

	cache    RecommendationCache
	cacheTTL time.Duration
}

func NewRecommendationUsecase(
	skills repository.SkillRepository,
	users repository.UserRepository,
	jobs repository.JobRepository,
	titles *jobtitle.Canonicalizer,
	weights RecommendationWeights,
) *Recommendation {
	if titles == nil {
		titles = jobtitle.Default()
	}
	return &Recommendation{skills: skills, users: users, jobs: jobs, titles: titles, weights: weights}
}

// WithCache enables read-through caching of recommendation results. Entries
// are invalidated wholesale on any catalog mutation, never refreshed in place.
func (u *Recommendation) WithCache(cache RecommendationCache, ttl time.Duration) *Recommendation {
	u.cache = cache
	u.cacheTTL = ttl
	return u
}

func (u *Recommendation) TopJobMatch(ctx context.Context, userID uuid.UUID) (TopJobMatchResult, error) {
	if userID == uuid.Nil {
		return TopJobMatchResult{}, ErrUnauthorized
	}

	cacheKey := fmt.Sprintf("rec:top:%s", userID)
	var cached TopJobMatchResult
	if u.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	user, err := u.users.GetUserWithSkills(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TopJobMatchResult{}, ErrUserNotFound
		}
		return TopJobMatchResult{}, ErrDataUnavailable
	}

	// Exact-mode canonicalization; no category match falls back to the
	// entire catalog.
	variations := u.titles.Variations(user.JobTitle, jobtitle.MatchExact)

	jobs, err := u.jobs.ListJobsWithSkills(ctx, variations)
	if err != nil {
		return TopJobMatchResult{}, ErrDataUnavailable
	}

	universe, err := u.skillUniverse(ctx)
	if err != nil {
		return TopJobMatchResult{}, err
	}

	userSet := skillSet(user.Skills)
	if !similarity.CoversSets(universe, userSet) {
		return TopJobMatchResult{}, ErrInvalidInput
	}

	best := -1
	bestScore := 0.0
	for i, job := range jobs {
		jobSet := skillSet(job.Skills)
		if !similarity.CoversSets(universe, jobSet) {
			return TopJobMatchResult{}, ErrInvalidInput
		}
		score := similarity.LLR(userSet, jobSet, universe)
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}

	result := TopJobMatchResult{
		MatchingSkills: []RecommendationSkill{},
		MissingSkills:  []RecommendationSkill{},
	}
	if best >= 0 {
		win := jobs[best]
		result = TopJobMatchResult{
			Matched:        true,
			JobID:          win.ID,
			Title:          win.Title,
			Score:          bestScore,
			MatchingSkills: matchingSkills(userSet, win.Skills),
			MissingSkills:  missingSkills(userSet, win.Skills),
		}
	}

	u.cacheSet(ctx, cacheKey, result)
	return result, nil
}

func (u *Recommendation) JobRecommendations(ctx context.Context, userID uuid.UUID, topN int) (JobRecommendationsResult, error) {
	if userID == uuid.Nil {
		return JobRecommendationsResult{}, ErrUnauthorized
	}
	topN = clampTopN(topN)

	cacheKey := fmt.Sprintf("rec:jobs:%s:%d", userID, topN)
	var cached JobRecommendationsResult
	if u.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	user, err := u.users.GetUserWithSkills(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return JobRecommendationsResult{}, ErrUserNotFound
		}
		return JobRecommendationsResult{}, ErrDataUnavailable
	}

	jobs, err := u.jobs.ListJobsWithSkills(ctx, nil)
	if err != nil {
		return JobRecommendationsResult{}, ErrDataUnavailable
	}

	universe, err := u.skillUniverse(ctx)
	if err != nil {
		return JobRecommendationsResult{}, err
	}

	userSet := skillSet(user.Skills)
	if !similarity.CoversSets(universe, userSet) {
		return JobRecommendationsResult{}, ErrInvalidInput
	}

	type candidate struct {
		job    ScoredJob
		cosine float64
		llr    float64
	}
	candidates := make([]candidate, 0, len(jobs))
	for _, job := range jobs {
		jobSet := skillSet(job.Skills)
		if !similarity.CoversSets(universe, jobSet) {
			return JobRecommendationsResult{}, ErrInvalidInput
		}
		candidates = append(candidates, candidate{
			job: ScoredJob{
				JobID:          job.ID,
				Title:          job.Title,
				MatchingSkills: matchingSkills(userSet, job.Skills),
				MissingSkills:  missingSkills(userSet, job.Skills),
			},
			cosine: similarity.Cosine(userSet, jobSet, universe),
			llr:    similarity.LLR(userSet, jobSet, universe),
		})
	}

	byCosine := make([]ScoredJob, 0, len(candidates))
	byLLR := make([]ScoredJob, 0, len(candidates))
	blended := make([]ScoredJob, 0, len(candidates))
	for _, c := range candidates {
		cosJob := c.job
		cosJob.Score = c.cosine
		byCosine = append(byCosine, cosJob)

		llrJob := c.job
		llrJob.Score = c.llr
		byLLR = append(byLLR, llrJob)

		// The blend is recomputed over the full catalog, not a re-rank of
		// the two top-N lists.
		blendJob := c.job
		blendJob.Score = u.weights.Cosine*c.cosine + u.weights.LLR*c.llr
		blended = append(blended, blendJob)
	}

	result := JobRecommendationsResult{
		ByCosine: sortAndTruncate(byCosine, topN),
		ByLLR:    sortAndTruncate(byLLR, topN),
		Blended:  sortAndTruncate(blended, topN),
	}

	u.cacheSet(ctx, cacheKey, result)
	return result, nil
}

func (u *Recommendation) SimilarPeers(ctx context.Context, userID uuid.UUID, topN int) ([]SimilarPeer, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	topN = clampTopN(topN)

	cacheKey := fmt.Sprintf("rec:peers:%s:%d", userID, topN)
	var cached []SimilarPeer
	if u.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	user, err := u.users.GetUserWithSkills(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDataUnavailable
	}

	peers, err := u.users.ListUsersWithSkills(ctx, userID)
	if err != nil {
		return nil, ErrDataUnavailable
	}

	userSet := skillSet(user.Skills)

	out := make([]SimilarPeer, 0, len(peers))
	for _, peer := range peers {
		peerSet := skillSet(peer.Skills)
		score := u.weights.PeerSkill*similarity.Jaccard(userSet, peerSet) +
			u.weights.PeerTitle*jobtitle.TokenOverlap(user.JobTitle, peer.JobTitle) +
			u.weights.PeerMatchPct*similarity.MatchPercent(userSet, peerSet)

		out = append(out, SimilarPeer{
			UserID:           peer.ID,
			Username:         peer.Username,
			JobTitle:         peer.JobTitle,
			Score:            score,
			MatchingSkills:   matchingSkills(userSet, peer.Skills),
			AdditionalSkills: missingSkills(userSet, peer.Skills),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > topN {
		out = out[:topN]
	}

	u.cacheSet(ctx, cacheKey, out)
	return out, nil
}

func (u *Recommendation) skillUniverse(ctx context.Context) (similarity.Set, error) {
	all, err := u.skills.GetAllSkills(ctx)
	if err != nil {
		return nil, ErrDataUnavailable
	}
	universe := make(similarity.Set, len(all))
	for _, s := range all {
		universe.Add(s.ID)
	}
	return universe, nil
}

func (u *Recommendation) cacheGet(ctx context.Context, key string, out any) bool {
	if u.cache == nil {
		return false
	}
	hit, err := u.cache.GetJSON(ctx, key, out)
	return err == nil && hit
}

func (u *Recommendation) cacheSet(ctx context.Context, key string, value any) {
	if u.cache == nil {
		return
	}
	_ = u.cache.SetJSON(ctx, key, value, u.cacheTTL)
}

func clampTopN(n int) int {
	if n <= 0 {
		return 10
	}
	if n > 50 {
		return 50
	}
	return n
}

func skillSet(skills []repository.Skill) similarity.Set {
	s := make(similarity.Set, len(skills))
	for _, sk := range skills {
		s.Add(sk.ID)
	}
	return s
}

func matchingSkills(userSet similarity.Set, target []repository.Skill) []RecommendationSkill {
	out := make([]RecommendationSkill, 0, len(target))
	for _, sk := range target {
		if userSet.Contains(sk.ID) {
			out = append(out, RecommendationSkill{SkillID: sk.ID, SkillName: sk.Name})
		}
	}
	return out
}

func missingSkills(userSet similarity.Set, target []repository.Skill) []RecommendationSkill {
	ids := make([]uuid.UUID, 0, len(target))
	names := make(map[uuid.UUID]string, len(target))
	for _, sk := range target {
		ids = append(ids, sk.ID)
		names[sk.ID] = sk.Name
	}

	ordered := recommend.MissingSkills(userSet, ids, ids)
	out := make([]RecommendationSkill, 0, len(ordered))
	for _, id := range ordered {
		out = append(out, RecommendationSkill{SkillID: id, SkillName: names[id]})
	}
	return out
}

func sortAndTruncate(jobs []ScoredJob, topN int) []ScoredJob {
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].Score > jobs[j].Score
	})
	if len(jobs) > topN {
		jobs = jobs[:topN]
	}
	return jobs
}
