package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/repository"
	"math_quiz_backend/internal/util"
	"math_quiz_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	m.Run()
}

// fakeCatalog 固定题库，按 FetchAll/FetchByTopic 原样返回
type fakeCatalog struct {
	problems []model.Problem
	err      error
}

func (f *fakeCatalog) FetchByTopic(topicAreaID uint, limit int) ([]model.Problem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Problem
	for _, p := range f.problems {
		if p.TopicAreaID == topicAreaID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FetchAll(limit int) ([]model.Problem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.problems, nil
}

func (f *fakeCatalog) FetchByID(problemID uint) (*model.Problem, error) {
	for i := range f.problems {
		if f.problems[i].ID == problemID {
			return &f.problems[i], nil
		}
	}
	return nil, fmt.Errorf("problem %d not found", problemID)
}

// fakeStore 线程安全的答案记录器
type fakeStore struct {
	mu      sync.Mutex
	records []model.UserAnswer
	err     error
}

func (f *fakeStore) Append(answer *model.UserAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *answer)
	return nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// makeProblem 构造一道两选项的题，选项 ID 为 id*10+1（正确）和 id*10+2
func makeProblem(id, topicID uint) model.Problem {
	return model.Problem{
		BaseModel:    model.BaseModel{ID: id},
		TopicAreaID:  topicID,
		Title:        fmt.Sprintf("Problem %d", id),
		QuestionText: fmt.Sprintf("Question %d?", id),
		Options: []model.AnswerOption{
			{BaseModel: model.BaseModel{ID: id*10 + 1}, ProblemID: id, OptionLetter: "A", AnswerText: "right", IsCorrect: true},
			{BaseModel: model.BaseModel{ID: id*10 + 2}, ProblemID: id, OptionLetter: "B", AnswerText: "wrong"},
		},
	}
}

func makeProblems(n int, topicID uint) []model.Problem {
	problems := make([]model.Problem, 0, n)
	for i := 1; i <= n; i++ {
		problems = append(problems, makeProblem(uint(i), topicID))
	}
	return problems
}

func newTestSessionService(problems []model.Problem, store *fakeStore, syncPersist bool) *SessionService {
	svc := NewSessionService(
		&fakeCatalog{problems: problems},
		store,
		config.QuizConfig{SessionQuota: 10, SyncPersist: syncPersist},
	)
	return svc
}

func TestSessionService_StartTruncatesToQuota(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(25, 1), store, true)

	result, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Total)
	assert.NotEmpty(t, result.SessionID)
	assert.Len(t, result.Problem.Options, 2)
}

func TestSessionService_StartEmptyCatalog(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(nil, store, true)

	_, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	assert.ErrorIs(t, err, util.ErrContentUnavailable)

	// 失败后没有会话残留
	_, err = svc.Results(1)
	assert.ErrorIs(t, err, util.ErrNoActiveSession)
}

func TestSessionService_StartByTopic(t *testing.T) {
	problems := append(makeProblems(3, 1), makeProblem(50, 2))
	store := &fakeStore{}
	svc := newTestSessionService(problems, store, true)

	result, err := svc.Start(context.Background(), 1, "2")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, uint(50), result.Problem.ID)

	_, err = svc.Start(context.Background(), 1, "999")
	assert.ErrorIs(t, err, util.ErrContentUnavailable)
}

func TestSessionService_StartReplacesActiveSession(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(4, 1), store, true)

	first, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)

	second, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	// 旧会话的进度被整体丢弃
	results, err := svc.Results(1)
	require.NoError(t, err)
	assert.Equal(t, 0, results.Total)
}

func TestSessionService_SubmitForeignOptionRejected(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(3, 1), store, true)

	_, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)

	// 不存在的选项 ID：拒绝且状态不变
	_, err = svc.Submit(context.Background(), 1, 99999)
	assert.ErrorIs(t, err, util.ErrInvalidSubmission)
	assert.Equal(t, 0, store.count())

	// 会话仍在进行中，合法提交照常工作
	current, err := svc.CurrentProblem(1)
	require.NoError(t, err)
	feedback, err := svc.Submit(context.Background(), 1, current.ID*10+1)
	require.NoError(t, err)
	assert.True(t, feedback.Answer.IsCorrect)
}

func TestSessionService_SubmitWithoutSession(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(3, 1), store, true)

	_, err := svc.Submit(context.Background(), 1, 11)
	assert.ErrorIs(t, err, util.ErrNoActiveSession)
}

func TestSessionService_SubmitTwiceRejected(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(3, 1), store, true)

	_, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)

	current, err := svc.CurrentProblem(1)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, current.ID*10+1)
	require.NoError(t, err)

	// 反馈态下重复提交被拒绝
	_, err = svc.Submit(context.Background(), 1, current.ID*10+2)
	assert.ErrorIs(t, err, util.ErrInvalidSubmission)
	assert.Equal(t, 1, store.count())
}

func TestSessionService_AdvanceOnlyFromFeedback(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(3, 1), store, true)

	_, err := svc.Advance(1)
	assert.ErrorIs(t, err, util.ErrNoActiveSession)

	_, err = svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)

	// 作答前不能推进
	_, err = svc.Advance(1)
	assert.ErrorIs(t, err, util.ErrInvalidSubmission)
}

func TestSessionService_FullWalkthroughAllCorrect(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(4, 1), store, true)

	result, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)
	require.Equal(t, 4, result.Total)

	seen := map[uint]bool{}
	problemID := result.Problem.ID

	for i := 0; i < 4; i++ {
		assert.False(t, seen[problemID], "problem %d served twice", problemID)
		seen[problemID] = true

		feedback, err := svc.Submit(context.Background(), 1, problemID*10+1)
		require.NoError(t, err)
		assert.True(t, feedback.Answer.IsCorrect)
		assert.Equal(t, "A", feedback.CorrectOption.OptionLetter)
		assert.Equal(t, i == 3, feedback.Finished)

		adv, err := svc.Advance(1)
		require.NoError(t, err)
		if i < 3 {
			require.NotNil(t, adv.Problem)
			problemID = adv.Problem.ID
		} else {
			require.True(t, adv.Finished)
			require.NotNil(t, adv.Results)
			assert.Equal(t, 4, adv.Results.Correct)
			assert.Equal(t, 4, adv.Results.Total)
			assert.Equal(t, 100, adv.Results.Percentage)
			assert.Len(t, adv.Results.Answers, 4)
		}
	}

	assert.Equal(t, 4, store.count())
}

func TestSessionService_ResultsPercentageRounding(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(3, 1), store, true)

	_, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)

	// 1 对 2 错：round(100/3) = 33
	for i := 0; i < 3; i++ {
		current, err := svc.CurrentProblem(1)
		require.NoError(t, err)
		optionID := current.ID*10 + 2
		if i == 0 {
			optionID = current.ID*10 + 1
		}
		_, err = svc.Submit(context.Background(), 1, optionID)
		require.NoError(t, err)
		_, err = svc.Advance(1)
		require.NoError(t, err)
	}

	results, err := svc.Results(1)
	require.NoError(t, err)
	assert.Equal(t, 1, results.Correct)
	assert.Equal(t, 3, results.Total)
	assert.Equal(t, 33, results.Percentage)
}

func TestSessionService_SubmitRecordsElapsedTime(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(2, 1), store, true)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	current := base
	svc.now = func() time.Time { return current }

	result, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)

	current = base.Add(42*time.Second + 400*time.Millisecond)
	feedback, err := svc.Submit(context.Background(), 1, result.Problem.ID*10+1)
	require.NoError(t, err)
	assert.Equal(t, 42, feedback.Answer.TimeSpentSeconds)

	// 计时在 Advance 时重置
	adv, err := svc.Advance(1)
	require.NoError(t, err)
	require.NotNil(t, adv.Problem)

	current = current.Add(7 * time.Second)
	feedback, err = svc.Submit(context.Background(), 1, adv.Problem.ID*10+2)
	require.NoError(t, err)
	assert.Equal(t, 7, feedback.Answer.TimeSpentSeconds)
	assert.False(t, feedback.Answer.IsCorrect)
}

func TestSessionService_AsyncPersistDoesNotBlockProgress(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(2, 1), store, false)

	result, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, result.Problem.ID*10+1)
	require.NoError(t, err)

	// 落库在后台完成
	require.Eventually(t, func() bool {
		return store.count() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSessionService_PersistFailureKeepsSessionMoving(t *testing.T) {
	store := &fakeStore{err: fmt.Errorf("db down")}
	svc := newTestSessionService(makeProblems(2, 1), store, true)

	result, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)

	// 同步落库失败也不影响内存进度
	feedback, err := svc.Submit(context.Background(), 1, result.Problem.ID*10+1)
	require.NoError(t, err)
	assert.True(t, feedback.Answer.IsCorrect)

	adv, err := svc.Advance(1)
	require.NoError(t, err)
	assert.NotNil(t, adv.Problem)
}

func TestSessionService_AbandonDropsSession(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(3, 1), store, true)

	result, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, result.Problem.ID*10+1)
	require.NoError(t, err)

	svc.Abandon(1)

	_, err = svc.Results(1)
	assert.ErrorIs(t, err, util.ErrNoActiveSession)
	// 已落库的记录保留
	assert.Equal(t, 1, store.count())
}

func TestSessionService_SessionsIsolatedPerUser(t *testing.T) {
	store := &fakeStore{}
	svc := newTestSessionService(makeProblems(3, 1), store, true)

	_, err := svc.Start(context.Background(), 1, util.MixedTopicSelector)
	require.NoError(t, err)
	_, err = svc.Start(context.Background(), 2, util.MixedTopicSelector)
	require.NoError(t, err)

	svc.Abandon(1)

	_, err = svc.CurrentProblem(2)
	assert.NoError(t, err)
}

// 编译期校验：GORM 仓库满足核心接口
var (
	_ ProblemCatalog = (*repository.ProblemRepository)(nil)
	_ AnswerStore    = (*repository.AnswerRepository)(nil)
	_ AnswerLog      = (*repository.AnswerRepository)(nil)
	_ TopicLister    = (*repository.TopicRepository)(nil)
)
