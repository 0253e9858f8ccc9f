package service

import (
	"context"
	"math"
	"math/rand"
	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/util"
	"math_quiz_backend/pkg/logger"
	"math_quiz_backend/pkg/monitoring"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionState 测验会话状态机
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateLoading    SessionState = "loading"
	StateInProgress SessionState = "in_progress"
	StateFeedback   SessionState = "feedback"
	StateFinished   SessionState = "finished"
)

// ProblemCatalog 核心对题库的全部依赖
type ProblemCatalog interface {
	FetchByTopic(topicAreaID uint, limit int) ([]model.Problem, error)
	FetchAll(limit int) ([]model.Problem, error)
	FetchByID(problemID uint) (*model.Problem, error)
}

// AnswerStore 核心对答题日志的全部依赖
type AnswerStore interface {
	Append(answer *model.UserAnswer) error
}

// QuizSession 一次测验的内存状态，仅存在于会话生命周期内，不落库
type QuizSession struct {
	ID            string
	TopicSelector string // 主题 ID 字符串或 "mix"
	State         SessionState
	Problems      []model.Problem // 本次会话装载的候选题，顺序即出题顺序
	Answers       []model.SessionAnswer
	Current       *model.Problem
	StartedAt     time.Time // 当前题开始作答时刻
}

// SessionService 会话引擎：每个用户最多一个活动会话，Start 总是整体替换
type SessionService struct {
	catalog ProblemCatalog
	store   AnswerStore
	cfg     config.QuizConfig

	mu       sync.Mutex
	sessions map[uint]*QuizSession

	now func() time.Time
}

func NewSessionService(catalog ProblemCatalog, store AnswerStore, cfg config.QuizConfig) *SessionService {
	return &SessionService{
		catalog:  catalog,
		store:    store,
		cfg:      cfg,
		sessions: make(map[uint]*QuizSession),
		now:      time.Now,
	}
}

// StartResult Start 的返回值：会话标识加首题
type StartResult struct {
	SessionID string              `json:"sessionId"`
	Total     int                 `json:"total"`
	Problem   model.PublicProblem `json:"problem"`
}

// Start 开始新会话。topicSelector 为主题 ID 或 "mix"。
// 题库为空时返回 ErrContentUnavailable，用户停留在无会话状态；
// 已有会话被无条件丢弃（已落库的历史答案不受影响）。
func (s *SessionService) Start(ctx context.Context, userID uint, topicSelector string) (*StartResult, error) {
	quota := s.cfg.SessionQuota
	if quota <= 0 {
		quota = util.SessionQuota
	}

	var (
		problems []model.Problem
		err      error
	)
	if topicSelector == util.MixedTopicSelector {
		problems, err = s.catalog.FetchAll(quota)
	} else {
		topicID, convErr := strconv.ParseUint(topicSelector, 10, 32)
		if convErr != nil {
			return nil, util.ErrContentUnavailable
		}
		problems, err = s.catalog.FetchByTopic(uint(topicID), quota)
	}
	if err != nil {
		return nil, err
	}

	// 调用方负责随机排序与截断
	shuffled := make([]model.Problem, len(problems))
	copy(shuffled, problems)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > quota {
		shuffled = shuffled[:quota]
	}

	if len(shuffled) == 0 {
		return nil, util.ErrContentUnavailable
	}

	session := &QuizSession{
		ID:            uuid.New().String(),
		TopicSelector: topicSelector,
		State:         StateInProgress,
		Problems:      shuffled,
		Answers:       make([]model.SessionAnswer, 0, len(shuffled)),
		Current:       &shuffled[0],
		StartedAt:     s.now(),
	}

	s.mu.Lock()
	s.sessions[userID] = session
	s.mu.Unlock()

	logger.Log.Info("quiz session started",
		zap.Uint("userId", userID),
		zap.String("topic", topicSelector),
		zap.Int("problems", len(shuffled)))

	return &StartResult{
		SessionID: session.ID,
		Total:     len(shuffled),
		Problem:   session.Current.ToPublic(),
	}, nil
}

// Abandon 无条件丢弃当前会话
func (s *SessionService) Abandon(userID uint) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// Submit 提交当前题的作答。仅在 InProgress 且选项属于当前题时有效；
// 正确性只看本地选项标记，不信任外部输入。落库默认走后台 goroutine，
// 失败只记日志和指标，不回滚内存进度（SyncPersist 打开时改为同步确认）。
func (s *SessionService) Submit(ctx context.Context, userID uint, optionID uint) (*model.SubmitFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, util.ErrNoActiveSession
	}
	if session.State != StateInProgress || session.Current == nil || optionID == 0 {
		return nil, util.ErrInvalidSubmission
	}

	option := session.Current.FindOption(optionID)
	if option == nil {
		return nil, util.ErrInvalidSubmission
	}

	elapsed := s.now().Sub(session.StartedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	timeSpent := int(math.Round(elapsed))

	answer := model.SessionAnswer{
		ProblemID:        session.Current.ID,
		ProblemTitle:     session.Current.Title,
		SelectedOptionID: optionID,
		IsCorrect:        option.IsCorrect,
		TimeSpentSeconds: timeSpent,
	}
	session.Answers = append(session.Answers, answer)
	session.State = StateFeedback

	record := &model.UserAnswer{
		UserID:           userID,
		ProblemID:        answer.ProblemID,
		SelectedOptionID: optionID,
		IsCorrect:        answer.IsCorrect,
		TimeSpentSeconds: timeSpent,
		AnsweredAt:       s.now(),
	}

	if s.cfg.SyncPersist {
		if err := s.store.Append(record); err != nil {
			logger.Log.Error("failed to persist answer", zap.Uint("userId", userID), zap.Error(err))
			monitoring.AnswerPersistFailures.Inc()
		}
	} else {
		go s.persist(userID, record)
	}

	monitoring.AnswerCounter.WithLabelValues(strconv.FormatBool(answer.IsCorrect)).Inc()

	correct := session.Current.CorrectOption()
	feedback := &model.SubmitFeedback{
		Answer:   answer,
		Finished: len(session.Answers) >= len(session.Problems),
	}
	if correct != nil {
		feedback.CorrectOption = model.PublicOption{
			ID:             correct.ID,
			OptionLetter:   correct.OptionLetter,
			AnswerText:     correct.AnswerText,
			AnswerImageURL: correct.AnswerImageURL,
		}
	}
	return feedback, nil
}

// persist 后台落库，至多尝试一次
func (s *SessionService) persist(userID uint, record *model.UserAnswer) {
	if err := s.store.Append(record); err != nil {
		logger.Log.Error("failed to persist answer", zap.Uint("userId", userID), zap.Error(err))
		monitoring.AnswerPersistFailures.Inc()
	}
}

// AdvanceResult Advance 的返回值：下一题，或会话结束时的结果
type AdvanceResult struct {
	Finished bool                 `json:"finished"`
	Problem  *model.PublicProblem `json:"problem,omitempty"`
	Results  *model.SessionResult `json:"results,omitempty"`
}

// Advance 从反馈态推进：取装载顺序中第一道未作答的题；没有则会话结束
func (s *SessionService) Advance(userID uint) (*AdvanceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, util.ErrNoActiveSession
	}
	if session.State != StateFeedback {
		return nil, util.ErrInvalidSubmission
	}

	next := nextProblem(session)
	if next == nil {
		session.State = StateFinished
		session.Current = nil
		results := sessionResults(session)
		return &AdvanceResult{Finished: true, Results: &results}, nil
	}

	session.Current = next
	session.StartedAt = s.now()
	session.State = StateInProgress

	pub := next.ToPublic()
	return &AdvanceResult{Problem: &pub}, nil
}

// Results 返回会话结果；会话结束前调用得到的是部分结果预览
func (s *SessionService) Results(userID uint) (*model.SessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, util.ErrNoActiveSession
	}

	results := sessionResults(session)
	return &results, nil
}

// CurrentProblem 返回当前展示中的题目，便于断线后恢复页面
func (s *SessionService) CurrentProblem(userID uint) (*model.PublicProblem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok || session.Current == nil {
		return nil, util.ErrNoActiveSession
	}
	pub := session.Current.ToPublic()
	return &pub, nil
}

// nextProblem 装载顺序中第一道本会话尚未作答的题，没有返回 nil
func nextProblem(session *QuizSession) *model.Problem {
	answered := make(map[uint]bool, len(session.Answers))
	for _, a := range session.Answers {
		answered[a.ProblemID] = true
	}
	for i := range session.Problems {
		if !answered[session.Problems[i].ID] {
			return &session.Problems[i]
		}
	}
	return nil
}

func sessionResults(session *QuizSession) model.SessionResult {
	correct := 0
	for _, a := range session.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	total := len(session.Answers)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(correct) / float64(total)))
	}

	answers := make([]model.SessionAnswer, len(session.Answers))
	copy(answers, session.Answers)

	return model.SessionResult{
		Correct:    correct,
		Total:      total,
		Percentage: percentage,
		Answers:    answers,
	}
}
