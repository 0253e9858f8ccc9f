package service

import (
	"fmt"
	"testing"
	"time"

	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/repository"
	"math_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAnswerLog 内存答题日志，过滤语义与 GORM 仓库一致
type fakeAnswerLog struct {
	answers []model.UserAnswer
	err     error
}

func (f *fakeAnswerLog) QueryByUser(userID uint, filter repository.AnswerFilter) ([]model.UserAnswer, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.UserAnswer
	for _, a := range f.answers {
		if a.UserID != userID {
			continue
		}
		if filter.TopicAreaID > 0 && a.Problem.TopicAreaID != filter.TopicAreaID {
			continue
		}
		if !filter.Since.IsZero() && a.AnsweredAt.Before(filter.Since) {
			continue
		}
		if filter.OnlyWrong && a.IsCorrect {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAnswerLog) QueryIncorrect(userID uint, topicAreaID uint) ([]model.UserAnswer, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.UserAnswer
	for i := len(f.answers) - 1; i >= 0; i-- {
		a := f.answers[i]
		if a.UserID != userID || a.IsCorrect {
			continue
		}
		if topicAreaID > 0 && a.Problem.TopicAreaID != topicAreaID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeTopicLister struct {
	topics []model.TopicArea
	err    error
}

func (f *fakeTopicLister) ListActive() ([]model.TopicArea, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.topics, nil
}

// answerAt 构造一条指定时刻与正确性的答题记录
func answerAt(userID uint, correct bool, seconds int, at time.Time, topicID uint) model.UserAnswer {
	return model.UserAnswer{
		UserID:           userID,
		ProblemID:        1,
		IsCorrect:        correct,
		TimeSpentSeconds: seconds,
		AnsweredAt:       at,
		Problem:          model.Problem{TopicAreaID: topicID},
	}
}

// answerSeq 按给定正误序列生成升序记录，间隔一分钟
func answerSeq(userID uint, start time.Time, pattern []bool) []model.UserAnswer {
	answers := make([]model.UserAnswer, 0, len(pattern))
	for i, correct := range pattern {
		answers = append(answers, answerAt(userID, correct, 30, start.Add(time.Duration(i)*time.Minute), 1))
	}
	return answers
}

func fixedStatsService(log *fakeAnswerLog, topics *fakeTopicLister, now time.Time) *StatsService {
	svc := NewStatsService(log, topics)
	svc.now = func() time.Time { return now }
	return svc
}

func TestStatsService_OverallEmptyLog(t *testing.T) {
	svc := fixedStatsService(&fakeAnswerLog{}, &fakeTopicLister{}, time.Now())

	stats, err := svc.GetOverallStats(1)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalProblems)
	assert.Equal(t, 0, stats.Accuracy)
	assert.Equal(t, 0.0, stats.AverageTime)
	assert.Equal(t, 0, stats.Streak)
	assert.Equal(t, 0, stats.MaxStreak)
	assert.Equal(t, "+0%", stats.AccuracyChange)
}

func TestStatsService_StreakVectors(t *testing.T) {
	tests := []struct {
		name        string
		pattern     []bool
		wantCurrent int
		wantMax     int
	}{
		{"trailing run shorter than max", []bool{true, true, false, true, true, true}, 3, 3},
		{"earlier run is the max", []bool{true, true, true, false, true}, 1, 3},
		{"all wrong", []bool{false, false}, 0, 0},
		{"single correct", []bool{true}, 1, 1},
		{"ends wrong", []bool{true, true, false}, 0, 2},
	}

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &fakeAnswerLog{answers: answerSeq(1, now.Add(-time.Hour), tt.pattern)}
			svc := fixedStatsService(log, &fakeTopicLister{}, now)

			stats, err := svc.GetOverallStats(1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCurrent, stats.Streak)
			assert.Equal(t, tt.wantMax, stats.MaxStreak)
		})
	}
}

func TestStatsService_AverageTimeMinutes(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	log := &fakeAnswerLog{answers: []model.UserAnswer{
		answerAt(1, true, 10, now.Add(-3*time.Hour), 1),
		answerAt(1, true, 20, now.Add(-2*time.Hour), 1),
		answerAt(1, false, 30, now.Add(-time.Hour), 1),
	}}
	svc := fixedStatsService(log, &fakeTopicLister{}, now)

	stats, err := svc.GetOverallStats(1)
	require.NoError(t, err)
	// (10+20+30)/3 = 20s = 0.333min，保留一位小数
	assert.Equal(t, 0.3, stats.AverageTime)
	assert.Equal(t, 67, stats.Accuracy) // round(200/3)
}

func TestStatsService_AccuracyChange(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	// 三个月前 4 答全错，近一周 2 答全对：
	// 全量正确率 round(200/6)=33，近30天 100，变化 +67%
	old := answerSeq(1, now.AddDate(0, -3, 0), []bool{false, false, false, false})
	recent := answerSeq(1, now.AddDate(0, 0, -7), []bool{true, true})
	log := &fakeAnswerLog{answers: append(old, recent...)}
	svc := fixedStatsService(log, &fakeTopicLister{}, now)

	stats, err := svc.GetOverallStats(1)
	require.NoError(t, err)
	assert.Equal(t, 33, stats.Accuracy)
	assert.Equal(t, 2, stats.LastMonthTotal)
	assert.Equal(t, 100, stats.LastMonthAccuracy)
	assert.Equal(t, "+67%", stats.AccuracyChange)
}

func TestStatsService_AccuracyChangeNegative(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	// 老记录全对，近期全错：全量 50，近30天 0，变化 -50%
	old := answerSeq(1, now.AddDate(0, -3, 0), []bool{true, true})
	recent := answerSeq(1, now.AddDate(0, 0, -7), []bool{false, false})
	log := &fakeAnswerLog{answers: append(old, recent...)}
	svc := fixedStatsService(log, &fakeTopicLister{}, now)

	stats, err := svc.GetOverallStats(1)
	require.NoError(t, err)
	assert.Equal(t, "-50%", stats.AccuracyChange)
}

func TestStatsService_TopicStatsIncludesZeroTopics(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	topics := &fakeTopicLister{topics: []model.TopicArea{
		{BaseModel: model.BaseModel{ID: 1}, Name: "Čísla", Code: "numbers"},
		{BaseModel: model.BaseModel{ID: 2}, Name: "Geometrie", Code: "geometry"},
	}}
	log := &fakeAnswerLog{answers: []model.UserAnswer{
		answerAt(1, true, 30, now.Add(-time.Hour), 1),
		answerAt(1, false, 30, now.Add(-time.Hour), 1),
	}}
	svc := fixedStatsService(log, topics, now)

	stats, err := svc.GetTopicStats(1)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "numbers", stats[0].TopicCode)
	assert.Equal(t, 2, stats[0].TotalProblems)
	assert.Equal(t, 50, stats[0].Accuracy)

	// 无作答的主题输出零值行而不是缺席
	assert.Equal(t, "geometry", stats[1].TopicCode)
	assert.Equal(t, 0, stats[1].TotalProblems)
	assert.Equal(t, 0, stats[1].Accuracy)
}

func TestStatsService_ProgressSeriesOmitsEmptyDays(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	day1 := time.Date(2026, 6, 10, 9, 0, 0, 0, time.Local)
	day3 := time.Date(2026, 6, 12, 9, 0, 0, 0, time.Local)

	log := &fakeAnswerLog{answers: []model.UserAnswer{
		answerAt(1, true, 30, day1, 1),
		answerAt(1, false, 30, day1.Add(time.Hour), 1),
		answerAt(1, true, 30, day3, 1),
	}}
	svc := fixedStatsService(log, &fakeTopicLister{}, now)

	series, err := svc.GetProgressSeries(1, util.RangeMonth)
	require.NoError(t, err)
	require.Len(t, series, 2) // 6月11日没有作答，不补零

	assert.Equal(t, "10.06.2026", series[0].Date)
	assert.Equal(t, 50, series[0].Accuracy)
	assert.Equal(t, "12.06.2026", series[1].Date)
	assert.Equal(t, 100, series[1].Accuracy)
}

func TestStatsService_ProgressSeriesWindows(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	log := &fakeAnswerLog{answers: []model.UserAnswer{
		answerAt(1, true, 30, now.AddDate(0, 0, -3), 1),   // 本周内
		answerAt(1, true, 30, now.AddDate(0, 0, -20), 1),  // 本月内
		answerAt(1, true, 30, now.AddDate(0, 0, -60), 1),  // 三个月内
		answerAt(1, true, 30, now.AddDate(-1, 0, 0), 1),   // 一年前
	}}
	svc := fixedStatsService(log, &fakeTopicLister{}, now)

	tests := []struct {
		timeRange string
		wantDays  int
	}{
		{util.RangeWeek, 1},
		{util.RangeMonth, 2},
		{util.RangeThreeMonths, 3},
		{util.RangeAll, 4},
		{"bogus", 2}, // 未知窗口按月处理
	}
	for _, tt := range tests {
		series, err := svc.GetProgressSeries(1, tt.timeRange)
		require.NoError(t, err)
		assert.Len(t, series, tt.wantDays, "range %q", tt.timeRange)
	}
}

func TestStatsService_IncorrectAnswers(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	log := &fakeAnswerLog{answers: []model.UserAnswer{
		answerAt(1, false, 30, now.Add(-2*time.Hour), 1),
		answerAt(1, true, 30, now.Add(-time.Hour), 1),
		answerAt(1, false, 30, now.Add(-30*time.Minute), 2),
	}}
	svc := fixedStatsService(log, &fakeTopicLister{}, now)

	all, err := svc.GetIncorrectAnswers(1, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	geometryOnly, err := svc.GetIncorrectAnswers(1, 2)
	require.NoError(t, err)
	require.Len(t, geometryOnly, 1)
	assert.Equal(t, uint(2), geometryOnly[0].Problem.TopicAreaID)
}

func TestStatsService_UnavailableOnStoreError(t *testing.T) {
	broken := &fakeAnswerLog{err: fmt.Errorf("connection refused")}
	svc := fixedStatsService(broken, &fakeTopicLister{}, time.Now())

	_, err := svc.GetOverallStats(1)
	assert.ErrorIs(t, err, util.ErrStatsUnavailable)

	_, err = svc.GetProgressSeries(1, util.RangeWeek)
	assert.ErrorIs(t, err, util.ErrStatsUnavailable)

	_, err = svc.GetIncorrectAnswers(1, 0)
	assert.ErrorIs(t, err, util.ErrStatsUnavailable)

	svc = fixedStatsService(&fakeAnswerLog{}, &fakeTopicLister{err: fmt.Errorf("connection refused")}, time.Now())
	_, err = svc.GetTopicStats(1)
	assert.ErrorIs(t, err, util.ErrStatsUnavailable)
}
