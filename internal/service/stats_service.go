package service

import (
	"fmt"
	"math"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/repository"
	"math_quiz_backend/internal/util"
	"time"
)

// AnswerLog 统计侧对答题日志的只读依赖
type AnswerLog interface {
	QueryByUser(userID uint, filter repository.AnswerFilter) ([]model.UserAnswer, error)
	QueryIncorrect(userID uint, topicAreaID uint) ([]model.UserAnswer, error)
}

// TopicLister 统计侧对主题目录的只读依赖
type TopicLister interface {
	ListActive() ([]model.TopicArea, error)
}

// StatsService 统计聚合器：纯读侧投影，每次请求从答题日志重新计算，
// 任何一次底层查询失败都整体返回 ErrStatsUnavailable，不给出部分结果
type StatsService struct {
	answers AnswerLog
	topics  TopicLister

	now func() time.Time
}

func NewStatsService(answers AnswerLog, topics TopicLister) *StatsService {
	return &StatsService{
		answers: answers,
		topics:  topics,
		now:     time.Now,
	}
}

// GetOverallStats 用户全量统计：正确率、平均耗时、连对、近30天变化
func (s *StatsService) GetOverallStats(userID uint) (*model.OverallStats, error) {
	answers, err := s.answers.QueryByUser(userID, repository.AnswerFilter{})
	if err != nil {
		return nil, util.ErrStatsUnavailable
	}

	total := len(answers)
	correct := 0
	totalTime := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
		totalTime += a.TimeSpentSeconds
	}

	accuracy := roundPercentage(correct, total)

	avgTime := 0.0
	if total > 0 {
		avgTime = math.Round(float64(totalTime)/float64(total)/60*10) / 10
	}

	current, max := streaks(answers)

	// 近30天窗口与全量正确率之差；保留源产品的字面行为，
	// 而不是两个不相交时间段的环比
	oneMonthAgo := s.now().AddDate(0, -1, 0)
	lastMonthTotal := 0
	lastMonthCorrect := 0
	for _, a := range answers {
		if !a.AnsweredAt.Before(oneMonthAgo) {
			lastMonthTotal++
			if a.IsCorrect {
				lastMonthCorrect++
			}
		}
	}
	lastMonthAccuracy := roundPercentage(lastMonthCorrect, lastMonthTotal)

	change := lastMonthAccuracy - accuracy
	changeStr := fmt.Sprintf("%d%%", change)
	if change >= 0 {
		changeStr = fmt.Sprintf("+%d%%", change)
	}

	return &model.OverallStats{
		TotalProblems:     total,
		CorrectAnswers:    correct,
		Accuracy:          accuracy,
		AverageTime:       avgTime,
		Streak:            current,
		MaxStreak:         max,
		LastMonthTotal:    lastMonthTotal,
		LastMonthAccuracy: lastMonthAccuracy,
		AccuracyChange:    changeStr,
	}, nil
}

// GetTopicStats 按主题分区统计，零作答的主题也输出零值行
func (s *StatsService) GetTopicStats(userID uint) ([]model.TopicStats, error) {
	topics, err := s.topics.ListActive()
	if err != nil {
		return nil, util.ErrStatsUnavailable
	}

	stats := make([]model.TopicStats, 0, len(topics))
	for _, topic := range topics {
		answers, err := s.answers.QueryByUser(userID, repository.AnswerFilter{TopicAreaID: topic.ID})
		if err != nil {
			return nil, util.ErrStatsUnavailable
		}

		total := len(answers)
		correct := 0
		for _, a := range answers {
			if a.IsCorrect {
				correct++
			}
		}

		stats = append(stats, model.TopicStats{
			TopicID:        topic.ID,
			TopicName:      topic.Name,
			TopicCode:      topic.Code,
			TotalProblems:  total,
			CorrectAnswers: correct,
			Accuracy:       roundPercentage(correct, total),
		})
	}

	return stats, nil
}

// GetProgressSeries 时间窗口内按本地日历日分桶的正确率曲线；
// 没有作答的日期不补零，直接省略
func (s *StatsService) GetProgressSeries(userID uint, timeRange string) ([]model.ProgressPoint, error) {
	now := s.now()
	var since time.Time

	switch timeRange {
	case util.RangeWeek:
		since = now.AddDate(0, 0, -7)
	case util.RangeThreeMonths:
		since = now.AddDate(0, 0, -90)
	case util.RangeAll:
		// 不限
	case util.RangeMonth:
		since = now.AddDate(0, 0, -30)
	default:
		since = now.AddDate(0, 0, -30)
	}

	answers, err := s.answers.QueryByUser(userID, repository.AnswerFilter{Since: since})
	if err != nil {
		return nil, util.ErrStatsUnavailable
	}

	type bucket struct {
		correct int
		total   int
	}
	buckets := make(map[string]*bucket)
	order := make([]string, 0)

	for _, a := range answers {
		day := a.AnsweredAt.Local().Format(util.ProgressDateFormat)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
			order = append(order, day)
		}
		b.total++
		if a.IsCorrect {
			b.correct++
		}
	}

	series := make([]model.ProgressPoint, 0, len(order))
	for _, day := range order {
		b := buckets[day]
		series = append(series, model.ProgressPoint{
			Date:     day,
			Accuracy: roundPercentage(b.correct, b.total),
		})
	}

	return series, nil
}

// GetIncorrectAnswers 错题回顾，按作答时间倒序
func (s *StatsService) GetIncorrectAnswers(userID uint, topicAreaID uint) ([]model.UserAnswer, error) {
	answers, err := s.answers.QueryIncorrect(userID, topicAreaID)
	if err != nil {
		return nil, util.ErrStatsUnavailable
	}
	return answers, nil
}

// streaks 按时间升序重放：current 是以最近一次作答收尾的连对长度，
// max 是历史最长连对；一次答错只清零计数器，不抹掉已记录的 max
func streaks(answers []model.UserAnswer) (current, max int) {
	run := 0
	for _, a := range answers {
		if a.IsCorrect {
			run++
			if run > max {
				max = run
			}
		} else {
			run = 0
		}
	}
	return run, max
}

func roundPercentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
