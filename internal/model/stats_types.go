package model

// 统计类型均为按需计算的投影，不落库

// OverallStats 用户全量答题统计
// swagger:model OverallStats
type OverallStats struct {
	TotalProblems     int     `json:"totalProblems"`
	CorrectAnswers    int     `json:"correctAnswers"`
	Accuracy          int     `json:"accuracy"`    // round(100*correct/total)，无数据为 0
	AverageTime       float64 `json:"averageTime"` // 平均每题耗时（分钟，保留一位小数）
	Streak            int     `json:"streak"`      // 截至最近一次答题的连续答对数
	MaxStreak         int     `json:"maxStreak"`
	LastMonthTotal    int     `json:"lastMonthTotal"`
	LastMonthAccuracy int     `json:"lastMonthAccuracy"`
	AccuracyChange    string  `json:"accuracyChange"` // 近30天正确率与全量正确率之差，非负时带 "+" 前缀
}

// TopicStats 按主题分区的答题统计，零作答的主题也会返回
// swagger:model TopicStats
type TopicStats struct {
	TopicID        uint   `json:"topicId"`
	TopicName      string `json:"topicName"`
	TopicCode      string `json:"topicCode"`
	TotalProblems  int    `json:"totalProblems"`
	CorrectAnswers int    `json:"correctAnswers"`
	Accuracy       int    `json:"accuracy"`
}

// ProgressPoint 进度曲线中一天的聚合点，没有作答的日期不输出
// swagger:model ProgressPoint
type ProgressPoint struct {
	Date     string `json:"date"` // 本地日期，格式 02.01.2006
	Accuracy int    `json:"accuracy"`
}

// SessionAnswer 一次会话内的单条作答，含题目标题便于结果页展示
// swagger:model SessionAnswer
type SessionAnswer struct {
	ProblemID        uint   `json:"problemId"`
	ProblemTitle     string `json:"problemTitle"`
	SelectedOptionID uint   `json:"selectedOptionId"`
	IsCorrect        bool   `json:"isCorrect"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

// SessionResult 会话结果汇总
// swagger:model SessionResult
type SessionResult struct {
	Correct    int             `json:"correct"`
	Total      int             `json:"total"`
	Percentage int             `json:"percentage"`
	Answers    []SessionAnswer `json:"answers"`
}

// SubmitFeedback 提交一题后的即时反馈，此时才携带正确选项
// swagger:model SubmitFeedback
type SubmitFeedback struct {
	Answer        SessionAnswer `json:"answer"`
	CorrectOption PublicOption  `json:"correctOption"`
	Finished      bool          `json:"finished"` // 本题是否为会话最后一题
}
