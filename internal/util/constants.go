package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"

	// ProgressDateFormat 进度曲线按本地日历日分桶的展示格式
	ProgressDateFormat = "02.01.2006"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 测验会话
const (
	// SessionQuota 每次会话抽题上限
	SessionQuota = 10
	// MixedTopicSelector 全主题混合测验的选择器哨兵值
	MixedTopicSelector = "mix"
)

// 统计时间窗口关键字
const (
	RangeWeek        = "week"
	RangeMonth       = "month"
	RangeThreeMonths = "3months"
	RangeAll         = "all"
)
