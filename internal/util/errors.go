package util

import "errors"

var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrEmailRegistered = errors.New("该邮箱已被注册")

	// 测验会话
	ErrContentUnavailable = errors.New("no problems available for the selected topic")
	ErrInvalidSubmission  = errors.New("invalid submission")
	ErrNoActiveSession    = errors.New("no active quiz session")

	// 统计与解析
	ErrStatsUnavailable       = errors.New("statistics unavailable")
	ErrExplanationUnavailable = errors.New("explanation unavailable")
)
