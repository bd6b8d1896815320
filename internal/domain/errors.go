package domain

import (
	"errors"
)

// 领域不变量错误，在进入仓储之前抛出，调用方不会自动重试
var (
	ErrContentEmptyAudience        = errors.New("内容至少需要一个受众群组")
	ErrSeriesRequiredCover         = errors.New("系列发布前必须设置封面")
	ErrSeriesInvalidItem           = errors.New("系列只能收录帖子或文章")
	ErrContentInvalidType          = errors.New("内容类型不支持该操作")
	ErrContentInvalidStatus        = errors.New("当前状态不允许该转移")
	ErrContentInvalidScheduledTime = errors.New("定时发布时间必须晚于当前时间")
	ErrReactionNotSupported        = errors.New("不支持的表态目标")
)
