package service

import (
	"Trellis/internal/domain"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid             = errors.New("参数错误")
	ErrContentNotFound          = errors.New("内容不存在")
	ErrContentNoCRUDPermission  = errors.New("没有内容操作权限")
	ErrContentNoReadPermission  = errors.New("没有内容查看权限")
	ErrContentNotPublished      = errors.New("内容未发布")
	ErrContentEmptyGroup        = errors.New("内容必须属于至少一个社群")
	ErrContentGroupArchived     = errors.New("社群已归档")
	ErrSeriesItemInvalid        = errors.New("系列项类型无效")
	ErrSeriesNotFound           = errors.New("系列不存在")
	ErrTagNotFound              = errors.New("标签不存在")
	ErrReactionDuplicate        = errors.New("已有相同表态")
	ErrReactionNotFound         = errors.New("表态不存在")
	ErrReactionNotHaveAuthority = errors.New("不能删除他人的表态")
	ErrReactionTargetDisabled   = errors.New("目标已关闭表态")
	UnauthorizedError           = errors.New("权限不足")
	UnExpectedError             = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:             BadRequest,
	ErrContentNotFound:          NotFound,
	ErrContentNoCRUDPermission:  Forbidden,
	ErrContentNoReadPermission:  Forbidden,
	ErrContentNotPublished:      BadRequest,
	ErrContentEmptyGroup:        BadRequest,
	ErrContentGroupArchived:     BadRequest,
	ErrSeriesItemInvalid:        BadRequest,
	ErrSeriesNotFound:           NotFound,
	ErrTagNotFound:              NotFound,
	ErrReactionDuplicate:        BadRequest,
	ErrReactionNotFound:         NotFound,
	ErrReactionNotHaveAuthority: Forbidden,
	ErrReactionTargetDisabled:   BadRequest,
	UnauthorizedError:           Unauthorized,
	UnExpectedError:             InternalServerError,

	domain.ErrSeriesRequiredCover:         BadRequest,
	domain.ErrSeriesInvalidItem:           BadRequest,
	domain.ErrContentInvalidType:          BadRequest,
	domain.ErrContentInvalidStatus:        BadRequest,
	domain.ErrContentInvalidScheduledTime: BadRequest,
	domain.ErrReactionNotSupported:        BadRequest,
}
