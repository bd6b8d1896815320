package repository

import (
	gosqlerr "errors"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// DatabaseError 对上层屏蔽具体驱动错误。仓储保证抛出它之前事务已回滚，
// 内存中的聚合不会对应任何半套用的写入
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return "数据库操作失败: " + e.Op + ": " + e.Err.Error()
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

func wrapDB(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DatabaseError{Op: op, Err: errors.WithStack(err)}
}

// isDuplicateError 唯一约束冲突。mysql 1062 为驱动级兜底，
// gorm 的 TranslateError 已覆盖 mysql 与 sqlite
func isDuplicateError(err error) bool {
	if gosqlerr.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return gosqlerr.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
