package loader

import (
	"errors"
	"fmt"
)

// 预定义错误
var (
	// ErrNoSource 未指定加载来源
	ErrNoSource = errors.New("loader: no source")

	// ErrNilPackage 来源产生了空的节点包
	ErrNilPackage = errors.New("loader: nil package")
)

// LoadError 节点包获取错误
type LoadError struct {
	Source string
	Err    error
}

// Error 实现 error 接口
func (e *LoadError) Error() string {
	return fmt.Sprintf("loader: acquire %s: %v", e.Source, e.Err)
}

// Unwrap 返回底层错误
func (e *LoadError) Unwrap() error {
	return e.Err
}
