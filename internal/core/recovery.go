package core

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

// SafeRun 安全执行一个步骤，捕获 panic 并转换为错误
func SafeRun(name string, logger *zap.Logger, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			err = fmt.Errorf("step %s panicked: %v", name, r)

			if logger != nil {
				logger.Error("步骤执行 panic",
					zap.String("step", name),
					zap.Any("panic", r),
					zap.String("stack", stack),
				)
			}
		}
	}()

	return fn()
}
