package core

import (
	"github.com/25smoking/bamparse/internal/forensics"
	"go.uber.org/zap"
)

// PrintResults logs a per-SID summary of an extraction.
func PrintResults(logger *zap.SugaredLogger, result forensics.BamResult, skipped []*forensics.DecodeError) {
	if len(result) == 0 {
		logger.Info("未发现 BAM 记录。")
		return
	}

	logger.Infof("=== 提取完成，共 %d 个用户，%d 条执行记录 ===", len(result), result.Count())
	for _, e := range result {
		logger.Infof("[%s] %d 条记录", e.SID, len(e.Executable))
	}
	if len(skipped) > 0 {
		logger.Warnf("跳过 %d 个无法解码的值", len(skipped))
	}
}
