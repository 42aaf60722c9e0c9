package core

import (
	"time"

	"github.com/25smoking/bamparse/internal/config"
)

// RunConfig 保存一次提取会话的设置
type RunConfig struct {
	Output       string
	Format       string
	Location     *time.Location
	Workers      int
	AgeRecipient string // 非空时对输出文件进行 age 加密
}

// NewRunConfig builds a RunConfig from a validated config file.
func NewRunConfig(cfg *config.Config) (RunConfig, error) {
	loc, err := cfg.Location()
	if err != nil {
		return RunConfig{}, err
	}
	return RunConfig{
		Output:   cfg.Output.Path,
		Format:   cfg.Output.Format,
		Location: loc,
		Workers:  cfg.Workers,
	}, nil
}
