package core

import (
	"context"
	"fmt"

	"github.com/25smoking/bamparse/internal/forensics"
	"github.com/25smoking/bamparse/internal/registry"
	"go.uber.org/zap"
)

// Run reads every subkey from src and extracts its BAM entries. Values that
// could not be decoded are logged and returned next to the result; they
// never fail the run.
func Run(ctx context.Context, src registry.Source, cfg RunConfig, logger *zap.Logger) (forensics.BamResult, []*forensics.DecodeError, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var subkeys []registry.Subkey
	err := SafeRun("read", logger, func() error {
		var err error
		subkeys, err = src.Subkeys(ctx)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("read bam key: %w", err)
	}
	logger.Debug("读取子键完成", zap.Int("subkeys", len(subkeys)))

	var (
		result  forensics.BamResult
		skipped []*forensics.DecodeError
	)
	dec := forensics.NewDecoder(cfg.Location)
	err = SafeRun("extract", logger, func() error {
		var err error
		result, skipped, err = forensics.ExtractAll(ctx, subkeys, dec, cfg.Workers)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("extract: %w", err)
	}

	for _, de := range skipped {
		logger.Warn("跳过无法解码的值",
			zap.String("sid", de.SID),
			zap.String("path", de.Path),
			zap.String("reason", de.Err.Error()),
		)
	}
	return result, skipped, nil
}
