package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/25smoking/bamparse/internal/config"
	"github.com/25smoking/bamparse/internal/core"
	"github.com/25smoking/bamparse/internal/forensics"
	"github.com/25smoking/bamparse/internal/hostinfo"
	"github.com/25smoking/bamparse/internal/registry"
	"github.com/25smoking/bamparse/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	log *zap.SugaredLogger

	// Command line flags
	configPath     string
	inputPath      string
	keyPath        string
	outputPath     string
	outputFormat   string
	localTime      bool
	workers        int
	ageRecipient   string
	resolveDevices bool
	quiet          bool
	debug          bool
)

func init() {
	logger, _ := zap.NewProduction()
	log = logger.Sugar()
}

var rootCmd = &cobra.Command{
	Use:   "bamparse",
	Short: "bamparse - 提取 Windows BAM 程序执行记录",
	Long: `bamparse 读取 Background Activity Moderator (BAM) 注册表键，
按用户 SID 列出每个可执行文件最后一次运行的时间。

默认读取本机注册表并写出 results.json；使用 --input 可以解析 "reg export" 导出的 .reg 文件。`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "打印版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bamparse %s\n", version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "配置文件路径 (默认 config/bam.yaml 或内置配置)")
	flags.StringVarP(&inputPath, "input", "i", "", "解析 reg export 导出的 .reg 文件，而不是本机注册表")
	flags.StringVarP(&keyPath, "key", "k", "", `UserSettings 键路径 (例如 HKLM\SYSTEM\CurrentControlSet\Services\bam\State\UserSettings)`)
	flags.StringVarP(&outputPath, "output", "o", "", "输出文件 (默认 results.json)")
	flags.StringVarP(&outputFormat, "format", "f", "", "输出格式: json, csv, sqlite, html, dot")
	flags.BoolVar(&localTime, "local-time", false, "以本机时区输出时间 (默认 UTC)")
	flags.IntVarP(&workers, "workers", "w", 0, "并发解析的子键数量")
	flags.StringVar(&ageRecipient, "encrypt-age", "", "使用 age 公钥加密输出文件")
	flags.BoolVar(&resolveDevices, "resolve-devices", false, `将 \Device\HarddiskVolumeN 路径转换为盘符 (仅 Windows 本机)`)
	flags.BoolVarP(&quiet, "quiet", "q", false, "不打印结果，仅写出文件")
	flags.BoolVar(&debug, "debug", false, "输出调试日志")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(graphCmd)
}

func main() {
	// Ensure proper cleanup on exit
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("程序发生 panic: %v", r)
			os.Exit(1)
		}
		log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func setupLogger(cmd *cobra.Command, args []string) error {
	if !debug {
		return nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	log = logger.Sugar()
	return nil
}

// loadRunConfig merges the config file with command line overrides.
func loadRunConfig() (*config.Config, core.RunConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, core.RunConfig{}, err
	}

	if outputPath != "" {
		cfg.Output.Path = outputPath
		if outputFormat == "" {
			if f := formatFromPath(outputPath); f != "" {
				cfg.Output.Format = f
			}
		}
	}
	if outputFormat != "" {
		cfg.Output.Format = strings.ToLower(outputFormat)
		if outputPath == "" {
			cfg.Output.Path = "results." + extensionFor(cfg.Output.Format)
		}
	}
	if localTime {
		cfg.Output.Timezone = config.TimezoneLocal
	}
	if workers != 0 {
		cfg.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, core.RunConfig{}, err
	}

	rc, err := core.NewRunConfig(cfg)
	if err != nil {
		return nil, core.RunConfig{}, err
	}
	if ageRecipient != "" {
		if err := report.ValidateAgePublicKey(ageRecipient); err != nil {
			return nil, core.RunConfig{}, err
		}
		rc.AgeRecipient = ageRecipient
	}
	return cfg, rc, nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return config.FormatJSON
	case ".csv":
		return config.FormatCSV
	case ".db", ".sqlite", ".sqlite3":
		return config.FormatSQLite
	case ".html", ".htm":
		return config.FormatHTML
	case ".dot", ".gv":
		return config.FormatDOT
	}
	return ""
}

func extensionFor(format string) string {
	if format == config.FormatSQLite {
		return "db"
	}
	return format
}

// openSource picks the .reg file when --input is set, otherwise the live
// key matching the host build.
func openSource(cfg *config.Config) (registry.Source, error) {
	if inputPath != "" {
		log.Debugf("解析导出文件: %s", inputPath)
		return registry.NewRegFileSource(inputPath, keyPath), nil
	}

	key := keyPath
	if key == "" {
		build := hostBuild()
		log.Debugf("系统版本: %s", build)
		k, err := cfg.KeyForBuild(build)
		if err != nil {
			return nil, err
		}
		key = k
	}
	log.Debugf("读取注册表键: %s", key)
	return registry.NewLiveSource(key)
}

func hostBuild() string {
	if info, err := hostinfo.Detect(); err == nil {
		log.Debugf("主机: %s", info)
		if b := info.Build(); b != "" {
			return b
		}
	} else {
		log.Debugf("gopsutil 获取主机信息失败: %v", err)
	}
	return platformBuild()
}

// extract runs the whole pipeline up to, but not including, writing output.
// ok is false when the host build is not supported.
func extract(ctx context.Context) (rc core.RunConfig, result forensics.BamResult, skipped []*forensics.DecodeError, ok bool, err error) {
	cfg, rc, err := loadRunConfig()
	if err != nil {
		return rc, nil, nil, false, err
	}

	src, err := openSource(cfg)
	if errors.Is(err, config.ErrUnsupportedBuild) {
		fmt.Println("Version not supported.")
		return rc, nil, nil, false, nil
	}
	if err != nil {
		return rc, nil, nil, false, err
	}

	if inputPath == "" {
		checkPrivileges()
	}

	result, skipped, err = core.Run(ctx, src, rc, log.Desugar())
	if err != nil {
		return rc, nil, nil, false, err
	}

	if resolveDevices && inputPath == "" {
		result = rewriteDevicePaths(result)
	}
	return rc, result, skipped, true, nil
}

func runExtract(ctx context.Context) error {
	rc, result, skipped, ok, err := extract(ctx)
	if err != nil || !ok {
		return err
	}

	written, err := writeOutput(rc, result)
	if err != nil {
		return err
	}

	if quiet {
		core.PrintResults(log, result, skipped)
		log.Infof("结果已保存: %s", written)
		return nil
	}

	reporter := report.NewBeautifulReporter(os.Stdout)
	if inputPath == "" {
		reporter.Users = lookupUsers(result)
	}
	reporter.PrintResults(result, skipped)
	reporter.PrintSummary(result, written)
	return nil
}

// writeOutput saves result and encrypts it when a recipient is set.
// It returns the path of the file left on disk.
func writeOutput(rc core.RunConfig, result forensics.BamResult) (string, error) {
	if err := report.Save(result, rc.Output, rc.Format); err != nil {
		return "", fmt.Errorf("保存结果失败: %w", err)
	}
	if rc.AgeRecipient == "" {
		return rc.Output, nil
	}
	return report.EncryptFile(rc.Output, rc.AgeRecipient)
}
