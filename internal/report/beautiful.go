package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/25smoking/bamparse/internal/forensics"
)

// ANSI 颜色代码
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

// 图标
const (
	IconSuccess = "✓"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconUser    = "👤"
)

// BeautifulReporter prints a colored summary of an extraction.
type BeautifulReporter struct {
	out       io.Writer
	startTime time.Time
	// Users maps SIDs to account names when they could be resolved.
	Users map[string]string
}

func NewBeautifulReporter(out io.Writer) *BeautifulReporter {
	return &BeautifulReporter{
		out:       out,
		startTime: time.Now(),
		Users:     map[string]string{},
	}
}

func (r *BeautifulReporter) PrintSection(title string) {
	line := strings.Repeat("─", 65)
	fmt.Fprintf(r.out, "\n%s┌%s┐%s\n", ColorBlue, line, ColorReset)
	fmt.Fprintf(r.out, "%s│ %s%-63s%s │%s\n", ColorBlue, ColorBold+ColorWhite, title, ColorReset+ColorBlue, ColorReset)
	fmt.Fprintf(r.out, "%s└%s┘%s\n\n", ColorBlue, line, ColorReset)
}

func (r *BeautifulReporter) PrintResults(result forensics.BamResult, skipped []*forensics.DecodeError) {
	r.PrintSection("BAM 执行记录")
	if len(result) == 0 {
		fmt.Fprintf(r.out, "%s %s未发现 BAM 记录%s\n\n", IconInfo, ColorYellow, ColorReset)
		return
	}

	for _, e := range result {
		name := e.SID
		if account, ok := r.Users[e.SID]; ok && account != "" {
			name = fmt.Sprintf("%s (%s)", e.SID, account)
		}
		fmt.Fprintf(r.out, "%s %s%s%s - %s%d%s 条记录\n",
			IconUser, ColorCyan, name, ColorReset, ColorYellow, len(e.Executable), ColorReset)
		for _, rec := range e.Executable {
			fmt.Fprintf(r.out, "    %s%s%s  %s\n", ColorDim, rec.Date, ColorReset, rec.Path)
		}
	}

	if len(skipped) > 0 {
		r.PrintSection("跳过的值")
		for _, de := range skipped {
			fmt.Fprintf(r.out, "%s %s%s%s\n", IconWarning, ColorRed, de.Error(), ColorReset)
		}
	}
}

func (r *BeautifulReporter) PrintSummary(result forensics.BamResult, output string) {
	duration := time.Since(r.startTime)

	r.PrintSection("提取摘要")
	fmt.Fprintf(r.out, "  %s开始时间:%s %s\n", ColorDim, ColorReset, r.startTime.Format(forensics.DateLayout))
	fmt.Fprintf(r.out, "  %s总耗时:%s   %s%.2f 秒%s\n", ColorDim, ColorReset, ColorGreen, duration.Seconds(), ColorReset)
	fmt.Fprintf(r.out, "  %s用户数:%s   %s%d%s\n", ColorDim, ColorReset, ColorYellow, len(result), ColorReset)
	fmt.Fprintf(r.out, "  %s记录数:%s   %s%d%s\n", ColorDim, ColorReset, ColorYellow, result.Count(), ColorReset)
	if output != "" {
		fmt.Fprintf(r.out, "  %s %s输出:%s     %s\n", IconSuccess, ColorDim, ColorReset, output)
	}
	fmt.Fprintln(r.out)
}
