package report

import (
	"html/template"
	"io"
	"time"

	"github.com/25smoking/bamparse/internal/forensics"
)

const reportTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>BAM 执行记录报告</title>
    <style>
        :root {
            --bg-color: #f8f9fa;
            --card-bg: #ffffff;
            --text-color: #333;
            --accent: #0d6efd;
            --border-color: #dee2e6;
        }
        body { font-family: 'Segoe UI', sans-serif; background: var(--bg-color); color: var(--text-color); margin: 0; padding: 20px; }
        .container { max-width: 1200px; margin: 0 auto; }
        .header { text-align: center; margin-bottom: 30px; }
        .stats { display: flex; gap: 20px; margin-bottom: 20px; }
        .stat-card { flex: 1; background: var(--card-bg); padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); text-align: center; }
        .stat-num { font-size: 2em; font-weight: bold; color: var(--accent); }

        .sid-card { background: var(--card-bg); border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); margin-bottom: 15px; border-left: 5px solid var(--accent); overflow: hidden; }
        .sid-header { padding: 15px; background: rgba(0,0,0,0.02); display: flex; justify-content: space-between; align-items: center; cursor: pointer; font-weight: bold; }
        .sid-body { padding: 15px; display: none; border-top: 1px solid var(--border-color); }
        .sid-body.open { display: block; }
        table { width: 100%; border-collapse: collapse; }
        th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid var(--border-color); }
        td.date { white-space: nowrap; width: 12em; }
        code { background: #eee; padding: 2px 5px; border-radius: 3px; word-break: break-all; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>BAM 执行记录报告</h1>
            <p>生成时间: {{ .GeneratedAt }}</p>
        </div>

        <div class="stats">
            <div class="stat-card">
                <div class="stat-num">{{ .Users }}</div>
                <div>用户</div>
            </div>
            <div class="stat-card">
                <div class="stat-num">{{ .Records }}</div>
                <div>执行记录</div>
            </div>
        </div>

        <div id="entries">
            {{ range .Entries }}
            <div class="sid-card">
                <div class="sid-header" onclick="this.nextElementSibling.classList.toggle('open')">
                    <span>{{ .SID }}</span>
                    <span>{{ len .Executable }} ▼</span>
                </div>
                <div class="sid-body">
                    <table>
                        <tr><th>时间</th><th>路径</th></tr>
                        {{ range .Executable }}
                        <tr><td class="date">{{ .Date }}</td><td><code>{{ .Path }}</code></td></tr>
                        {{ end }}
                    </table>
                </div>
            </div>
            {{ else }}
            <div style="text-align: center; padding: 40px; color: #666;">
                未发现 BAM 记录
            </div>
            {{ end }}
        </div>
    </div>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(reportTemplate))

type ReportData struct {
	GeneratedAt string
	Users       int
	Records     int
	Entries     forensics.BamResult
}

// WriteHTML renders a collapsible per-SID HTML report.
func WriteHTML(w io.Writer, result forensics.BamResult) error {
	data := ReportData{
		GeneratedAt: time.Now().Format(forensics.DateLayout),
		Users:       len(result),
		Records:     result.Count(),
		Entries:     result,
	}
	return htmlTemplate.Execute(w, data)
}
