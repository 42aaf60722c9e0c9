package report

import (
	"encoding/csv"
	"io"

	"github.com/25smoking/bamparse/internal/forensics"
)

// WriteCSV writes one row per executable record.
func WriteCSV(w io.Writer, result forensics.BamResult) error {
	// 写入 BOM 以防止 Excel 打开中文乱码
	if _, err := w.Write([]byte("\xEF\xBB\xBF")); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"sid", "path", "date"}); err != nil {
		return err
	}
	for _, e := range result {
		for _, rec := range e.Executable {
			if err := cw.Write([]string{e.SID, rec.Path, rec.Date}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
