package report

import (
	"fmt"
	"io"
	"os"

	"github.com/25smoking/bamparse/internal/config"
	"github.com/25smoking/bamparse/internal/forensics"
)

var writers = map[string]func(io.Writer, forensics.BamResult) error{
	config.FormatJSON: WriteJSON,
	config.FormatCSV:  WriteCSV,
	config.FormatHTML: WriteHTML,
	config.FormatDOT:  WriteDOT,
}

// Save writes result to path in the given format, replacing any existing file.
func Save(result forensics.BamResult, path, format string) error {
	if format == config.FormatSQLite {
		return WriteSQLite(path, result)
	}

	write, ok := writers[format]
	if !ok {
		return fmt.Errorf("unknown output format %q", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, result); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s report: %w", format, err)
	}
	return f.Close()
}
