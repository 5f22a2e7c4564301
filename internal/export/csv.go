package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"accelviz/internal/sample"
)

// TimestampLayout encodes a session start time into file names.
const TimestampLayout = "2006_01_02-15_04_05"

// Header builds the fixed first line of the CSV log.
func Header(channels []sample.ChannelSpec) string {
	var b strings.Builder
	b.WriteString("#elapsed (seconds)")
	for _, ch := range channels {
		fmt.Fprintf(&b, "\t%s axis (%s)", ch.Name, ch.Unit)
	}
	b.WriteByte('\n')
	return b.String()
}

// WriteCSV writes the header line, then one tab-separated line per sample:
// elapsed seconds followed by every channel value, fixed %f precision.
func WriteCSV(w io.Writer, log []sample.Sample, start time.Time, channels []sample.ChannelSpec) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header(channels)); err != nil {
		return err
	}
	for _, smp := range log {
		if _, err := fmt.Fprintf(bw, "%f", smp.Time.Sub(start).Seconds()); err != nil {
			return err
		}
		for _, v := range smp.Values {
			if _, err := fmt.Fprintf(bw, "\t%f", v); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// CSVFileName encodes the recording start time, e.g.
// accelerometer-log-2026_08_23-14_05_09.csv.
func CSVFileName(prefix string, start time.Time) string {
	return fmt.Sprintf("%s-%s.csv", prefix, start.Local().Format(TimestampLayout))
}

// SaveCSV writes the recorded log under dir and returns the file path.
// Failures come back as *WriteError; the log itself is untouched, so the
// caller can retry.
func SaveCSV(dir, prefix string, log []sample.Sample, start time.Time, channels []sample.ChannelSpec) (string, error) {
	path := filepath.Join(dir, CSVFileName(prefix, start))
	f, err := os.Create(path)
	if err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	if err := WriteCSV(f, log, start, channels); err != nil {
		f.Close()
		return "", &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	return path, nil
}
