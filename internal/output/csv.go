package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/saad2128/jsonl-task-processor/internal/task"
)

// WriteTable writes tasks as CSV with one column per input key. When
// withSerial is set, serial_no is prepended as the first column. The header
// is always written, even for an empty task list.
func WriteTable(w io.Writer, columns []string, tasks []task.Task, withSerial bool) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(columns)+1)
	if withSerial {
		header = append(header, task.SerialField)
	}
	for _, c := range columns {
		if withSerial && c == task.SerialField {
			continue
		}
		header = append(header, c)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, t := range tasks {
		for i, col := range header {
			if withSerial && i == 0 {
				row[i] = strconv.Itoa(t.Serial)
				continue
			}
			row[i] = t.Value(col)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
