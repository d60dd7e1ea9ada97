package trend

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

// csvTimeLayout matches the timestamps pmrep itself writes
const csvTimeLayout = "2006-01-02 15:04:05"

// WriteForecastCSV writes the observed+predicted record set with header
// Time,value,label. A .zst suffix on the path produces a zstd-compressed
// file. Parent directories are created as needed.
func WriteForecastCSV(path string, records []types.LabeledSample) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create forecast CSV %s: %w", path, err)
	}
	defer f.Close()

	var w io.Writer = f
	var enc *zstd.Encoder
	if strings.HasSuffix(path, ".zst") {
		enc, err = zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("cannot create forecast CSV %s: %w", path, err)
		}
		w = enc
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Time", "value", "label"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Timestamp.Format(csvTimeLayout),
			strconv.FormatFloat(rec.Value, 'g', -1, 64),
			rec.Label,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing forecast CSV %s: %w", path, err)
	}

	if enc != nil {
		if err := enc.Close(); err != nil {
			return fmt.Errorf("writing forecast CSV %s: %w", path, err)
		}
	}
	return f.Close()
}
