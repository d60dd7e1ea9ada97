package history

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

// Compressor encodes resampled-series snapshots for the history archive:
// delta-of-delta on timestamps, XOR on values, zstd over both. Grid series
// have constant deltas, so timestamps compress to almost nothing.
type Compressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCompressor creates a compressor at the given level (1 fastest .. 4 best)
func NewCompressor(level int) (*Compressor, error) {
	encLevel := zstd.SpeedDefault
	switch level {
	case 1:
		encLevel = zstd.SpeedFastest
	case 2:
		encLevel = zstd.SpeedDefault
	case 3:
		encLevel = zstd.SpeedBetterCompression
	case 4:
		encLevel = zstd.SpeedBestCompression
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(encLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	return &Compressor{encoder: encoder, decoder: decoder}, nil
}

// snapshotPayload is the stored form of a series snapshot
type snapshotPayload struct {
	Count      int    `json:"count"`
	Timestamps []byte `json:"ts"`
	Values     []byte `json:"vals"`
}

// EncodeSeries compresses a series snapshot for storage
func (c *Compressor) EncodeSeries(samples []types.Sample) (*snapshotPayload, error) {
	if len(samples) == 0 {
		return &snapshotPayload{}, nil
	}

	tsBuf := new(bytes.Buffer)
	valBuf := new(bytes.Buffer)

	// First timestamp as-is, then delta-of-delta
	first := samples[0].Timestamp.Unix()
	if err := binary.Write(tsBuf, binary.LittleEndian, first); err != nil {
		return nil, err
	}
	var prev, prevDelta int64 = first, 0
	for _, sm := range samples[1:] {
		cur := sm.Timestamp.Unix()
		delta := cur - prev
		if err := binary.Write(tsBuf, binary.LittleEndian, delta-prevDelta); err != nil {
			return nil, err
		}
		prev, prevDelta = cur, delta
	}

	// First value as-is, then XOR against the previous value's bits
	prevBits := math.Float64bits(samples[0].Value)
	if err := binary.Write(valBuf, binary.LittleEndian, prevBits); err != nil {
		return nil, err
	}
	for _, sm := range samples[1:] {
		bits := math.Float64bits(sm.Value)
		if err := binary.Write(valBuf, binary.LittleEndian, bits^prevBits); err != nil {
			return nil, err
		}
		prevBits = bits
	}

	return &snapshotPayload{
		Count:      len(samples),
		Timestamps: c.encoder.EncodeAll(tsBuf.Bytes(), nil),
		Values:     c.encoder.EncodeAll(valBuf.Bytes(), nil),
	}, nil
}

// DecodeSeries reverses EncodeSeries
func (c *Compressor) DecodeSeries(p *snapshotPayload) ([]types.Sample, error) {
	if p.Count == 0 {
		return nil, nil
	}

	tsRaw, err := c.decoder.DecodeAll(p.Timestamps, nil)
	if err != nil {
		return nil, fmt.Errorf("timestamp decompression failed: %w", err)
	}
	valRaw, err := c.decoder.DecodeAll(p.Values, nil)
	if err != nil {
		return nil, fmt.Errorf("value decompression failed: %w", err)
	}

	tsBuf := bytes.NewReader(tsRaw)
	valBuf := bytes.NewReader(valRaw)

	timestamps := make([]int64, p.Count)
	if err := binary.Read(tsBuf, binary.LittleEndian, &timestamps[0]); err != nil {
		return nil, err
	}
	var prevDelta int64
	for i := 1; i < p.Count; i++ {
		var dd int64
		if err := binary.Read(tsBuf, binary.LittleEndian, &dd); err != nil {
			return nil, err
		}
		delta := dd + prevDelta
		timestamps[i] = timestamps[i-1] + delta
		prevDelta = delta
	}

	values := make([]float64, p.Count)
	var prevBits uint64
	if err := binary.Read(valBuf, binary.LittleEndian, &prevBits); err != nil {
		return nil, err
	}
	values[0] = math.Float64frombits(prevBits)
	for i := 1; i < p.Count; i++ {
		var xor uint64
		if err := binary.Read(valBuf, binary.LittleEndian, &xor); err != nil {
			return nil, err
		}
		prevBits ^= xor
		values[i] = math.Float64frombits(prevBits)
	}

	samples := make([]types.Sample, p.Count)
	for i := range samples {
		samples[i] = types.Sample{Timestamp: timeFromUnix(timestamps[i]), Value: values[i]}
	}
	return samples, nil
}

// Snapshot timestamps are stored at second precision, which is what the
// resample grid produces.
func timeFromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// Close releases the zstd encoder/decoder
func (c *Compressor) Close() {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
}
