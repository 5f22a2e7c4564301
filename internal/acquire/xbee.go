package acquire

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"accelviz/internal/sample"
)

const (
	frameDelimiter = 0x7E
	rxIOSample16   = 0x83 // 16-bit-address I/O data sample frame
	maxFrameLen    = 256
)

// XBeeSource reads API-mode I/O sample frames from an XBee radio on a
// serial port, one ADC reading per configured channel per frame.
type XBeeSource struct {
	cfg    Config
	logger *zap.Logger
	port   serial.Port
	rd     *bufio.Reader
}

func NewXBeeSource(cfg Config, logger *zap.Logger) *XBeeSource {
	return &XBeeSource{cfg: cfg, logger: logger}
}

func (s *XBeeSource) Init() error {
	mode := &serial.Mode{BaudRate: s.cfg.Baud}
	port, err := serial.Open(s.cfg.Port, mode)
	if err != nil {
		return &InitError{Port: s.cfg.Port, Err: err}
	}
	port.ResetInputBuffer()
	s.port = port
	s.rd = bufio.NewReader(port)
	s.logger.Info("[acquire] serial port opened",
		zap.String("port", s.cfg.Port), zap.Int("baud", s.cfg.Baud))
	return nil
}

// PollOnce blocks until a full frame arrives. A malformed or partial frame
// comes back as a *ReadError; the next call resyncs by scanning for the
// start delimiter.
func (s *XBeeSource) PollOnce() (sample.Sample, error) {
	data, err := readFrame(s.rd)
	if err != nil {
		return sample.Sample{}, err
	}
	values, err := decodeIOSample(data, s.cfg.Channels, s.cfg.Calib)
	if err != nil {
		return sample.Sample{}, err
	}
	return sample.Sample{Time: time.Now(), Values: values}, nil
}

func (s *XBeeSource) Cleanup() {
	if s.port == nil {
		return
	}
	if err := s.port.Close(); err != nil {
		s.logger.Warn("[acquire] error closing serial port",
			zap.Error(err), zap.String("port", s.cfg.Port))
	}
	s.port = nil
}

// readFrame discards input until the next API start delimiter, then reads
// one length-prefixed frame and verifies its checksum. Returns the frame
// payload without the checksum byte.
func readFrame(rd *bufio.Reader) ([]byte, error) {
	for {
		b, err := rd.ReadByte()
		if err != nil {
			return nil, &ReadError{Reason: "reading start delimiter", Err: err}
		}
		if b == frameDelimiter {
			break
		}
	}

	var hdr [2]byte
	if _, err := io.ReadFull(rd, hdr[:]); err != nil {
		return nil, &ReadError{Reason: "reading frame length", Err: err}
	}
	length := int(hdr[0])<<8 | int(hdr[1])
	if length == 0 || length > maxFrameLen {
		return nil, &ReadError{Reason: fmt.Sprintf("implausible frame length %d", length)}
	}

	payload := make([]byte, length+1) // frame data plus checksum
	if _, err := io.ReadFull(rd, payload); err != nil {
		return nil, &ReadError{Reason: "reading frame body", Err: err}
	}

	var sum byte
	for _, b := range payload {
		sum += b
	}
	if sum != 0xFF {
		return nil, &ReadError{Reason: "checksum mismatch", Frame: payload[:length]}
	}
	return payload[:length], nil
}

// decodeIOSample extracts one calibrated reading per channel from an I/O
// data sample frame. The channel indicator mask carries digital lines in
// bits 0-8 and ADC lines in bits 9-14; digital readings, when present,
// precede the ADC block.
func decodeIOSample(data []byte, channels int, calib Calibration) ([]float64, error) {
	if len(data) < 8 {
		return nil, &ReadError{Reason: "short frame", Frame: data}
	}
	if data[0] != rxIOSample16 {
		return nil, &ReadError{Reason: fmt.Sprintf("unexpected api id 0x%02x", data[0]), Frame: data}
	}
	if data[5] < 1 {
		return nil, &ReadError{Reason: "frame carries no sample sets", Frame: data}
	}
	mask := uint16(data[6])<<8 | uint16(data[7])

	off := 8
	if mask&0x01FF != 0 {
		off += 2
	}

	values := make([]float64, 0, channels)
	for bit := 0; bit < 6 && len(values) < channels; bit++ {
		if mask&(1<<(9+bit)) == 0 {
			continue
		}
		if off+2 > len(data) {
			return nil, &ReadError{Reason: "truncated adc block", Frame: data}
		}
		raw := uint16(data[off])<<8 | uint16(data[off+1])
		off += 2
		values = append(values, calib(raw))
	}
	if len(values) != channels {
		return nil, &ReadError{
			Reason: fmt.Sprintf("frame carries %d adc channels, want %d", len(values), channels),
			Frame:  data,
		}
	}
	return values, nil
}
