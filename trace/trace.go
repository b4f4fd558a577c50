// Package trace writes the movement pass's per-mover resolutions to CSV for
// offline inspection.
package trace

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/system"
)

// Row is one mover's resolution in one frame.
type Row struct {
	Frame      uint64  `csv:"frame"`
	Entity     uint64  `csv:"entity"`
	StartX     float64 `csv:"start_x"`
	StartY     float64 `csv:"start_y"`
	EndX       float64 `csv:"end_x"`
	EndY       float64 `csv:"end_y"`
	T          float64 `csv:"t"`
	NormalX    float64 `csv:"normal_x"`
	NormalY    float64 `csv:"normal_y"`
	Other      uint64  `csv:"other"`
	Slid       bool    `csv:"slid"`
	SlideT     float64 `csv:"slide_t"`
	SlideOther uint64  `csv:"slide_other"`
}

func rowFromResolution(frame uint64, r system.Resolution) Row {
	return Row{
		Frame:      frame,
		Entity:     r.Entity.Handle(),
		StartX:     r.Start.X,
		StartY:     r.Start.Y,
		EndX:       r.End.X,
		EndY:       r.End.Y,
		T:          r.T,
		NormalX:    r.Normal.X,
		NormalY:    r.Normal.Y,
		Other:      r.Other.Handle(),
		Slid:       r.Slid,
		SlideT:     r.SlideT,
		SlideOther: r.SlideOther.Handle(),
	}
}

// Recorder appends rows to a CSV stream, writing the header once.
type Recorder struct {
	out           io.Writer
	headerWritten bool
}

func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// Record writes one row per resolution. An empty frame writes nothing.
func (r *Recorder) Record(frame uint64, results []system.Resolution) error {
	if r == nil || len(results) == 0 {
		return nil
	}
	rows := make([]Row, 0, len(results))
	for _, res := range results {
		rows = append(rows, rowFromResolution(frame, res))
	}

	if !r.headerWritten {
		if err := gocsv.Marshal(rows, r.out); err != nil {
			return fmt.Errorf("trace: write frame %d: %w", frame, err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, r.out); err != nil {
		return fmt.Errorf("trace: write frame %d: %w", frame, err)
	}
	return nil
}

// System records the movement results after every frame. It must be added
// after the movement system.
type System struct {
	Recorder *Recorder
	Movement *system.MovementSystem

	failed bool
}

func NewSystem(rec *Recorder, movement *system.MovementSystem) *System {
	return &System{Recorder: rec, Movement: movement}
}

func (s *System) Update(w *ecs.World) {
	if s == nil || s.failed || w == nil {
		return
	}
	if err := s.Recorder.Record(w.Frame(), s.Movement.Results()); err != nil {
		log.Printf("%v; tracing disabled", err)
		s.failed = true
	}
}

// File is a Recorder writing to a file on disk.
type File struct {
	*Recorder
	f *os.File
}

func Create(path string) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: create %s: %w", path, err)
	}
	return &File{Recorder: NewRecorder(f), f: f}, nil
}

func (f *File) Close() error {
	if f == nil || f.f == nil {
		return nil
	}
	return f.f.Close()
}
