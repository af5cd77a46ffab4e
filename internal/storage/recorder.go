package storage

import "github.com/sansuarezs055/gaslab/internal/gas"

// FrameRecorder buffers every frame in memory for a later SaveGasRun.
type FrameRecorder struct {
	Frames []gas.Frame
}

func (r *FrameRecorder) OnFrame(f gas.Frame) error {
	r.Frames = append(r.Frames, f)
	return nil
}

// PressureRecorder buffers the pressure series in memory.
type PressureRecorder struct {
	Times     []float64
	Pressures []float64
}

func (r *PressureRecorder) OnPressure(t, p float64) error {
	r.Times = append(r.Times, t)
	r.Pressures = append(r.Pressures, p)
	return nil
}
