// Package driver runs the cpu engine to completion under one of three
// policies — a fixed instruction budget, a benchmark with no tracing, or a
// 60 fps real-time loop — and exposes the sound-latch edge contract the
// external host uses to trigger samples. None of it is part of CPU
// correctness; it's the thin loop an arcade frontend wraps around Step.
package driver

import (
	"time"

	"invaders8080/cpu"
)

// Result summarizes how a run ended.
type Result struct {
	Instructions uint64
	Cycles       uint64
	Err          error // non-nil only for *cpu.HaltError; a budget running out is not an error
}

// RunBatch steps m until it has retired maxInstructions instructions or
// halts, whichever comes first. maxInstructions == 0 means unlimited — the
// loop then only stops when the machine halts.
func RunBatch[T cpu.TraceFunc](m *cpu.Machine, trace T, maxInstructions uint64) Result {
	for maxInstructions == 0 || m.ICount < maxInstructions {
		if _, err := cpu.Step(m, trace); err != nil {
			return Result{Instructions: m.ICount, Cycles: m.Cycle, Err: err}
		}
	}
	return Result{Instructions: m.ICount, Cycles: m.Cycle}
}

// BenchResult reports a benchmark run's throughput.
type BenchResult struct {
	Result
	Wall      time.Duration
	Simulated time.Duration // Cycles worth of simulated 8080 time, at ClockFrequency
}

// RunBenchmark steps m with NopTrace until it has run maxCycles simulated
// cycles or halts, and reports both wall-clock and simulated elapsed time so
// a caller can judge how far from real-time the engine runs.
func RunBenchmark(m *cpu.Machine, maxCycles uint64) BenchResult {
	start := time.Now()
	var haltErr error
	for m.Cycle < maxCycles {
		if _, err := cpu.Step(m, cpu.NopTrace); err != nil {
			haltErr = err
			break
		}
	}
	wall := time.Since(start)
	return BenchResult{
		Result:    Result{Instructions: m.ICount, Cycles: m.Cycle, Err: haltErr},
		Wall:      wall,
		Simulated: time.Duration(m.Cycle) * time.Second / cpu.ClockFrequency,
	}
}

// framePeriod is the wall-clock duration of one 60 Hz video frame.
const framePeriod = time.Second / 60

// RunRealtime steps m in whole-frame batches (cpu.CyclesPerHalfFrame*2
// cycles' worth of instructions each), sleeping between batches to hold 60
// frames per wall-clock second. It returns when quit is closed or m halts;
// quit may be nil, in which case the loop only stops on halt.
func RunRealtime[T cpu.TraceFunc](m *cpu.Machine, trace T, quit <-chan struct{}) error {
	for {
		select {
		case <-quit:
			return nil
		default:
		}

		frameTarget := m.Cycle + cpu.CyclesPerHalfFrame*2
		frameStart := time.Now()
		for m.Cycle < frameTarget {
			if _, err := cpu.Step(m, trace); err != nil {
				return err
			}
		}
		if elapsed := time.Since(frameStart); elapsed < framePeriod {
			time.Sleep(framePeriod - elapsed)
		}
	}
}

// SoundLatch is a snapshot of the two sound-trigger output ports.
type SoundLatch struct {
	Port3, Port5 byte
}

// CaptureSoundLatch reads the current sound-trigger latches, for comparison
// against a later snapshot.
func CaptureSoundLatch(m *cpu.Machine) SoundLatch {
	return SoundLatch{Port3: m.Port3, Port5: m.Port5}
}

// SoundEdges implements the sound edge contract: given latch values
// captured before and after a batch of steps, it returns, per port, the set
// of bits that went 0→1 during the batch. A caller plays a sample for each
// bit set in the result; falling edges and steady bits never trigger a
// sound.
func SoundEdges(before, after SoundLatch) (port3Rising, port5Rising byte) {
	port3Rising = after.Port3 &^ before.Port3
	port5Rising = after.Port5 &^ before.Port5
	return
}
