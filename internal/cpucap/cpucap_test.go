package cpucap

import "testing"

func TestProbeNoFlushForcesNoopAndFence(t *testing.T) {
	t.Setenv("PMEM_NO_FLUSH", "1")
	r := Probe()
	if r.FlushKind != FlushNone {
		t.Fatalf("FlushKind = %v, want FlushNone", r.FlushKind)
	}
	if r.FenceKind != FenceSFence {
		t.Fatalf("FenceKind = %v, want FenceSFence (no-flush path still drains)", r.FenceKind)
	}
}

func TestProbeNoMovntDisablesStreamingStores(t *testing.T) {
	t.Setenv("PMEM_NO_MOVNT", "1")
	r := Probe()
	if r.StreamingStores {
		t.Fatalf("StreamingStores = true, want false when PMEM_NO_MOVNT=1")
	}
}

func TestProbeMovntThresholdOverride(t *testing.T) {
	t.Setenv("PMEM_MOVNT_THRESHOLD", "1024")
	r := Probe()
	if r.MovntThreshold != 1024 {
		t.Fatalf("MovntThreshold = %d, want 1024", r.MovntThreshold)
	}
}

func TestProbeMovntThresholdDefault(t *testing.T) {
	r := Probe()
	if r.MovntThreshold != defaultMovntThreshold {
		t.Fatalf("MovntThreshold = %d, want default %d", r.MovntThreshold, defaultMovntThreshold)
	}
}

func TestIsPmemForceLatchesOnce(t *testing.T) {
	t.Setenv("PMEM_IS_PMEM_FORCE", "1")
	r := Probe()
	set, answer := r.IsPmemForce()
	if !set || !answer {
		t.Fatalf("IsPmemForce() = (%v,%v), want (true,true)", set, answer)
	}

	// Changing the environment after the first call must not change
	// the latched answer: the evaluation happens exactly once.
	t.Setenv("PMEM_IS_PMEM_FORCE", "0")
	set, answer = r.IsPmemForce()
	if !set || !answer {
		t.Fatalf("IsPmemForce() after env change = (%v,%v), want latched (true,true)", set, answer)
	}
}

func TestDefaultReturnsSameRecord(t *testing.T) {
	a := Default()
	b := Default()
	if a != b {
		t.Fatalf("Default() returned different records across calls")
	}
}
