package sim

import (
	"math"
	"math/rand"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		a := rng1.ForSubsystem(SubsystemPolicy).Float64()
		b := rng2.ForSubsystem(SubsystemPolicy).Float64()
		if a != b {
			t.Errorf("Value %d: got %v and %v, want identical", i, a, b)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// Drawing from the policy stream doesn't shift the spread stream
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemPolicy).Float64()
	}
	aSpreadFirst := rngA.ForSubsystem(SubsystemSpread).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	expectedFirst := fresh.ForSubsystem(SubsystemSpread).Float64()

	if aSpreadFirst != expectedFirst {
		t.Errorf("A's spread first value = %v, want %v (isolation broken)", aSpreadFirst, expectedFirst)
	}
}

func TestPartitionedRNG_SpreadUsesMasterSeed(t *testing.T) {
	seed := int64(42)
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	spreadRNG := rng.ForSubsystem(SubsystemSpread)
	directRNG := rand.New(rand.NewSource(seed))

	for i := 0; i < 10; i++ {
		if got, want := spreadRNG.Float64(), directRNG.Float64(); got != want {
			t.Errorf("Value %d: spread RNG = %v, direct RNG = %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	if rng.ForSubsystem(SubsystemSeeding) != rng.ForSubsystem(SubsystemSeeding) {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(12345))
	if rng.Key() != SimulationKey(12345) {
		t.Errorf("Key() = %v, want %v", rng.Key(), 12345)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}
	rng.ForSubsystem(SubsystemSpread)
	if len(rng.subsystems) != 1 {
		t.Errorf("After one ForSubsystem call, have %d subsystems, want 1", len(rng.subsystems))
	}
}

// === fnv1a64 Tests ===

func TestFnv1a64_Collision(t *testing.T) {
	names := []string{SubsystemSpread, SubsystemPolicy, SubsystemSeeding, "trial_0", "trial_1", ""}
	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

func TestSubsystemTrial(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "trial_0"},
		{12, "trial_12"},
	}
	for _, tt := range tests {
		if got := SubsystemTrial(tt.n); got != tt.want {
			t.Errorf("SubsystemTrial(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

// === sampleWithoutReplacement Tests ===

func TestSampleWithoutReplacement_DistinctAndBounded(t *testing.T) {
	pool := NewNodeRange(10)
	rng := rand.New(rand.NewSource(1))
	for k := -1; k <= 12; k++ {
		got := sampleWithoutReplacement(rng, pool, k)
		want := k
		if want < 0 {
			want = 0
		}
		if want > len(pool) {
			want = len(pool)
		}
		if len(got) != want {
			t.Fatalf("k=%d: got %d elements, want %d", k, len(got), want)
		}
		seen := make(map[NodeID]bool)
		for _, id := range got {
			if seen[id] {
				t.Fatalf("k=%d: duplicate %d", k, id)
			}
			seen[id] = true
		}
	}
	for i, id := range pool {
		if id != NodeID(i) {
			t.Fatalf("pool was modified: %v", pool)
		}
	}
}

func TestSampleWithoutReplacement_Uniform(t *testing.T) {
	// Each of 5 elements should be picked ~2/5 of the time with k=2
	pool := NewNodeRange(5)
	rng := rand.New(rand.NewSource(8))
	counts := make(map[NodeID]int)
	const trials = 10000
	for i := 0; i < trials; i++ {
		for _, id := range sampleWithoutReplacement(rng, pool, 2) {
			counts[id]++
		}
	}
	for _, id := range pool {
		freq := float64(counts[id]) / trials
		if math.Abs(freq-0.4) > 0.03 {
			t.Errorf("node %d picked with frequency %.3f, want ~0.4", id, freq)
		}
	}
}

// === Benchmark ===

func BenchmarkPartitionedRNG_ForSubsystem_CacheHit(b *testing.B) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	rng.ForSubsystem(SubsystemSpread)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.ForSubsystem(SubsystemSpread)
	}
}
