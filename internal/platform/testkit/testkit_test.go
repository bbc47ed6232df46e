package testkit

import (
	"sync"
	"testing"
	"time"
)

var (
	pointsPerSecond = 1
	today           = func() string { return "2024-03-09" }
)

func TestSwap_Restores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &pointsPerSecond, 2)
		Swap(t, &today, func() string { return "2024-03-10" })
		if pointsPerSecond != 2 || today() != "2024-03-10" {
			t.Fatal("swap did not take effect")
		}
	})
	if pointsPerSecond != 1 || today() != "2024-03-09" {
		t.Fatal("swap not restored after subtest")
	}
}

func TestSerial_NoInterleaving(t *testing.T) {
	var (
		mu  sync.Mutex
		seq []string
	)
	record := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"a", "b"} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				record(name + "+")
				time.Sleep(20 * time.Millisecond)
				record(name + "-")
			})
		}
	})

	if len(seq) != 4 || seq[0][0] != seq[1][0] || seq[2][0] != seq[3][0] {
		t.Fatalf("interleaved: %v", seq)
	}
}

func TestAssertions(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("unknown medium") })
	MustContain(t, "Logged 10ep of Anime", "10ep")
}
