package world

import (
	"bytes"
	"log"
	"math/rand"
	"strings"
	"testing"

	"github.com/younwookim/skyrunner/internal/application/level"
	"github.com/younwookim/skyrunner/internal/application/system"
)

// benchRows repeats a busy screen horizontally
func benchRows(repeat int) []string {
	screen := []string{
		"          FLYER       ",
		"   C C          D     ",
		"  TTTTT    M     PPP  ",
		"                      ",
		" WALKER  J  SHOOTER  S",
		"GGGGGGGGGGGGGGGGGGGGGG",
	}
	rows := make([]string, len(screen))
	for i, r := range screen {
		rows[i] = strings.Repeat(r, repeat)
	}
	rows[4] = "X" + rows[4][1:]
	return rows
}

func benchmarkTick(b *testing.B, repeat int) {
	logger := log.New(&bytes.Buffer{}, "", 0)
	lv := level.ParseGrid(benchRows(repeat), level.Options{Rand: rand.New(rand.NewSource(1)), Logger: logger})
	w, _ := createTestWorld(lv, 1)
	in := system.Intent{MoveRight: true}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		w.Tick(testDT, in)
	}
}

func BenchmarkTick_Small(b *testing.B) { benchmarkTick(b, 1) }

func BenchmarkTick_Large(b *testing.B) { benchmarkTick(b, 20) }
