package cache

import (
	"fmt"
	"testing"
	"time"
)

func BenchmarkSet(b *testing.B) {
	c := New(1024, time.Minute)
	value := matchList("bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(fmt.Sprintf("key-%d", i%2048), value)
	}
}

func BenchmarkGetHit(b *testing.B) {
	c := New(1024, time.Minute)
	for i := 0; i < 1024; i++ {
		c.Set(fmt.Sprintf("key-%d", i), matchList("bench"))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(fmt.Sprintf("key-%d", i%1024))
	}
}

func BenchmarkGetMiss(b *testing.B) {
	c := New(1024, time.Minute)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("absent")
	}
}
