package coerce

import (
	"reflect"
	"testing"
	"time"
)

// Benchmark warm-cache coercion of a textual int.
func BenchmarkCoercer_Optional_Int(b *testing.B) {
	coercer := New(DefaultOptions())
	target := reflect.TypeOf(0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = coercer.Optional("12345", target)
	}
}

// Benchmark layout-path and serial-path date coercion.
func BenchmarkCoercer_Time(b *testing.B) {
	coercer := New(DefaultOptions())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = coercer.Time("2024-03-15 13:45:00")
		_, _ = coercer.Time("45000.5")
	}
}

// Benchmark row binding with a prebuilt binder.
func BenchmarkBinder_Bind(b *testing.B) {
	type record struct {
		Id     int
		Name   string
		Score  float64
		Joined time.Time
	}
	coercer := New(DefaultOptions())
	binder, err := coercer.Binder(reflect.TypeOf(record{}))
	if err != nil {
		b.Fatal(err)
	}
	row := map[string]interface{}{
		"Id":     "17",
		"Name":   "John",
		"Score":  "87.5",
		"Joined": "2024-03-15",
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ret := record{}
		if err := binder.Bind(&ret, row); err != nil {
			b.Fatal(err)
		}
	}
}
