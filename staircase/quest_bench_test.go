package staircase

import "testing"

func BenchmarkUpdate(b *testing.B) {
	s, err := New(WithIgnoreTrials(0), WithStopRule(1, 1<<31-1, 1e-12))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		o := Correct
		if i%2 == 1 {
			o = Incorrect
		}

		if err := s.Update(0.1, o); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRecommend(b *testing.B) {
	s, err := New()
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	var sink float64
	for i := 0; i < b.N; i++ {
		sink = s.Recommend()
	}

	_ = sink
}
