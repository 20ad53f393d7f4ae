package edstate

import (
	"strings"
	"testing"
)

var benchSmallDoc = "P: hello world"

var benchMediumDoc = `UL:
  LI: [@link href="https://example.com":first item]
  LI: second item with some [~note:inline overlay] text
  LI: third item`

var benchLargeDoc = func() string {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("P: paragraph number text here\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}()

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(benchSmallDoc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_Medium(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(benchMediumDoc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_Large(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(benchLargeDoc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSerialize(b *testing.B) {
	doc := MustParse(benchMediumDoc)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Serialize(doc, SerializeOptions{})
	}
}

func BenchmarkRoundTrip(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		doc, err := Parse(benchMediumDoc)
		if err != nil {
			b.Fatal(err)
		}
		_ = Serialize(doc, SerializeOptions{})
	}
}

func BenchmarkGetRange(b *testing.B) {
	doc := MustParse(benchLargeDoc)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := GetRange(doc, "paragraph number"); err != nil {
			b.Fatal(err)
		}
	}
}
