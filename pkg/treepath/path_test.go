package treepath

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "Fruit", []string{"Fruit"}},
		{"two", "Fruit/Apple", []string{"Fruit", "Apple"}},
		{"leading slashes", "///Fruit/Apple", []string{"Fruit", "Apple"}},
		{"trailing slash", "Fruit/", []string{"Fruit"}},
		{"repeated slashes", "a//b", []string{"a", "b"}},
		{"escaped slash", `A/B\/C`, []string{"A", "B/C"}},
		{"escaped backslash", `A\\B`, []string{`A\B`}},
		{"escaped other", `A\xB`, []string{"AxB"}},
		{"trailing backslash", `A\`, []string{"A"}},
		{"only slashes", "////", nil},
		{"unicode", "Früchte/Äpfel", []string{"Früchte", "Äpfel"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	tests := map[string]string{
		"plain":  "plain",
		"B/C":    `B\/C`,
		`a\b`:    `a\\b`,
		`/\`:     `\/\\`,
		"":       "",
		"x y/ z": `x y\/ z`,
	}
	for in, want := range tests {
		if got := Escape(in); got != want {
			t.Errorf("Escape(%q) = %q, want %q", in, got, want)
		}
		if got := EscapedLen(in); got != len(want) {
			t.Errorf("EscapedLen(%q) = %d, want %d", in, got, len(want))
		}
		if got := Unescape(want); got != in {
			t.Errorf("Unescape(%q) = %q, want %q", want, got, in)
		}
	}
}

func TestJoin(t *testing.T) {
	got := Join([]string{"A", "B/C", `D\E`})
	want := `A/B\/C/D\\E`
	if got != want {
		t.Errorf("Join = %q, want %q", got, want)
	}
	if segs := Parse(got); !reflect.DeepEqual(segs, []string{"A", "B/C", `D\E`}) {
		t.Errorf("Parse(Join) = %q", segs)
	}
}

// TestJoinParseRoundTrip checks that any list of non-empty labels survives
// Join followed by Parse.
func TestJoinParseRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		labels := rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z0-9 /\\.-]{1,8}`), 1, 6).Draw(t, "labels")
		got := Parse(Join(labels))
		if !reflect.DeepEqual(got, labels) {
			t.Fatalf("round trip of %q gave %q", labels, got)
		}
	})
}

// TestEscapeIdempotentThroughUnescape checks Unescape(Escape(s)) == s for
// arbitrary strings, including ones that already contain escapes.
func TestEscapeIdempotentThroughUnescape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		if got := Unescape(Escape(s)); got != s {
			t.Fatalf("Unescape(Escape(%q)) = %q", s, got)
		}
	})
}
