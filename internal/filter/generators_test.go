package filter

import "testing"

func TestGlobalCounterMonotonic(t *testing.T) {
	ctx := NewEvalContext(0)
	r := Builtins()
	spec, _ := r.Lookup("global-counter")
	first, err := spec.Impl(ctx, "x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := spec.Impl(ctx, "x", nil)
	if first[0] == second[0] {
		t.Errorf("global-counter did not advance: %q == %q", first[0], second[0])
	}
}

func TestLocalCounterPerExpression(t *testing.T) {
	ctx := NewEvalContext(0)
	r := Builtins()
	spec, _ := r.Lookup("local-counter")

	ctx.SetExprID(1)
	a, _ := spec.Impl(ctx, "x", nil)
	b, _ := spec.Impl(ctx, "x", nil)
	if a[0] == b[0] {
		t.Errorf("local-counter did not advance within expression 1")
	}

	ctx.SetExprID(2)
	c, _ := spec.Impl(ctx, "x", nil)
	if c[0] != a[0] {
		t.Errorf("local-counter for a fresh expression = %q, want it to restart at %q", c[0], a[0])
	}
}

func TestSequenceDefaultStep(t *testing.T) {
	rng, err := ParseRange("1..3")
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	got, err := generatorSequence(NewEvalContext(0), "x", []BoundArg{{Range: rng}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestSequenceDescendingWithStep(t *testing.T) {
	rng, err := ParseRange("1..-3")
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	got, err := generatorSequence(NewEvalContext(0), "x", []BoundArg{{Range: rng}, {Int: -2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"1", "-1", "-3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestSequenceRequiresBothBounds(t *testing.T) {
	rng, err := ParseRange("2..")
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	_, err = generatorSequence(NewEvalContext(0), "x", []BoundArg{{Range: rng}})
	if err == nil {
		t.Fatal("expected an error for an open-ended sequence range")
	}
}

func TestRandomTextLength(t *testing.T) {
	got, err := generatorRandomText(NewEvalContext(1), "x", []BoundArg{{Int: 8}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(got[0])) != 8 {
		t.Errorf("random-text length = %d, want 8", len([]rune(got[0])))
	}
}

func TestRandomIntInRange(t *testing.T) {
	rng, err := ParseRange("5..10")
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	ctx := NewEvalContext(42)
	for i := 0; i < 20; i++ {
		got, err := generatorRandomInt(ctx, "x", []BoundArg{{Range: rng}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n := 0
		for _, c := range got[0] {
			if c == '-' {
				continue
			}
			n = n*10 + int(c-'0')
		}
		if n < 5 || n > 10 {
			t.Errorf("random-int(5..10) = %d, out of range", n)
		}
	}
}
