package filter

import "testing"

func mustRange(t *testing.T, s string) RangeSpec {
	t.Helper()
	r, err := ParseRange(s)
	if err != nil {
		t.Fatalf("ParseRange(%q): %v", s, err)
	}
	return r
}

func TestSubstringChars(t *testing.T) {
	ctx := NewEvalContext(0)
	tests := []struct {
		in, rng, want string
	}{
		{"héllo", "1..2", "hé"},
		{"héllo", "-2..-1", "lo"},
		{"héllo", "2..", "éllo"},
	}
	for _, tt := range tests {
		got, err := substringChars(ctx, tt.in, []BoundArg{{Range: mustRange(t, tt.rng)}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0] != tt.want {
			t.Errorf("substring(%q, %q) = %q, want %q", tt.in, tt.rng, got[0], tt.want)
		}
	}
}

func TestSubstringBytesCutBoundary(t *testing.T) {
	ctx := NewEvalContext(0)
	// Byte position 3 (1-based) is the second byte of "é"'s 2-byte
	// encoding: starting a slice there cuts the sequence.
	_, err := substringBytes(ctx, "héllo", []BoundArg{{Range: mustRange(t, "3..3")}})
	if err == nil {
		t.Fatal("expected an error cutting a multi-byte sequence")
	}
}

func TestSubstringBytesTrailingBoundaryIsValid(t *testing.T) {
	ctx := NewEvalContext(0)
	// "héllo" is 6 bytes; a range resolving to [6, 6) sits exactly at the
	// end of the string and must not be treated as cutting a sequence.
	got, err := substringBytes(ctx, "héllo", []BoundArg{{Range: mustRange(t, "7..")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != "" {
		t.Errorf("got %q, want an empty trailing slice", got[0])
	}
}

func TestPadding(t *testing.T) {
	ctx := NewEvalContext(0)
	got, err := padLeft(ctx, "7", []BoundArg{{Int: 3}, {Text: "0"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != "007" {
		t.Errorf("pad-left = %q, want %q", got[0], "007")
	}

	got, err = padRight(ctx, "7", []BoundArg{{Int: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != "7  " {
		t.Errorf("pad-right = %q, want %q", got[0], "7  ")
	}
}
