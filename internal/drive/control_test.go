package drive

import (
	"errors"
	"testing"
)

func TestWriteDuty_StoresValue(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int
	}{
		{"Plain", "75", 75},
		{"TrailingNewline", "75\n", 75},
		{"Zero", "0", 0},
		{"Hundred", "100", 100},
		{"ClampHigh", "150", 100},
		{"ClampLow", "-5", 0},
		{"SurroundingSpace", " 42 ", 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := NewState()
			c := NewControl(st)
			n, err := c.WriteDuty([]byte(tc.input))
			if err != nil {
				t.Fatalf("WriteDuty(%q) error: %v", tc.input, err)
			}
			if n != len(tc.input) {
				t.Fatalf("consumed=%d want %d", n, len(tc.input))
			}
			if got := st.Duty(); got != tc.want {
				t.Fatalf("duty=%d want %d", got, tc.want)
			}
		})
	}
}

func TestWriteDuty_RejectsNonNumeric(t *testing.T) {
	st := NewState()
	c := NewControl(st)

	for _, input := range []string{"abc", "", "\n", "12x", "1.5"} {
		n, err := c.WriteDuty([]byte(input))
		if !errors.Is(err, ErrNotANumber) {
			t.Fatalf("WriteDuty(%q) err=%v want ErrNotANumber", input, err)
		}
		if n != 0 {
			t.Fatalf("WriteDuty(%q) consumed=%d want 0", input, n)
		}
		if got := st.Duty(); got != DefaultDuty {
			t.Fatalf("duty=%d, changed by rejected write %q", got, input)
		}
	}
}

func TestWriteDuty_RejectsOversizedInput(t *testing.T) {
	st := NewState()
	c := NewControl(st)

	// 16 bytes: one past the bound. The numeric value is valid, so only
	// the length check can reject it.
	input := []byte("0000000000000075")
	n, err := c.WriteDuty(input)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("err=%v want ErrInputTooLarge", err)
	}
	if n != 0 {
		t.Fatalf("consumed=%d want 0", n)
	}
	if got := st.Duty(); got != DefaultDuty {
		t.Fatalf("duty=%d, changed by rejected write", got)
	}

	// 15 bytes is within the bound.
	if _, err := c.WriteDuty([]byte("000000000000075")); err != nil {
		t.Fatalf("15-byte write error: %v", err)
	}
	if got := st.Duty(); got != 75 {
		t.Fatalf("duty=%d want 75", got)
	}
}

func TestReadPeriod_NoDataSentinel(t *testing.T) {
	st := NewState()
	c := NewControl(st)
	if got := c.ReadPeriod(); got != "0\n" {
		t.Fatalf("ReadPeriod()=%q want %q", got, "0\n")
	}
}

func TestReadPeriod_FormatsMicros(t *testing.T) {
	st := NewState()
	st.setPeriodMicros(1000)
	c := NewControl(st)
	if got := c.ReadPeriod(); got != "1000\n" {
		t.Fatalf("ReadPeriod()=%q want %q", got, "1000\n")
	}
}
