package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Fatalf("ParseDate() = %v, want %v", parsed, want)
	}

	if _, err := ParseDate("01/06/2024"); err == nil {
		t.Fatal("ParseDate() accepted a non-ISO date")
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Fatal("ParseDate() accepted an invalid month")
	}
}

func TestNormalizeDate(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	// 23:30 EST on June 1 is June 2 in UTC.
	input := time.Date(2024, 6, 1, 23, 30, 0, 0, est)

	got := NormalizeDate(input)
	want := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("NormalizeDate() = %v, want %v", got, want)
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	day := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	parsed, err := ParseDate(FormatDate(day))
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if !parsed.Equal(day) {
		t.Fatalf("round trip = %v, want %v", parsed, day)
	}
}

func TestGenerateReservationNumber(t *testing.T) {
	for i := 0; i < 100; i++ {
		number := GenerateReservationNumber()
		if len(number) != len(ReservationNumberPrefix)+ReservationNumberLength {
			t.Fatalf("number %q has wrong length", number)
		}
		if number[:len(ReservationNumberPrefix)] != ReservationNumberPrefix {
			t.Fatalf("number %q missing prefix", number)
		}
		for _, c := range number[len(ReservationNumberPrefix):] {
			switch c {
			case '0', 'O', 'I', 'L':
				t.Fatalf("number %q contains ambiguous character %q", number, c)
			}
			if !((c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
				t.Fatalf("number %q contains invalid character %q", number, c)
			}
		}
	}
}
