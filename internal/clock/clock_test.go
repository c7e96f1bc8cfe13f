package clock

import (
	"testing"
	"time"
)

func TestReal(t *testing.T) {
	before := time.Now()
	got := Real().Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("Real().Now() = %v, expected it between %v and %v", got, before, after)
	}
}

func TestFakeClock(t *testing.T) {
	base := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	c := Fake(base)

	if !c.Now().Equal(base) {
		t.Errorf("Now() = %v, expected the frozen %v", c.Now(), base)
	}
	if !c.Now().Equal(base) {
		t.Error("expected the fake to stay frozen between calls")
	}

	c.Advance(90 * time.Minute)
	if want := base.Add(90 * time.Minute); !c.Now().Equal(want) {
		t.Errorf("Now() after Advance = %v, expected %v", c.Now(), want)
	}

	other := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	c.Set(other)
	if !c.Now().Equal(other) {
		t.Errorf("Now() after Set = %v, expected %v", c.Now(), other)
	}
}
