package scoring

import (
	"errors"
	"testing"
)

func TestAward(t *testing.T) {
	var s State
	for i := 0; i < 3; i++ {
		s = s.Award()
	}
	if s.CorrectCount != 3 || s.Points != 300 {
		t.Errorf("after 3 awards: %+v", s)
	}
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		name      string
		correct   int
		remaining int
		abandoned bool
		expected  int
	}{
		{"abandoned keeps only points", 3, 42, true, 300},
		{"completed adds time bonus", 5, 42, false, 542},
		{"timed out", 2, 0, false, 200},
		{"negative remaining clamps", 2, -3, false, 200},
		{"nothing", 0, 0, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := State{CorrectCount: tc.correct, Points: tc.correct * PointsPerCorrect}
			got := Finalize(state, tc.remaining, tc.abandoned)
			if got != tc.expected {
				t.Errorf("Finalize() = %d, expected %d", got, tc.expected)
			}
			// Pure: a second call agrees
			if again := Finalize(state, tc.remaining, tc.abandoned); again != got {
				t.Errorf("Finalize() not idempotent: %d then %d", got, again)
			}
		})
	}
}

func TestUpdateHighScore(t *testing.T) {
	tests := []struct {
		current, final int
		expected       int
		changed        bool
	}{
		{500, 542, 542, true},
		{500, 300, 500, false},
		{500, 500, 500, false},
		{0, 100, 100, true},
	}

	for _, tc := range tests {
		got, changed := UpdateHighScore(tc.current, tc.final)
		if got != tc.expected || changed != tc.changed {
			t.Errorf("UpdateHighScore(%d, %d) = (%d, %v), expected (%d, %v)",
				tc.current, tc.final, got, changed, tc.expected, tc.changed)
		}
	}
}

func TestParseHighScore(t *testing.T) {
	tests := map[string]int{
		"542":   542,
		" 17\n": 17,
		"":      0,
		"abc":   0,
		"-5":    0,
		"1.5":   0,
	}
	for raw, expected := range tests {
		if got := ParseHighScore(raw); got != expected {
			t.Errorf("ParseHighScore(%q) = %d, expected %d", raw, got, expected)
		}
	}
	if FormatHighScore(542) != "542" {
		t.Error("FormatHighScore should write plain decimal")
	}
}

func TestRecordHighScore(t *testing.T) {
	kv := NewMemoryKV()

	if n, err := LoadHighScore(kv); err != nil || n != 0 {
		t.Fatalf("empty store: (%d, %v)", n, err)
	}

	_ = kv.Set(HighScoreKey, "500")

	best, improved, err := RecordHighScore(kv, 300)
	if err != nil || best != 500 || improved {
		t.Errorf("RecordHighScore(300) = (%d, %v, %v)", best, improved, err)
	}

	best, improved, err = RecordHighScore(kv, 542)
	if err != nil || best != 542 || !improved {
		t.Errorf("RecordHighScore(542) = (%d, %v, %v)", best, improved, err)
	}
	if raw, _, _ := kv.Get(HighScoreKey); raw != "542" {
		t.Errorf("stored value = %q, expected 542", raw)
	}
}

func TestRecordHighScoreMalformed(t *testing.T) {
	kv := NewMemoryKV()
	_ = kv.Set(HighScoreKey, "garbage")

	best, improved, err := RecordHighScore(kv, 10)
	if err != nil || best != 10 || !improved {
		t.Errorf("RecordHighScore over malformed = (%d, %v, %v)", best, improved, err)
	}
}

type failingKV struct{ getErr, setErr error }

func (f failingKV) Get(string) (string, bool, error) { return "", false, f.getErr }
func (f failingKV) Set(string, string) error         { return f.setErr }

func TestRecordHighScoreErrors(t *testing.T) {
	boom := errors.New("boom")

	if _, _, err := RecordHighScore(failingKV{getErr: boom}, 10); !errors.Is(err, boom) {
		t.Errorf("get failure = %v", err)
	}
	best, improved, err := RecordHighScore(failingKV{setErr: boom}, 10)
	if !errors.Is(err, boom) || improved || best != 0 {
		t.Errorf("set failure = (%d, %v, %v)", best, improved, err)
	}
}
