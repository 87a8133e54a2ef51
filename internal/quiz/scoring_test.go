package quiz

import (
	"errors"
	"reflect"
	"testing"
)

func TestMaxScores_Bank(t *testing.T) {
	max := MaxScores(Bank())
	for _, c := range Categories() {
		if max[c] != 8 {
			t.Errorf("max[%q] = %d, want 8", c, max[c])
		}
	}
}

func TestMaxScores_EmptyCategory(t *testing.T) {
	qs := []Question{{ID: 1, Category: Governance, Answers: []Answer{{"a", 1}, {"b", 5}, {"c", 3}}}}
	max := MaxScores(qs)
	if len(max) != 5 {
		t.Fatalf("expected all 5 categories, got %d", len(max))
	}
	if max[Governance] != 5 {
		t.Errorf("governance max = %d, want 5", max[Governance])
	}
	if max[RiskManagement] != 0 {
		t.Errorf("risk max = %d, want 0", max[RiskManagement])
	}
}

func TestComputeScores(t *testing.T) {
	qs := Bank()

	tests := []struct {
		name string
		sel  Selection
		want Scores
	}{
		{
			name: "no answers",
			sel:  Selection{},
			want: Scores{Governance: 0, ResourceManagement: 0, PerformanceReporting: 0, StrategicAlignment: 0, RiskManagement: 0},
		},
		{
			name: "first answers everywhere",
			sel:  Selection{1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0, 8: 0, 9: 0, 10: 0},
			want: Scores{Governance: 2, ResourceManagement: 2, PerformanceReporting: 2, StrategicAlignment: 2, RiskManagement: 2},
		},
		{
			name: "mixed and partial",
			sel:  Selection{1: 3, 2: 2, 3: 1, 9: 3},
			want: Scores{Governance: 7, ResourceManagement: 2, PerformanceReporting: 0, StrategicAlignment: 0, RiskManagement: 4},
		},
		{
			name: "unknown question ids ignored",
			sel:  Selection{42: 1, 1: 1},
			want: Scores{Governance: 2, ResourceManagement: 0, PerformanceReporting: 0, StrategicAlignment: 0, RiskManagement: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeScores(qs, tt.sel)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 5 {
				t.Fatalf("expected 5 categories, got %d", len(got))
			}
			for _, c := range Categories() {
				if got[c] != tt.want[c] {
					t.Errorf("%q = %d, want %d", c, got[c], tt.want[c])
				}
			}
		})
	}
}

func TestComputeScores_OutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 4, 100} {
		_, err := ComputeScores(Bank(), Selection{3: idx})
		if !errors.Is(err, ErrAnswerOutOfRange) {
			t.Fatalf("index %d: expected ErrAnswerOutOfRange, got %v", idx, err)
		}
		var rangeErr *AnswerRangeError
		if !errors.As(err, &rangeErr) || rangeErr.QuestionID != 3 || rangeErr.Index != idx {
			t.Fatalf("index %d: unexpected error detail %v", idx, err)
		}
	}
}

func TestComputeScores_NeverExceedsMax(t *testing.T) {
	qs := Bank()
	max := MaxScores(qs)
	for pick := 0; pick < 4; pick++ {
		sel := Selection{}
		for _, q := range qs {
			sel[q.ID] = pick
		}
		got, err := ComputeScores(qs, sel)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, c := range Categories() {
			if got[c] < 0 || got[c] > max[c] {
				t.Errorf("pick %d: %q = %d outside [0, %d]", pick, c, got[c], max[c])
			}
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		score, max, want int
	}{
		{0, 8, 0},
		{8, 8, 100},
		{5, 8, 63},
		{3, 8, 38},
		{1, 3, 33},
		{2, 3, 67},
		{4, 0, 0},
	}
	for _, tt := range tests {
		if got := Percent(tt.score, tt.max); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.score, tt.max, got, tt.want)
		}
	}
}

func TestScoresLabelsRoundTrip(t *testing.T) {
	s := Scores{Governance: 3, RiskManagement: 8}
	back := ScoresFromLabels(s.Labels())
	if back[Governance] != 3 || back[RiskManagement] != 8 || back[StrategicAlignment] != 0 {
		t.Fatalf("unexpected scores %v", back)
	}
	if _, ok := ScoresFromLabels(map[string]int{"Bogus": 1})["Bogus"]; ok {
		t.Fatal("unknown labels must be dropped")
	}
}

func TestMaxScores_OrderInvariant(t *testing.T) {
	want := MaxScores(Bank())

	reversed := Bank()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	if got := MaxScores(reversed); !reflect.DeepEqual(got, want) {
		t.Errorf("reordered questions: got %v, want %v", got, want)
	}

	shuffled := Bank()
	for _, q := range shuffled {
		a := q.Answers
		for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
			a[i], a[j] = a[j], a[i]
		}
		if len(a) > 2 {
			a[0], a[1] = a[1], a[0]
		}
	}
	if got := MaxScores(shuffled); !reflect.DeepEqual(got, want) {
		t.Errorf("reordered answers: got %v, want %v", got, want)
	}
}

func TestScoring_Idempotent(t *testing.T) {
	qs := Bank()
	sel := Selection{1: 3, 2: 1, 4: 0, 7: 2, 10: 3}

	if a, b := MaxScores(qs), MaxScores(qs); !reflect.DeepEqual(a, b) {
		t.Errorf("MaxScores differs between calls: %v vs %v", a, b)
	}

	first, err := ComputeScores(qs, sel)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ComputeScores(qs, sel)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ComputeScores differs between calls: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(qs, Bank()) {
		t.Error("scoring mutated the questions")
	}
}
