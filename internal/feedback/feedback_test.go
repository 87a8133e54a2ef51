package feedback

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Sections
	}{
		{
			name: "all three in order",
			text: "**Insight:** A. **Follow-up Questions:** B? **Next Step:** C.",
			want: Sections{Insight: "A.", FollowUp: "B?", NextStep: "C."},
		},
		{
			name: "out of order",
			text: "**Next Step:** Do X.\n**Insight:** Mature.\n**Follow-up Questions:** Why?",
			want: Sections{Insight: "Mature.", FollowUp: "Why?", NextStep: "Do X."},
		},
		{
			name: "missing follow-up",
			text: "**Insight:** Only insight. **Next Step:** Go.",
			want: Sections{Insight: "Only insight.", NextStep: "Go."},
		},
		{
			name: "multi-line capture with blank lines",
			text: "**Insight:**\n\n  Line one.\nLine two.\n\n**Next Step:** Act.",
			want: Sections{Insight: "Line one.\nLine two.", NextStep: "Act."},
		},
		{
			name: "inline emphasis stays in the capture",
			text: "**Insight:** Your **strong** governance. **Next Step:** Keep it.",
			want: Sections{Insight: "Your **strong** governance.", NextStep: "Keep it."},
		},
		{
			name: "unknown bold label ends the capture",
			text: "**Insight:** Good. **Note:** ignore me",
			want: Sections{Insight: "Good."},
		},
		{
			name: "adjacent labels",
			text: "**Insight:****Next Step:** Pilot.",
			want: Sections{NextStep: "Pilot."},
		},
		{
			name: "unclosed emphasis runs to end",
			text: "**Follow-up Questions:** What about **this?",
			want: Sections{FollowUp: "What about **this?"},
		},
		{
			name: "reference example",
			text: "**Insight:** Solid foundation.\n**Follow-up Questions:** What blocks adoption?\n**Next Step:** Run a pilot.",
			want: Sections{Insight: "Solid foundation.", FollowUp: "What blocks adoption?", NextStep: "Run a pilot."},
		},
		{
			name: "stray marker does not hide the next label",
			text: "**Insight:** Throughput rose 2 ** 3 fold.\n**Follow-up Questions:** Why?\n**Next Step:** Go.",
			want: Sections{Insight: "Throughput rose 2 ** 3 fold.", FollowUp: "Why?", NextStep: "Go."},
		},
		{
			name: "stray marker before emphasis",
			text: "**Insight:** a ** b **bold** c **Next Step:** Go.",
			want: Sections{Insight: "a ** b **bold** c", NextStep: "Go."},
		},
		{
			name: "spaced colon is not a label",
			text: "**Insight:** ratio ** 2: ** fine",
			want: Sections{Insight: "ratio ** 2: ** fine"},
		},
		{
			name: "label with nothing after it",
			text: "**Insight:**",
			want: Sections{},
		},
		{
			name: "no labels",
			text: "Plain feedback without any structure.",
			want: Sections{},
		},
		{
			name: "empty",
			text: "",
			want: Sections{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if got != tt.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFormat_FallsBackWhenNothingParsed(t *testing.T) {
	s, ok := Format("Just a plain sentence with no labels.")
	if ok {
		t.Fatal("expected ok=false for unlabelled text")
	}
	if s != (Sections{}) {
		t.Fatalf("expected empty sections, got %+v", s)
	}
	s, ok = Format("**Next Step:** Do it.")
	if !ok {
		t.Fatal("expected ok=true")
	}
	if s.NextStep != "Do it." || s.Insight != "" {
		t.Fatalf("unexpected sections %+v", s)
	}
}

func TestSections_Empty(t *testing.T) {
	if !(Sections{}).Empty() {
		t.Fatal("zero value should be empty")
	}
	if (Sections{FollowUp: "x"}).Empty() {
		t.Fatal("follow-up only should not be empty")
	}
}
