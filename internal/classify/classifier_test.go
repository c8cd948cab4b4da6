package classify

import (
	"testing"

	"budgetbot/constants"
)

func loadedClassifier(t *testing.T) *KeywordClassifier {
	t.Helper()
	c := NewKeywordClassifier()
	if err := c.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.Ready() {
		t.Fatal("classifier not ready after Load")
	}
	return c
}

func TestClassifyPresets(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"I bought fuel at the petrol pump", "Transport"},
		{"lunch with the team", "Food"},
		{"Swiggy order", "Food"},
		{"electricity bill for march", "Bills"},
		{"new shoes from the mall", "Shopping"},
		{"netflix renewal", "Entertainment"},
		{"pharmacy", "Health"},
		{"college tuition", "Education"},
		{"Uber to the airport", "Transport"},
	}

	c := loadedClassifier(t)
	for _, tc := range cases {
		got, icon, custom := c.Classify(tc.in)
		if custom {
			t.Fatalf("%q: expected preset match, got custom", tc.in)
		}
		if got != tc.want {
			t.Fatalf("%q: want %s got %s", tc.in, tc.want, got)
		}
		if icon == "" {
			t.Fatalf("%q: preset must carry a glyph", tc.in)
		}
	}
}

func TestClassifyCustomPreservesText(t *testing.T) {
	c := loadedClassifier(t)
	got, icon, custom := c.Classify("xyz123 made-up activity")
	if !custom {
		t.Fatal("expected custom category")
	}
	if got != "xyz123 made-up activity" {
		t.Fatalf("custom category must preserve input, got %q", got)
	}
	if icon != constants.DefaultGlyph {
		t.Fatalf("custom category must use default glyph, got %q", icon)
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	got, _, custom := loadedClassifier(t).Classify("   ")
	if custom || got != string(constants.Other) {
		t.Fatalf("blank input should default to Other, got %q custom=%v", got, custom)
	}
}

func TestClassifyTableOrderBreaksTies(t *testing.T) {
	// "food" (Food) and "bill" (Bills) both match; Food is earlier in the
	// table and must win.
	got, _, _ := loadedClassifier(t).Classify("food bill")
	if got != "Food" {
		t.Fatalf("table order must break ties, got %s", got)
	}
}

func TestClassifyUnloadedDegradesToCustom(t *testing.T) {
	c := NewKeywordClassifier()
	got, _, custom := c.Classify("lunch")
	if !custom || got != "lunch" {
		t.Fatalf("unloaded classifier must degrade to custom, got %q custom=%v", got, custom)
	}
}
