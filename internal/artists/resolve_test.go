package artists

import (
	"reflect"
	"testing"
)

func testIndex(names ...string) []IndexEntry {
	return BuildIndex(names)
}

func TestResolveTypoMatches(t *testing.T) {
	index := testIndex("Radiohead", "Pink Floyd")
	res := Resolve("Radiohed", index, 80, 3)
	if !res.Confident() {
		t.Fatalf("expected confident match, got suggestions %+v", res.Suggestions)
	}
	if res.Match.Entry.CanonicalName != "Radiohead" {
		t.Errorf("match = %q", res.Match.Entry.CanonicalName)
	}
	if res.Match.Score < 80 {
		t.Errorf("score = %d, want >= 80", res.Match.Score)
	}
}

func TestResolveNoConfidentMatch(t *testing.T) {
	index := testIndex("Radiohead", "Pink Floyd")
	res := Resolve("Zzyzx", index, 80, 3)
	if res.Confident() {
		t.Fatalf("expected suggestions, got match %+v", res.Match)
	}
	if len(res.Suggestions) == 0 || len(res.Suggestions) > 3 {
		t.Fatalf("suggestion count = %d", len(res.Suggestions))
	}
	for _, s := range res.Suggestions {
		if s.Score >= 80 {
			t.Errorf("suggestion %q scored %d, should be below threshold", s.Entry.CanonicalName, s.Score)
		}
	}
}

func TestResolveExactMatch(t *testing.T) {
	index := testIndex("The Black Keys", "The Beatles")
	res := Resolve("Black Keys", index, 80, 3)
	if !res.Confident() {
		t.Fatal("expected confident match")
	}
	if res.Match.Entry.CanonicalName != "The Black Keys" {
		t.Errorf("match = %q", res.Match.Entry.CanonicalName)
	}
	if res.Match.Score != 100 {
		t.Errorf("score = %d, want 100 after article stripping", res.Match.Score)
	}
}

func TestResolveTokenOrderInsensitive(t *testing.T) {
	index := testIndex("The Black Keys")
	res := Resolve("Keys Black", index, 80, 3)
	if !res.Confident() {
		t.Fatalf("expected confident match, got %+v", res.Suggestions)
	}
	if res.Match.Score != 100 {
		t.Errorf("score = %d, want 100 for transposed tokens", res.Match.Score)
	}
}

func TestResolveDiacriticsFolded(t *testing.T) {
	index := testIndex("Björk")
	res := Resolve("Bjork", index, 80, 3)
	if !res.Confident() || res.Match.Score != 100 {
		t.Errorf("resolution = %+v", res)
	}
}

func TestResolveDeterministic(t *testing.T) {
	index := testIndex("Radiohead", "Pink Floyd", "Portishead", "Massive Attack")
	first := Resolve("Radohead", index, 101, 3)
	for i := 0; i < 5; i++ {
		again := Resolve("Radohead", index, 101, 3)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("resolution not deterministic:\nfirst %+v\nagain %+v", first, again)
		}
	}
}

func TestResolveSuggestionTiesAlphabetical(t *testing.T) {
	// Both entries are equally distant from the query.
	index := testIndex("Beta", "Alfa")
	res := Resolve("Zzzz", index, 101, 3)
	if res.Confident() {
		t.Fatal("threshold above 100 can never be met")
	}
	if len(res.Suggestions) != 2 {
		t.Fatalf("suggestion count = %d", len(res.Suggestions))
	}
	if res.Suggestions[0].Score == res.Suggestions[1].Score {
		if res.Suggestions[0].Entry.CanonicalName > res.Suggestions[1].Entry.CanonicalName {
			t.Errorf("tied suggestions not alphabetical: %+v", res.Suggestions)
		}
	}
}

func TestResolveEmptyIndex(t *testing.T) {
	res := Resolve("Radiohead", nil, 80, 3)
	if res.Confident() {
		t.Fatal("empty index cannot match")
	}
	if len(res.Suggestions) != 0 {
		t.Errorf("suggestions = %+v", res.Suggestions)
	}
}

func TestBuildIndexDropsEmptyNames(t *testing.T) {
	index := BuildIndex([]string{"Radiohead", "   ", "..."})
	if len(index) != 1 {
		t.Fatalf("index = %+v", index)
	}
	if index[0].NormalizedName != "radiohead" {
		t.Errorf("normalized = %q", index[0].NormalizedName)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		min, max  int
	}{
		{"identical", "radiohead", "radiohead", 100, 100},
		{"one edit", "radiohed", "radiohead", 80, 99},
		{"containment", "floyd", "pink floyd", 90, 100},
		{"disjoint", "zzyzx", "pink floyd", 0, 40},
		{"empty query", "", "radiohead", 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.query, tc.candidate)
			if got < tc.min || got > tc.max {
				t.Errorf("Score(%q, %q) = %d, want within [%d, %d]", tc.query, tc.candidate, got, tc.min, tc.max)
			}
		})
	}
}
