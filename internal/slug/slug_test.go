package slug

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Game Of Life", "game-of-life"},
		{"Hello, World!", "hello-world"},
		{"already-slugged", "already-slugged"},
		{"  spaces  everywhere  ", "spaces-everywhere"},
		{"C++ & Go", "c-go"},
		{"MiXeD CaSe 123", "mixed-case-123"},
		{"___", ""},
	}
	for _, tc := range cases {
		if got := Make(tc.in); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFromPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"posts/Game Of Life.md", "posts/game-of-life"},
		{"gol.md", "gol"},
		{"Notes/2024/Year In Review.md", "notes/2024/year-in-review"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := FromPath(tc.in); got != tc.want {
			t.Errorf("FromPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDedup_SuffixesRepeats(t *testing.T) {
	d := NewDedup()
	got := []string{
		d.Take("overview"),
		d.Take("overview"),
		d.Take("details"),
		d.Take("overview"),
	}
	want := []string{"overview", "overview-1", "details", "overview-2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("take %d = %q, want %q", i, got[i], want[i])
		}
	}
}
