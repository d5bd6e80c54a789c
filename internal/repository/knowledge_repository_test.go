package repository

import "testing"

func TestLikeEscaper(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"普通文本不变", "machine learning", "machine learning"},
		{"百分号转义", "100% sure", `100\% sure`},
		{"下划线转义", "snake_case", `snake\_case`},
		{"反斜杠先转义", `path\to`, `path\\to`},
		{"组合", `a%b_c\d`, `a\%b\_c\\d`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := likeEscaper.Replace(tt.query); got != tt.want {
				t.Errorf("likeEscaper.Replace(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}
