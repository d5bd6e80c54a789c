package service

import (
	"testing"

	"educhat-go/internal/model"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Sentiment
	}{
		{"正向消息", "great, thanks!", model.SentimentPositive},
		{"负向消息", "this is terrible and awful", model.SentimentNegative},
		{"中性消息", "please explain photosynthesis", model.SentimentNeutral},
		{"正负持平", "good but bad", model.SentimentNeutral},
		{"大小写不敏感", "GREAT explanation, THANKS", model.SentimentPositive},
		{"子串匹配", "goodness me", model.SentimentPositive},
		{"空消息", "", model.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzeSentiment(tt.text); got != tt.want {
				t.Errorf("analyzeSentiment(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}
