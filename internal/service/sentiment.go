package service

import (
	"strings"

	"educhat-go/internal/model"
	"educhat-go/pkg/log"
)

// 情感词表是固定的，匹配按子串进行而非整词。
var (
	positiveWords = []string{"good", "great", "excellent", "thank", "thanks", "helpful", "love", "amazing"}
	negativeWords = []string{"bad", "poor", "terrible", "hate", "awful", "confused", "frustrated"}
)

// analyzeSentiment 用关键词计数启发式给消息打情感标签。
// 正向词命中数多于负向词则 positive，反之 negative，持平（含 0/0）为 neutral。
// 纯函数，除日志外无副作用；结果只被存储，不影响控制流。
func analyzeSentiment(text string) model.Sentiment {
	lower := strings.ToLower(text)

	positiveCount := 0
	for _, word := range positiveWords {
		if strings.Contains(lower, word) {
			positiveCount++
		}
	}
	negativeCount := 0
	for _, word := range negativeWords {
		if strings.Contains(lower, word) {
			negativeCount++
		}
	}

	sentiment := model.SentimentNeutral
	if positiveCount > negativeCount {
		sentiment = model.SentimentPositive
	} else if negativeCount > positiveCount {
		sentiment = model.SentimentNegative
	}

	log.Infof("[Sentiment] 检测结果: %s (positive=%d, negative=%d)", sentiment, positiveCount, negativeCount)
	return sentiment
}
