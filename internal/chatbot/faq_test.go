package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vibesync/chatbot-engine/internal/textnorm"
)

func TestFAQAnswer(t *testing.T) {
	tests := []struct {
		name       string
		normPrompt string
		language   textnorm.Language
		want       string
		matched    bool
	}{
		{"greeting vi", "xin chao moi nguoi", textnorm.LangVietnamese, "👋 Xin chào! Mình có thể giúp gì cho bạn hôm nay?", true},
		{"greeting en word", "hello", textnorm.LangEnglish, "👋 Hello! How can I help you today?", true},
		{"creator", "ai tao ra trang web nay the", textnorm.LangVietnamese, "🧑‍💻 Website này được phát triển bởi đội ngũ VibeSync – đam mê âm nhạc và công nghệ.", true},
		{"short trigger needs word boundary", "co bao nhieu bai hat", textnorm.LangVietnamese, "", false},
		{"no match", "cho toi nghe nhac", textnorm.LangVietnamese, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := faqAnswer(tc.normPrompt, tc.language)
			assert.Equal(t, tc.matched, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
