package chatbot

import (
	"strings"

	"github.com/vibesync/chatbot-engine/internal/textnorm"
)

// faqIntent is one canned question group with trigger phrases and
// per-language answers.
type faqIntent struct {
	name     string
	triggers []string
	answerVI string
	answerEN string
}

// faqIntents is checked in declaration order; the first trigger phrase found
// in the normalized prompt wins.
var faqIntents = []faqIntent{
	{
		name: "creator",
		triggers: []string{
			"ai tạo ra trang web này", "ai phát triển trang web này",
			"người làm ra trang web này là ai", "ai làm website này",
			"ai là lập trình viên", "developer là ai", "dev là ai",
		},
		answerVI: "🧑‍💻 Website này được phát triển bởi đội ngũ VibeSync – đam mê âm nhạc và công nghệ.",
		answerEN: "🧑‍💻 This website was developed by the VibeSync team – passionate about music and technology.",
	},
	{
		name: "purpose",
		triggers: []string{
			"trang web này dùng để làm gì", "mục đích của trang web này là gì",
			"website này dùng để làm gì", "tôi vào trang web này để làm gì",
			"chức năng của trang web", "trang web hoạt động thế nào",
		},
		answerVI: "🎧 VibeSync là nền tảng nghe nhạc thông minh, nơi bạn có thể tìm kiếm, nghe và khám phá playlist theo tâm trạng.",
		answerEN: "🎧 VibeSync is a smart music platform where you can search, listen, and explore playlists based on your mood.",
	},
	{
		name: "register",
		triggers: []string{
			"làm sao để đăng ký tài khoản", "cách đăng ký tài khoản", "tôi muốn tạo tài khoản",
			"đăng ký như thế nào", "đăng kí như thế nào", "đăng kí thế nào",
			"hướng dẫn đăng ký", "đăng ký ở đâu",
		},
		answerVI: "🔐 Bạn có thể tạo tài khoản bằng cách nhấn vào nút 'Đăng ký' ở góc trên cùng bên phải, sau đó điền thông tin.",
		answerEN: "🔐 You can create an account by clicking the 'Sign Up' button at the top right and filling in your details.",
	},
	{
		name: "free_music",
		triggers: []string{
			"tôi có thể nghe nhạc miễn phí không", "nghe nhạc có mất phí không",
			"website có miễn phí không", "nghe nhạc free không",
			"nghe nhạc không tốn tiền không", "có trả phí không",
		},
		answerVI: "✅ Hoàn toàn có thể! Tất cả playlist cơ bản đều miễn phí, không cần trả phí.",
		answerEN: "✅ Yes! All basic playlists are free, no subscription required.",
	},
	{
		name: "greeting",
		triggers: []string{
			"xin chào", "chào bạn", "hello", "hi", "chào buổi sáng",
			"chào buổi tối", "chào buổi trưa", "hey", "good morning",
			"good evening", "good afternoon", "hallo", "yo",
		},
		answerVI: "👋 Xin chào! Mình có thể giúp gì cho bạn hôm nay?",
		answerEN: "👋 Hello! How can I help you today?",
	},
}

// faqAnswer returns the canned answer for the first intent whose trigger
// phrase occurs in the normalized prompt. Triggers are normalized the same
// way as the prompt so accented phrases match, and compared on whole-token
// boundaries so a short trigger like "hi" cannot fire inside "nhiêu".
func faqAnswer(normPrompt string, language textnorm.Language) (string, bool) {
	padded := " " + normPrompt + " "
	for _, intent := range faqIntents {
		for _, trigger := range intent.triggers {
			t := textnorm.NormalizeLoose(trigger)
			if t != "" && strings.Contains(padded, " "+t+" ") {
				if language == textnorm.LangVietnamese {
					return intent.answerVI, true
				}
				return intent.answerEN, true
			}
		}
	}
	return "", false
}
