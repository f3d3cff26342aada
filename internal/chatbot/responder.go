// Package chatbot implements the response cascade that turns a free-text
// music question into a Markdown answer.
package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vibesync/chatbot-engine/internal/cache"
	"github.com/vibesync/chatbot-engine/internal/catalog"
	"github.com/vibesync/chatbot-engine/internal/config"
	"github.com/vibesync/chatbot-engine/internal/observability"
	"github.com/vibesync/chatbot-engine/internal/textgen"
	"github.com/vibesync/chatbot-engine/internal/textnorm"
)

// invalidPromptAnswer is returned for empty or whitespace-only prompts.
const invalidPromptAnswer = "Xin hãy nhập câu hỏi hợp lệ."

// countKeywords trigger the song-count stage, checked on the lowercased
// raw prompt.
var countKeywords = []string{"bao nhiêu bài", "tổng số bài", "có bao nhiêu nhạc", "số lượng bài hát"}

// Result is the outcome of one cascade run.
type Result struct {
	Answer   string
	Language textnorm.Language
	Stage    string
}

// Responder runs the response cascade. A fresh catalog snapshot is built for
// every call so answers always reflect the current database contents.
type Responder struct {
	builder   *catalog.Builder
	holder    *catalog.Holder
	generator textgen.Generator // nil when no generator is configured
	cache     cache.Client     // nil or zero TTL disables answer caching
	cacheTTL  time.Duration
	cfg       config.ChatbotConfig
	logger    *observability.Logger
}

// Options configures optional Responder collaborators.
type Options struct {
	Generator textgen.Generator
	Cache     cache.Client
	CacheTTL  time.Duration
}

// New creates a Responder.
func New(builder *catalog.Builder, cfg config.ChatbotConfig, logger *observability.Logger, opts Options) *Responder {
	return &Responder{
		builder:   builder,
		holder:    catalog.NewHolder(),
		generator: opts.Generator,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		cfg:       cfg,
		logger:    logger.WithComponent("chatbot"),
	}
}

// Snapshot returns the most recently published catalog snapshot.
func (r *Responder) Snapshot() *catalog.Snapshot {
	return r.holder.Current()
}

// Answer runs the cascade for prompt and always returns a user-facing
// answer. No failure escapes: unhandled panics are converted into a
// localized error string.
func (r *Responder) Answer(ctx context.Context, prompt string) (res Result) {
	language := textnorm.DetectLanguage(prompt)
	res.Language = language

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Interface("panic", rec).Msg("unhandled failure in response cascade")
			res.Answer = fmt.Sprintf("⚠️ Đã xảy ra lỗi khi xử lý yêu cầu: %v", rec)
			res.Stage = "error"
		}
	}()

	if strings.TrimSpace(prompt) == "" {
		res.Answer = invalidPromptAnswer
		res.Stage = "validate"
		return res
	}

	snap := r.builder.Build(ctx)
	r.holder.Publish(snap)

	normPrompt := textnorm.NormalizeLoose(prompt)
	logger := r.logger.WithContext(ctx)
	logger.Info().Str("prompt", prompt).Str("language", string(language)).Msg("handling question")

	cacheKey := cache.AnswerKey(string(language), normPrompt)
	if answer, ok := r.cachedAnswer(ctx, cacheKey); ok {
		res.Answer = answer
		res.Stage = "cache"
		return res
	}

	answer, stage := r.cascade(ctx, prompt, normPrompt, snap, language)
	res.Answer = answer
	res.Stage = stage

	logger.Info().Str("stage", stage).Msg("question answered")
	r.storeAnswer(ctx, cacheKey, answer)
	return res
}

// cascade tries each stage in priority order and returns the first answer.
func (r *Responder) cascade(ctx context.Context, prompt, normPrompt string, snap *catalog.Snapshot, language textnorm.Language) (string, string) {
	if answer, ok := faqAnswer(normPrompt, language); ok {
		return answer, "faq"
	}

	if containsAny(strings.ToLower(prompt), countKeywords) {
		return fmt.Sprintf("🎧 Hệ thống hiện có tổng cộng %d bài hát.", len(snap.Songs)), "count"
	}

	if answer, ok := r.genreAnswer(prompt, snap, language); ok {
		return answer, "genre"
	}

	if answer, ok := r.quantityAnswer(ctx, prompt, snap); ok {
		return answer, "artist_songs"
	}

	if answer, ok := r.artistAnswer(ctx, prompt, snap); ok {
		return answer, "artist"
	}

	if answer, ok := r.songAnswer(ctx, prompt, snap, language); ok {
		return answer, "song"
	}

	if answer, ok := r.albumAnswer(ctx, prompt, snap, language); ok {
		return answer, "album"
	}

	if answer, ok := r.lyricAnswer(normPrompt, snap, language); ok {
		return answer, "lyrics"
	}

	if reply, err := r.generate(ctx, prompt); err == nil && reply != "" {
		return reply, "generator"
	} else if err != nil {
		r.logger.Error().Err(err).Msg("generator fallback failed")
	}

	if language == textnorm.LangVietnamese {
		return "😥 Không tìm thấy thông tin phù hợp. Vui lòng thử lại!", "fallback"
	}
	return "😥 No matching information found. Please try again!", "fallback"
}

// errNoGenerator marks cascade runs without a configured generator.
var errNoGenerator = fmt.Errorf("no generator configured")

func (r *Responder) generate(ctx context.Context, prompt string) (string, error) {
	if r.generator == nil {
		return "", errNoGenerator
	}
	return r.generator.Generate(ctx, prompt)
}

func (r *Responder) cachedAnswer(ctx context.Context, key string) (string, bool) {
	if r.cache == nil || r.cacheTTL <= 0 {
		return "", false
	}
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (r *Responder) storeAnswer(ctx context.Context, key, answer string) {
	if r.cache == nil || r.cacheTTL <= 0 || answer == "" {
		return
	}
	if err := r.cache.Set(ctx, key, []byte(answer), r.cacheTTL); err != nil {
		r.logger.Warn().Err(err).Msg("answer cache write failed")
	}
}
