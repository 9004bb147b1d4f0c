// cmd/brasilviral/rewriter.go
package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const rewriteSystemPrompt = `Você é um jornalista brasileiro especializado em conteúdo viral. ` +
	`Reescreva a notícia com suas próprias palavras, mantendo todos os fatos. ` +
	`Use português do Brasil, tom envolvente e direto. ` +
	`Não use markdown. Separe os parágrafos com linhas em branco.`

// ChatCompleter is the slice of the OpenAI client the rewriter needs,
// so tests can inject a stub.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Rewriter turns a scraped article into original copy, via a language
// model when one is configured and a local paraphraser otherwise.
type Rewriter struct {
	client      ChatCompleter
	paraphraser *Paraphraser
	model       string
}

// NewRewriter builds a rewriter. A nil or empty API key disables the
// language model and every rewrite goes through the fallback.
func NewRewriter(apiKey string, rng *rand.Rand) *Rewriter {
	r := &Rewriter{
		paraphraser: NewParaphraser(rng),
		model:       openai.GPT3Dot5Turbo,
	}
	if apiKey != "" {
		r.client = openai.NewClient(apiKey)
	}
	return r
}

// NewRewriterWithClient is used by tests to supply a stub client.
func NewRewriterWithClient(client ChatCompleter, rng *rand.Rand) *Rewriter {
	return &Rewriter{
		client:      client,
		paraphraser: NewParaphraser(rng),
		model:       openai.GPT3Dot5Turbo,
	}
}

// Rewrite produces a rewritten article. It never fails: any model error
// falls back to the local paraphraser.
func (r *Rewriter) Rewrite(ctx context.Context, art Article) RewrittenArticle {
	out := RewrittenArticle{
		Article:          art,
		OriginalTitle:    art.Title,
		OriginalContent:  art.Content,
		RewriteTimestamp: time.Now(),
	}

	if r.client != nil {
		title, content, err := r.rewriteWithModel(ctx, art)
		if err == nil {
			out.Title = title
			out.Content = wrapParagraphs(content)
			out.Rewritten = true
			return out
		}
		GetLogger().Warning("Model rewrite failed, using local paraphraser: %v", err)
	}

	out.Title = r.paraphraser.RewriteTitle(art.Title)
	out.Content = wrapParagraphs(r.paraphraser.Rewrite(art.Content))
	out.Rewritten = false
	return out
}

func (r *Rewriter) rewriteWithModel(ctx context.Context, art Article) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	userPrompt := fmt.Sprintf("Título: %s\n\nNotícia:\n%s\n\nResponda com o novo título na primeira linha e o texto reescrito em seguida.", art.Title, art.Content)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: rewriteSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.8,
	})
	if err != nil {
		return "", "", NewError(ErrorKindExternalService, "REWRITE_001", "chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", NewError(ErrorKindExternalService, "REWRITE_002", "empty completion response", nil)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	title, content, ok := strings.Cut(text, "\n")
	if !ok || strings.TrimSpace(content) == "" {
		return "", "", NewError(ErrorKindExternalService, "REWRITE_002", "completion missing body", nil)
	}
	title = strings.Trim(strings.TrimSpace(title), `"`)
	title = strings.TrimPrefix(title, "Título: ")
	return title, strings.TrimSpace(content), nil
}

// wrapParagraphs turns blank-line separated text into <p> blocks.
func wrapParagraphs(text string) string {
	var out []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if strings.HasPrefix(para, "<p>") {
			out = append(out, para)
			continue
		}
		out = append(out, "<p>"+para+"</p>")
	}
	return strings.Join(out, "\n")
}
