package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const transcriptionPrompt = `You are a precise music document transcriber. Transcribe ALL visible text from this image EXACTLY as it appears, preserving:
- Every section label (e.g. "Verse:", "Chorus:", "Bridge:", "Pre Chorus:", etc.)
- Every tag or annotation (e.g. "//JOYFUL", "(3x)", "(Jesus...)")
- Every song title or header at the top
- Every chord or lyric line, in the correct order
- Empty lines between sections for spacing

Rules:
- Do NOT skip any line of text you can see.
- Do NOT add, invent, or summarize anything.
- Do NOT use Markdown formatting (no **, no ##, no bullets).
- Output ONLY the plain text transcription, nothing else.`

// geminiTranscriber transcribes sheet photos with a Gemini model. Calls are
// paced by limiter; there are no retries.
type geminiTranscriber struct {
	models  *genai.Models
	model   string
	limiter *rate.Limiter
}

func newGeminiTranscriber(ctx context.Context, apiKey, model string, rps float64) (*geminiTranscriber, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &geminiTranscriber{
		models:  client.Models,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

func (g *geminiTranscriber) Transcribe(ctx context.Context, image []byte, mimeType string) (string, error) {
	err := g.limiter.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(transcriptionPrompt),
		}, genai.RoleUser),
	}

	slog.Debug("transcription request", "model", g.model, "mime_type", mimeType, "bytes", len(image))

	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return cleanTranscription(resp.Text()), nil
}

// cleanTranscription strips the bold markers models add despite being told
// not to.
func cleanTranscription(text string) string {
	return strings.ReplaceAll(text, "**", "")
}
