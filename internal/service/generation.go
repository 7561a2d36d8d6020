package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pantrychef/backend/internal/types"
)

// RecipeGenerator turns a list of ingredients into a structured draft
// recipe. The draft is never persisted by the generator.
type RecipeGenerator interface {
	Generate(ctx context.Context, ingredients []string) (*types.RecipeDraft, error)
}

// maxIngredientLen caps each ingredient line sent upstream.
const maxIngredientLen = 100

// disallowedChars matches everything outside the conservative allow-list of
// word characters, whitespace, comma, period and hyphen. Anything else is
// stripped before the text reaches the third-party API.
var disallowedChars = regexp.MustCompile(`[^\w\s,.\-]`)

// LLMService generates recipes through the DeepSeek chat completions API.
type LLMService struct {
	apiKey string
	apiURL string
	client *http.Client
	log    *logrus.Logger
}

var _ RecipeGenerator = (*LLMService)(nil)

// NewLLMService creates a new LLMService instance. The API key comes from
// DEEPSEEK_API_KEY or a file named by DEEPSEEK_API_KEY_FILE.
func NewLLMService(log *logrus.Logger) (*LLMService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}, nil
}

// chatMessage is a message in the chat completion request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is a request to the chat completions API.
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

const generationSystemPrompt = `You are a professional chef. Given a list of ingredients, respond with a recipe in JSON with this exact structure:
{
    "title": "Recipe title",
    "ingredients": [
        "2 cups flour",
        "1 cup sugar"
    ],
    "preparation_steps": [
        "Mix the dry ingredients",
        "Bake at 350F for 30 minutes"
    ]
}
Use every listed ingredient. The title must be a non-empty string and both lists must be non-empty.`

// Generate sanitizes the ingredient list, calls the generation API once
// and parses the reply into a draft. Any transport failure, non-200
// status or unparseable payload surfaces as ErrGenerationUnavailable.
// There is no internal retry.
func (s *LLMService) Generate(ctx context.Context, ingredients []string) (*types.RecipeDraft, error) {
	sanitized := sanitizeIngredients(ingredients)

	reqBody := chatRequest{
		Model: "deepseek-chat",
		Messages: []chatMessage{
			{Role: "system", Content: generationSystemPrompt},
			{Role: "user", Content: "Create a recipe using these ingredients: " + strings.Join(sanitized, ", ")},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.9,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.WithError(err).Warn("generation request failed")
		return nil, ErrGenerationUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.WithField("status", resp.StatusCode).Warn("generation API returned non-200")
		return nil, ErrGenerationUnavailable
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.log.WithError(err).Warn("failed to decode generation response")
		return nil, ErrGenerationUnavailable
	}
	if len(result.Choices) == 0 {
		s.log.Warn("generation response contained no choices")
		return nil, ErrGenerationUnavailable
	}

	var draft types.RecipeDraft
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &draft); err != nil {
		s.log.WithError(err).Warn("failed to parse generated recipe")
		return nil, ErrGenerationUnavailable
	}
	if draft.Title == "" || len(draft.Ingredients) == 0 || len(draft.PreparationSteps) == 0 {
		s.log.Warn("generated recipe was incomplete")
		return nil, ErrGenerationUnavailable
	}

	return &draft, nil
}

// sanitizeIngredients runs before every dispatch, with no exception for
// short inputs: trim, truncate to the length cap, then strip characters
// outside the allow-list.
func sanitizeIngredients(ingredients []string) []string {
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		ing = strings.TrimSpace(ing)
		if runes := []rune(ing); len(runes) > maxIngredientLen {
			ing = string(runes[:maxIngredientLen])
		}
		ing = disallowedChars.ReplaceAllString(ing, "")
		out = append(out, ing)
	}
	return out
}
