// Package estimator is the external calorie estimation collaborator. Free
// text, image and audio food submissions are delegated here; the service
// answers with a single calorie number that the ledger consumes identically
// to structured input.
package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	completionsURL = "https://api.openai.com/v1/chat/completions"
	model          = "gpt-4o-mini"
)

type Client struct {
	apiKey     string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type calorieEstimate struct {
	Calories float64 `json:"calories"`
}

func NewClient() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

const systemPrompt = `You are a nutrition assistant. The user describes a food
or meal in free text. Estimate the total calories (kcal) of the described
portion. Respond with a JSON object of the form {"calories": <number>} and
nothing else. Do not enclose the JSON in markdown code fences.`

// EstimateCalories asks the model for a single calorie number for a
// free-text food description.
func (c *Client) EstimateCalories(ctx context.Context, description string) (float64, error) {
	reqBody := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: description},
		},
		Temperature: 0.2,
		MaxTokens:   50,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return 0, fmt.Errorf("marshal estimator request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, bytes.NewBuffer(payload))
	if err != nil {
		return 0, fmt.Errorf("build estimator request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call estimator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("estimator returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return 0, fmt.Errorf("decode estimator response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return 0, fmt.Errorf("estimator returned no choices")
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	// Some models wrap JSON in code fences despite instructions.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var estimate calorieEstimate
	if err := json.Unmarshal([]byte(content), &estimate); err != nil {
		return 0, fmt.Errorf("parse calorie estimate %q: %w", content, err)
	}
	if estimate.Calories <= 0 {
		return 0, fmt.Errorf("estimator returned non-positive calories %v", estimate.Calories)
	}
	return estimate.Calories, nil
}
