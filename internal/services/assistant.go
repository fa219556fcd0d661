package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// fleetoPersona is the system prompt for the in-app assistant.
const fleetoPersona = `You are Flee, the Fleeto campus delivery assistant. ` +
	`You help students browse shops, track orders, and understand FleetoCoins ` +
	`and Fleeto Pro. Keep answers short, friendly and campus-relevant. ` +
	`If asked about anything outside food, grocery or medicine delivery, ` +
	`politely steer the conversation back to Fleeto.`

// AssistantService forwards user prompts to an OpenAI-compatible chat API
// with the Fleeto persona prepended.
type AssistantService struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

// NewAssistantService creates an AssistantService.
func NewAssistantService(apiURL, apiKey, model string) *AssistantService {
	return &AssistantService{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Chat sends the prompt and returns the assistant reply.
func (s *AssistantService) Chat(prompt string) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("assistant is not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: fleetoPersona},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Assistant] chat request failed: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Assistant] unexpected status: %d", resp.StatusCode)
		return "", fmt.Errorf("assistant api returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("assistant returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
