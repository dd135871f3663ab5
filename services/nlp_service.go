package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const fallbackAnswer = "Sorry, I'm having trouble processing your question right now."

type QuestionRequest struct {
	Question string `json:"question"`
}

type AnswerResponse struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// NLPService proxies chatbot questions to the NLP service. Any transport or
// decode failure degrades to a fixed fallback answer instead of an error;
// the chatbot endpoint never fails because the model backend is down.
// Successful answers are cached in redis so repeated questions skip the
// model round trip.
type NLPService struct {
	serviceURL string
	client     *http.Client
	cache      *redis.Client
	cacheTTL   time.Duration
}

func NewNLPService(serviceURL string, cache *redis.Client, cacheTTL time.Duration) *NLPService {
	return &NLPService{
		serviceURL: serviceURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

func (s *NLPService) GetAnswer(ctx context.Context, request *QuestionRequest) *AnswerResponse {
	cacheKey := answerCacheKey(request.Question)

	if cached := s.cachedAnswer(ctx, cacheKey); cached != nil {
		return cached
	}

	answer, err := s.fetchAnswer(ctx, request)
	if err != nil {
		log.Printf("NLP service request failed: %v", err)
		return &AnswerResponse{Answer: fallbackAnswer, Confidence: 0.0}
	}

	s.storeAnswer(ctx, cacheKey, answer)
	return answer
}

func (s *NLPService) fetchAnswer(ctx context.Context, request *QuestionRequest) (*AnswerResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.serviceURL+"/answer", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nlp service returned status %d", resp.StatusCode)
	}

	var answer AnswerResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, err
	}

	return &answer, nil
}

func (s *NLPService) cachedAnswer(ctx context.Context, key string) *AnswerResponse {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Answer cache read failed: %v", err)
		}
		return nil
	}

	var answer AnswerResponse
	if err := json.Unmarshal(data, &answer); err != nil {
		log.Printf("Answer cache entry corrupt, ignoring: %v", err)
		return nil
	}
	return &answer
}

func (s *NLPService) storeAnswer(ctx context.Context, key string, answer *AnswerResponse) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(answer)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		log.Printf("Answer cache write failed: %v", err)
	}
}

func answerCacheKey(question string) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	return "chatbot:answer:" + normalized
}

// Topics returns the fixed list of help topics shown to the chatbot user.
func (s *NLPService) Topics() []string {
	return []string{
		"Safety & Compliance",
		"Returns & Refunds",
		"Appointments & Scheduling",
		"Medication & Prescriptions",
		"Billing & Insurance",
		"Account & Privacy",
	}
}
