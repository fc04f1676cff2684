package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSelectedPet получает выбранного питомца пользователя
func (c *Client) GetSelectedPet(ctx context.Context, userID int64) (*Pet, error) {
	url := fmt.Sprintf("%s/internal/users/%d/pets/selected", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrPetNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var pet Pet
	if err := json.NewDecoder(resp.Body).Decode(&pet); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &pet, nil
}

// GetPet получает питомца пользователя по ID
func (c *Client) GetPet(ctx context.Context, userID, petID int64) (*Pet, error) {
	url := fmt.Sprintf("%s/internal/users/%d/pets/%d", c.baseURL, userID, petID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user or pet ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrPetNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var pet Pet
	if err := json.NewDecoder(resp.Body).Decode(&pet); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &pet, nil
}

// GetPetWithGracefulDegradation получает питомца пользователя с graceful degradation.
// При недоступности UserService возвращает ErrServiceDegraded - приём
// создаётся без денормализованных данных питомца.
func (c *Client) GetPetWithGracefulDegradation(ctx context.Context, userID, petID int64) (*Pet, error) {
	c.log.Info("Fetching pet id=%d for user_id=%d", petID, userID)

	pet, err := c.GetPet(ctx, userID, petID)
	if err != nil {
		// Бизнес-ошибку (питомец не найден у пользователя) пробрасываем дальше
		if err == ErrPetNotFound {
			c.log.Info("Pet id=%d not found for user_id=%d", petID, userID)
			return nil, err
		}

		c.log.Error("UserService unavailable, applying graceful degradation for user_id=%d pet_id=%d: %v",
			userID, petID, err)
		return nil, fmt.Errorf("%w: user_id=%d, pet_id=%d, error=%v", ErrServiceDegraded, userID, petID, err)
	}

	c.log.Info("Successfully fetched pet id=%d for user_id=%d, species=%s", petID, userID, pet.Species)
	return pet, nil
}

// GetSelectedPetWithGracefulDegradation получает выбранного питомца с graceful degradation.
// При недоступности UserService возвращает ErrServiceDegraded - приём
// создаётся без денормализованных данных питомца.
func (c *Client) GetSelectedPetWithGracefulDegradation(ctx context.Context, userID int64) (*Pet, error) {
	c.log.Info("Fetching selected pet for user_id=%d", userID)

	pet, err := c.GetSelectedPet(ctx, userID)
	if err != nil {
		// Бизнес-ошибку (нет выбранного питомца) пробрасываем дальше
		if err == ErrPetNotFound {
			c.log.Info("No selected pet found for user_id=%d", userID)
			return nil, err
		}

		// Для остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("UserService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	c.log.Info("Successfully fetched pet for user_id=%d, species=%s", userID, pet.Species)
	return pet, nil
}
