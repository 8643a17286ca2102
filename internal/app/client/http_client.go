package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/exp/slog"

	"closeouts/internal/app/client/config"
	"closeouts/internal/domain/closeout"
)

var (
	// ErrInvalidPayload тело ответа не является JSON (например, HTML-страница ошибки прокси).
	ErrInvalidPayload = errors.New("invalid response payload")
	// ErrSyncRejected бэкенд ответил ok=false на запрос синхронизации дня.
	ErrSyncRejected = errors.New("sync rejected by backend")
)

// StatusError ошибка, возвращённая сервером в конверте {error}.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
	}
	return fmt.Sprintf("ошибка сервера: %s", e.Message)
}

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	// Определяем протокол
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpClient{
		client:    client,
		log:       log.With("component", "http_client"),
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "Closeouts-Client/1.0",
	}
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) ListCloseouts(ctx context.Context) ([]closeout.Record, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/closeouts", nil)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		Closeouts []map[string]any `json:"closeouts"`
	}
	if err := h.parseResponse(resp, &listResp); err != nil {
		return nil, err
	}

	return closeout.DecodeRecords(listResp.Closeouts), nil
}

func (h *httpClient) ListVenues(ctx context.Context) ([]closeout.Venue, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/venues", nil)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		Venues []map[string]any `json:"venues"`
	}
	if err := h.parseResponse(resp, &listResp); err != nil {
		return nil, err
	}

	return closeout.DecodeVenues(listResp.Venues), nil
}

func (h *httpClient) ListSaleCenters(ctx context.Context) ([]closeout.SaleCenter, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/sale-centers", nil)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		SaleCenters []map[string]any `json:"saleCenters"`
	}
	if err := h.parseResponse(resp, &listResp); err != nil {
		return nil, err
	}

	return closeout.DecodeSaleCenters(listResp.SaleCenters), nil
}

func (h *httpClient) CreateCloseout(ctx context.Context, rec closeout.Record) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/closeouts", rec)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// UpdateCloseout заменяет запись целиком; ключ берётся из PK/SK записи.
func (h *httpClient) UpdateCloseout(ctx context.Context, rec closeout.Record) error {
	resp, err := h.doRequest(ctx, http.MethodPut, "/closeouts", rec)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) DeleteCloseout(ctx context.Context, key closeout.Key) error {
	q := url.Values{}
	q.Set("PK", key.PartitionKey)
	q.Set("SK", key.SortKey)

	resp, err := h.doRequest(ctx, http.MethodDelete, "/closeouts?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// SyncDay запускает синхронизацию одного дня с POS.
func (h *httpClient) SyncDay(ctx context.Context, businessDay string) error {
	req := struct {
		BusinessDay string `json:"businessDay"`
	}{BusinessDay: businessDay}

	resp, err := h.doRequest(ctx, http.MethodPost, "/closeouts/sync", req)
	if err != nil {
		return err
	}

	var syncResp struct {
		OK bool `json:"ok"`
	}
	if err := h.parseResponse(resp, &syncResp); err != nil {
		return err
	}
	if !syncResp.OK {
		return fmt.Errorf("%w: %s", ErrSyncRejected, businessDay)
	}
	return nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

// parseResponse разбирает тело ответа. Ответ с не-JSON телом превращается
// в ErrInvalidPayload, статус >= 400 в *StatusError.
func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			return &StatusError{Status: resp.StatusCode, Message: errResp.Error}
		}
		return fmt.Errorf("%w: статус %d", ErrInvalidPayload, resp.StatusCode)
	}

	if len(bytes.TrimSpace(body)) > 0 && !json.Valid(body) {
		return fmt.Errorf("%w: статус %d", ErrInvalidPayload, resp.StatusCode)
	}

	if result != nil {
		if len(bytes.TrimSpace(body)) == 0 {
			return fmt.Errorf("%w: пустой ответ", ErrInvalidPayload)
		}
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}

	return nil
}
