package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ReniecData is the subset of the RENIEC padron returned by the lookup API.
type ReniecData struct {
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellidoPaterno"`
	ApellidoMaterno string `json:"apellidoMaterno"`
	NumeroDocumento string `json:"numeroDocumento"`
}

// ReniecClient resolves a DNI to the registered person's names through an
// external lookup API. Failures are soft: client creation proceeds with the
// submitted names when RENIEC is unreachable.
type ReniecClient struct {
	apiURL     string
	token      string
	httpClient *http.Client
}

func NewReniecClient(apiURL, token string) *ReniecClient {
	return &ReniecClient{
		apiURL:     apiURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Consultar fetches the padron entry for a DNI. Returns (nil, nil) when the
// DNI is not in the padron (API 404), an error on any transport failure.
func (c *ReniecClient) Consultar(ctx context.Context, dni string) (*ReniecData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?numero="+dni, nil)
	if err != nil {
		return nil, fmt.Errorf("reniec: create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reniec: servicio no disponible: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("reniec: respuesta %d", resp.StatusCode)
	}

	var data ReniecData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("reniec: decode response: %w", err)
	}
	return &data, nil
}
