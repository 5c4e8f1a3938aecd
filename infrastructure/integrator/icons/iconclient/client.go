package iconclient

//go:generate mockgen -source=client.go -destination=../mocks/client.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	icondomain "github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/icons/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnexpectedStatus indica resposta diferente de 200 do serviço de ícones
var ErrUnexpectedStatus = errors.New("status inesperado do serviço de ícones")

type Client interface {
	GetIcon(ctx context.Context, term string) (*icondomain.Icon, error)
}

type IconClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &IconClient{
		BaseURL:    strings.TrimRight(cfg.Icons.BaseURL, "/"),
		HTTPClient: &http.Client{Timeout: cfg.Icons.Timeout},
	}
}

// GetIcon consulta {base}/icons?query=<termo>
func (c *IconClient) GetIcon(ctx context.Context, term string) (*icondomain.Icon, error) {
	params := url.Values{}
	params.Add("query", term)

	reqURL := fmt.Sprintf("%s/icons?%s", c.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, errors.Wrapf(ErrUnexpectedStatus, "status: %s", resp.Status)
	}

	var icon icondomain.Icon
	if err := json.NewDecoder(resp.Body).Decode(&icon); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta")
	}

	return &icon, nil
}
