package membership

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/saulo-duarte/medprep-api/internal/config"
)

// ErrPayment wraps any refusal from the payment processor. Never
// retried here; a retry is a user-initiated resubmission.
var ErrPayment = errors.New("payment failed")

type ChargeResult struct {
	EventID string `json:"event_id"`
}

// Gateway is the payment collaborator: charge a plan against a
// credential, succeed with an external event id or fail with a reason.
type Gateway interface {
	Charge(ctx context.Context, customerRef string, plan Plan, credential string) (*ChargeResult, error)
}

type httpGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPGateway() Gateway {
	return &httpGateway{
		baseURL: os.Getenv("PAYMENT_API_URL"),
		apiKey:  os.Getenv("PAYMENT_API_KEY"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *httpGateway) Charge(ctx context.Context, customerRef string, plan Plan, credential string) (*ChargeResult, error) {
	log := config.WithContext(ctx)

	body, err := json.Marshal(map[string]string{
		"customer_ref": customerRef,
		"plan":         string(plan),
		"credential":   credential,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Falha ao chamar o processador de pagamento")
		return nil, fmt.Errorf("%w: %v", ErrPayment, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var failure struct {
			Reason string `json:"reason"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		log.Warnf("Cobrança recusada pelo processador: %s", failure.Reason)
		return nil, fmt.Errorf("%w: %s", ErrPayment, failure.Reason)
	}

	var result ChargeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: resposta inválida do processador", ErrPayment)
	}
	if result.EventID == "" {
		return nil, fmt.Errorf("%w: cobrança sem event_id", ErrPayment)
	}
	return &result, nil
}
