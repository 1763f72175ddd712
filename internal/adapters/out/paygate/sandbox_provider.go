// Package paygate contains payment provider adapters. SandboxProvider is the
// built-in gateway used in development and tests: it issues transaction
// references and settles every authorized charge immediately. A real gateway
// integration implements the same ports.PaymentProvider contract.
package paygate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/ports"

	"github.com/google/uuid"
)

// SandboxProvider is an in-process payment gateway. It remembers the
// references it issued; verifying an unknown reference is an error, matching
// how a real gateway rejects lookups of foreign transactions.
type SandboxProvider struct {
	baseURL string

	mu     sync.Mutex
	issued map[string]int64
}

// NewSandboxProvider creates a sandbox gateway. The base URL is where buyers
// would be redirected to authorize a charge.
func NewSandboxProvider(baseURL string) *SandboxProvider {
	return &SandboxProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		issued:  make(map[string]int64),
	}
}

// Initialize opens a payment attempt and returns its reference and
// authorization URL.
func (p *SandboxProvider) Initialize(
	_ context.Context, orderID kernel.UUID, amountUsd int64, paymentType order.PaymentType,
) (ports.PaymentInitiation, error) {
	if amountUsd <= 0 {
		return ports.PaymentInitiation{}, fmt.Errorf("sandbox provider: amount %d is not positive", amountUsd)
	}
	if err := paymentType.Validate(); err != nil {
		return ports.PaymentInitiation{}, err
	}

	ref := fmt.Sprintf("SBX-%s", strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:12])

	p.mu.Lock()
	p.issued[ref] = amountUsd
	p.mu.Unlock()

	return ports.PaymentInitiation{
		TransactionRef:   ref,
		AuthorizationURL: fmt.Sprintf("%s/authorize/%s?order=%s", p.baseURL, ref, orderID.String()),
	}, nil
}

// Verify reports a sandbox transaction as settled for the issued amount.
func (p *SandboxProvider) Verify(_ context.Context, transactionRef string) (ports.PaymentVerification, error) {
	p.mu.Lock()
	amount, ok := p.issued[transactionRef]
	p.mu.Unlock()

	if !ok {
		return ports.PaymentVerification{}, fmt.Errorf("sandbox provider: unknown transaction %q", transactionRef)
	}

	return ports.PaymentVerification{Settled: true, AmountUsd: amount}, nil
}
