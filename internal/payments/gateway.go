package payments

import (
	"context"

	"aerobook/internal/shared/apperrors"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// Customer is the contact detail set passed to the hosted payment page.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Gateway is the external payment boundary. Both calls are fallible,
// non-idempotent remote calls; failures surface to the caller and retries
// are the caller's responsibility.
type Gateway interface {
	CreateTransaction(ctx context.Context, orderID string, amount float64, customer Customer) (string, error)
	CancelTransaction(ctx context.Context, orderID string) error
}

type midtransGateway struct {
	snap snap.Client
	core coreapi.Client
}

// NewMidtransGateway creates the Midtrans-backed Gateway implementation.
func NewMidtransGateway(serverKey string, production bool) Gateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	gw := &midtransGateway{}
	gw.snap.New(serverKey, env)
	gw.core.New(serverKey, env)
	return gw
}

// CreateTransaction creates a hosted snap transaction and returns its token.
func (g *midtransGateway) CreateTransaction(ctx context.Context, orderID string, amount float64, customer Customer) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
		},
	}

	resp, err := g.snap.CreateTransaction(req)
	if err != nil {
		return "", apperrors.Upstream("payment gateway transaction creation failed", err)
	}
	return resp.Token, nil
}

// CancelTransaction cancels the hosted transaction for a user-initiated
// cancellation.
func (g *midtransGateway) CancelTransaction(ctx context.Context, orderID string) error {
	_, err := g.core.CancelTransaction(orderID)
	if err != nil {
		return apperrors.Upstream("payment gateway transaction cancel failed", err)
	}
	return nil
}
