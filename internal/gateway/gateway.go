// Package gateway links local franchise records to customers of the external
// payment gateway. Linking is best effort: a failure is recorded on the local
// entity and never undoes the local write.
package gateway

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/observability"
)

var tracer = otel.Tracer("cardly/gateway")

type LinkState string

const (
	LinkUnlinked LinkState = "UNLINKED"
	LinkLinked   LinkState = "LINKED"
	LinkFailed   LinkState = "LINK_FAILED"
)

// Linkage is the state of an entity's counterpart in the payment gateway.
type Linkage struct {
	State      LinkState
	ExternalID string
	Reason     string
}

func Unlinked() Linkage { return Linkage{State: LinkUnlinked} }

func Linked(externalID string) Linkage {
	return Linkage{State: LinkLinked, ExternalID: externalID}
}

func Failed(reason string) Linkage {
	return Linkage{State: LinkFailed, Reason: reason}
}

// Customer is the gateway-side view of a franchisee or establishment.
type Customer struct {
	Name              string
	Document          string
	ExternalReference string
}

type Client interface {
	CreateCustomer(ctx context.Context, c Customer) (string, error)
}

// Linker calls the gateway outside of any database transaction.
type Linker struct {
	client  Client
	timeout time.Duration
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewLinker returns a Linker. A nil client leaves every entity Unlinked.
func NewLinker(client Client, timeout time.Duration, metrics *observability.Metrics, logger *zap.Logger) *Linker {
	return &Linker{client: client, timeout: timeout, metrics: metrics, logger: logger}
}

func (l *Linker) Link(ctx context.Context, c Customer) Linkage {
	if l == nil || l.client == nil {
		return Unlinked()
	}

	ctx, span := tracer.Start(ctx, "gateway.Link",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("external_reference", c.ExternalReference)),
	)
	defer span.End()

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	id, err := l.client.CreateCustomer(ctx, c)
	if err != nil {
		l.logger.Warn("gateway link failed",
			zap.String("external_reference", c.ExternalReference),
			zap.Error(err),
		)
		l.metrics.IncrGatewayError("create_customer")
		l.metrics.IncrGatewayLink(string(LinkFailed))

		return Failed(err.Error())
	}

	l.metrics.IncrGatewayLink(string(LinkLinked))

	return Linked(id)
}
