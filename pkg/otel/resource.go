package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
)

const serviceNamespace = "safecall"

// ServiceAttributes 附加到所有 span 与指标上的服务标识
func ServiceAttributes(serviceName, serviceVersion, environment string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("service.namespace", serviceNamespace),
		attribute.String("deployment.environment", environment),
	}
}

func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(ServiceAttributes(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)...),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithOSType(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
