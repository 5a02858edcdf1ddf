package exporter

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
)

// createOTELResource creates an OTEL resource from configured attributes.
// host.name is set from host unless configured explicitly.
func createOTELResource(ctx context.Context, host string, resourceAttrs map[string]string) (*resource.Resource, error) {
	keys := make([]string, 0, len(resourceAttrs))
	for k := range resourceAttrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]attribute.KeyValue, 0, len(keys)+1)
	if _, ok := resourceAttrs["host.name"]; !ok && host != "" {
		attrs = append(attrs, attribute.String("host.name", host))
	}
	for _, k := range keys {
		attrs = append(attrs, attribute.String(k, resourceAttrs[k]))
	}

	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return res, nil
}
