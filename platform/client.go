/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package platform

import (
	"context"
	"net/http"

	"github.com/kolo/xmlrpc"
	perrors "github.com/pkg/errors"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

var logPlatform = log.Log.WithName("platform")

// DefaultEndpoint is the query endpoint of a provisioning server running on
// the local host.
const DefaultEndpoint = "http://127.0.0.1/cobbler_api"

// Record is a single raw entity as returned by the query endpoint.
type Record map[string]interface{}

// Querier defines the interface to the bulk read endpoint of the
// provisioning server.
type Querier interface {
	// Query returns every entity of the requested kind.
	Query(ctx context.Context, kind v1.Kind) ([]Record, error)
}

// Methods used to list all entities of each kind.
var queryMethods = map[v1.Kind]string{
	v1.KindProfile: "get_profiles",
	v1.KindSystem:  "get_systems",
}

// XMLRPCClient implements the Querier interface against the XML-RPC API of
// the provisioning server.
type XMLRPCClient struct {
	Endpoint  string
	Transport http.RoundTripper
}

// NewXMLRPCClient returns a query client for the specified endpoint.  The
// default endpoint is used if none is provided.
func NewXMLRPCClient(endpoint string) *XMLRPCClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &XMLRPCClient{Endpoint: endpoint}
}

// Query issues a single bulk query for the requested kind.  Any transport or
// protocol failure is reported as a TransportError and is not retried.
func (c *XMLRPCClient) Query(ctx context.Context, kind v1.Kind) ([]Record, error) {
	method, ok := queryMethods[kind]
	if !ok {
		return nil, perrors.Errorf("unsupported entity kind: %s", kind)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := xmlrpc.NewClient(c.Endpoint, c.Transport)
	if err != nil {
		return nil, common.NewTransportError(c.Endpoint, err)
	}
	defer client.Close()

	logPlatform.V(2).Info("querying entities", "kind", kind, "method", method)

	var reply []interface{}
	err = client.Call(method, nil, &reply)
	if err != nil {
		return nil, common.NewTransportError(c.Endpoint, err)
	}

	result := make([]Record, 0, len(reply))
	for i, item := range reply {
		record, ok := item.(map[string]interface{})
		if !ok {
			msg := perrors.Errorf("unexpected %s record type at index %d: %T", kind, i, item)
			return nil, common.NewTransportError(c.Endpoint, msg)
		}
		result = append(result, record)
	}

	return result, nil
}
