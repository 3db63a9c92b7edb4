/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package manager

import (
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	utils "github.com/wind-river/cobbler-deployment-manager/common"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
	"github.com/wind-river/cobbler-deployment-manager/platform"
)

const (
	// Environment variables that override the configured client options.
	BinaryKey   = "COBBLER_BINARY"
	EndpointKey = "COBBLER_API"
	DebugKey    = "COBBLER_DEBUG"
)

// ClientOptions defines the attributes required to reach the provisioning
// server.
type ClientOptions struct {
	// Binary is the path of the command line tool.
	Binary string

	// Endpoint is the URL of the XML-RPC query endpoint.
	Endpoint string

	// DryRun records and logs mutating commands without running them.
	DryRun bool

	// Debug logs every query request and response status.
	Debug bool
}

// GetClientOptions builds the client options from the loaded configuration.
// The configuration layer already honours COBBLER_BINARY and COBBLER_API.
func GetClientOptions() (ClientOptions, error) {
	options := ClientOptions{
		Binary:   utils.GetCobblerBinary(),
		Endpoint: utils.GetCobblerAPI(),
	}

	debug, err := strconv.ParseBool(os.Getenv(DebugKey))
	if err == nil && debug {
		options.Debug = true
	}

	if err := options.Validate(); err != nil {
		return ClientOptions{}, err
	}

	return options, nil
}

// Validate checks that the options describe a usable client.
func (in ClientOptions) Validate() error {
	if in.Binary == "" {
		return NewClientError(BinaryKey + " must be provided")
	}

	if in.Endpoint == "" {
		return NewClientError(EndpointKey + " must be provided")
	}

	u, err := url.Parse(in.Endpoint)
	if err != nil || u.Host == "" {
		return NewClientError(EndpointKey + " must be an absolute URL")
	}

	if !strings.HasPrefix(in.Endpoint, HTTPPrefix) && !strings.HasPrefix(in.Endpoint, HTTPSPrefix) {
		return NewClientError(EndpointKey + " must use http or https")
	}

	return nil
}

// BuildQueryClient builds the XML-RPC query client.
func BuildQueryClient(options ClientOptions) (platform.Querier, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	client := platform.NewXMLRPCClient(options.Endpoint)
	if options.Debug {
		// Debug is enabled so log all API requests/responses
		client.Transport = &LogRoundTripper{Rt: http.DefaultTransport}
	}

	return client, nil
}

// BuildCommandRunner builds the command runner.  Dry-run options produce a
// runner that only records commands.
func BuildCommandRunner(options ClientOptions) (common.CommandRunner, error) {
	if options.DryRun {
		return NewDryRunRunner(), nil
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	return NewExecRunner(options.Binary), nil
}

// LogRoundTripper logs every query request it forwards.
type LogRoundTripper struct {
	Rt http.RoundTripper
}

// RoundTrip implements the http.RoundTripper interface.
func (lrt *LogRoundTripper) RoundTrip(request *http.Request) (*http.Response, error) {
	log.Info("query request", "method", request.Method, "url", request.URL.String())

	response, err := lrt.Rt.RoundTrip(request)
	if err != nil {
		log.Info("query request failed", "url", request.URL.String(), "error", err.Error())
		return nil, err
	}

	log.Info("query response", "url", request.URL.String(), "status", response.Status)

	return response, nil
}
