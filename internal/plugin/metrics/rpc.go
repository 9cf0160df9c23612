package metrics

import (
	"net/rpc"

	"github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/clustercolour/internal/cluster"
)

// Provider computes named per-cluster metrics.
type Provider interface {
	// Names lists the metrics the provider can compute.
	Names() ([]string, error)

	// Compute returns one value per id, NaN where the metric is undefined.
	Compute(name string, ids []cluster.ID) ([]float64, error)
}

// ProviderRPC implements the go-plugin Plugin interface for metric providers.
type ProviderRPC struct {
	plugin.Plugin
	Impl Provider
}

// Server returns an RPC server for this plugin.
func (p *ProviderRPC) Server(*plugin.MuxBroker) (any, error) {
	return &ProviderRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *ProviderRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ProviderRPCClient{client: c}, nil
}

// ComputeArgs are the arguments of the Compute call.
type ComputeArgs struct {
	Name string
	IDs  []cluster.ID
}

// ProviderRPCServer is the RPC server implementation for metric providers.
type ProviderRPCServer struct {
	Impl Provider
}

// Names implements the RPC method for listing metrics.
func (s *ProviderRPCServer) Names(_ any, resp *[]string) error {
	names, err := s.Impl.Names()
	if err != nil {
		return err
	}
	*resp = names
	return nil
}

// Compute implements the RPC method for computing a metric.
func (s *ProviderRPCServer) Compute(args ComputeArgs, resp *[]float64) error {
	values, err := s.Impl.Compute(args.Name, args.IDs)
	if err != nil {
		return err
	}
	*resp = values
	return nil
}

// ProviderRPCClient is the RPC client implementation for metric providers.
type ProviderRPCClient struct {
	client *rpc.Client
}

// Names calls the remote Names method.
func (c *ProviderRPCClient) Names() ([]string, error) {
	var names []string
	err := c.client.Call("Plugin.Names", new(any), &names)
	return names, err
}

// Compute calls the remote Compute method.
func (c *ProviderRPCClient) Compute(name string, ids []cluster.ID) ([]float64, error) {
	var values []float64
	err := c.client.Call("Plugin.Compute", ComputeArgs{Name: name, IDs: ids}, &values)
	return values, err
}
