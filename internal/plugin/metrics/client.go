package metrics

import (
	"fmt"
	"math"
	"os/exec"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/clustercolour/internal/cluster"
	"github.com/jmylchreest/clustercolour/internal/colour"
)

// Client owns a running plugin process.
type Client struct {
	path     string
	client   *plugin.Client
	provider Provider
	logger   hclog.Logger
}

// Launch starts the plugin binary at path and connects to its provider.
func Launch(path string, logger hclog.Logger) (*Client, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("plugin")

	pc := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &ProviderRPC{},
		},
		Cmd:              exec.Command(path), // #nosec G204 - plugin path supplied by the user
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           logger,
	})

	rpcClient, err := pc.Client()
	if err != nil {
		pc.Kill()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(PluginName)
	if err != nil {
		pc.Kill()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	provider, ok := raw.(Provider)
	if !ok {
		pc.Kill()
		return nil, fmt.Errorf("plugin %s does not provide metrics", path)
	}

	logger.Debug("metric plugin started", "path", path)
	return &Client{path: path, client: pc, provider: provider, logger: logger}, nil
}

// Provider returns the remote provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// Metrics returns the plugin's metrics, prefetched for ids.
func (c *Client) Metrics(ids []cluster.ID) (cluster.Metrics, error) {
	return Adapt(c.provider, ids, c.logger)
}

// Close stops the plugin process.
func (c *Client) Close() {
	if c.client != nil {
		c.client.Kill()
		c.logger.Debug("metric plugin stopped", "path", c.path)
	}
}

// Adapt turns a provider into cluster metrics. Every metric is computed for
// ids in one call; other ids are computed on demand. A failed computation is
// logged and reads as NaN, which the selector treats as missing.
func Adapt(p Provider, ids []cluster.ID, logger hclog.Logger) (cluster.Metrics, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	names, err := p.Names()
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}

	out := make(cluster.Metrics, len(names))
	for _, name := range names {
		m := &metric{name: name, provider: p, logger: logger, cache: make(map[cluster.ID]float64, len(ids))}
		if len(ids) > 0 {
			values, err := p.Compute(name, ids)
			if err != nil {
				return nil, fmt.Errorf("failed to compute metric %q: %w", name, err)
			}
			if len(values) != len(ids) {
				return nil, fmt.Errorf("metric %q: %w", name,
					&colour.ShapeError{What: "metric values", Got: len(values), Want: len(ids)})
			}
			for i, id := range ids {
				m.cache[id] = values[i]
			}
		}
		out[name] = m.value
	}
	return out, nil
}

type metric struct {
	name     string
	provider Provider
	logger   hclog.Logger

	mu    sync.Mutex
	cache map[cluster.ID]float64
}

func (m *metric) value(id cluster.ID) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.cache[id]; ok {
		return v
	}
	values, err := m.provider.Compute(m.name, []cluster.ID{id})
	if err != nil || len(values) != 1 {
		m.logger.Warn("metric unavailable", "metric", m.name, "cluster", id, "error", err)
		return math.NaN()
	}
	m.cache[id] = values[0]
	return values[0]
}
