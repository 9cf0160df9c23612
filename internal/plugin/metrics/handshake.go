// Package metrics runs cluster metric providers out of process over the
// go-plugin net/rpc protocol.
package metrics

import (
	"github.com/hashicorp/go-plugin"
)

// ProtocolVersion must match exactly between host and plugin.
const ProtocolVersion = 1

// PluginName is the name the provider is dispensed under.
const PluginName = "metrics"

// Handshake is the go-plugin handshake shared by host and plugins.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  ProtocolVersion,
	MagicCookieKey:   "CLUSTERCOLOUR_PLUGIN",
	MagicCookieValue: "cluster_metrics",
}

// Serve runs p as a plugin process. It does not return.
func Serve(p Provider) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &ProviderRPC{Impl: p},
		},
	})
}
