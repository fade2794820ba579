// Package health builds a diagnostic snapshot of the chatwidget setup.
package health

import "time"

// Options selects what Collect inspects.
type Options struct {
	ConfigPath string
	Endpoint   string
	CachePath  string // empty when the cache is disabled
	Probe      bool   // dial the endpoint host
	Timeout    time.Duration
}

func (o Options) normalize() Options {
	if o.Timeout <= 0 {
		o.Timeout = 3 * time.Second
	}
	return o
}

// Snapshot is the result of Collect.
type Snapshot struct {
	Status    string        `json:"status" yaml:"status"`
	Runtime   RuntimeInfo   `json:"runtime" yaml:"runtime"`
	Memory    MemoryInfo    `json:"memory" yaml:"memory"`
	Config    ConfigInfo    `json:"config" yaml:"config"`
	Endpoint  *EndpointInfo `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Cache     *CacheInfo    `json:"cache,omitempty" yaml:"cache,omitempty"`
	Timestamp string        `json:"timestamp" yaml:"timestamp"`
}

type RuntimeInfo struct {
	Version string `json:"version" yaml:"version"`
	OS      string `json:"os" yaml:"os"`
	Arch    string `json:"arch" yaml:"arch"`
	CPUs    int    `json:"cpus" yaml:"cpus"`
}

type MemoryInfo struct {
	AllocMB float64 `json:"allocMB" yaml:"allocMB"`
	SysMB   float64 `json:"sysMB" yaml:"sysMB"`
	NumGC   uint32  `json:"numGC" yaml:"numGC"`
}

type ConfigInfo struct {
	Path   string `json:"path" yaml:"path"`
	Exists bool   `json:"exists" yaml:"exists"`
}

// EndpointInfo describes the chat-reply service address. Reachable is only
// set when the host was dialed.
type EndpointInfo struct {
	URL       string `json:"url" yaml:"url"`
	Host      string `json:"host,omitempty" yaml:"host,omitempty"`
	Reachable *bool  `json:"reachable,omitempty" yaml:"reachable,omitempty"`
	LatencyMS int64  `json:"latencyMS,omitempty" yaml:"latencyMS,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

type CacheInfo struct {
	Path          string `json:"path" yaml:"path"`
	Exists        bool   `json:"exists" yaml:"exists"`
	FileSizeBytes int64  `json:"fileSizeBytes,omitempty" yaml:"fileSizeBytes,omitempty"`
	Entries       int64  `json:"entries" yaml:"entries"`
	Uses          int64  `json:"uses" yaml:"uses"`
	UpdatedAt     string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
}
