package health

import (
	"context"
	"net"
	"path/filepath"
	"testing"

	"github.com/linanwx/chatwidget/cache"
)

func TestCollectWithoutConfig(t *testing.T) {
	s := Collect(context.Background(), Options{ConfigPath: filepath.Join(t.TempDir(), "config.yaml")})
	if s.Status != "healthy" {
		t.Fatalf("Status = %q, want healthy", s.Status)
	}
	if s.Config.Exists {
		t.Fatal("Config.Exists = true for missing file")
	}
	if s.Endpoint != nil || s.Cache != nil {
		t.Fatalf("unexpected sections: %+v", s)
	}
	if s.Runtime.Version == "" || s.Runtime.CPUs == 0 {
		t.Fatalf("Runtime = %+v", s.Runtime)
	}
}

func TestCollectProbesEndpoint(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer ln.Close()

	s := Collect(context.Background(), Options{
		Endpoint: "http://" + ln.Addr().String() + "/chat/",
		Probe:    true,
	})
	if s.Endpoint == nil || s.Endpoint.Reachable == nil || !*s.Endpoint.Reachable {
		t.Fatalf("Endpoint = %+v, want reachable", s.Endpoint)
	}
	if s.Status != "healthy" {
		t.Fatalf("Status = %q, want healthy", s.Status)
	}
}

func TestCollectUnreachableEndpointDegrades(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	s := Collect(context.Background(), Options{Endpoint: "http://" + addr + "/", Probe: true})
	if s.Status != "degraded" {
		t.Fatalf("Status = %q, want degraded", s.Status)
	}
	if s.Endpoint.Reachable == nil || *s.Endpoint.Reachable {
		t.Fatalf("Reachable = %v, want false", s.Endpoint.Reachable)
	}
}

func TestCollectWithoutProbeDoesNotDial(t *testing.T) {
	s := Collect(context.Background(), Options{Endpoint: "http://localhost:8000/chat/"})
	if s.Endpoint.Reachable != nil {
		t.Fatal("Reachable set without probe")
	}
	if s.Endpoint.Host != "localhost:8000" {
		t.Fatalf("Host = %q", s.Endpoint.Host)
	}
}

func TestCollectCacheFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replies.db")
	store, err := cache.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Put(context.Background(), "q1", "r1"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put(context.Background(), "q2", "r2"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	store.Close()

	s := Collect(context.Background(), Options{CachePath: path})
	if s.Cache == nil || !s.Cache.Exists || s.Cache.Entries != 2 {
		t.Fatalf("Cache = %+v, want 2 entries", s.Cache)
	}
}
