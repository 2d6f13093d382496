// Command smoke probes a running portal instance and reports per-endpoint
// status and latency. Used after deploys to confirm the public surface is up
// before traffic is switched over.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type probe struct {
	Name     string
	Method   string
	Path     string
	Want     int
	Critical bool
}

var probes = []probe{
	{Name: "health", Method: http.MethodGet, Path: "/health", Want: http.StatusOK, Critical: true},
	{Name: "ready", Method: http.MethodGet, Path: "/ready", Want: http.StatusOK, Critical: true},
	{Name: "metrics", Method: http.MethodGet, Path: "/metrics", Want: http.StatusOK, Critical: false},
	{Name: "schedule-unauthenticated", Method: http.MethodGet, Path: "/api/v1/schedule", Want: http.StatusUnauthorized, Critical: true},
	{Name: "roster-unauthenticated", Method: http.MethodGet, Path: "/api/v1/departments/CSIT/roster", Want: http.StatusUnauthorized, Critical: true},
	{Name: "login-bad-payload", Method: http.MethodPost, Path: "/api/v1/auth/login", Want: http.StatusBadRequest, Critical: true},
}

type result struct {
	Probe    probe
	Status   int
	Duration time.Duration
	Err      error
}

func main() {
	var (
		base    string
		timeout time.Duration
	)
	flag.StringVar(&base, "base", "http://localhost:8080", "portal base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	var criticalFailures int
	results := make([]result, 0, len(probes))
	for _, p := range probes {
		res := run(client, base, p)
		results = append(results, res)
		if (res.Err != nil || res.Status != p.Want) && p.Critical {
			criticalFailures++
		}
	}

	for _, res := range results {
		mark := "ok"
		if res.Err != nil {
			mark = fmt.Sprintf("error: %v", res.Err)
		} else if res.Status != res.Probe.Want {
			mark = fmt.Sprintf("got %d want %d", res.Status, res.Probe.Want)
		}
		fmt.Printf("%-28s %-6s %-40s %8s  %s\n", res.Probe.Name, res.Probe.Method, res.Probe.Path, res.Duration.Round(time.Millisecond), mark)
	}

	if criticalFailures > 0 {
		log.Printf("%d critical probe(s) failed", criticalFailures)
		os.Exit(1)
	}
}

func run(client *http.Client, base string, p probe) result {
	var req *http.Request
	var err error
	if p.Method == http.MethodPost {
		req, err = http.NewRequest(p.Method, base+p.Path, bytes.NewBufferString("{}"))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequest(p.Method, base+p.Path, nil)
	}
	if err != nil {
		return result{Probe: p, Err: err}
	}

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return result{Probe: p, Duration: elapsed, Err: err}
	}
	defer resp.Body.Close()

	return result{Probe: p, Status: resp.StatusCode, Duration: elapsed}
}
