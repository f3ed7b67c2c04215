// Package mongotest shares one MongoDB container between the integration
// tests of a test binary.
package mongotest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	once sync.Once
	uri  string
	err  error
)

// URI returns the address of a mongo:7 container started on first use. The
// test is skipped when no container provider is reachable or the container
// cannot start. The container is reaped by testcontainers when the process
// exits.
func URI(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	once.Do(func() {
		uri, err = start()
	})
	if err != nil {
		t.Skipf("skipping mongo tests: %v", err)
	}
	return uri
}

func start() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, runErr := testcontainers.Run(
		ctx, "mongo:7",
		testcontainers.WithExposedPorts("27017/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("27017/tcp").
				WithStartupTimeout(2*time.Minute),
		),
	)
	if runErr != nil {
		return "", fmt.Errorf("start mongo container: %w", runErr)
	}

	host, hostErr := container.Host(ctx)
	if hostErr != nil {
		_ = container.Terminate(context.Background())
		return "", fmt.Errorf("mongo container host: %w", hostErr)
	}
	port, portErr := container.MappedPort(ctx, "27017/tcp")
	if portErr != nil {
		_ = container.Terminate(context.Background())
		return "", fmt.Errorf("mongo container port: %w", portErr)
	}

	// Avoid [::1]:port resolution problems.
	if host == "" || host == "localhost" || host == "::1" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("mongodb://%s:%s", host, port.Port()), nil
}
