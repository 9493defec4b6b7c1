//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisCache_RoundTrip(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	c := NewRedisCache(endpoint, "", 0)
	defer c.Close()
	require.NoError(t, c.Connect(ctx))
	require.NoError(t, c.Ping(ctx))

	type entry struct {
		Title string `json:"title"`
		Year  int    `json:"year"`
	}

	var got entry
	found, err := c.Get(ctx, "book:missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "book:1", entry{Title: "Dune", Year: 1965}, time.Minute))
	found, err = c.Get(ctx, "book:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entry{Title: "Dune", Year: 1965}, got)

	require.NoError(t, c.Delete(ctx, "book:1", "books:list"))
	found, err = c.Get(ctx, "book:1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
