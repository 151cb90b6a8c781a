package utils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	status := CheckHealth(context.Background(), client, nil)
	require.NotNil(t, status.Redis)
	assert.True(t, *status.Redis)
	assert.Nil(t, status.Mongo)
	assert.Equal(t, status, GetHealthStatus())

	mr.Close()
	status = CheckHealth(context.Background(), client, nil)
	require.NotNil(t, status.Redis)
	assert.False(t, *status.Redis)
}
