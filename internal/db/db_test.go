package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/company-profiler/internal/types"
)

func TestConnect_InvalidURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	conn, err := Connect(ctx, "://not-a-url")
	assert.Error(t, err)
	assert.Nil(t, conn)
}

func TestStoredProfileType(t *testing.T) {
	stored := StoredProfile{
		Domain: "acme.com",
		Profile: &types.CompanyProfile{
			Name: "Acme Co",
		},
	}

	assert.Equal(t, "acme.com", stored.Domain)
	assert.Equal(t, "Acme Co", stored.Profile.Name)
	assert.True(t, stored.CreatedAt.IsZero())
}
