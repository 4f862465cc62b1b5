package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEndpoint(t *testing.T) {
	host, secure := splitEndpoint("https://abc.supabase.co/storage/v1/s3", false)
	assert.Equal(t, "abc.supabase.co", host)
	assert.True(t, secure)

	host, secure = splitEndpoint("localhost:9000", false)
	assert.Equal(t, "localhost:9000", host)
	assert.False(t, secure)

	host, secure = splitEndpoint("minio.internal:9000/ignored", true)
	assert.Equal(t, "minio.internal:9000", host)
	assert.True(t, secure)
}

func TestNew_PublicURL(t *testing.T) {
	s, err := New(Config{
		Endpoint:      "https://abc.supabase.co/storage/v1/s3",
		AccessKey:     "key",
		SecretKey:     "secret",
		Region:        "us-east-1",
		Bucket:        "assets",
		PublicBaseURL: "https://abc.supabase.co/storage/v1/object/public/assets/",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://abc.supabase.co/storage/v1/object/public/assets/avatar/u1/x.png", s.URL("avatar/u1/x.png"))

	s, err = New(Config{Endpoint: "localhost:9000", Bucket: "assets"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/assets/portfolio/a.jpg", s.URL("/portfolio/a.jpg"))
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)
}
