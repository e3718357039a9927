package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddrAndHumanURL(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", Addr("0.0.0.0", 8080))
	assert.Equal(t, "http://127.0.0.1:8080", HumanURL("0.0.0.0", 8080))
	assert.Equal(t, "http://api.local:9000", HumanURL("api.local", 9000))
}

func TestBuildServer(t *testing.T) {
	srv := BuildServer(":0", nil, time.Second, 2*time.Second, 3*time.Second)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)
	assert.Equal(t, 3*time.Second, srv.IdleTimeout)
	assert.Equal(t, 1<<20, srv.MaxHeaderBytes)
}
