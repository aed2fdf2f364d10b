package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/ping", Ping)

	w := serve(r, http.MethodGet, "/v1/ping", "")
	expectStatus(t, w, http.StatusOK)
	if body := decodeBody(t, w); body["message"] != "pong" {
		t.Fatalf("unexpected body: %v", body)
	}
}
