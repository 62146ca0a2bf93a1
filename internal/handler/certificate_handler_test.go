package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCertificate_ValidationErrors(t *testing.T) {
	handler := &CertificateHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing name",
			body: map[string]interface{}{"quizTitle": "Go Basics", "score": 5},
		},
		{
			name: "missing quiz title",
			body: map[string]interface{}{"name": "Иван Иванов", "score": 5},
		},
		{
			name: "negative score",
			body: map[string]interface{}{"name": "Иван Иванов", "quizTitle": "Go Basics", "score": -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/certificate", tt.body)
			handler.GenerateCertificate(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["message"])
		})
	}
}

func TestDownloadCertificate_ValidationErrors(t *testing.T) {
	handler := &CertificateHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing resultId",
			body: map[string]interface{}{},
		},
		{
			name: "zero resultId",
			body: map[string]interface{}{"resultId": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newAuthedTestGinContext("POST", "/api/certificate/download", tt.body)
			handler.DownloadCertificate(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["message"])
		})
	}
}
