package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstreamURL = "https://script.google.com/macros/s/test/exec"

func newSubmitRouter(client *http.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/submit", NewSubmitHandler(upstreamURL, client).Submit)
	return router
}

func TestSubmit_RelaysBodyAndResponse(t *testing.T) {
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	defer httpmock.DeactivateAndReset()

	var received string
	httpmock.RegisterResponder(http.MethodPost, upstreamURL,
		func(req *http.Request) (*http.Response, error) {
			buf := new(bytes.Buffer)
			buf.ReadFrom(req.Body)
			received = buf.String()
			return httpmock.NewStringResponse(http.StatusOK, `{"result":"success"}`), nil
		})

	router := newSubmitRouter(client)
	body := `{"companyNo":"12345","companyName":"Acme Ltd"}`

	req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":"success"}`, w.Body.String())
	assert.JSONEq(t, body, received)
}

func TestSubmit_RelaysUpstreamErrorStatus(t *testing.T) {
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, upstreamURL,
		httpmock.NewStringResponder(http.StatusForbidden, `{"error":"script disabled"}`))

	router := newSubmitRouter(client)
	req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"script disabled"}`, w.Body.String())
}

func TestSubmit_UpstreamUnreachableIs502(t *testing.T) {
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, upstreamURL,
		httpmock.NewErrorResponder(errors.New("connection refused")))

	router := newSubmitRouter(client)
	req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "unreachable")
}

func TestSubmit_SendsJSONContentType(t *testing.T) {
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	defer httpmock.DeactivateAndReset()

	var contentType string
	httpmock.RegisterResponder(http.MethodPost, upstreamURL,
		func(req *http.Request) (*http.Response, error) {
			contentType = req.Header.Get("Content-Type")
			return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
		})

	router := newSubmitRouter(client)
	req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", contentType)
}
