package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SubmitHandler relays form submissions to the upstream spreadsheet
// endpoint. The body goes out verbatim and the upstream response comes
// back unchanged in status and body.
type SubmitHandler struct {
	upstreamURL string
	client      *http.Client
}

func NewSubmitHandler(upstreamURL string, client *http.Client) *SubmitHandler {
	if client == nil {
		client = http.DefaultClient
	}
	return &SubmitHandler{upstreamURL: upstreamURL, client: client}
}

// Submit handles POST /submit
func (h *SubmitHandler) Submit(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, h.upstreamURL, bytes.NewReader(body))
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to build upstream request", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		handleError(c, http.StatusBadGateway, "Upstream form endpoint unreachable: "+err.Error(), err)
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		handleError(c, http.StatusBadGateway, "Failed to read upstream response", err)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, respBody)
}
