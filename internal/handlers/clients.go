package handlers

import (
	"encoding/csv"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxSuggestions = 10

// ClientsHandler stores and serves the client list CSV that the form's
// autocomplete is populated from.
type ClientsHandler struct {
	csvPath string
}

func NewClientsHandler(csvPath string) *ClientsHandler {
	return &ClientsHandler{csvPath: csvPath}
}

// Upload handles POST /clients/upload: a multipart "file" field
// replaces the stored client list wholesale.
func (h *ClientsHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		handleError(c, http.StatusBadRequest, "Missing file upload", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(h.csvPath), 0o755); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create data directory", err)
		return
	}
	if err := c.SaveUploadedFile(file, h.csvPath); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to store client list", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Serve handles GET /clients.csv and returns the stored list verbatim.
// A missing file is an empty list, not an error.
func (h *ClientsHandler) Serve(c *gin.Context) {
	data, err := os.ReadFile(h.csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.Data(http.StatusOK, "text/csv", nil)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to read client list", err)
		return
	}
	c.Data(http.StatusOK, "text/csv", data)
}

// Suggest handles GET /clients/suggest?q= and returns rows whose first
// two columns (company name, company number) contain the query,
// case-insensitively, capped at a handful of matches.
func (h *ClientsHandler) Suggest(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"suggestions": []string{}})
		return
	}

	f, err := os.Open(h.csvPath)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"suggestions": []string{}})
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	suggestions := []string{}
	for len(suggestions) < maxSuggestions {
		row, err := reader.Read()
		if err != nil {
			break
		}
		if len(row) == 0 {
			continue
		}
		name := row[0]
		number := ""
		if len(row) > 1 {
			number = row[1]
		}
		if strings.Contains(strings.ToLower(name), query) || strings.Contains(strings.ToLower(number), query) {
			label := name
			if number != "" {
				label += " (" + number + ")"
			}
			suggestions = append(suggestions, label)
		}
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
