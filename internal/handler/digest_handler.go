package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sam-grant/slacker/internal/model"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

type DigestStore interface {
	GetDigests(limit, offset int) ([]model.ChannelDigest, error)
	GetDigestTotal() (int, error)
	GetLatestDigest() (*model.ChannelDigest, error)
}

type DigestHandler struct {
	repository DigestStore
}

func NewDigestHandler(repository DigestStore) *DigestHandler {
	return &DigestHandler{repository: repository}
}

type DigestResponse struct {
	ID           int64    `json:"id"`
	ChannelID    string   `json:"channel_id"`
	WindowStart  string   `json:"window_start"`
	WindowEnd    string   `json:"window_end"`
	Summary      string   `json:"summary"`
	ActionItems  []string `json:"action_items"`
	Decisions    []string `json:"decisions"`
	MessageCount int      `json:"message_count"`
	ModelUsed    string   `json:"model_used"`
	CreatedAt    string   `json:"created_at"`
}

type DigestsResponse struct {
	Latest  *DigestResponse  `json:"latest"`
	History []DigestResponse `json:"history"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

func toDigestResponse(d model.ChannelDigest) DigestResponse {
	return DigestResponse{
		ID:           d.ID,
		ChannelID:    d.ChannelID,
		WindowStart:  d.WindowStart.Format(time.RFC3339),
		WindowEnd:    d.WindowEnd.Format(time.RFC3339),
		Summary:      d.Summary,
		ActionItems:  d.ActionItems,
		Decisions:    d.Decisions,
		MessageCount: d.MessageCount,
		ModelUsed:    d.ModelUsed,
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
	}
}

func (h *DigestHandler) GetDigests(c *gin.Context) {
	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	offset := getQueryInt("offset", 0, c)

	digests, err := h.repository.GetDigests(limit, offset)
	if err != nil {
		slog.Error("error fetching digests", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetDigestTotal()
	if err != nil {
		slog.Error("error fetching digest total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := DigestsResponse{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		History: []DigestResponse{},
	}

	if len(digests) > 0 {
		latest := toDigestResponse(digests[0])
		res.Latest = &latest
		for _, d := range digests[1:] {
			res.History = append(res.History, toDigestResponse(d))
		}
	}

	c.JSON(http.StatusOK, res)
}

func (h *DigestHandler) GetLatestDigest(c *gin.Context) {
	digest, err := h.repository.GetLatestDigest()
	if err != nil {
		slog.Error("error fetching latest digest", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if digest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No digest available"})
		return
	}

	c.JSON(http.StatusOK, toDigestResponse(*digest))
}

func (h *DigestHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetDigestTotal()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsedValue
}
