package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cognicore/triage/pkg/triage/bayes"
)

type diagnoseRequest struct {
	Symptoms map[string]int `json:"symptoms"`
}

func (s *Server) handleListSymptoms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"all_symptoms": s.engine.ListSymptoms()})
}

func (s *Server) handleSuggestSymptoms(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	c.JSON(http.StatusOK, s.engine.SuggestSymptoms(c.Query("prefix"), limit))
}

func (s *Server) handleDiagnose(c *gin.Context) {
	var req diagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	c.JSON(http.StatusOK, s.engine.Diagnose(bayes.Observation(req.Symptoms)))
}

func (s *Server) handleAppointments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"appointments": s.slots()})
}

func (s *Server) handleGetTranscript(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transcripts disabled"})
		return
	}

	t, ok, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "transcript not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

// toolRequest is the single-webhook envelope: the caller names a tool
// and passes its arguments as raw JSON.
type toolRequest struct {
	ToolName  string                     `json:"tool_name"`
	Arguments map[string]json.RawMessage `json:"arguments"`
}

func (s *Server) handleToolWebhook(c *gin.Context) {
	var req toolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.ToolName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no tool_name provided"})
		return
	}

	switch req.ToolName {
	case "list_all_symptoms":
		c.JSON(http.StatusOK, gin.H{"all_symptoms": s.engine.ListSymptoms()})

	case "diagnose_symptoms":
		symptoms := map[string]int{}
		if raw, ok := req.Arguments["symptom_dict"]; ok {
			if err := json.Unmarshal(raw, &symptoms); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid symptom_dict"})
				return
			}
		}
		c.JSON(http.StatusOK, s.engine.Diagnose(bayes.Observation(symptoms)))

	case "available_appointments":
		c.JSON(http.StatusOK, gin.H{"appointments": s.slots()})

	case "save_summary":
		if s.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "transcripts disabled"})
			return
		}
		summary, ok := req.Arguments["summary"]
		if !ok {
			summary = json.RawMessage("{}")
		}
		t, err := s.store.Save(c.Request.Context(), summary)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":       "summary saved successfully",
			"transcript_id": t.ID,
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tool: " + req.ToolName})
	}
}
