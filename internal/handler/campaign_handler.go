package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/visitbeacon/internal/service"
)

// visitQuery 对应浏览器 SDK 拼接在查询串上的字段。
type visitQuery struct {
	URL    string `form:"url"`
	Agent  string `form:"agent"`
	Zone   string `form:"zone"`
	Screen string `form:"screen"`
	Time   *int64 `form:"time"`
}

// RecordVisit 接收一次页面访问上报。
// 被拒绝的访问同样返回 200 与 {"result": false}；只有存储故障返回 500。
func (a *API) RecordVisit(c *gin.Context) {
	campaignID, err := parseUintParam(c, "campaign_id")
	if err != nil {
		notFound(c)
		return
	}

	var query visitQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, "invalid visit parameters")
		return
	}

	candidate := service.VisitCandidate{
		IP:     c.ClientIP(),
		URL:    query.URL,
		Agent:  query.Agent,
		Zone:   query.Zone,
		Screen: query.Screen,
	}
	if query.Time != nil {
		candidate.Time = *query.Time
	}

	accepted, err := a.ingest.Ingest(c.Request.Context(), &campaignID, candidate)
	if err != nil {
		a.logger.ErrorContext(c.Request.Context(), "record visit failed",
			"campaign_id", campaignID, "request_id", c.GetString(RequestIDKey), "error", err)
		respondError(c, http.StatusInternalServerError, "failed to record visit")
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": accepted})
}

// Ping 用于健康检查。
func (a *API) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
