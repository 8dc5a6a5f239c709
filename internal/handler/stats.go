// Package handler 提供API处理器
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/zhipai/zhipai/internal/metrics"
	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/stats"
)

// StatsRequest 统计请求
// 排班结果连同其来源Schema一起提交，分析是纯函数，不依赖任何服务端状态
type StatsRequest struct {
	Schedule *model.Schedule `json:"schedule"`
	Schema   *model.Schema   `json:"schema"`
}

// FairnessResponse 公平性响应
type FairnessResponse struct {
	Success bool                   `json:"success"`
	Data    *stats.FairnessMetrics `json:"data,omitempty"`
}

// CoverageResponse 覆盖率响应
type CoverageResponse struct {
	Success bool                   `json:"success"`
	Data    *stats.CoverageMetrics `json:"data,omitempty"`
}

// GetFairnessHandler 公平性分析API
func GetFairnessHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeStatsRequest(w, r)
	if !ok {
		return
	}

	m := stats.AnalyzeFairness(req.Schedule, req.Schema.ShiftStructure)
	metrics.SetFairnessScore(string(req.Schedule.Method), m.Score)

	respondJSON(w, http.StatusOK, FairnessResponse{Success: true, Data: m})
}

// GetCoverageHandler 覆盖率分析API
func GetCoverageHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeStatsRequest(w, r)
	if !ok {
		return
	}

	m := stats.AnalyzeCoverage(req.Schedule, req.Schema.ShiftStructure, req.Schema.Employees)
	metrics.SetCoverageRate(string(req.Schedule.Method), m.FillRate)

	respondJSON(w, http.StatusOK, CoverageResponse{Success: true, Data: m})
}

// decodeStatsRequest 解析并检查统计请求，失败时已写入错误响应
func decodeStatsRequest(w http.ResponseWriter, r *http.Request) (*StatsRequest, bool) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return nil, false
	}

	var req StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return nil, false
	}
	if req.Schedule == nil {
		respondError(w, errors.New(errors.CodeInvalidInput, "缺少schedule字段"))
		return nil, false
	}
	if req.Schema == nil {
		respondError(w, errors.New(errors.CodeInvalidInput, "缺少schema字段"))
		return nil, false
	}
	return &req, true
}
