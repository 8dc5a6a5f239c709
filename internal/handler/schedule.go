// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/zhipai/zhipai/internal/metrics"
	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler"
)

// ScheduleHandler 排班处理器
type ScheduleHandler struct {
	engine *scheduler.Engine
}

// NewScheduleHandler 创建排班处理器
func NewScheduleHandler(engine *scheduler.Engine) *ScheduleHandler {
	return &ScheduleHandler{engine: engine}
}

// BuildRequest 排班构建请求
type BuildRequest struct {
	Schema         *model.Schema  `json:"schema"`
	Options        *model.Options `json:"options,omitempty"`
	TimeoutSeconds int            `json:"timeout_seconds,omitempty"` // 覆盖最优求解缺省超时
}

// BuildResponse 排班构建响应
type BuildResponse struct {
	Success  bool            `json:"success"`
	Schedule *model.Schedule `json:"schedule,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
	Duration string          `json:"duration"`
}

// ValidateRequest 校验请求
type ValidateRequest struct {
	Schema *model.Schema `json:"schema"`
}

// ValidateResponse 校验响应
type ValidateResponse struct {
	Warnings []string `json:"warnings"`
	Ready    bool     `json:"ready"` // 没有任何警告
}

// Build 生成排班
func (h *ScheduleHandler) Build(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	// 预置缺省选项再解码：请求只覆盖显式给出的字段
	opts := model.DefaultOptions()
	req := BuildRequest{Options: &opts}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.Schema == nil {
		respondError(w, errors.New(errors.CodeInvalidInput, "缺少schema字段"))
		return
	}

	if req.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}

	warnings := h.engine.Validate(req.Schema)
	metrics.RecordValidationWarnings(len(warnings))

	method, _ := opts.Method.Canonical()

	start := time.Now()
	sched, err := h.engine.BuildSchedule(r.Context(), req.Schema, opts)
	duration := time.Since(start)

	metrics.RecordScheduleBuild(string(method), err == nil, duration)
	if method == model.MethodOptimal {
		metrics.RecordSolverStatus(solverOutcome(err))
	}
	if err != nil {
		var appErr *errors.AppError
		if !stderrors.As(err, &appErr) {
			appErr = errors.Wrap(err, errors.CodeInternal, "排班生成失败")
		}
		respondError(w, appErr)
		return
	}

	sched.ID = uuid.New().String()

	respondJSON(w, http.StatusOK, BuildResponse{
		Success:  true,
		Schedule: sched,
		Warnings: warnings,
		Duration: duration.String(),
	})
}

// Validate 校验排班输入
func (h *ScheduleHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.Schema == nil {
		respondError(w, errors.New(errors.CodeInvalidInput, "缺少schema字段"))
		return
	}

	warnings := h.engine.Validate(req.Schema)
	metrics.RecordValidationWarnings(len(warnings))

	if warnings == nil {
		warnings = []string{}
	}
	respondJSON(w, http.StatusOK, ValidateResponse{
		Warnings: warnings,
		Ready:    len(warnings) == 0,
	})
}

// solverOutcome 把构建结果归类为求解器终止状态标签
func solverOutcome(err error) string {
	switch errors.GetCode(err) {
	case errors.CodeNoFeasibleSolution:
		return "infeasible"
	case errors.CodeTimeout:
		return "timeout"
	default:
		if err != nil {
			return "error"
		}
		return "solved"
	}
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
	})
}
