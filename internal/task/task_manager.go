package task

import (
	"log"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/service"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台定时任务
type TaskManager struct {
	mediaSweep *MediaSweepTask
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	MediaRepo repository.MediaRepository
	Storage   service.StorageProvider
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	MediaSweepEnabled bool
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		MediaSweepEnabled: true,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	m := &TaskManager{}
	if cfg.MediaSweepEnabled {
		m.mediaSweep = NewMediaSweepTask(deps.MediaRepo, deps.Storage)
	}
	return m
}

// Start 启动全部任务
func (m *TaskManager) Start() {
	if m.mediaSweep != nil {
		m.mediaSweep.Start()
	}
	log.Println("[TaskManager] 后台任务已启动")
}

// Stop 停止全部任务
func (m *TaskManager) Stop() {
	if m.mediaSweep != nil {
		m.mediaSweep.Stop()
	}
	log.Println("[TaskManager] 后台任务已停止")
}
