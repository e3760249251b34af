package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/service"
)

// MediaSweepTask 对象存储孤儿清理任务
// 提交中途崩溃或 best-effort 删除失败会留下无人引用的对象，
// 这里定期对台账做一次对账回收
type MediaSweepTask struct {
	mediaRepo repository.MediaRepository
	storage   service.StorageProvider
	Cron      *cron.Cron

	// 对象至少存在这么久才会被回收，避免清掉正在提交的上传
	graceAge  time.Duration
	batchSize int
}

func NewMediaSweepTask(mediaRepo repository.MediaRepository, storage service.StorageProvider) *MediaSweepTask {
	return &MediaSweepTask{
		mediaRepo: mediaRepo,
		storage:   storage,
		Cron:      cron.New(cron.WithSeconds()),
		graceAge:  24 * time.Hour,
		batchSize: 200,
	}
}

// Start 启动清理任务
func (t *MediaSweepTask) Start() {
	// 策略：每天凌晨 3 点清一次
	_, err := t.Cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		t.Execute(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动 MediaSweepTask: %v", err)
	}

	t.Cron.Start()
	log.Println("[MediaSweep] 清理任务已启动 (每天 03:00)")
}

// Stop 停止任务，等当前一轮跑完
func (t *MediaSweepTask) Stop() {
	ctx := t.Cron.Stop()
	<-ctx.Done()
}

// Execute 执行一轮回收 (由 Cron 定时触发)
func (t *MediaSweepTask) Execute(ctx context.Context) {
	log.Println("[MediaSweep] start sweeping orphaned media...")

	orphans, err := t.mediaRepo.ListOrphans(ctx, time.Now().Add(-t.graceAge), t.batchSize)
	if err != nil {
		log.Printf("[MediaSweep] failed to list orphans: %v", err)
		return
	}
	if len(orphans) == 0 {
		log.Println("[MediaSweep] nothing to reclaim")
		return
	}

	reclaimed := 0
	for _, obj := range orphans {
		if ctx.Err() != nil {
			break
		}

		if err := t.storage.Delete(ctx, obj.URL); err != nil {
			// 删除失败留到下一轮
			log.Printf("[MediaSweep] failed to delete %s: %v", obj.URL, err)
			continue
		}
		if err := t.mediaRepo.Remove(ctx, obj.ID); err != nil {
			log.Printf("[MediaSweep] failed to drop ledger entry %d: %v", obj.ID, err)
			continue
		}
		reclaimed++
	}

	log.Printf("[MediaSweep] done, reclaimed %d/%d objects", reclaimed, len(orphans))
}
