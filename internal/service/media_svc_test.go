package service

import (
	"strings"
	"testing"
)

// ==================== Normalize 测试 ====================

func TestMediaService_NormalizePhotos(t *testing.T) {
	svc := NewMediaService()

	tests := []struct {
		name         string
		files        []FileInfo
		wantAccepted []string
		wantRejected int
	}{
		{
			name: "全部合法",
			files: []FileInfo{
				{Name: "a.jpg", ContentType: "image/jpeg", Size: 1024},
				{Name: "b.png", ContentType: "image/png", Size: 2048},
				{Name: "c.webp", ContentType: "image/webp", Size: 4096},
			},
			wantAccepted: []string{"a.jpg", "b.png", "c.webp"},
		},
		{
			name: "类型不支持",
			files: []FileInfo{
				{Name: "a.gif", ContentType: "image/gif", Size: 1024},
				{Name: "b.jpg", ContentType: "image/jpeg", Size: 1024},
			},
			wantAccepted: []string{"b.jpg"},
			wantRejected: 1,
		},
		{
			name: "超过大小上限",
			files: []FileInfo{
				{Name: "big.jpg", ContentType: "image/jpeg", Size: MaxPhotoSize + 1},
				{Name: "ok.jpg", ContentType: "image/jpeg", Size: MaxPhotoSize},
			},
			wantAccepted: []string{"ok.jpg"},
			wantRejected: 1,
		},
		{
			name: "大小写与空白容错",
			files: []FileInfo{
				{Name: "a.jpg", ContentType: " IMAGE/JPEG ", Size: 1024},
			},
			wantAccepted: []string{"a.jpg"},
		},
		{
			name: "视频混进照片批次",
			files: []FileInfo{
				{Name: "clip.mp4", ContentType: "video/mp4", Size: 1024},
			},
			wantRejected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted, rejected := svc.Normalize(tt.files, MediaKindPhoto)

			if len(accepted) != len(tt.wantAccepted) {
				t.Fatalf("len(accepted) = %d, want %d", len(accepted), len(tt.wantAccepted))
			}
			for i, name := range tt.wantAccepted {
				if accepted[i].Name != name {
					t.Errorf("accepted[%d] = %s, want %s", i, accepted[i].Name, name)
				}
			}
			if len(rejected) != tt.wantRejected {
				t.Errorf("len(rejected) = %d, want %d", len(rejected), tt.wantRejected)
			}
		})
	}
}

func TestMediaService_NormalizeVideo(t *testing.T) {
	svc := NewMediaService()

	// codec 参数应该被剥离
	accepted, _ := svc.Normalize([]FileInfo{
		{Name: "clip.webm", ContentType: `video/webm; codecs="vp8, vorbis"`, Size: 1 << 20},
	}, MediaKindVideo)
	if len(accepted) != 1 {
		t.Errorf("带 codecs 参数的视频被拒绝")
	}

	// 超限视频
	_, rejected := svc.Normalize([]FileInfo{
		{Name: "movie.mp4", ContentType: "video/mp4", Size: MaxVideoSize + 1},
	}, MediaKindVideo)
	if len(rejected) != 1 {
		t.Fatalf("超限视频未被拒绝")
	}
	if !strings.Contains(rejected[0].Reason, "200MB") {
		t.Errorf("拒绝原因未提及大小限制: %s", rejected[0].Reason)
	}

	// 拒绝原因要区分类型错误和大小错误
	_, rejected = svc.Normalize([]FileInfo{
		{Name: "a.mkv", ContentType: "video/x-matroska", Size: 1024},
	}, MediaKindVideo)
	if len(rejected) != 1 {
		t.Fatalf("不支持类型未被拒绝")
	}
	if !strings.Contains(rejected[0].Reason, "unsupported") {
		t.Errorf("拒绝原因未提及类型: %s", rejected[0].Reason)
	}
}

// ==================== CheckCapacity 测试 ====================

func TestMediaService_CheckCapacity(t *testing.T) {
	svc := NewMediaService()

	tests := []struct {
		name          string
		current       int
		count         int
		wantErr       bool
		wantRemaining int
		wantOverflow  int
	}{
		{name: "空位充足", current: 2, count: 3, wantErr: false},
		{name: "刚好填满", current: 3, count: 2, wantErr: false},
		{name: "超出一张", current: 3, count: 3, wantErr: true, wantRemaining: 2, wantOverflow: 1},
		{name: "已满再传", current: 5, count: 1, wantErr: true, wantRemaining: 0, wantOverflow: 1},
		{name: "零上传", current: 5, count: 0, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckCapacity(MediaKindPhoto, tt.current, tt.count, 5)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("CheckCapacity() error = %v, want nil", err)
				}
				return
			}

			capErr, ok := err.(*CapacityError)
			if !ok {
				t.Fatalf("CheckCapacity() error type = %T, want *CapacityError", err)
			}
			if capErr.Remaining != tt.wantRemaining {
				t.Errorf("Remaining = %d, want %d", capErr.Remaining, tt.wantRemaining)
			}
			if capErr.Overflow != tt.wantOverflow {
				t.Errorf("Overflow = %d, want %d", capErr.Overflow, tt.wantOverflow)
			}
		})
	}
}
