package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ==================== 接口定义 ====================

// StorageProvider 存储提供者接口
type StorageProvider interface {
	// Upload 上传文件，返回公开访问URL
	Upload(ctx context.Context, data []byte, filename string, contentType string) (url string, err error)

	// UploadFromURL 从URL下载并上传
	UploadFromURL(ctx context.Context, sourceURL string, filename string) (url string, err error)

	// Delete 删除文件
	Delete(ctx context.Context, url string) error
}

// ==================== 配置 ====================

type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	CDNDomain string // CDN域名 (可选)
	BasePath  string // 基础路径前缀
	LocalDir  string // local provider 的落盘目录
	LocalURL  string // local provider 的对外 URL 前缀
}

// ==================== 工厂方法 ====================

func NewStorageProvider(cfg *StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg)
	case "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// ==================== StorageService ====================

// UploadRecorder keeps a ledger of stored objects so the sweep task can
// reclaim orphans. Ledger failures never fail the upload itself.
type UploadRecorder interface {
	Record(ctx context.Context, url, kind string) error
	Forget(ctx context.Context, url string) error
}

// StorageService wraps a StorageProvider and owns key generation.
type StorageService struct {
	provider StorageProvider
	config   *StorageConfig
	recorder UploadRecorder // 可选
}

// NewStorageService 创建存储服务
func NewStorageService(cfg *StorageConfig) (*StorageService, error) {
	provider, err := NewStorageProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &StorageService{
		provider: provider,
		config:   cfg,
	}, nil
}

// SetRecorder 挂上对象台账
func (s *StorageService) SetRecorder(recorder UploadRecorder) {
	s.recorder = recorder
}

// Upload 上传文件
func (s *StorageService) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	url, err := s.provider.Upload(ctx, data, filename, contentType)
	if err != nil {
		return "", err
	}
	s.record(ctx, url, contentType)
	return url, nil
}

// UploadFromURL 从URL下载并上传
func (s *StorageService) UploadFromURL(ctx context.Context, sourceURL string, filename string) (string, error) {
	url, err := s.provider.UploadFromURL(ctx, sourceURL, filename)
	if err != nil {
		return "", err
	}
	s.record(ctx, url, "")
	return url, nil
}

// Delete 删除文件
func (s *StorageService) Delete(ctx context.Context, url string) error {
	if err := s.provider.Delete(ctx, url); err != nil {
		return err
	}
	if s.recorder != nil {
		if err := s.recorder.Forget(ctx, url); err != nil {
			log.Printf("[Storage] failed to drop ledger entry %s: %v", url, err)
		}
	}
	return nil
}

func (s *StorageService) record(ctx context.Context, url, contentType string) {
	if s.recorder == nil {
		return
	}
	kind := "photo"
	if strings.HasPrefix(contentType, "video/") {
		kind = "video"
	}
	if err := s.recorder.Record(ctx, url, kind); err != nil {
		log.Printf("[Storage] failed to record ledger entry %s: %v", url, err)
	}
}

// GetProvider 获取底层 Provider（用于需要接口的场景）
func (s *StorageService) GetProvider() StorageProvider {
	return s.provider
}

// ==================== S3 实现 ====================

type S3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	cdnDomain string
	basePath  string
}

func NewS3Storage(cfg *StorageConfig) (*S3Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}

	client := s3.NewFromConfig(awsCfg)

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		cdnDomain: cfg.CDNDomain,
		basePath:  cfg.BasePath,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	key := generateKey(s.basePath, filename)

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %v", err)
	}

	return s.getPublicURL(key), nil
}

func (s *S3Storage) UploadFromURL(ctx context.Context, sourceURL string, filename string) (string, error) {
	data, contentType, err := downloadFile(ctx, sourceURL)
	if err != nil {
		return "", err
	}
	return s.Upload(ctx, data, filename, contentType)
}

func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key := s.extractKey(url)
	if key == "" {
		return fmt.Errorf("cannot extract object key from url")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) getPublicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Storage) extractKey(url string) string {
	// 从URL中提取key
	if s.cdnDomain != "" && strings.Contains(url, s.cdnDomain) {
		return strings.TrimPrefix(url, fmt.Sprintf("https://%s/", s.cdnDomain))
	}
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	return strings.TrimPrefix(url, prefix)
}

// ==================== 本地存储 (开发测试用) ====================

type LocalStorage struct {
	dir      string
	baseURL  string
	basePath string
}

func NewLocalStorage(cfg *StorageConfig) (*LocalStorage, error) {
	dir := cfg.LocalDir
	if dir == "" {
		dir = "./uploads"
	}
	baseURL := cfg.LocalURL
	if baseURL == "" {
		baseURL = "http://localhost:8080/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %v", err)
	}

	return &LocalStorage{
		dir:      dir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		basePath: cfg.BasePath,
	}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	key := generateKey(s.basePath, filename)

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %v", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *LocalStorage) UploadFromURL(ctx context.Context, sourceURL string, filename string) (string, error) {
	data, contentType, err := downloadFile(ctx, sourceURL)
	if err != nil {
		return "", err
	}
	return s.Upload(ctx, data, filename, contentType)
}

func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.baseURL+"/")
	if key == url || key == "" {
		return fmt.Errorf("cannot extract file path from url")
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ==================== 工具函数 ====================

// generateKey builds a collision-free object key: basePath/yyyy/mm/dd/uuid.ext
func generateKey(basePath, filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	datePath := time.Now().Format("2006/01/02")
	if basePath != "" {
		return fmt.Sprintf("%s/%s/%s", basePath, datePath, newFilename)
	}
	return fmt.Sprintf("%s/%s", datePath, newFilename)
}

func downloadFile(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read body failed: %v", err)
	}

	contentType := resp.Header.Get("Content-Type")
	return data, contentType, nil
}
