package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// ==================== 提交管线 ====================

// Submit 提交草稿。流程：
//
//  1. 抢提交锁，挡住双击造成的并发提交；
//  2. 客户端字段校验，失败时零网络请求；
//  3. 组 multipart：标量走表单字段，本地照片重复 "photos" 键，
//     本地视频走 "video"，更新模式追加 deletedPhotos[i] 和 deleteVideo；
//  4. 成功：用服务端返回的挂牌整体替换草稿（删除标记随之清空），
//     个别被拒文件以 warnings 形式带回；
//  5. 失败：草稿和标记原样保留，用户可以直接重试。
func (c *Client) Submit(ctx context.Context, draft *ListingDraft, mode SubmitMode) (*Listing, []MediaWarning, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, nil, ErrSubmitInFlight
	}
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	if verr := draft.Validate(mode); verr != nil {
		return nil, nil, verr
	}

	req := c.buildSubmitRequest(ctx, draft, mode)

	var resp *resty.Response
	var err error
	if mode == ModeCreate {
		resp, err = req.Post(marketplacePath)
	} else {
		resp, err = req.Put(marketplacePath)
	}

	env, derr := c.decode(resp, err)
	if derr != nil {
		return nil, nil, derr
	}

	var listing Listing
	if uerr := json.Unmarshal(env.Data, &listing); uerr != nil {
		return nil, nil, &ServerError{StatusCode: resp.StatusCode(), Message: "malformed listing payload"}
	}

	// 成功才替换草稿，删除标记到这里一并消失
	draft.applyListing(&listing)
	return &listing, env.Warnings, nil
}

// buildSubmitRequest 按服务端的 multipart 契约组请求
func (c *Client) buildSubmitRequest(ctx context.Context, draft *ListingDraft, mode SubmitMode) *resty.Request {
	req := c.newRequest(ctx).SetMultipartFormData(map[string]string{
		"title":       draft.Title,
		"description": draft.Description,
		"price":       strconv.FormatFloat(draft.Price, 'f', -1, 64),
		"location":    draft.Location,
		"status":      draft.Status,
	})

	for _, f := range draft.localPhotos() {
		req.SetMultipartField("photos", f.Name, f.MIME, bytes.NewReader(f.Data))
	}
	if v := draft.localVideo(); v != nil {
		req.SetMultipartField("video", v.Name, v.MIME, bytes.NewReader(v.Data))
	}

	if mode == ModeUpdate {
		for i, url := range draft.DeletedPhotoURLs() {
			req.SetMultipartFormData(map[string]string{
				fmt.Sprintf("deletedPhotos[%d]", i): url,
			})
		}
		if draft.DeleteVideo() {
			req.SetMultipartFormData(map[string]string{"deleteVideo": "true"})
		}
	}
	return req
}
