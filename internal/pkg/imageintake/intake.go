// Package imageintake 校验并转换用户选择的图片。
// 整批先校验 (数量、大小、类型)，全部通过后再并发转换；任一失败整批作废。
package imageintake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"sync"

	"photofeed_client/internal/pkg/config"
	"photofeed_client/internal/pkg/uploader"
	"photofeed_client/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("file type not supported")
	ErrTooManyFiles    = errors.New("too many files")
)

// Options 零值字段表示不限制
type Options struct {
	MaxSize       int64
	MaxFiles      int
	AcceptedTypes []string
}

func OptionsFromConfig(cfg config.UploadConfig) Options {
	return Options{
		MaxSize:       cfg.MaxFileSize,
		MaxFiles:      cfg.MaxFiles,
		AcceptedTypes: append([]string(nil), cfg.AcceptedTypes...),
	}
}

// Image 转换结果，URL 可直接用作图片地址
type Image struct {
	URL         string
	Name        string
	Size        int64
	ContentType string
}

// Intake 图片选择处理器
type Intake struct {
	opts     Options
	uploader uploader.Uploader

	mu        sync.RWMutex
	uploading bool
	err       error
}

func New(opts Options, up uploader.Uploader) *Intake {
	if up == nil {
		up = uploader.DataURLUploader{}
	}
	return &Intake{opts: opts, uploader: up}
}

// Options 当前限制
func (in *Intake) Options() Options {
	return in.opts
}

// Validate 校验单个文件的大小与类型
func (in *Intake) Validate(f File) error {
	if in.opts.MaxSize > 0 && f.Size() > in.opts.MaxSize {
		mb := strconv.FormatFloat(float64(in.opts.MaxSize)/1024/1024, 'f', -1, 64)
		return fmt.Errorf("%s: file size exceeds %sMB limit: %w", f.Name(), mb, ErrFileTooLarge)
	}
	if len(in.opts.AcceptedTypes) > 0 && !slices.Contains(in.opts.AcceptedTypes, f.ContentType()) {
		return fmt.Errorf("%s (%s): %w", f.Name(), f.ContentType(), ErrUnsupportedType)
	}
	return nil
}

// RemainingSlots 已持有 held 张时还能再选几张
func (in *Intake) RemainingSlots(held int) int {
	if in.opts.MaxFiles <= 0 {
		return -1
	}
	if held >= in.opts.MaxFiles {
		return 0
	}
	return in.opts.MaxFiles - held
}

// Select 在已持有 held 张的基础上追加选择，超出剩余名额的文件直接丢弃
func (in *Intake) Select(ctx context.Context, files []File, held int) ([]Image, error) {
	if remaining := in.RemainingSlots(held); remaining >= 0 && len(files) > remaining {
		logger.Log.Debug("dropping files beyond remaining slots",
			zap.Int("selected", len(files)),
			zap.Int("remaining", remaining),
		)
		files = files[:remaining]
	}
	if len(files) == 0 {
		return []Image{}, nil
	}
	return in.Process(ctx, files)
}

// Process 处理一批文件
// 先整批校验，任何一个不通过都不会开始转换；转换并发执行，结果保持输入顺序
func (in *Intake) Process(ctx context.Context, files []File) (images []Image, err error) {
	in.mu.Lock()
	in.uploading = true
	in.err = nil
	in.mu.Unlock()

	defer func() {
		in.mu.Lock()
		in.uploading = false
		in.err = err
		in.mu.Unlock()
	}()

	if in.opts.MaxFiles > 0 && len(files) > in.opts.MaxFiles {
		return nil, fmt.Errorf("maximum %d files allowed: %w", in.opts.MaxFiles, ErrTooManyFiles)
	}
	for _, f := range files {
		if err := in.Validate(f); err != nil {
			return nil, err
		}
	}

	results := make([]Image, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			img, err := in.convert(gctx, f)
			if err != nil {
				return err
			}
			// 按索引赋值保证顺序
			results[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (in *Intake) convert(ctx context.Context, f File) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}

	rc, err := f.Open()
	if err != nil {
		return Image{}, fmt.Errorf("open %s: %w", f.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Image{}, fmt.Errorf("read %s: %w", f.Name(), err)
	}

	url, err := in.uploader.Upload(ctx, f.Name(), f.ContentType(), data)
	if err != nil {
		return Image{}, fmt.Errorf("convert %s: %w", f.Name(), err)
	}

	return Image{
		URL:         url,
		Name:        f.Name(),
		Size:        int64(len(data)),
		ContentType: f.ContentType(),
	}, nil
}

// Uploading 是否有批次正在处理
func (in *Intake) Uploading() bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.uploading
}

// Err 最近一批的错误
func (in *Intake) Err() error {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.err
}
