package imageintake

import (
	"bytes"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// File 用户选择的本地文件句柄
type File interface {
	Name() string
	Size() int64
	ContentType() string
	Open() (io.ReadCloser, error)
}

// LocalFile 磁盘文件，MIME 类型按内容嗅探
type LocalFile struct {
	path        string
	size        int64
	contentType string
}

// OpenLocalFile 读取文件元信息，不读取完整内容
func OpenLocalFile(path string) (*LocalFile, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, err
	}

	return &LocalFile{
		path:        path,
		size:        st.Size(),
		contentType: baseType(mt.String()),
	}, nil
}

func (f *LocalFile) Name() string        { return filepath.Base(f.path) }
func (f *LocalFile) Size() int64         { return f.size }
func (f *LocalFile) ContentType() string { return f.contentType }

func (f *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// MemoryFile 内存中的文件内容
type MemoryFile struct {
	name        string
	data        []byte
	contentType string
}

// NewMemoryFile contentType 为空时按内容嗅探
func NewMemoryFile(name, contentType string, data []byte) *MemoryFile {
	if contentType == "" {
		contentType = baseType(mimetype.Detect(data).String())
	}
	return &MemoryFile{name: name, data: data, contentType: contentType}
}

func (f *MemoryFile) Name() string        { return f.name }
func (f *MemoryFile) Size() int64         { return int64(len(f.data)) }
func (f *MemoryFile) ContentType() string { return f.contentType }

func (f *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// baseType 去掉 "; charset=utf-8" 之类的参数
func baseType(t string) string {
	mediaType, _, err := mime.ParseMediaType(t)
	if err != nil {
		return t
	}
	return mediaType
}
